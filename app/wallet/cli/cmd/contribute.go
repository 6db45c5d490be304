package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/spf13/cobra"
)

var (
	riddleID string
	amount   int64
)

var contributeCmd = &cobra.Command{
	Use:   "contribute",
	Short: "Add value to a riddle's pool",
	Run:   contributeRun,
}

func init() {
	rootCmd.AddCommand(contributeCmd)
	contributeCmd.Flags().StringVarP(&riddleID, "id", "i", "", "Id of the riddle.")
	contributeCmd.Flags().Int64VarP(&amount, "amount", "m", 0, "Value to contribute.")
}

func contributeRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	principalID := record.PublicKeyToPrincipalID(privateKey.PublicKey)

	payload := struct {
		Contributor string `json:"contributor"`
		Amount      int64  `json:"amount"`
	}{
		Contributor: string(principalID),
		Amount:      amount,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/riddle/%s/contribute", url, riddleID), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result struct {
		PooledValue uint64 `json:"pooled_value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Println("pooled:", result.PooledValue)
}
