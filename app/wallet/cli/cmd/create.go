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
	prompt       string
	solution     string
	initialValue int64
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new riddle",
	Run:   createRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&prompt, "prompt", "r", "", "The riddle text.")
	createCmd.Flags().StringVarP(&solution, "solution", "s", "", "The accepted answer.")
	createCmd.Flags().Int64VarP(&initialValue, "value", "v", 0, "Initial value to pool.")
}

func createRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	principalID := record.PublicKeyToPrincipalID(privateKey.PublicKey)

	payload := struct {
		Creator      string `json:"creator"`
		Prompt       string `json:"prompt"`
		Solution     string `json:"solution"`
		InitialValue int64  `json:"initial_value"`
	}{
		Creator:      string(principalID),
		Prompt:       prompt,
		Solution:     solution,
		InitialValue: initialValue,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/riddle", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.ID)
}
