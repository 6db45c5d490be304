package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/spf13/cobra"
)

var answer string

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Attempt to solve a riddle",
	Run:   solveRun,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVarP(&riddleID, "id", "i", "", "Id of the riddle.")
	solveCmd.Flags().StringVarP(&answer, "answer", "w", "", "Proposed answer, compared byte-for-byte.")
}

func solveRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	principalID := record.PublicKeyToPrincipalID(privateKey.PublicKey)

	payload := struct {
		Solver string `json:"solver"`
		Answer string `json:"answer"`
	}{
		Solver: string(principalID),
		Answer: answer,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/riddle/%s/solve", url, riddleID), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("solve failed: %s", body)
	}

	var result struct {
		Payout uint64 `json:"payout"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Println("payout:", result.Payout)
}
