package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/spf13/cobra"
)

type balance struct {
	Principal string `json:"principal"`
	Balance   uint64 `json:"balance"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	principalID := record.PublicKeyToPrincipalID(privateKey.PublicKey)
	fmt.Println("For Principal:", principalID)

	resp, err := http.Get(fmt.Sprintf("%s/v1/balance/%s", url, principalID))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	var bal balance
	if err := decoder.Decode(&bal); err != nil {
		log.Fatal(err)
	}

	fmt.Println(bal.Balance)
}
