package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all riddles",
	Run:   listRun,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/riddle/list", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var riddles []struct {
		ID          string `json:"id"`
		Prompt      string `json:"prompt"`
		PooledValue uint64 `json:"pooled_value"`
		Resolved    bool   `json:"resolved"`
		Resolver    string `json:"resolver"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&riddles); err != nil {
		log.Fatal(err)
	}

	for _, r := range riddles {
		status := "unsolved"
		if r.Resolved {
			status = "solved by " + r.Resolver
		}
		fmt.Printf("%s  pool[%d]  %s\n  %s\n", r.ID, r.PooledValue, status, r.Prompt)
	}
}
