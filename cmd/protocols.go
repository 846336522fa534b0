package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols",
	Short: "List the protocols available on a network",
	Run:   runProtocols,
}

func init() {
	rootCmd.AddCommand(protocolsCmd)
}

func runProtocols(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	protocols, err := withSpinner(jsonOutput, " Fetching available protocols...", func() ([]string, error) {
		return apiClient.Protocols(context.Background(), networkFlag(cmd))
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(map[string][]string{"availableProtocols": protocols})
		return
	}

	color.Green("\nAvailable protocols:")
	for _, p := range protocols {
		fmt.Printf("  - %s\n", p)
	}
	fmt.Println()
}
