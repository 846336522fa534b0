package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"soroswap-cli/pkg/types"
)

var assetListName string

var assetsCmd = &cobra.Command{
	Use:     "assets",
	Aliases: []string{"asset-list", "ls"},
	Short:   "List the assets published by a curator",
	Long: `Fetch a curated asset list. Known curators: ` + strings.Join(types.CuratorNames(), ", ") + `.

Examples:
  soroswap assets --name SOROSWAP
  soroswap assets --name LOBSTR --json`,
	Run: runAssets,
}

func init() {
	rootCmd.AddCommand(assetsCmd)

	assetsCmd.Flags().StringVar(&assetListName, "name", types.AssetListSoroswap, "Asset list curator")
}

func runAssets(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	records, err := withSpinner(jsonOutput, " Fetching asset list...", func() ([]types.AssetRecord, error) {
		return apiClient.AssetList(context.Background(), strings.ToUpper(assetListName))
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(records)
		return
	}

	color.Green("\n%s asset list: %d records\n", strings.ToUpper(assetListName), len(records))
	for _, record := range records {
		fmt.Printf("  %s\n", string(record))
	}
	fmt.Println()
}
