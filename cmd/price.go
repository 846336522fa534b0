package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"soroswap-cli/pkg/types"
)

var referenceCurrency string

var priceCmd = &cobra.Command{
	Use:   "price <asset> [asset...]",
	Short: "Look up asset prices",
	Long: `Look up the price of one or more assets in a reference currency
(USD by default).

Examples:
  soroswap price <asset>
  soroswap price <asset> <asset> --currency EUR`,
	Args: cobra.MinimumNArgs(1),
	Run:  runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().StringVar(&referenceCurrency, "currency", "", "Reference currency (default USD)")
}

func runPrice(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	prices, err := withSpinner(jsonOutput, " Fetching prices...", func() ([]types.PriceData, error) {
		return apiClient.Prices(context.Background(), networkFlag(cmd), args, referenceCurrency)
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(prices)
		return
	}

	fmt.Println()
	for _, p := range prices {
		fmt.Printf("  %s  %s %s\n", color.HiBlackString(p.Asset), color.YellowString(p.Price), p.ReferenceCurrency)
	}
	fmt.Println()
}
