package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"soroswap-cli/pkg/parser"
	"soroswap-cli/pkg/types"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <asset-in> to <asset-out>",
	Short: "Resolve a swap quote without building a transaction",
	Long: `Resolve a trade intent into a quote across the aggregator's liquidity
sources. Nothing is built or submitted.

Examples:
  soroswap quote 10000000 <asset-in> to <asset-out>
  soroswap quote 10000000 <asset-in> to <asset-out> --exact-out --slippage-bps 100
  soroswap quote 10000000 <asset-in> to <asset-out> --protocols soroswap,aqua`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().BoolVar(&exactOut, "exact-out", false, "Treat the amount as the desired output")
	quoteCmd.Flags().IntVar(&slippageBps, "slippage-bps", -1, "Slippage tolerance in basis points (default 50)")
	quoteCmd.Flags().StringSliceVar(&protocolFilter, "protocols", nil, "Restrict routing to these protocols")
	quoteCmd.Flags().IntVar(&parts, "parts", 0, "Maximum number of route splits")
	quoteCmd.Flags().IntVar(&maxHops, "max-hops", 0, "Maximum number of hops per route")
	quoteCmd.Flags().IntVar(&feeBps, "fee-bps", -1, "Platform fee in basis points")
	quoteCmd.Flags().StringVar(&gaslessTrustline, "gasless-trustline", "", "Asset for a gasless-trustline swap")
}

func runQuote(cmd *cobra.Command, args []string) {
	quoteReq, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	applyQuoteFlags(quoteReq)

	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	quote, err := withSpinner(jsonOutput, " Fetching quote...", func() (*types.Quote, error) {
		return apiClient.GetQuote(context.Background(), quoteReq, networkFlag(cmd))
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(quote)
	} else {
		displayQuote(quote)
	}
}
