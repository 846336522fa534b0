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

var (
	poolProtocol   string
	poolAssetLists []string
	poolProtocols  []string
)

var poolsCmd = &cobra.Command{
	Use:   "pools [token-a token-b]",
	Short: "List liquidity pools",
	Long: `List the liquidity pools a protocol exposes, or the pools holding a
specific token pair.

Examples:
  soroswap pools --protocol soroswap
  soroswap pools --protocol soroswap --asset-list SOROSWAP,AQUA
  soroswap pools <token-a> <token-b> --protocols soroswap,phoenix`,
	Args: cobra.RangeArgs(0, 2),
	Run:  runPools,
}

func init() {
	rootCmd.AddCommand(poolsCmd)

	poolsCmd.Flags().StringVar(&poolProtocol, "protocol", "", "Protocol to list pools for")
	poolsCmd.Flags().StringSliceVar(&poolAssetLists, "asset-list", nil, "Filter pools by curated asset lists")
	poolsCmd.Flags().StringSliceVar(&poolProtocols, "protocols", nil, "Protocol filter for a token-pair lookup")
}

func runPools(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	ctx := context.Background()

	var pools []types.Pool
	if len(args) == 2 {
		pools, err = withSpinner(jsonOutput, " Fetching pools for pair...", func() ([]types.Pool, error) {
			return apiClient.PoolsForPair(ctx, args[0], args[1], networkFlag(cmd), poolProtocols)
		})
	} else if len(args) == 1 {
		printError(fmt.Errorf("a token-pair lookup needs both token addresses"))
		os.Exit(1)
	} else {
		pools, err = withSpinner(jsonOutput, " Fetching pools...", func() ([]types.Pool, error) {
			return apiClient.Pools(ctx, networkFlag(cmd), poolProtocol, poolAssetLists)
		})
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(pools)
		return
	}
	displayPools(pools)
}

func displayPools(pools []types.Pool) {
	if len(pools) == 0 {
		fmt.Println("\nNo pools found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	color.Green("                                  LIQUIDITY POOLS")
	fmt.Println(strings.Repeat("=", 90))

	for _, pool := range pools {
		color.Cyan("\n%s", pool.Address)
		fmt.Printf("  Protocol:  %s\n", pool.Protocol)
		fmt.Printf("  Token A:   %s (reserve %s)\n", color.HiBlackString(pool.TokenA), pool.ReserveA)
		fmt.Printf("  Token B:   %s (reserve %s)\n", color.HiBlackString(pool.TokenB), pool.ReserveB)
		fmt.Printf("  Ledger:    %d\n", pool.LedgerNo)
	}

	fmt.Println("\n" + strings.Repeat("=", 90))
	fmt.Printf("\nTotal: %d pools\n\n", len(pools))
}
