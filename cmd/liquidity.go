package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"soroswap-cli/pkg/types"
)

var (
	liqAssetA      string
	liqAssetB      string
	liqAmountA     int64
	liqAmountB     int64
	liqTo          string
	liqSlippageBps int
)

var liquidityCmd = &cobra.Command{
	Use:   "liquidity",
	Short: "Liquidity provisioning",
}

var liquidityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Build a transaction adding liquidity to a pool",
	Long: `Build a transaction depositing both assets of a pair into its pool.
The resulting envelope must be signed and submitted separately.

Example:
  soroswap liquidity add --asset-a <asset> --asset-b <asset> --amount-a 10000000 --amount-b 5000000 --to GABC...`,
	Run: runLiquidityAdd,
}

func init() {
	rootCmd.AddCommand(liquidityCmd)
	liquidityCmd.AddCommand(liquidityAddCmd)

	liquidityAddCmd.Flags().StringVar(&liqAssetA, "asset-a", "", "First asset contract address")
	liquidityAddCmd.Flags().StringVar(&liqAssetB, "asset-b", "", "Second asset contract address")
	liquidityAddCmd.Flags().Int64Var(&liqAmountA, "amount-a", 0, "Amount of the first asset in stroops")
	liquidityAddCmd.Flags().Int64Var(&liqAmountB, "amount-b", 0, "Amount of the second asset in stroops")
	liquidityAddCmd.Flags().StringVar(&liqTo, "to", "", "Wallet address receiving the pool shares")
	liquidityAddCmd.Flags().IntVar(&liqSlippageBps, "slippage-bps", -1, "Slippage tolerance in basis points (default 50)")
}

func runLiquidityAdd(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	req := &types.AddLiquidityRequest{
		AssetA:  liqAssetA,
		AssetB:  liqAssetB,
		AmountA: liqAmountA,
		AmountB: liqAmountB,
		To:      liqTo,
	}
	if liqSlippageBps >= 0 {
		bps := liqSlippageBps
		req.SlippageBps = &bps
	}

	resp, err := withSpinner(jsonOutput, " Building liquidity deposit...", func() (*types.AddLiquidityResponse, error) {
		return apiClient.AddLiquidity(context.Background(), req, networkFlag(cmd))
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(resp)
		return
	}

	fmt.Println("\nUnsigned transaction envelope (sign and submit with 'soroswap send'):")
	color.Cyan("  %s\n\n", resp.TransactionXDR)
}
