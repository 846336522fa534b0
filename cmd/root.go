package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"soroswap-cli/config"
	"soroswap-cli/pkg/client"
)

var rootCmd = &cobra.Command{
	Use:   "soroswap",
	Short: "A CLI for swapping on Stellar through the Soroswap aggregator",
	Long: `soroswap is a command-line gateway to the Soroswap DEX aggregation API.
It resolves swap quotes across Soroban liquidity sources, builds signable
transaction envelopes, and submits signed transactions for execution.

Examples:
  soroswap swap 10000000 <asset-in> to <asset-out> --from GABC...
  soroswap quote 10000000 <asset-in> to <asset-out> --slippage-bps 100
  soroswap protocols
  soroswap pools --protocol soroswap
  soroswap price <asset> <asset>
  soroswap assets --name SOROSWAP`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to operate on (mainnet or testnet)")
}

// newClient loads the configuration and wires a client, with debug request
// tracing when --verbose is set.
func newClient(cmd *cobra.Command) (*client.SoroswapClient, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	var opts []client.Option
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, client.WithLogger(log))
	}

	c, err := client.NewSoroswapClient(cfg.API(), opts...)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func networkFlag(cmd *cobra.Command) string {
	network, _ := cmd.Flags().GetString("network")
	return network
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
