package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"soroswap-cli/config"
	"soroswap-cli/pkg/client"
	"soroswap-cli/pkg/parser"
	"soroswap-cli/pkg/signer"
	"soroswap-cli/pkg/types"
)

var (
	fromAddr         string
	toAddr           string
	exactOut         bool
	slippageBps      int
	protocolFilter   []string
	parts            int
	maxHops          int
	feeBps           int
	referralID       string
	sponsorAddr      string
	gaslessTrustline string
	launchTube       bool
	noConfirm        bool
	noSend           bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <asset-in> to <asset-out>",
	Short: "Quote, build, sign and submit a swap",
	Long: `Swap tokens on Stellar through the Soroswap aggregator.

The amount is in stroops and the assets are contract addresses. The quote
is resolved first and displayed for confirmation; the transaction is then
built, signed with the configured signer seed, and submitted. Without a
configured seed the unsigned envelope XDR is printed instead.

Examples:
  # Simple swap, 1 unit (10^7 stroops) of the input asset
  soroswap swap 10000000 <asset-in> to <asset-out> --from GABC...

  # Tighter slippage, restricted protocols
  soroswap swap 10000000 <asset-in> to <asset-out> --from GABC... --slippage-bps 30 --protocols soroswap

  # Build only, print the unsigned envelope
  soroswap swap 10000000 <asset-in> to <asset-out> --from GABC... --no-send`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&fromAddr, "from", "", "Sender wallet address (REQUIRED)")
	swapCmd.Flags().StringVar(&toAddr, "to", "", "Recipient wallet address (defaults to sender)")
	swapCmd.Flags().BoolVar(&exactOut, "exact-out", false, "Treat the amount as the desired output")
	swapCmd.Flags().IntVar(&slippageBps, "slippage-bps", -1, "Slippage tolerance in basis points (default 50)")
	swapCmd.Flags().StringSliceVar(&protocolFilter, "protocols", nil, "Restrict routing to these protocols")
	swapCmd.Flags().IntVar(&parts, "parts", 0, "Maximum number of route splits")
	swapCmd.Flags().IntVar(&maxHops, "max-hops", 0, "Maximum number of hops per route")
	swapCmd.Flags().IntVar(&feeBps, "fee-bps", -1, "Platform fee in basis points (requires --referral)")
	swapCmd.Flags().StringVar(&referralID, "referral", "", "Referral wallet address for fee attribution")
	swapCmd.Flags().StringVar(&sponsorAddr, "sponsor", "", "Sponsor wallet address (two-step sponsored build)")
	swapCmd.Flags().StringVar(&gaslessTrustline, "gasless-trustline", "", "Asset for a gasless-trustline swap")
	swapCmd.Flags().BoolVar(&launchTube, "launchtube", false, "Submit through the LaunchTube relay")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
	swapCmd.Flags().BoolVar(&noSend, "no-send", false, "Stop after building: print the unsigned envelope")
}

func runSwap(cmd *cobra.Command, args []string) {
	quoteReq, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	applyQuoteFlags(quoteReq)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	network := networkFlag(cmd)

	apiClient, cfg, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	ctx := context.Background()

	// Resolve the quote
	quote, err := withSpinner(jsonOutput, " Fetching quote...", func() (*types.Quote, error) {
		return apiClient.GetQuote(ctx, quoteReq, network)
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

	if !noConfirm && !jsonOutput {
		if !confirm("Proceed with swap?") {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	// Build the envelope
	buildReq := &types.BuildRequest{
		Quote:      quote,
		From:       fromAddr,
		To:         toAddr,
		ReferralID: referralID,
	}

	var envelopeXDR string
	if sponsorAddr != "" {
		envelopeXDR, err = runSponsoredBuild(ctx, apiClient, cfg, quote, network, jsonOutput)
	} else {
		var built *types.BuildResponse
		built, err = withSpinner(jsonOutput, " Building transaction...", func() (*types.BuildResponse, error) {
			return apiClient.Build(ctx, buildReq, network)
		})
		if built != nil {
			envelopeXDR = built.TransactionXDR
		}
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Sign locally, or hand the envelope back to the caller
	if noSend || cfg.SignerSeed == "" {
		if !jsonOutput {
			fmt.Println("\nUnsigned transaction envelope (sign and submit with 'soroswap send'):")
			color.Cyan("  %s\n", envelopeXDR)
		} else {
			printJSON(map[string]string{"transactionXdr": envelopeXDR})
		}
		return
	}

	sgn, err := signer.New(cfg.SignerSeed, resolvedNetwork(cfg.Network, network))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	signedXDR, err := sgn.SignXDR(envelopeXDR)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Submit
	result, err := withSpinner(jsonOutput, " Submitting transaction...", func() (*types.SendResult, error) {
		return apiClient.Send(ctx, signedXDR, launchTube, network)
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(result)
	} else {
		displaySendResult(result)
	}
}

func applyQuoteFlags(req *types.QuoteRequest) {
	if exactOut {
		req.TradeType = types.TradeTypeExactOut
	}
	if slippageBps >= 0 {
		bps := slippageBps
		req.SlippageBps = &bps
	}
	if len(protocolFilter) > 0 {
		req.Protocols = [][]string{protocolFilter}
	}
	if parts > 0 {
		req.Parts = parts
	}
	if maxHops > 0 {
		req.MaxHops = maxHops
	}
	if feeBps >= 0 {
		bps := feeBps
		req.FeeBps = &bps
	}
	if gaslessTrustline != "" {
		req.GaslessTrustline = gaslessTrustline
	}
}

// runSponsoredBuild walks the two-step sponsored flow: the user signs the
// partial envelope from step 1 before the final build.
func runSponsoredBuild(ctx context.Context, apiClient *client.SoroswapClient, cfg *config.Config, quote *types.Quote, network string, jsonOutput bool) (string, error) {
	flow, err := apiClient.NewSponsorFlow(quote, fromAddr, sponsorAddr, network)
	if err != nil {
		return "", err
	}
	if referralID != "" {
		flow.WithReferral(referralID)
	}

	userXDR, err := withSpinner(jsonOutput, " Building sponsored transaction (step 1)...", func() (string, error) {
		return flow.Step1(ctx)
	})
	if err != nil {
		return "", err
	}

	if cfg.SignerSeed == "" {
		return "", fmt.Errorf("sponsored builds need a configured signer seed to sign the step-1 envelope")
	}
	sgn, err := signer.New(cfg.SignerSeed, resolvedNetwork(cfg.Network, network))
	if err != nil {
		return "", err
	}
	signedUserXDR, err := sgn.SignXDR(userXDR)
	if err != nil {
		return "", err
	}

	final, err := withSpinner(jsonOutput, " Finalizing sponsored transaction (step 2)...", func() (*types.BuildResponse, error) {
		return flow.Step2(ctx, signedUserXDR)
	})
	if err != nil {
		return "", err
	}
	return final.TransactionXDR, nil
}

func displayQuote(quote *types.Quote) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Platform:          %s\n", color.CyanString(string(quote.Platform)))
	fmt.Printf("  Amount In:         %s stroops\n", quote.AmountIn)
	fmt.Printf("  Amount Out:        ~%s stroops\n", quote.AmountOut)
	if quote.TradeType == types.TradeTypeExactIn {
		fmt.Printf("  Minimum Out:       %s stroops (%d bps slippage)\n", quote.OtherAmountThreshold, quote.SlippageBps)
	} else {
		fmt.Printf("  Maximum In:        %s stroops (%d bps slippage)\n", quote.OtherAmountThreshold, quote.SlippageBps)
	}
	fmt.Printf("  Price Impact:      %s%%\n", quote.PriceImpactPct)

	if len(quote.RoutePlan) > 0 {
		fmt.Printf("  Route:             %d step(s), %d%% allocated\n", len(quote.RoutePlan), quote.RoutePlan.TotalPercent())
	}
	if quote.HasPlatformFee() {
		color.Yellow("  Platform fee attached: a --referral address is required to build.")
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func displaySendResult(result *types.SendResult) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                 TRANSACTION SUBMITTED")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Hash:    %s\n", color.CyanString(result.TransactionHash))
	fmt.Printf("  Status:  %s\n", coloredStatus(result.TransactionStatus))

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func coloredStatus(status string) string {
	switch strings.ToUpper(status) {
	case types.TxStatusSuccess:
		return color.GreenString(status)
	case types.TxStatusPending:
		return color.YellowString(status)
	case types.TxStatusFailed:
		return color.RedString(status)
	default:
		return status
	}
}

func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n%s (y/N): ", prompt)

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func withSpinner[T any](jsonOutput bool, suffix string, fn func() (T, error)) (T, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = suffix
		s.Start()
	}
	result, err := fn()
	if !jsonOutput {
		s.Stop()
	}
	return result, err
}

func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}

func resolvedNetwork(configured, override string) string {
	if override != "" {
		return override
	}
	return configured
}
