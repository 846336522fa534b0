package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"soroswap-cli/pkg/types"
)

var sendLaunchTube bool

var sendCmd = &cobra.Command{
	Use:   "send <signed-transaction-xdr>",
	Short: "Submit an already-signed transaction envelope",
	Long: `Submit a signed transaction envelope for execution and report the
submission status. The command does not poll for completion.

Resubmitting the same signed envelope after a transport failure is only
safe because the network rejects duplicate execution of the same sequence
number.

Examples:
  soroswap send AAAAAgAAA...
  soroswap send AAAAAgAAA... --launchtube`,
	Args: cobra.ExactArgs(1),
	Run:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolVar(&sendLaunchTube, "launchtube", false, "Submit through the LaunchTube relay")
}

func runSend(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	apiClient, _, err := newClient(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	result, err := withSpinner(jsonOutput, " Submitting transaction...", func() (*types.SendResult, error) {
		return apiClient.Send(context.Background(), args[0], sendLaunchTube, networkFlag(cmd))
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(result)
		return
	}
	displaySendResult(result)
}
