package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

// Send submits a signed envelope for execution and reports the status the
// submission call itself returned; it does not poll to completion. With
// launchTube set the envelope goes through the fee-abstracting relay
// instead of directly to the network.
//
// A SubmissionRejected failure is fatal for this envelope; credential
// rejections (401/403) come back as the unclassified remote error. On
// UpstreamUnavailable the same signed envelope may be resubmitted, but that
// is only safe because the network rejects duplicate execution of the same
// sequence number; the service gives no idempotency guarantee of its own.
func (c *SoroswapClient) Send(ctx context.Context, signedXDR string, launchTube bool, network string) (*types.SendResult, error) {
	req := &types.SendRequest{SignedTransactionXDR: signedXDR, LaunchTube: launchTube}
	outbound, err := c.builder.Send(req, network)
	if err != nil {
		return nil, err
	}

	var result types.SendResult
	if err := c.transport.Do(ctx, outbound, &result); err != nil {
		return nil, classifySendError(err)
	}
	result.TransactionStatus = strings.ToUpper(result.TransactionStatus)

	c.log.Debug("transaction submitted",
		zap.String("hash", result.TransactionHash),
		zap.String("status", result.TransactionStatus),
		zap.Bool("launchTube", launchTube))
	return &result, nil
}

func classifySendError(err error) error {
	var remote *api.RemoteError
	if !errors.As(err, &remote) {
		return err
	}
	// A credential rejection says nothing about the envelope; passing it
	// through unclassified keeps the caller from discarding a valid one.
	if remote.Status == http.StatusUnauthorized || remote.Status == http.StatusForbidden {
		return remote
	}
	return &api.Error{Kind: api.KindSubmissionRejected, Status: remote.Status, Message: remote.Message, Err: remote}
}
