package client

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

// DefaultSlippageBps is applied when the caller does not specify a
// tolerance.
const DefaultSlippageBps = 50

// Protocols queries the set of protocols available on a network.
func (c *SoroswapClient) Protocols(ctx context.Context, network string) ([]string, error) {
	req, err := c.builder.Protocols(network)
	if err != nil {
		return nil, err
	}

	var resp types.ProtocolsResponse
	if err := c.transport.Do(ctx, req, &resp); err != nil {
		return nil, classifyRemote(err, api.KindInvalidParameters)
	}
	return resp.AvailableProtocols, nil
}

// GetQuote resolves a trade intent into a quote. A caller-supplied protocol
// filter is validated against the discovered protocol set before the quote
// call is issued. The returned quote carries a locally computed
// otherAmountThreshold: slippage always moves the threshold against the
// trader.
//
// A quote is only valid for the window implied by on-chain prices; a stale
// quote at build time means re-resolve, not retry.
func (c *SoroswapClient) GetQuote(ctx context.Context, req *types.QuoteRequest, network string) (*types.Quote, error) {
	if req == nil {
		return nil, api.NewError(api.KindInvalidParameters, "quote request is required")
	}

	if filter := req.ProtocolFilter(); len(filter) > 0 {
		available, err := c.Protocols(ctx, network)
		if err != nil {
			return nil, err
		}
		for _, id := range filter {
			if !containsFold(available, id) {
				return nil, api.NewFieldError(api.KindUnsupportedProtocol, "protocols",
					"protocol %q is not available on %s (available: %s)",
					id, c.builder.Network(network), strings.Join(available, ", "))
			}
		}
	}

	slippage := DefaultSlippageBps
	if req.SlippageBps != nil {
		slippage = *req.SlippageBps
	} else {
		req = withDefaultSlippage(req, slippage)
	}

	outbound, err := c.builder.Quote(req, network)
	if err != nil {
		return nil, err
	}

	var quote types.Quote
	if err := c.transport.Do(ctx, outbound, &quote); err != nil {
		return nil, classifyQuoteError(err)
	}

	if err := decorateQuote(&quote, req, slippage); err != nil {
		return nil, err
	}

	c.log.Debug("quote resolved",
		zap.String("platform", string(quote.Platform)),
		zap.String("amountIn", quote.AmountIn),
		zap.String("amountOut", quote.AmountOut),
		zap.String("threshold", quote.OtherAmountThreshold.String()))
	return &quote, nil
}

// decorateQuote attaches the slippage threshold and the request-side
// constraints the transaction builder needs later.
func decorateQuote(quote *types.Quote, req *types.QuoteRequest, slippageBps int) error {
	threshold, err := slippageThreshold(quote, slippageBps)
	if err != nil {
		return err
	}
	quote.OtherAmountThreshold = json.Number(threshold)
	quote.SlippageBps = slippageBps
	quote.GaslessTrustline = req.GaslessTrustline
	return nil
}

func withDefaultSlippage(req *types.QuoteRequest, bps int) *types.QuoteRequest {
	clone := *req
	clone.SlippageBps = &bps
	return &clone
}

func classifyQuoteError(err error) error {
	var remote *api.RemoteError
	if !errors.As(err, &remote) {
		return err
	}

	message := strings.ToLower(remote.Message)
	if remote.Status == 404 || strings.Contains(message, "no route") || strings.Contains(message, "no path") ||
		strings.Contains(message, "insufficient liquidity") {
		return &api.Error{Kind: api.KindNoRouteFound, Status: remote.Status, Message: remote.Message, Err: remote}
	}
	return &api.Error{Kind: api.KindInvalidParameters, Status: remote.Status, Message: remote.Message, Err: remote}
}

// classifyRemote maps an unclassified remote rejection onto the fallback
// kind while keeping upstream failures as they are.
func classifyRemote(err error, fallback api.Kind) error {
	var remote *api.RemoteError
	if errors.As(err, &remote) {
		return &api.Error{Kind: fallback, Status: remote.Status, Message: remote.Message, Err: remote}
	}
	return err
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
