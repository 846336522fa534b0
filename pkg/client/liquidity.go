package client

import (
	"context"
	"errors"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

// AddLiquidity builds a transaction depositing both assets of a pair into
// its pool. Like Build, the result is a signable envelope; signing and
// submission stay with the caller.
func (c *SoroswapClient) AddLiquidity(ctx context.Context, req *types.AddLiquidityRequest, network string) (*types.AddLiquidityResponse, error) {
	outbound, err := c.builder.AddLiquidity(req, network)
	if err != nil {
		return nil, err
	}

	var resp types.AddLiquidityResponse
	if err := c.transport.Do(ctx, outbound, &resp); err != nil {
		var remote *api.RemoteError
		if errors.As(err, &remote) {
			return nil, &api.Error{Kind: api.KindInvalidParameters, Status: remote.Status, Message: remote.Message, Err: remote}
		}
		return nil, err
	}
	return &resp, nil
}
