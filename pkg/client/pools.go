package client

import (
	"context"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

// Pools lists the pools a protocol exposes on a network, optionally
// filtered by curated asset lists.
func (c *SoroswapClient) Pools(ctx context.Context, network, protocol string, assetLists []string) ([]types.Pool, error) {
	req, err := c.builder.Pools(network, protocol, assetLists)
	if err != nil {
		return nil, err
	}

	var pools []types.Pool
	if err := c.transport.Do(ctx, req, &pools); err != nil {
		return nil, classifyRemote(err, api.KindInvalidParameters)
	}
	return pools, nil
}

// PoolsForPair lists the pools holding a specific token pair.
func (c *SoroswapClient) PoolsForPair(ctx context.Context, tokenA, tokenB, network string, protocols []string) ([]types.Pool, error) {
	req, err := c.builder.PoolsForPair(tokenA, tokenB, network, protocols)
	if err != nil {
		return nil, err
	}

	var pools []types.Pool
	if err := c.transport.Do(ctx, req, &pools); err != nil {
		return nil, classifyRemote(err, api.KindInvalidParameters)
	}
	return pools, nil
}
