package client

import (
	"context"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

// Prices looks up the price of one or more assets in a reference currency
// (USD when empty).
func (c *SoroswapClient) Prices(ctx context.Context, network string, assets []string, referenceCurrency string) ([]types.PriceData, error) {
	req, err := c.builder.Price(network, assets, referenceCurrency)
	if err != nil {
		return nil, err
	}

	var prices []types.PriceData
	if err := c.transport.Do(ctx, req, &prices); err != nil {
		return nil, classifyRemote(err, api.KindInvalidParameters)
	}
	return prices, nil
}

// AssetList fetches the asset records published by a named curator.
func (c *SoroswapClient) AssetList(ctx context.Context, name string) ([]types.AssetRecord, error) {
	req, err := c.builder.AssetList(name)
	if err != nil {
		return nil, err
	}

	var records []types.AssetRecord
	if err := c.transport.Do(ctx, req, &records); err != nil {
		return nil, classifyRemote(err, api.KindInvalidParameters)
	}
	return records, nil
}
