package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"soroswap-cli/pkg/types"
)

// swapPattern matches: <stroops> <asset-address> to <asset-address>
var swapPattern = regexp.MustCompile(`^(\d+)\s+([A-Z0-9]+)\s+TO\s+([A-Z0-9]+)$`)

// ParseSwapCommand parses a swap command of the form
// "<amount> <asset-in> to <asset-out>", with the amount in stroops and the
// assets as contract addresses.
// Examples:
//   - "10000000 CCW67... to CAS3J..."
//   - "swap 10000000 CCW67... to CAS3J..."
func ParseSwapCommand(command string) (*types.QuoteRequest, error) {
	command = strings.TrimSpace(strings.ToUpper(command))
	command = strings.TrimPrefix(command, "SWAP ")

	matches := swapPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: '<amount> <asset-in> to <asset-out>' with the amount in stroops")
	}

	amount, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", matches[1], err)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be a positive stroop count")
	}

	if err := types.ValidAssetRef(matches[2]); err != nil {
		return nil, fmt.Errorf("asset-in: %w", err)
	}
	if err := types.ValidAssetRef(matches[3]); err != nil {
		return nil, fmt.Errorf("asset-out: %w", err)
	}

	return &types.QuoteRequest{
		AssetIn:   matches[2],
		AssetOut:  matches[3],
		Amount:    amount,
		TradeType: types.TradeTypeExactIn,
	}, nil
}
