package client

import (
	"math/big"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

var bpsDenominator = big.NewInt(10000)

// slippageThreshold computes the worst-case bound for a quote. EXACT_IN
// floors the minimum output (amountOut scaled down by the tolerance);
// EXACT_OUT ceils the maximum input (amountIn scaled up). All arithmetic is
// integer stroops; floats would drift.
func slippageThreshold(quote *types.Quote, slippageBps int) (string, error) {
	if slippageBps < 0 || slippageBps > 10000 {
		return "", api.NewFieldError(api.KindInvalidParameters, "slippageBps",
			"slippage must be within [0, 10000], got %d", slippageBps)
	}

	switch quote.TradeType {
	case types.TradeTypeExactIn:
		return scaleBpsFloor(quote.AmountOut, 10000-slippageBps)
	case types.TradeTypeExactOut:
		return scaleBpsCeil(quote.AmountIn, 10000+slippageBps)
	default:
		return "", api.NewFieldError(api.KindInvalidParameters, "tradeType",
			"unknown trade type %q", quote.TradeType)
	}
}

// scaleBpsFloor returns floor(amount * numeratorBps / 10000).
func scaleBpsFloor(amount string, numeratorBps int) (string, error) {
	v, err := parseStroops(amount)
	if err != nil {
		return "", err
	}
	v.Mul(v, big.NewInt(int64(numeratorBps)))
	v.Quo(v, bpsDenominator)
	return v.String(), nil
}

// scaleBpsCeil returns ceil(amount * numeratorBps / 10000).
func scaleBpsCeil(amount string, numeratorBps int) (string, error) {
	v, err := parseStroops(amount)
	if err != nil {
		return "", err
	}
	v.Mul(v, big.NewInt(int64(numeratorBps)))
	var rem big.Int
	v.QuoRem(v, bpsDenominator, &rem)
	if rem.Sign() > 0 {
		v.Add(v, big.NewInt(1))
	}
	return v.String(), nil
}

func parseStroops(amount string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok || v.Sign() < 0 {
		return nil, api.NewError(api.KindInvalidParameters, "invalid stroop amount %q", amount)
	}
	return v, nil
}
