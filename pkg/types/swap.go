package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// TradeType fixes which side of the trade is exact.
type TradeType string

const (
	TradeTypeExactIn  TradeType = "EXACT_IN"
	TradeTypeExactOut TradeType = "EXACT_OUT"
)

// Platform indicates where a trade is routed: "router" (Soroswap only),
// "aggregator" (multiple Soroban DEXes) or "sdex" (the classic Stellar DEX).
type Platform string

const (
	PlatformRouter     Platform = "router"
	PlatformAggregator Platform = "aggregator"
	PlatformSDEX       Platform = "sdex"
)

// QuoteRequest is a trade intent plus optional routing constraints.
// Amounts are stroops, never floating point. When TradeType is EXACT_OUT,
// Amount denotes the desired output rather than the input.
type QuoteRequest struct {
	AssetIn   string    `json:"assetIn" validate:"required"`
	AssetOut  string    `json:"assetOut" validate:"required,nefield=AssetIn"`
	Amount    int64     `json:"amount" validate:"required,gt=0"`
	TradeType TradeType `json:"tradeType" validate:"required,oneof=EXACT_IN EXACT_OUT"`

	// Optional routing constraints.
	Protocols        [][]string `json:"protocols,omitempty"`
	Parts            int        `json:"parts,omitempty" validate:"omitempty,gte=1"`
	SlippageBps      *int       `json:"slippageBps,omitempty" validate:"omitempty,gte=0,lte=10000"`
	MaxHops          int        `json:"maxHops,omitempty" validate:"omitempty,gte=1"`
	AssetLists       []string   `json:"assetLists,omitempty"`
	FeeBps           *int       `json:"feeBps,omitempty" validate:"omitempty,gte=0,lte=10000"`
	GaslessTrustline string     `json:"gaslessTrustline,omitempty"`
}

// ProtocolFilter flattens the protocol groups into a single list, keeping
// input order.
func (r *QuoteRequest) ProtocolFilter() []string {
	var out []string
	for _, group := range r.Protocols {
		out = append(out, group...)
	}
	return out
}

// RouteStep is one leg of a route plan. The swap info varies per protocol
// and is passed through unparsed.
type RouteStep struct {
	SwapInfo json.RawMessage `json:"swapInfo,omitempty"`
	Percent  json.Number     `json:"percent"`
}

// RoutePlan is the ordered breakdown of how a trade is split across
// liquidity sources. Percentages are integers summing to 100.
type RoutePlan []RouteStep

// TotalPercent sums the step percentages. Non-integer steps count as zero.
func (rp RoutePlan) TotalPercent() int {
	total := 0
	for _, step := range rp {
		if n, err := strconv.Atoi(step.Percent.String()); err == nil {
			total += n
		}
	}
	return total
}

// Quote is the immutable result of a resolution. It is never mutated after
// creation; re-quoting produces a new Quote. The rawTrade and platformFee
// payloads vary by platform and are carried unparsed. Services serve
// otherAmountThreshold and priceImpactPct as either JSON numbers or decimal
// strings; json.Number decodes both.
type Quote struct {
	AssetIn              string          `json:"assetIn"`
	AssetOut             string          `json:"assetOut"`
	AmountIn             string          `json:"amountIn"`
	AmountOut            string          `json:"amountOut"`
	OtherAmountThreshold json.Number     `json:"otherAmountThreshold,omitempty"`
	TradeType            TradeType       `json:"tradeType"`
	PriceImpactPct       json.Number     `json:"priceImpactPct,omitempty"`
	Platform             Platform        `json:"platform"`
	RawTrade             json.RawMessage `json:"rawTrade"`
	RoutePlan            RoutePlan       `json:"routePlan"`
	PlatformFee          json.RawMessage `json:"platformFee,omitempty"`

	// Decorated by the resolver from the originating request; not part of
	// the wire shape.
	SlippageBps      int    `json:"-"`
	GaslessTrustline string `json:"-"`
}

// HasPlatformFee reports whether the remote attached platform fee details.
func (q *Quote) HasPlatformFee() bool {
	fee := bytes.TrimSpace(q.PlatformFee)
	return len(fee) > 0 && !bytes.Equal(fee, []byte("null"))
}

// BuildRequest asks the remote to turn a quote into a signable envelope.
type BuildRequest struct {
	Quote *Quote `json:"quote" validate:"required"`
	// From is the wallet address sending the funds.
	From string `json:"from" validate:"required"`
	// To is the receiving wallet address. Defaults to From. Must equal From
	// for gasless-trustline swaps.
	To string `json:"to,omitempty"`
	// ReferralID is required whenever the quote carries a platform fee.
	ReferralID string `json:"referralId,omitempty"`
	// Sponsor covers fees in gasless-trustline and sponsored flows.
	Sponsor string `json:"sponsor,omitempty"`
	// SignedUserXDR carries the signed step-1 envelope in step 2 of a
	// sponsored flow.
	SignedUserXDR string `json:"signedUserXDR,omitempty"`
}

// BuildResponse carries the envelope ready for signing and submission.
type BuildResponse struct {
	TransactionXDR string `json:"transactionXdr"`
}

// SendRequest submits a signed envelope. LaunchTube routes submission
// through the fee-abstracting relay instead of the network directly.
type SendRequest struct {
	SignedTransactionXDR string `json:"signedTransactionXDR" validate:"required"`
	LaunchTube           bool   `json:"launchTube"`
}

// SendResult is the terminal record of a submission attempt. The status is
// whatever the submission call itself reported; completion polling is the
// caller's business.
type SendResult struct {
	TransactionHash   string `json:"transactionHash"`
	TransactionStatus string `json:"transactionStatus"`
}

// Recognized transaction statuses reported on submission.
const (
	TxStatusPending = "PENDING"
	TxStatusSuccess = "SUCCESS"
	TxStatusFailed  = "FAILED"
)

// ProtocolsResponse lists the protocols available on a network.
type ProtocolsResponse struct {
	AvailableProtocols []string `json:"availableProtocols"`
}
