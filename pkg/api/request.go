package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"soroswap-cli/pkg/types"
)

const (
	// DefaultBaseURL is the public aggregation service endpoint.
	DefaultBaseURL = "https://api.soroswap.finance"
	// DefaultNetwork is used when the caller does not select one.
	DefaultNetwork = "mainnet"
)

// Config carries the process-wide settings the request builder needs. It is
// injected at construction so the pipeline stays testable without
// environment mutation.
type Config struct {
	APIKey         string
	BaseURL        string
	DefaultNetwork string
}

// Request is a fully-specified outbound request. The network call itself is
// performed by the transport, not the builder.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// URL joins the request onto the given base URL.
func (r *Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + r.Path
	if r.Query != "" {
		u += "?" + r.Query
	}
	return u
}

// Builder constructs well-formed requests for each remote operation. It is
// a pure transformation: identical input yields a byte-identical request.
type Builder struct {
	cfg Config
}

// NewBuilder validates the configuration and returns a Builder with
// defaults applied.
func NewBuilder(cfg Config) (*Builder, error) {
	if cfg.APIKey == "" {
		return nil, NewFieldError(KindInvalidParameters, "APIKey", "API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.DefaultNetwork == "" {
		cfg.DefaultNetwork = DefaultNetwork
	}
	return &Builder{cfg: cfg}, nil
}

// BaseURL returns the configured service endpoint.
func (b *Builder) BaseURL() string {
	return b.cfg.BaseURL
}

// Network resolves a per-call network override against the configured
// default.
func (b *Builder) Network(override string) string {
	if override != "" {
		return override
	}
	return b.cfg.DefaultNetwork
}

// Authorize sets the bearer credential on an outbound request.
func (b *Builder) Authorize(h http.Header) {
	h.Set("Authorization", "Bearer "+b.cfg.APIKey)
}

// param is one query parameter. List values are comma-joined in input
// order.
type param struct {
	key    string
	values []string
}

// encodeQuery percent-encodes parameters in input order so repeated calls
// with identical input serialize byte-identically.
func encodeQuery(params []param) string {
	var sb strings.Builder
	for _, p := range params {
		if len(p.values) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(strings.Join(p.values, ",")))
	}
	return sb.String()
}

func marshalBody(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Message: fmt.Sprintf("cannot encode request body: %v", err), Err: err}
	}
	return body, nil
}

// Protocols builds the protocol-discovery request for a network.
func (b *Builder) Protocols(network string) (*Request, error) {
	return &Request{
		Method: http.MethodGet,
		Path:   "/protocols",
		Query:  encodeQuery([]param{{"network", []string{b.Network(network)}}}),
	}, nil
}

// Quote builds the quote request. The trade intent and routing constraints
// are checked before any network call.
func (b *Builder) Quote(req *types.QuoteRequest, network string) (*Request, error) {
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := types.ValidAssetRef(req.AssetIn); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "assetIn", Message: err.Error(), Err: err}
	}
	if err := types.ValidAssetRef(req.AssetOut); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "assetOut", Message: err.Error(), Err: err}
	}
	if req.GaslessTrustline != "" {
		if err := types.ValidAssetRef(req.GaslessTrustline); err != nil {
			return nil, &Error{Kind: KindInvalidParameters, Field: "gaslessTrustline", Message: err.Error(), Err: err}
		}
	}

	body, err := marshalBody(req)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   "/quote",
		Query:  encodeQuery([]param{{"network", []string{b.Network(network)}}}),
		Body:   body,
	}, nil
}

// BuildSwap builds the quote/build request turning a quote into a signable
// envelope.
func (b *Builder) BuildSwap(req *types.BuildRequest, network string) (*Request, error) {
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := types.ValidAccount(req.From); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "from", Message: err.Error(), Err: err}
	}
	if req.To != "" {
		if err := types.ValidAccount(req.To); err != nil {
			return nil, &Error{Kind: KindInvalidParameters, Field: "to", Message: err.Error(), Err: err}
		}
	}

	body, err := marshalBody(req)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   "/quote/build",
		Query:  encodeQuery([]param{{"network", []string{b.Network(network)}}}),
		Body:   body,
	}, nil
}

// Send builds the submission request for a signed envelope.
func (b *Builder) Send(req *types.SendRequest, network string) (*Request, error) {
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}

	body, err := marshalBody(req)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   "/quote/send",
		Query:  encodeQuery([]param{{"network", []string{b.Network(network)}}}),
		Body:   body,
	}, nil
}

// Pools builds the pools listing request, optionally filtered by curated
// asset lists.
func (b *Builder) Pools(network, protocol string, assetLists []string) (*Request, error) {
	if protocol == "" {
		return nil, NewFieldError(KindInvalidParameters, "protocol", "protocol is required")
	}
	for _, name := range assetLists {
		if !types.KnownCurator(name) {
			return nil, NewFieldError(KindInvalidParameters, "assetList",
				"unknown asset list %q, expected one of %s", name, strings.Join(types.CuratorNames(), ", "))
		}
	}

	return &Request{
		Method: http.MethodGet,
		Path:   "/pools",
		Query: encodeQuery([]param{
			{"network", []string{b.Network(network)}},
			{"protocol", []string{protocol}},
			{"assetList", assetLists},
		}),
	}, nil
}

// PoolsForPair builds the pools-for-token-pair request. The tokens travel
// as path parameters, the protocol filter as a query list.
func (b *Builder) PoolsForPair(tokenA, tokenB, network string, protocols []string) (*Request, error) {
	if err := types.ValidAssetRef(tokenA); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "tokenA", Message: err.Error(), Err: err}
	}
	if err := types.ValidAssetRef(tokenB); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "tokenB", Message: err.Error(), Err: err}
	}

	return &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/pools/%s/%s", url.PathEscape(tokenA), url.PathEscape(tokenB)),
		Query: encodeQuery([]param{
			{"network", []string{b.Network(network)}},
			{"protocol", protocols},
		}),
	}, nil
}

// AssetList builds the asset-list request for a named curator.
func (b *Builder) AssetList(name string) (*Request, error) {
	if !types.KnownCurator(name) {
		return nil, NewFieldError(KindInvalidParameters, "name",
			"unknown asset list %q, expected one of %s", name, strings.Join(types.CuratorNames(), ", "))
	}

	return &Request{
		Method: http.MethodGet,
		Path:   "/asset-list",
		Query:  encodeQuery([]param{{"name", []string{name}}}),
	}, nil
}

// Price builds the price lookup request for one or more assets.
func (b *Builder) Price(network string, assets []string, referenceCurrency string) (*Request, error) {
	if len(assets) == 0 {
		return nil, NewFieldError(KindInvalidParameters, "asset", "at least one asset is required")
	}
	for _, a := range assets {
		if err := types.ValidAssetRef(a); err != nil {
			return nil, &Error{Kind: KindInvalidParameters, Field: "asset", Message: err.Error(), Err: err}
		}
	}

	params := []param{
		{"network", []string{b.Network(network)}},
		{"asset", assets},
	}
	if referenceCurrency != "" {
		params = append(params, param{"referenceCurrency", []string{referenceCurrency}})
	}
	return &Request{
		Method: http.MethodGet,
		Path:   "/price",
		Query:  encodeQuery(params),
	}, nil
}

// AddLiquidity builds the liquidity deposit request.
func (b *Builder) AddLiquidity(req *types.AddLiquidityRequest, network string) (*Request, error) {
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := types.ValidAssetRef(req.AssetA); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "assetA", Message: err.Error(), Err: err}
	}
	if err := types.ValidAssetRef(req.AssetB); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "assetB", Message: err.Error(), Err: err}
	}
	if err := types.ValidAccount(req.To); err != nil {
		return nil, &Error{Kind: KindInvalidParameters, Field: "to", Message: err.Error(), Err: err}
	}

	body, err := marshalBody(req)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   "/liquidity/add",
		Query:  encodeQuery([]param{{"network", []string{b.Network(network)}}}),
		Body:   body,
	}, nil
}
