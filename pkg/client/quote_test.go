package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stellar/go/strkey"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

func testContract(fill byte) string {
	raw := bytes.Repeat([]byte{fill}, 32)
	return strkey.MustEncode(strkey.VersionByteContract, raw)
}

func testAccount(fill byte) string {
	raw := bytes.Repeat([]byte{fill}, 32)
	return strkey.MustEncode(strkey.VersionByteAccountID, raw)
}

func intPtr(v int) *int { return &v }

func newTestClient(t *testing.T, handler http.Handler) *SoroswapClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewSoroswapClient(api.Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewSoroswapClient() error = %v", err)
	}
	return c
}

func validIntent() *types.QuoteRequest {
	return &types.QuoteRequest{
		AssetIn:   testContract(1),
		AssetOut:  testContract(2),
		Amount:    1000000,
		TradeType: types.TradeTypeExactIn,
	}
}

func quoteHandler(t *testing.T, quote types.Quote, quoteHits *int) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/protocols", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.ProtocolsResponse{AvailableProtocols: []string{"soroswap", "phoenix", "aqua"}})
	})
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		if quoteHits != nil {
			*quoteHits++
		}
		json.NewEncoder(w).Encode(quote)
	})
	return mux
}

func TestGetQuoteAppliesSlippageExactIn(t *testing.T) {
	remote := types.Quote{
		AmountIn:  "1000000",
		AmountOut: "2000000",
		TradeType: types.TradeTypeExactIn,
		Platform:  types.PlatformRouter,
	}
	c := newTestClient(t, quoteHandler(t, remote, nil))

	req := validIntent()
	req.SlippageBps = intPtr(100)

	quote, err := c.GetQuote(context.Background(), req, "")
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}

	// 2000000 * (1 - 100/10000) = 1980000, floored
	if quote.OtherAmountThreshold != "1980000" {
		t.Errorf("OtherAmountThreshold = %s, want 1980000", quote.OtherAmountThreshold)
	}
	if quote.SlippageBps != 100 {
		t.Errorf("SlippageBps = %d, want 100", quote.SlippageBps)
	}
}

func TestGetQuoteAppliesSlippageExactOut(t *testing.T) {
	remote := types.Quote{
		AmountIn:  "1000001",
		AmountOut: "2000000",
		TradeType: types.TradeTypeExactOut,
		Platform:  types.PlatformRouter,
	}
	c := newTestClient(t, quoteHandler(t, remote, nil))

	req := validIntent()
	req.TradeType = types.TradeTypeExactOut
	req.SlippageBps = intPtr(100)

	quote, err := c.GetQuote(context.Background(), req, "")
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}

	// 1000001 * (1 + 100/10000) = 1010001.01, ceiled
	if quote.OtherAmountThreshold != "1010002" {
		t.Errorf("OtherAmountThreshold = %s, want 1010002", quote.OtherAmountThreshold)
	}
}

func TestGetQuoteDefaultsSlippage(t *testing.T) {
	var sentSlippage *int
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		var req types.QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding quote request: %v", err)
		}
		sentSlippage = req.SlippageBps
		json.NewEncoder(w).Encode(types.Quote{
			AmountIn:  "1000000",
			AmountOut: "1000000",
			TradeType: types.TradeTypeExactIn,
		})
	})
	c := newTestClient(t, mux)

	quote, err := c.GetQuote(context.Background(), validIntent(), "")
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}

	if sentSlippage == nil || *sentSlippage != DefaultSlippageBps {
		t.Errorf("slippageBps sent = %v, want %d", sentSlippage, DefaultSlippageBps)
	}
	// 1000000 * (1 - 50/10000) = 995000
	if quote.OtherAmountThreshold != "995000" {
		t.Errorf("OtherAmountThreshold = %s, want 995000", quote.OtherAmountThreshold)
	}
}

func TestGetQuoteRejectsUnsupportedProtocol(t *testing.T) {
	quoteHits := 0
	c := newTestClient(t, quoteHandler(t, types.Quote{}, &quoteHits))

	req := validIntent()
	req.Protocols = [][]string{{"nonexistent-protocol"}}

	_, err := c.GetQuote(context.Background(), req, "")
	if !api.IsKind(err, api.KindUnsupportedProtocol) {
		t.Fatalf("GetQuote() error = %v, want %s", err, api.KindUnsupportedProtocol)
	}
	if quoteHits != 0 {
		t.Errorf("quote endpoint hit %d times despite invalid protocol filter", quoteHits)
	}
}

func TestGetQuoteAcceptsKnownProtocolFilter(t *testing.T) {
	quoteHits := 0
	remote := types.Quote{AmountIn: "1", AmountOut: "1", TradeType: types.TradeTypeExactIn}
	c := newTestClient(t, quoteHandler(t, remote, &quoteHits))

	req := validIntent()
	req.Protocols = [][]string{{"soroswap", "phoenix"}}

	if _, err := c.GetQuote(context.Background(), req, ""); err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if quoteHits != 1 {
		t.Errorf("quote endpoint hit %d times, want 1", quoteHits)
	}
}

func TestGetQuoteNoRouteFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no route found for pair"})
	})
	c := newTestClient(t, mux)

	_, err := c.GetQuote(context.Background(), validIntent(), "")
	if !api.IsKind(err, api.KindNoRouteFound) {
		t.Errorf("GetQuote() error = %v, want %s", err, api.KindNoRouteFound)
	}
}

func TestGetQuoteUpstreamUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c := newTestClient(t, mux)

	_, err := c.GetQuote(context.Background(), validIntent(), "")
	if !api.IsKind(err, api.KindUpstreamUnavailable) {
		t.Errorf("GetQuote() error = %v, want %s", err, api.KindUpstreamUnavailable)
	}
	if !api.Retryable(err) {
		t.Errorf("upstream failure should be retryable")
	}
}

func TestGetQuoteDecodesNumericWireShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		// Numeric otherAmountThreshold and priceImpactPct, as some
		// services serve them.
		w.Write([]byte(`{
			"assetIn": "` + testContract(1) + `",
			"assetOut": "` + testContract(2) + `",
			"amountIn": "1000000",
			"amountOut": "2000000",
			"otherAmountThreshold": 1900000,
			"tradeType": "EXACT_IN",
			"priceImpactPct": 0.3,
			"platform": "router",
			"rawTrade": {},
			"routePlan": []
		}`))
	})
	c := newTestClient(t, mux)

	req := validIntent()
	req.SlippageBps = intPtr(100)

	quote, err := c.GetQuote(context.Background(), req, "")
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if quote.PriceImpactPct != "0.3" {
		t.Errorf("PriceImpactPct = %s, want 0.3", quote.PriceImpactPct)
	}
	// The threshold is recomputed locally regardless of what the remote sent.
	if quote.OtherAmountThreshold != "1980000" {
		t.Errorf("OtherAmountThreshold = %s, want 1980000", quote.OtherAmountThreshold)
	}
}

func TestGetQuoteCarriesGaslessTrustline(t *testing.T) {
	remote := types.Quote{AmountIn: "1", AmountOut: "1", TradeType: types.TradeTypeExactIn}
	c := newTestClient(t, quoteHandler(t, remote, nil))

	req := validIntent()
	req.GaslessTrustline = req.AssetOut

	quote, err := c.GetQuote(context.Background(), req, "")
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if quote.GaslessTrustline != req.AssetOut {
		t.Errorf("GaslessTrustline = %q, want %q", quote.GaslessTrustline, req.AssetOut)
	}
}

func TestWithHTTPClientTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := NewSoroswapClient(api.Config{APIKey: "test-key", BaseURL: server.URL},
		WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	if err != nil {
		t.Fatalf("NewSoroswapClient() error = %v", err)
	}

	_, err = c.GetQuote(context.Background(), validIntent(), "")
	if !api.IsKind(err, api.KindUpstreamUnavailable) {
		t.Fatalf("GetQuote() error = %v, want %s", err, api.KindUpstreamUnavailable)
	}
	if !api.Retryable(err) {
		t.Errorf("a timed-out call should read as retryable")
	}
}

func TestProtocols(t *testing.T) {
	c := newTestClient(t, quoteHandler(t, types.Quote{}, nil))

	protocols, err := c.Protocols(context.Background(), "")
	if err != nil {
		t.Fatalf("Protocols() error = %v", err)
	}
	if len(protocols) != 3 || protocols[0] != "soroswap" {
		t.Errorf("Protocols() = %v, want [soroswap phoenix aqua]", protocols)
	}
}
