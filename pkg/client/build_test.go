package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

func routerQuote() *types.Quote {
	return &types.Quote{
		AssetIn:   testContract(1),
		AssetOut:  testContract(2),
		AmountIn:  "1000000",
		AmountOut: "2000000",
		TradeType: types.TradeTypeExactIn,
		Platform:  types.PlatformRouter,
		RawTrade:  json.RawMessage(`{"path":[]}`),
	}
}

func buildHandler(t *testing.T, buildHits *int, captured **types.BuildRequest) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/build", func(w http.ResponseWriter, r *http.Request) {
		if buildHits != nil {
			*buildHits++
		}
		if captured != nil {
			var req types.BuildRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decoding build request: %v", err)
			}
			*captured = &req
		}
		json.NewEncoder(w).Encode(types.BuildResponse{TransactionXDR: "AAAAAGJ1aWx0"})
	})
	return mux
}

func TestBuildDirect(t *testing.T) {
	var captured *types.BuildRequest
	c := newTestClient(t, buildHandler(t, nil, &captured))

	from := testAccount(9)
	resp, err := c.Build(context.Background(), &types.BuildRequest{Quote: routerQuote(), From: from}, "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if resp.TransactionXDR == "" {
		t.Fatal("Build() returned an empty envelope")
	}
	if captured.To != from {
		t.Errorf("recipient sent = %q, want it defaulted to sender %q", captured.To, from)
	}
}

func TestBuildMissingReferral(t *testing.T) {
	buildHits := 0
	c := newTestClient(t, buildHandler(t, &buildHits, nil))

	quote := routerQuote()
	quote.PlatformFee = json.RawMessage(`{"feeBps":30,"feeAmount":"600"}`)

	_, err := c.Build(context.Background(), &types.BuildRequest{Quote: quote, From: testAccount(9)}, "")
	if !api.IsKind(err, api.KindMissingReferral) {
		t.Fatalf("Build() error = %v, want %s", err, api.KindMissingReferral)
	}
	if buildHits != 0 {
		t.Errorf("build endpoint hit %d times, want 0", buildHits)
	}
	if api.Retryable(err) {
		t.Errorf("MissingReferral must not read as retryable")
	}
}

func TestBuildWithReferralPassesFeeCheck(t *testing.T) {
	c := newTestClient(t, buildHandler(t, nil, nil))

	quote := routerQuote()
	quote.PlatformFee = json.RawMessage(`{"feeBps":30}`)

	_, err := c.Build(context.Background(), &types.BuildRequest{
		Quote:      quote,
		From:       testAccount(9),
		ReferralID: testAccount(10),
	}, "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
}

func TestBuildGaslessTrustlineRecipient(t *testing.T) {
	buildHits := 0
	c := newTestClient(t, buildHandler(t, &buildHits, nil))

	quote := routerQuote()
	quote.GaslessTrustline = quote.AssetOut

	_, err := c.Build(context.Background(), &types.BuildRequest{
		Quote: quote,
		From:  testAccount(9),
		To:    testAccount(10),
	}, "")
	if !api.IsKind(err, api.KindInvalidRecipient) {
		t.Fatalf("Build() error = %v, want %s", err, api.KindInvalidRecipient)
	}
	if buildHits != 0 {
		t.Errorf("build endpoint hit %d times, want 0", buildHits)
	}

	// Same recipient as sender is fine.
	_, err = c.Build(context.Background(), &types.BuildRequest{
		Quote: quote,
		From:  testAccount(9),
		To:    testAccount(9),
	}, "")
	if err != nil {
		t.Fatalf("Build() with matching recipient error = %v", err)
	}
}

func TestBuildStaleQuote(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/build", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "quote expired, request a new one"})
	})
	c := newTestClient(t, mux)

	_, err := c.Build(context.Background(), &types.BuildRequest{Quote: routerQuote(), From: testAccount(9)}, "")
	if !api.IsKind(err, api.KindStaleQuote) {
		t.Fatalf("Build() error = %v, want %s", err, api.KindStaleQuote)
	}
	if !api.Retryable(err) {
		t.Errorf("StaleQuote should read as retryable (by re-resolving)")
	}
}

func TestBuildRejectsSponsorOutsideFlow(t *testing.T) {
	c := newTestClient(t, buildHandler(t, nil, nil))

	_, err := c.Build(context.Background(), &types.BuildRequest{
		Quote:   routerQuote(),
		From:    testAccount(9),
		Sponsor: testAccount(11),
	}, "")
	if !api.IsKind(err, api.KindInvalidParameters) {
		t.Errorf("Build() error = %v, want %s", err, api.KindInvalidParameters)
	}
}

func TestSponsorFlowRejectsSDEX(t *testing.T) {
	c := newTestClient(t, buildHandler(t, nil, nil))

	quote := routerQuote()
	quote.Platform = types.PlatformSDEX

	_, err := c.NewSponsorFlow(quote, testAccount(9), testAccount(11), "")
	if !api.IsKind(err, api.KindInvalidParameters) {
		t.Errorf("NewSponsorFlow() error = %v, want %s", err, api.KindInvalidParameters)
	}
}

func TestSponsorFlowTwoSteps(t *testing.T) {
	buildHits := 0
	var captured *types.BuildRequest
	c := newTestClient(t, buildHandler(t, &buildHits, &captured))

	flow, err := c.NewSponsorFlow(routerQuote(), testAccount(9), testAccount(11), "")
	if err != nil {
		t.Fatalf("NewSponsorFlow() error = %v", err)
	}

	userXDR, err := flow.Step1(context.Background())
	if err != nil {
		t.Fatalf("Step1() error = %v", err)
	}
	if userXDR == "" {
		t.Fatal("Step1() returned an empty envelope")
	}

	final, err := flow.Step2(context.Background(), "AAAAc2lnbmVk")
	if err != nil {
		t.Fatalf("Step2() error = %v", err)
	}
	if final.TransactionXDR == "" {
		t.Fatal("Step2() returned an empty envelope")
	}
	if captured.SignedUserXDR != "AAAAc2lnbmVk" {
		t.Errorf("SignedUserXDR sent = %q, want the signed step-1 envelope", captured.SignedUserXDR)
	}
	if buildHits != 2 {
		t.Errorf("build endpoint hit %d times, want 2", buildHits)
	}
}

func TestSponsorFlowStep2WithoutSignedXDR(t *testing.T) {
	buildHits := 0
	c := newTestClient(t, buildHandler(t, &buildHits, nil))

	flow, err := c.NewSponsorFlow(routerQuote(), testAccount(9), testAccount(11), "")
	if err != nil {
		t.Fatalf("NewSponsorFlow() error = %v", err)
	}
	if _, err := flow.Step1(context.Background()); err != nil {
		t.Fatalf("Step1() error = %v", err)
	}

	_, err = flow.Step2(context.Background(), "")
	if !api.IsKind(err, api.KindIncompleteSponsorFlow) {
		t.Fatalf("Step2() error = %v, want %s", err, api.KindIncompleteSponsorFlow)
	}
	if buildHits != 1 {
		t.Errorf("build endpoint hit %d times after incomplete step 2, want 1", buildHits)
	}
}

func TestSponsorFlowOutOfOrder(t *testing.T) {
	buildHits := 0
	c := newTestClient(t, buildHandler(t, &buildHits, nil))

	flow, err := c.NewSponsorFlow(routerQuote(), testAccount(9), testAccount(11), "")
	if err != nil {
		t.Fatalf("NewSponsorFlow() error = %v", err)
	}

	if _, err := flow.Step2(context.Background(), "AAAAc2lnbmVk"); !api.IsKind(err, api.KindIncompleteSponsorFlow) {
		t.Errorf("Step2() before Step1 error = %v, want %s", err, api.KindIncompleteSponsorFlow)
	}
	if buildHits != 0 {
		t.Errorf("build endpoint hit %d times, want 0", buildHits)
	}

	if _, err := flow.Step1(context.Background()); err != nil {
		t.Fatalf("Step1() error = %v", err)
	}
	if _, err := flow.Step2(context.Background(), "AAAAc2lnbmVk"); err != nil {
		t.Fatalf("Step2() error = %v", err)
	}
	if _, err := flow.Step2(context.Background(), "AAAAc2lnbmVk"); !api.IsKind(err, api.KindIncompleteSponsorFlow) {
		t.Errorf("double finalize error = %v, want %s", err, api.KindIncompleteSponsorFlow)
	}
}
