package client

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

// Build turns a resolved quote into a signable envelope via the direct or
// gasless-trustline pathway. Sponsored builds are a two-step flow; use
// NewSponsorFlow for those.
//
// Build never signs and never submits. A StaleQuote failure means the
// quote's price window has passed: re-resolve and build again. The other
// failures are caller input errors and re-quoting will not fix them.
func (c *SoroswapClient) Build(ctx context.Context, req *types.BuildRequest, network string) (*types.BuildResponse, error) {
	if req == nil || req.Quote == nil {
		return nil, api.NewFieldError(api.KindInvalidParameters, "quote", "quote is required")
	}
	if req.Sponsor != "" && req.Quote.Platform != types.PlatformSDEX {
		return nil, api.NewFieldError(api.KindInvalidParameters, "sponsor",
			"sponsored builds on platform %q take two steps, use the sponsor flow", req.Quote.Platform)
	}
	if err := checkBuildInvariants(req); err != nil {
		return nil, err
	}

	payload := *req
	if payload.To == "" {
		payload.To = payload.From
	}
	return c.buildSwap(ctx, &payload, network)
}

// checkBuildInvariants enforces the cross-field rules shared by every
// pathway, before any network call.
func checkBuildInvariants(req *types.BuildRequest) error {
	if req.Quote.HasPlatformFee() && req.ReferralID == "" {
		return api.NewFieldError(api.KindMissingReferral, "referralId",
			"quote carries a platform fee, a referral id is required for fee attribution")
	}
	if req.Quote.GaslessTrustline != "" && req.To != "" && req.To != req.From {
		return api.NewFieldError(api.KindInvalidRecipient, "to",
			"gasless-trustline swaps must pay out to the sender, got recipient %s", req.To)
	}
	return nil
}

func (c *SoroswapClient) buildSwap(ctx context.Context, req *types.BuildRequest, network string) (*types.BuildResponse, error) {
	outbound, err := c.builder.BuildSwap(req, network)
	if err != nil {
		return nil, err
	}

	var resp types.BuildResponse
	if err := c.transport.Do(ctx, outbound, &resp); err != nil {
		return nil, classifyBuildError(err)
	}
	if resp.TransactionXDR == "" {
		return nil, api.NewError(api.KindUpstreamUnavailable, "remote returned an empty transaction envelope")
	}

	c.log.Debug("transaction built", zap.String("platform", string(req.Quote.Platform)))
	return &resp, nil
}

func classifyBuildError(err error) error {
	var remote *api.RemoteError
	if !errors.As(err, &remote) {
		return err
	}

	message := strings.ToLower(remote.Message)
	stale := strings.Contains(message, "expired") ||
		strings.Contains(message, "stale") ||
		strings.Contains(message, "too old") ||
		strings.Contains(message, "quote no longer valid")
	if stale {
		return &api.Error{Kind: api.KindStaleQuote, Status: remote.Status, Message: remote.Message, Err: remote}
	}
	return &api.Error{Kind: api.KindInvalidParameters, Status: remote.Status, Message: remote.Message, Err: remote}
}

// Sponsor flow states.
type sponsorState int

const (
	awaitingSponsorSignature sponsorState = iota
	awaitingFinalBuild
	built
)

// SponsorFlow drives the two-step sponsored build: step 1 yields a partial
// envelope for the user's signature, step 2 exchanges the signed envelope
// for the final one. The flow refuses out-of-order use, so a caller cannot
// construct an ill-formed mixed request.
type SponsorFlow struct {
	client  *SoroswapClient
	req     types.BuildRequest
	network string
	state   sponsorState
}

// NewSponsorFlow starts a sponsored build for a quote. The sdex platform
// settles through the classic exchange and has no sponsored pathway.
func (c *SoroswapClient) NewSponsorFlow(quote *types.Quote, from, sponsor, network string) (*SponsorFlow, error) {
	if quote == nil {
		return nil, api.NewFieldError(api.KindInvalidParameters, "quote", "quote is required")
	}
	if quote.Platform == types.PlatformSDEX {
		return nil, api.NewFieldError(api.KindInvalidParameters, "sponsor",
			"sponsored builds are not available on the sdex platform")
	}
	if sponsor == "" {
		return nil, api.NewFieldError(api.KindInvalidParameters, "sponsor", "sponsor address is required")
	}
	if err := types.ValidAccount(sponsor); err != nil {
		return nil, &api.Error{Kind: api.KindInvalidParameters, Field: "sponsor", Message: err.Error(), Err: err}
	}

	return &SponsorFlow{
		client:  c,
		req:     types.BuildRequest{Quote: quote, From: from, To: from, Sponsor: sponsor},
		network: network,
		state:   awaitingSponsorSignature,
	}, nil
}

// WithReferral attaches the referral identity required when the quote
// carries a platform fee.
func (f *SponsorFlow) WithReferral(referralID string) *SponsorFlow {
	f.req.ReferralID = referralID
	return f
}

// Step1 requests the partial envelope the user must sign before the
// sponsor's co-signature can be added.
func (f *SponsorFlow) Step1(ctx context.Context) (string, error) {
	if f.state != awaitingSponsorSignature {
		return "", api.NewError(api.KindIncompleteSponsorFlow, "step 1 already completed")
	}
	if err := checkBuildInvariants(&f.req); err != nil {
		return "", err
	}

	resp, err := f.client.buildSwap(ctx, &f.req, f.network)
	if err != nil {
		return "", err
	}
	f.state = awaitingFinalBuild
	return resp.TransactionXDR, nil
}

// Step2 resupplies the signed step-1 envelope and returns the final
// envelope. Calling it without the signed envelope, or before Step1, fails
// without touching the network.
func (f *SponsorFlow) Step2(ctx context.Context, signedUserXDR string) (*types.BuildResponse, error) {
	if f.state == built {
		return nil, api.NewError(api.KindIncompleteSponsorFlow, "sponsored build already finalized")
	}
	if f.state != awaitingFinalBuild {
		return nil, api.NewError(api.KindIncompleteSponsorFlow, "step 1 has not been completed")
	}
	if signedUserXDR == "" {
		return nil, api.NewFieldError(api.KindIncompleteSponsorFlow, "signedUserXDR",
			"the signed step-1 envelope is required to finalize a sponsored build")
	}

	req := f.req
	req.SignedUserXDR = signedUserXDR
	resp, err := f.client.buildSwap(ctx, &req, f.network)
	if err != nil {
		return nil, err
	}
	f.state = built
	return resp, nil
}
