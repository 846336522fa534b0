package client

import (
	"net/http"

	"go.uber.org/zap"

	"soroswap-cli/pkg/api"
)

// SoroswapClient is the gateway to the Soroswap aggregation service. It
// shapes requests, classifies failures and decorates results; it never
// signs and never retries. Both belong to the caller.
//
// All state is request-scoped. Independent calls may run concurrently
// without coordination; quotes are immutable value objects.
type SoroswapClient struct {
	builder   *api.Builder
	transport *api.Transport
	log       *zap.Logger
}

// Option configures a SoroswapClient.
type Option func(*options)

type options struct {
	httpClient *http.Client
	log        *zap.Logger
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger attaches a logger for debug-level request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// NewSoroswapClient creates a client for the given configuration.
func NewSoroswapClient(cfg api.Config, opts ...Option) (*SoroswapClient, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	builder, err := api.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}

	return &SoroswapClient{
		builder:   builder,
		transport: api.NewTransport(builder, o.httpClient, o.log),
		log:       o.log,
	}, nil
}
