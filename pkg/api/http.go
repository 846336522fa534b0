package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Transport performs the network call for a built Request. One outbound
// call per operation; retry policy belongs to the caller, since re-quoting
// changes the result and resubmission is only safe if the network rejects
// duplicate execution.
type Transport struct {
	builder *Builder
	http    *http.Client
	log     *zap.Logger
}

// NewTransport wires a transport for the given builder. A nil httpClient
// gets a default with a 30s timeout, a nil logger is silenced.
func NewTransport(builder *Builder, httpClient *http.Client, log *zap.Logger) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Transport{builder: builder, http: httpClient, log: log}
}

// Do executes req and decodes the JSON response into out. Transport
// failures and 5xx/429 responses come back as UpstreamUnavailable; other
// remote rejections come back as *RemoteError for the caller to classify
// against its own contract.
func (t *Transport) Do(ctx context.Context, req *Request, out any) error {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL(t.builder.BaseURL()), body)
	if err != nil {
		return &Error{Kind: KindInvalidParameters, Message: fmt.Sprintf("cannot create request: %v", err), Err: err}
	}
	t.builder.Authorize(httpReq.Header)
	httpReq.Header.Set("Content-Type", "application/json")

	t.log.Debug("calling aggregation service",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("query", req.Query))

	resp, err := t.http.Do(httpReq)
	if err != nil {
		return &Error{Kind: KindUpstreamUnavailable, Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindUpstreamUnavailable, Status: resp.StatusCode, Message: fmt.Sprintf("cannot read response: %v", err), Err: err}
	}

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return &Error{
			Kind:    KindUpstreamUnavailable,
			Status:  resp.StatusCode,
			Message: remoteMessage(resp.StatusCode, respBody),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remote := parseRemoteError(resp.StatusCode, respBody)
		t.log.Debug("remote rejected request",
			zap.Int("status", remote.Status),
			zap.String("message", remote.Message))
		return remote
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Kind: KindUpstreamUnavailable, Status: resp.StatusCode, Message: fmt.Sprintf("cannot decode response: %v", err), Err: err}
	}
	return nil
}

// parseRemoteError extracts the remote's own error message rather than
// hiding it behind the status code.
func parseRemoteError(status int, body []byte) *RemoteError {
	remote := &RemoteError{Status: status, Message: fmt.Sprintf("status %d", status)}
	if len(body) == 0 {
		return remote
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		remote.Message = string(body)
		return remote
	}
	if message, ok := payload["message"].(string); ok && message != "" {
		remote.Message = message
	} else if errMsg, ok := payload["error"].(string); ok && errMsg != "" {
		remote.Message = errMsg
	} else {
		remote.Message = string(body)
	}
	if code, ok := payload["code"].(string); ok {
		remote.Code = code
	}
	return remote
}

func remoteMessage(status int, body []byte) string {
	remote := parseRemoteError(status, body)
	return fmt.Sprintf("service unavailable (status %d): %s", status, remote.Message)
}
