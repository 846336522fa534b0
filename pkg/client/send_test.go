package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"soroswap-cli/pkg/api"
	"soroswap-cli/pkg/types"
)

func TestSendSuccess(t *testing.T) {
	var captured types.SendRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/send", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decoding send request: %v", err)
		}
		json.NewEncoder(w).Encode(types.SendResult{
			TransactionHash:   "a2b4c6d8e0f2a4b6c8d0e2f4a6b8c0d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4",
			TransactionStatus: "success",
		})
	})
	c := newTestClient(t, mux)

	result, err := c.Send(context.Background(), "AAAAc2lnbmVk", true, "")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(result.TransactionHash) != 64 {
		t.Errorf("TransactionHash = %q, want a 64-char network hash", result.TransactionHash)
	}
	if result.TransactionStatus != types.TxStatusSuccess {
		t.Errorf("TransactionStatus = %q, want %q", result.TransactionStatus, types.TxStatusSuccess)
	}
	if !captured.LaunchTube {
		t.Errorf("launchTube flag not forwarded")
	}
	if captured.SignedTransactionXDR != "AAAAc2lnbmVk" {
		t.Errorf("SignedTransactionXDR sent = %q", captured.SignedTransactionXDR)
	}
}

func TestSendRejectsEmptyEnvelope(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/send", func(w http.ResponseWriter, r *http.Request) { hits++ })
	c := newTestClient(t, mux)

	_, err := c.Send(context.Background(), "", false, "")
	if !api.IsKind(err, api.KindInvalidParameters) {
		t.Fatalf("Send() error = %v, want %s", err, api.KindInvalidParameters)
	}
	if hits != 0 {
		t.Errorf("send endpoint hit %d times, want 0", hits)
	}
}

func TestSendSubmissionRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/send", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "malformed transaction envelope"})
	})
	c := newTestClient(t, mux)

	_, err := c.Send(context.Background(), "not-xdr", false, "")
	if !api.IsKind(err, api.KindSubmissionRejected) {
		t.Fatalf("Send() error = %v, want %s", err, api.KindSubmissionRejected)
	}
	if api.Retryable(err) {
		t.Errorf("a rejected submission is fatal for that envelope")
	}
}

func TestSendBadCredentialNotSubmissionRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/send", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid api key"})
	})
	c := newTestClient(t, mux)

	_, err := c.Send(context.Background(), "AAAAc2lnbmVk", false, "")
	if api.IsKind(err, api.KindSubmissionRejected) {
		t.Fatalf("Send() error = %v, a credential failure must not condemn the envelope", err)
	}
	var remote *api.RemoteError
	if !errors.As(err, &remote) || remote.Status != http.StatusUnauthorized {
		t.Errorf("Send() error = %v, want the 401 remote error passed through", err)
	}
}

func TestSendUpstreamUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/send", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, mux)

	_, err := c.Send(context.Background(), "AAAAc2lnbmVk", false, "")
	if !api.IsKind(err, api.KindUpstreamUnavailable) {
		t.Fatalf("Send() error = %v, want %s", err, api.KindUpstreamUnavailable)
	}
	if !api.Retryable(err) {
		t.Errorf("an unavailable upstream should read as retryable")
	}
}
