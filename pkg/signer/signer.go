package signer

import (
	"fmt"
	"strings"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
)

// Signer signs transaction envelopes with a local secret seed. It lives
// outside the quote/build/send pipeline, which never signs; the CLI uses it
// to complete a swap without leaving the terminal.
type Signer struct {
	kp         *keypair.Full
	passphrase string
}

// Passphrase maps a network selector to its signing passphrase.
func Passphrase(networkName string) (string, error) {
	switch strings.ToLower(networkName) {
	case "mainnet", "public":
		return network.PublicNetworkPassphrase, nil
	case "testnet":
		return network.TestNetworkPassphrase, nil
	default:
		return "", fmt.Errorf("unknown network %q, expected mainnet or testnet", networkName)
	}
}

// New creates a signer from an S... secret seed for the given network.
func New(seed, networkName string) (*Signer, error) {
	kp, err := keypair.ParseFull(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid secret seed: %w", err)
	}
	passphrase, err := Passphrase(networkName)
	if err != nil {
		return nil, err
	}
	return &Signer{kp: kp, passphrase: passphrase}, nil
}

// Address returns the signer's public account address.
func (s *Signer) Address() string {
	return s.kp.Address()
}

// SignXDR adds the signer's signature to a base64 envelope and returns the
// signed base64 envelope.
func (s *Signer) SignXDR(envelopeXDR string) (string, error) {
	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		return "", fmt.Errorf("cannot parse transaction envelope: %w", err)
	}

	if tx, ok := generic.Transaction(); ok {
		signed, err := tx.Sign(s.passphrase, s.kp)
		if err != nil {
			return "", fmt.Errorf("cannot sign transaction: %w", err)
		}
		return signed.Base64()
	}
	if fb, ok := generic.FeeBump(); ok {
		signed, err := fb.Sign(s.passphrase, s.kp)
		if err != nil {
			return "", fmt.Errorf("cannot sign fee-bump transaction: %w", err)
		}
		return signed.Base64()
	}
	return "", fmt.Errorf("unsupported envelope type")
}
