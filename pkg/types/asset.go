package types

import (
	"fmt"

	"github.com/stellar/go/strkey"
)

// ValidAssetRef checks that addr is a network-valid contract (C...) or
// account (G...) address.
func ValidAssetRef(addr string) error {
	if addr == "" {
		return fmt.Errorf("empty address")
	}

	switch addr[0] {
	case 'C':
		if _, err := strkey.Decode(strkey.VersionByteContract, addr); err != nil {
			return fmt.Errorf("invalid contract address %q: %w", addr, err)
		}
	case 'G':
		if _, err := strkey.Decode(strkey.VersionByteAccountID, addr); err != nil {
			return fmt.Errorf("invalid account address %q: %w", addr, err)
		}
	default:
		return fmt.Errorf("invalid address %q: must start with C or G", addr)
	}

	return nil
}

// ValidAccount checks that addr is a network-valid account (G...) address.
func ValidAccount(addr string) error {
	if addr == "" {
		return fmt.Errorf("empty address")
	}
	if _, err := strkey.Decode(strkey.VersionByteAccountID, addr); err != nil {
		return fmt.Errorf("invalid account address %q: %w", addr, err)
	}
	return nil
}
