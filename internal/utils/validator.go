package utils

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

var (
	ErrInvalidAddress  = errors.New("invalid wallet address")
	ErrAddressChecksum = errors.New("wallet address checksum mismatch")
)

// NormalizeAddress lowercases and trims a wallet address. Addresses are
// compared case-insensitively everywhere, so this is the canonical stored form.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsHexAddress reports whether s is a 0x-prefixed 20-byte hex string
func IsHexAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// ChecksumAddress returns the EIP-55 mixed-case form of a hex address
func ChecksumAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !IsHexAddress(address) {
		return "", ErrInvalidAddress
	}

	lower := strings.ToLower(address[2:])
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(lower))
	digest := hasher.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}

	return "0x" + string(out), nil
}

// ValidateAddress checks a wallet address. All-lowercase and all-uppercase
// addresses carry no checksum and are accepted as-is; mixed case must match EIP-55.
func ValidateAddress(address string) error {
	address = strings.TrimSpace(address)
	if !IsHexAddress(address) {
		return ErrInvalidAddress
	}

	body := address[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}

	checksummed, err := ChecksumAddress(address)
	if err != nil {
		return err
	}
	if checksummed[2:] != body {
		return ErrAddressChecksum
	}
	return nil
}
