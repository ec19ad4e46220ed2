package model

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// MACAddress errors.
var (
	// ErrInvalidMACAddress is returned when the input does not reduce to
	// exactly 12 hexadecimal digits.
	ErrInvalidMACAddress = errors.New("invalid MAC address format")
	// ErrEmptyMACAddress is returned when the input is empty.
	ErrEmptyMACAddress = errors.New("MAC address cannot be empty")
)

// macHexLength is the number of hexadecimal digits in a 6-byte address.
const macHexLength = 12

// MACAddress is an immutable value object representing a 6-byte hardware
// address in canonical form: six uppercase byte-pairs joined by colons
// (e.g. "AA:BB:CC:DD:EE:FF").
//
// Design decision: We accept any input notation (colons, hyphens, dots,
// bare hex, mixed case) and canonicalize instead of requiring a specific
// separator. Address lists in the wild come in every format, and rejecting
// `aa-bb-cc-dd-ee-ff` while accepting `aa:bb:cc:dd:ee:ff` would only push
// normalization onto every caller.
type MACAddress struct {
	address string // Canonical colon-separated uppercase form
}

// NewMACAddress creates a MACAddress from a raw string.
// Every character that is not a hexadecimal digit is stripped and the
// remainder uppercased; the input is valid if and only if exactly 12 hex
// digits remain. Returns an error for anything else.
func NewMACAddress(raw string) (MACAddress, error) {
	if raw == "" {
		return MACAddress{}, ErrEmptyMACAddress
	}

	hex := stripNonHex(raw)
	if len(hex) != macHexLength {
		return MACAddress{}, fmt.Errorf("%w: %q has %d hex digits, want %d",
			ErrInvalidMACAddress, raw, len(hex), macHexLength)
	}

	// Group into six byte-pairs joined by colons
	var sb strings.Builder
	sb.Grow(macHexLength + 5)
	for i := 0; i < macHexLength; i += 2 {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(hex[i : i+2])
	}

	return MACAddress{address: sb.String()}, nil
}

// MustNewMACAddress creates a MACAddress or panics if invalid.
// Use only for known-valid addresses in tests or initialization.
func MustNewMACAddress(raw string) MACAddress {
	mac, err := NewMACAddress(raw)
	if err != nil {
		panic(err)
	}
	return mac
}

// stripNonHex removes every non-hexadecimal character and uppercases
// the remainder.
func stripNonHex(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			sb.WriteRune(c)
		case c >= 'A' && c <= 'F':
			sb.WriteRune(c)
		case c >= 'a' && c <= 'f':
			sb.WriteRune(c - ('a' - 'A'))
		}
	}
	return sb.String()
}

// RandomMACAddress generates a well-formed random address, optionally
// anchored to a vendor prefix. The prefix may be in any accepted notation
// and shorter than a full address; remaining bytes are filled with random
// hex digits. Returns an error if the prefix itself contains too many hex
// digits or an odd number of them.
func RandomMACAddress(prefix string) (MACAddress, error) {
	hex := stripNonHex(prefix)
	if len(hex) > macHexLength || len(hex)%2 != 0 {
		return MACAddress{}, fmt.Errorf("%w: prefix %q", ErrInvalidMACAddress, prefix)
	}

	const digits = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(macHexLength)
	sb.WriteString(hex)
	for sb.Len() < macHexLength {
		sb.WriteByte(digits[rand.Intn(len(digits))])
	}

	return NewMACAddress(sb.String())
}

// String returns the canonical colon-separated form.
func (m MACAddress) String() string {
	return m.address
}

// Bare returns the address without separators (12 uppercase hex digits).
func (m MACAddress) Bare() string {
	return strings.ReplaceAll(m.address, ":", "")
}

// IsZero returns true if this is a zero value (empty) MACAddress.
func (m MACAddress) IsZero() bool {
	return m.address == ""
}

// Equals returns true if two MACAddress values are equal.
func (m MACAddress) Equals(other MACAddress) bool {
	return m.address == other.address
}
