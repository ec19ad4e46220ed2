package model

import (
	"errors"
	"strings"
	"testing"
)

// TestNewMACAddress tests MAC address validation and canonicalization.
func TestNewMACAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "already canonical",
			input: "AA:BB:CC:DD:EE:FF",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "lowercase with colons",
			input: "aa:bb:cc:dd:ee:ff",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "bare hex",
			input: "aabbccddeeff",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "hyphen separated",
			input: "00-1a-2b-3c-4d-5e",
			want:  "00:1A:2B:3C:4D:5E",
		},
		{
			name:  "dot separated cisco style",
			input: "001a.2b3c.4d5e",
			want:  "00:1A:2B:3C:4D:5E",
		},
		{
			name:  "surrounding noise stripped",
			input: "  mac=AA:BB:CC:DD:EE:FF;  ",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmptyMACAddress,
		},
		{
			name:    "too short",
			input:   "AA:BB:CC:DD:EE",
			wantErr: ErrInvalidMACAddress,
		},
		{
			name:    "too long",
			input:   "AA:BB:CC:DD:EE:FF:00",
			wantErr: ErrInvalidMACAddress,
		},
		{
			name:    "non hex letters only",
			input:   "gg:hh:ii:jj:kk:ll",
			wantErr: ErrInvalidMACAddress,
		},
		{
			// 'g'..'z' are stripped, leaving fewer than 12 digits
			name:    "mixed hex and non hex",
			input:   "ag:bg:cg:dg:eg:fg",
			wantErr: ErrInvalidMACAddress,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewMACAddress(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.String())
			}
		})
	}
}

// TestMACAddressBare tests the separator-free projection.
func TestMACAddressBare(t *testing.T) {
	t.Parallel()

	mac := MustNewMACAddress("aa:bb:cc:dd:ee:ff")
	if got := mac.Bare(); got != "AABBCCDDEEFF" {
		t.Errorf("expected AABBCCDDEEFF, got %q", got)
	}
}

// TestMACAddressZeroAndEquals tests zero value and equality semantics.
func TestMACAddressZeroAndEquals(t *testing.T) {
	t.Parallel()

	var zero MACAddress
	if !zero.IsZero() {
		t.Error("expected zero value to report IsZero")
	}

	a := MustNewMACAddress("AABBCCDDEEFF")
	b := MustNewMACAddress("aa-bb-cc-dd-ee-ff")
	if !a.Equals(b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	if a.IsZero() {
		t.Error("expected non-zero address")
	}
}

// TestMustNewMACAddressPanics tests that invalid input panics.
func TestMustNewMACAddressPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid address")
		}
	}()
	MustNewMACAddress("not-a-mac")
}

// TestRandomMACAddress tests random generation with and without prefixes.
func TestRandomMACAddress(t *testing.T) {
	t.Parallel()

	t.Run("no prefix", func(t *testing.T) {
		t.Parallel()

		mac, err := RandomMACAddress("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(mac.Bare()) != 12 {
			t.Errorf("expected 12 hex digits, got %q", mac.Bare())
		}
	})

	t.Run("vendor prefix preserved", func(t *testing.T) {
		t.Parallel()

		mac, err := RandomMACAddress("00:1A:79")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(mac.String(), "00:1A:79:") {
			t.Errorf("expected prefix 00:1A:79:, got %q", mac.String())
		}
	})

	t.Run("full prefix is deterministic", func(t *testing.T) {
		t.Parallel()

		mac, err := RandomMACAddress("AABBCCDDEEFF")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mac.String() != "AA:BB:CC:DD:EE:FF" {
			t.Errorf("expected AA:BB:CC:DD:EE:FF, got %q", mac.String())
		}
	})

	t.Run("odd digit prefix rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := RandomMACAddress("AAB"); !errors.Is(err, ErrInvalidMACAddress) {
			t.Errorf("expected ErrInvalidMACAddress, got %v", err)
		}
	})

	t.Run("oversized prefix rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := RandomMACAddress("AABBCCDDEEFF00"); !errors.Is(err, ErrInvalidMACAddress) {
			t.Errorf("expected ErrInvalidMACAddress, got %v", err)
		}
	})
}
