package model

import "time"

// StreamEntry is a single playlist record carried inside an activation
// payload. Username and password are optional; entries without both
// cannot yield a derived API endpoint.
type StreamEntry struct {
	// PlaylistName is the human-readable name the portal assigned.
	PlaylistName string `json:"playlist_name"`
	// URL is the raw playlist URL exactly as the portal returned it.
	URL string `json:"url"`
	// Username is the playlist credential, if the portal returned one.
	Username string `json:"username,omitempty"`
	// Password is the playlist credential, if the portal returned one.
	Password string `json:"password,omitempty"`
}

// BoxDetails carries the device history block of an activation payload.
type BoxDetails struct {
	LastSeen     string `json:"last_seen"`
	SwitchedFrom string `json:"switched_from"`
	SwitchedTo   string `json:"switched_to"`
	SwitchedDate string `json:"switched_date"`
}

// ActivationPayload is the decoded responseData object returned by the
// portal for an activated address. Field names mirror the wire format.
type ActivationPayload struct {
	DeviceKey  string        `json:"device_key"`
	ExpiryDate string        `json:"expiry_date"`
	BoxDetails BoxDetails    `json:"box_details"`
	Playlists  []StreamEntry `json:"playlists"`
}

// ScanResult is the outcome of one successful scan of one address.
// It is created only when the portal returned a well-formed payload,
// and is immutable once constructed.
type ScanResult struct {
	// MAC is the canonical address that was scanned.
	MAC MACAddress

	// Payload is the decoded entitlement data from the portal.
	Payload ActivationPayload

	// Proxy is the egress path the winning attempt was routed through,
	// or empty when the request went out directly.
	Proxy string

	// ScannedAt records when the winning attempt completed.
	ScannedAt time.Time
}

// NewScanResult creates a ScanResult for the given address and payload.
// An empty proxy means the request was made directly.
func NewScanResult(mac MACAddress, payload ActivationPayload, proxy string) *ScanResult {
	return &ScanResult{
		MAC:       mac,
		Payload:   payload,
		Proxy:     proxy,
		ScannedAt: time.Now(),
	}
}
