package activation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/bozidoz/ok22/internal/model"
)

// Fixed literal fields of the outer request envelope. These values are
// part of the portal's wire contract and must not change.
const (
	channelID = "1"
	domainID  = "1"
	moduleID  = "STALKER"
	requestID = "fd63e17b3f4b3a038aa56b32d3f8d98a"
)

// appType is the client identity carried in the inner request.
const appType = "android"

// maxResponseBody caps how much of a response body is read. Well-formed
// payloads are a few KB; anything larger is not this protocol.
const maxResponseBody = 1 << 20

// outerRequest is the JSON envelope POSTed to the endpoint.
type outerRequest struct {
	ChannelID  string `json:"channelId"`
	DomainID   string `json:"domainId"`
	Module     string `json:"module"`
	RequestID  string `json:"requestId"`
	RequestEnc string `json:"requestEnc"`
}

// innerRequest is the object base64-encoded into requestEnc.
type innerRequest struct {
	AppType    string `json:"appType"`
	MACAddress string `json:"macAddress"`
}

// outerResponse is the JSON envelope the endpoint answers with.
type outerResponse struct {
	ResponseData string `json:"responseData"`
}

// Client issues activation requests against the portal endpoint.
// It is safe for concurrent use; per-request state (the egress path)
// is passed to Check rather than held on the client.
type Client struct {
	endpoint  string
	userAgent string
	timeout   time.Duration

	// direct is the client used when no egress path is chosen.
	// Proxied requests build their own transport per call because the
	// path changes on every attempt.
	direct *http.Client
}

// NewClient creates a Client for the given endpoint. The timeout bounds
// each individual request, including through an egress path.
func NewClient(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		userAgent: userAgent,
		timeout:   timeout,
		direct:    &http.Client{Timeout: timeout},
	}
}

// Check performs one activation request for the given address, routed
// through the egress path when one is supplied (empty means direct).
// It returns the decoded entitlement payload on success; every failure
// mode (transport error, non-success status, malformed envelope or
// payload) is returned as an error and counts as one failed attempt.
func (c *Client) Check(ctx context.Context, mac model.MACAddress, egress string) (model.ActivationPayload, error) {
	httpClient := c.direct
	if egress != "" {
		var err error
		httpClient, err = c.newEgressClient(egress)
		if err != nil {
			return model.ActivationPayload{}, err
		}
	}

	body, err := encodeRequest(mac)
	if err != nil {
		return model.ActivationPayload{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.ActivationPayload{}, fmt.Errorf("failed to build activation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.ActivationPayload{}, fmt.Errorf("activation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.ActivationPayload{}, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return model.ActivationPayload{}, fmt.Errorf("failed to read activation response: %w", err)
	}

	return decodeResponse(raw)
}

// encodeRequest builds the outer JSON envelope for one address.
func encodeRequest(mac model.MACAddress) ([]byte, error) {
	inner, err := json.Marshal(innerRequest{
		AppType:    appType,
		MACAddress: mac.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode inner request: %w", err)
	}

	outer, err := json.Marshal(outerRequest{
		ChannelID:  channelID,
		DomainID:   domainID,
		Module:     moduleID,
		RequestID:  requestID,
		RequestEnc: base64.StdEncoding.EncodeToString(inner),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode activation request: %w", err)
	}
	return outer, nil
}

// decodeResponse unwraps the envelope and the base64 payload inside it.
func decodeResponse(raw []byte) (model.ActivationPayload, error) {
	var outer outerResponse
	if err := json.Unmarshal(raw, &outer); err != nil {
		return model.ActivationPayload{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if outer.ResponseData == "" {
		return model.ActivationPayload{}, fmt.Errorf("%w: missing responseData", ErrMalformedResponse)
	}

	decoded, err := base64.StdEncoding.DecodeString(outer.ResponseData)
	if err != nil {
		return model.ActivationPayload{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var payload model.ActivationPayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return model.ActivationPayload{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return payload, nil
}

// newEgressClient builds an HTTP client routed through one egress path.
//
// Accepted path forms: "host:port", "user:pass@host:port", or a full
// "http://", "https://" or "socks5://" URL. Scheme-less paths are
// treated as HTTP proxies, which is what bulk proxy lists usually are.
func (c *Client) newEgressClient(egress string) (*http.Client, error) {
	u, err := ParseEgressURL(egress)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{}
	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEgressPath, err)
		}
		transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEgressPath, u.Scheme)
	}

	return &http.Client{Transport: transport, Timeout: c.timeout}, nil
}

// ParseEgressURL normalizes an egress path address into a proxy URL.
func ParseEgressURL(egress string) (*url.URL, error) {
	s := strings.TrimSpace(egress)
	if s == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidEgressPath)
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEgressPath, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidEgressPath, egress)
	}
	return u, nil
}
