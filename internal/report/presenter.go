package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bozidoz/ok22/internal/model"
)

// entitlementPath is the API path credentials are combined with when
// deriving a playlist's entitlement endpoint.
const entitlementPath = "/player_api.php"

// CleanURL normalizes a raw playlist URL for presentation.
// It preserves the scheme, host (with port if present), path, and query
// string, and unconditionally drops any fragment and embedded userinfo.
// The function is idempotent: cleaning an already-clean URL is a no-op.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil {
		// Unparseable input still gets the fragment dropped so the
		// idempotency guarantee holds for whatever we emit.
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			return raw[:i]
		}
		return raw
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.User = nil
	return u.String()
}

// DeriveEntitlementEndpoint builds the credentialed API URL for a stream
// entry. Both username and password must be non-empty; missing either is
// a hard skip, not a partial result. The credentials are embedded
// verbatim, matching what the upstream API expects.
func DeriveEntitlementEndpoint(e model.StreamEntry) (string, bool) {
	if e.Username == "" || e.Password == "" {
		return "", false
	}

	u, err := url.Parse(strings.TrimSpace(e.URL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}

	return fmt.Sprintf("%s://%s%s?username=%s&password=%s",
		u.Scheme, u.Host, entitlementPath, e.Username, e.Password), true
}

// IsDemoEntry reports whether a stream entry is placeholder/sample
// content. Portals pad payloads with "demo" playlists that carry no real
// entitlement; those entries are excluded from every output form.
func IsDemoEntry(e model.StreamEntry) bool {
	return strings.Contains(strings.ToLower(e.URL), "demo")
}
