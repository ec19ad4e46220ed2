package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/bozidoz/ok22/internal/model"
)

// directSentinel is written in place of a proxy address when the winning
// attempt went out without an egress path.
const directSentinel = "direct"

// hitsHeader is the fixed banner written to the detailed log on open.
const hitsHeader = "========================================\n" +
	" ok22 scan results\n" +
	"========================================\n\n"

// ResultLog owns the two append-only output files every hit is persisted
// to: a detailed human-readable log and a flat URL list.
//
// Design decision: A single mutex covers both files so the detailed
// block and the URL lines for one result land as a unit relative to
// other results. The two files are not one transaction; a crash between
// the two writes can leave them out of step, which is an accepted risk
// for flat text sinks (no journaling, no atomic rename).
type ResultLog struct {
	mu   sync.Mutex
	hits *os.File
	urls *os.File
}

// Open creates a ResultLog writing to the given paths. Both files are
// opened in truncate mode: a fresh run starts from empty outputs. The
// fixed header is written to the hits file immediately.
//
// Failure to open either file is fatal to the run; callers must not
// dispatch any scan task without a usable ResultLog.
func Open(hitsPath, urlsPath string) (*ResultLog, error) {
	hits, err := os.OpenFile(hitsPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open hits log: %w", err)
	}

	urls, err := os.OpenFile(urlsPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		_ = hits.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to open url log: %w", err)
	}

	if _, err := hits.WriteString(hitsHeader); err != nil {
		_ = hits.Close() //nolint:errcheck // Best effort cleanup
		_ = urls.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to write hits header: %w", err)
	}

	return &ResultLog{hits: hits, urls: urls}, nil
}

// LogResult appends one result to both files.
//
// Each file's content for the result is built up front and written with
// a single Write call under the shared lock, so blocks from concurrent
// callers never interleave.
func (l *ResultLog) LogResult(res *model.ScanResult) error {
	detail := formatDetail(res)
	flat := formatFlat(res)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.hits.WriteString(detail); err != nil {
		return fmt.Errorf("failed to append to hits log: %w", err)
	}
	if flat != "" {
		if _, err := l.urls.WriteString(flat); err != nil {
			return fmt.Errorf("failed to append to url log: %w", err)
		}
	}
	return nil
}

// Close flushes and closes both files. The log is unusable afterwards.
func (l *ResultLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return errors.Join(
		l.hits.Sync(),
		l.hits.Close(),
		l.urls.Sync(),
		l.urls.Close(),
	)
}

// formatDetail renders the multi-line human-readable block for one
// result, terminated by a blank-line separator.
func formatDetail(res *model.ScanResult) string {
	proxy := res.Proxy
	if proxy == "" {
		proxy = directSentinel
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", res.ScannedAt.Format("2006-01-02 15:04:05"), res.MAC))
	sb.WriteString(fmt.Sprintf("Proxy:         %s\n", proxy))
	sb.WriteString(fmt.Sprintf("Device Key:    %s\n", res.Payload.DeviceKey))
	sb.WriteString(fmt.Sprintf("Expiry Date:   %s\n", res.Payload.ExpiryDate))
	sb.WriteString(fmt.Sprintf("Last Seen:     %s\n", res.Payload.BoxDetails.LastSeen))
	sb.WriteString(fmt.Sprintf("Switched From: %s\n", res.Payload.BoxDetails.SwitchedFrom))
	sb.WriteString(fmt.Sprintf("Switched To:   %s\n", res.Payload.BoxDetails.SwitchedTo))
	sb.WriteString(fmt.Sprintf("Switched Date: %s\n", res.Payload.BoxDetails.SwitchedDate))

	for _, entry := range res.Payload.Playlists {
		if IsDemoEntry(entry) {
			continue
		}
		sb.WriteString(fmt.Sprintf("Playlist: %s\n", entry.PlaylistName))
		sb.WriteString(fmt.Sprintf("  URL: %s\n", CleanURL(entry.URL)))
		if endpoint, ok := DeriveEntitlementEndpoint(entry); ok {
			sb.WriteString(fmt.Sprintf("  API: %s\n", endpoint))
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// formatFlat renders the bare URL lines for one result: the cleaned URL
// of every non-demo entry, each followed by its entitlement endpoint
// when derivable. Returns "" when the result has no non-demo entries.
func formatFlat(res *model.ScanResult) string {
	var sb strings.Builder
	for _, entry := range res.Payload.Playlists {
		if IsDemoEntry(entry) {
			continue
		}
		sb.WriteString(CleanURL(entry.URL))
		sb.WriteString("\n")
		if endpoint, ok := DeriveEntitlementEndpoint(entry); ok {
			sb.WriteString(endpoint)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
