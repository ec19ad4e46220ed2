package report

import (
	"strings"
	"testing"
	"time"

	"github.com/bozidoz/ok22/internal/model"
)

// TestSummaryWriter tests the Markdown session summary output.
func TestSummaryWriter(t *testing.T) {
	t.Parallel()

	t.Run("summary with hits", func(t *testing.T) {
		t.Parallel()

		res := model.NewScanResult(
			model.MustNewMACAddress("AABBCCDDEEFF"),
			model.ActivationPayload{
				ExpiryDate: "2027-01-01",
				Playlists: []model.StreamEntry{
					{PlaylistName: "main", URL: "http://portal.example.com/live.m3u8"},
					{PlaylistName: "sample", URL: "http://demo.example.com/x"},
				},
			},
			"10.0.0.1:8080",
		)

		var sb strings.Builder
		err := NewSummaryWriter(&sb).Write(Summary{
			Session:   "test-session",
			StartedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			Elapsed:   90 * time.Second,
			Scanned:   50,
			Hits:      []*model.ScanResult{res},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := sb.String()
		for _, want := range []string{
			"# ok22 Scan Summary",
			"test-session",
			"## Hits",
			"AA:BB:CC:DD:EE:FF",
			"2027-01-01",
			"10.0.0.1:8080",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("expected summary to contain %q, got:\n%s", want, out)
			}
		}

		// Demo entries must not count toward the playlist column
		for _, line := range strings.SplitAfter(out, "\n") {
			if strings.Contains(line, "AA:BB:CC:DD:EE:FF") && !strings.Contains(line, " 1 ") {
				t.Errorf("expected playlist count of 1 in hit row, got %q", line)
			}
		}
	})

	t.Run("summary without hits omits table", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		err := NewSummaryWriter(&sb).Write(Summary{
			Session:   "empty",
			StartedAt: time.Now(),
			Scanned:   10,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(sb.String(), "## Hits") {
			t.Error("expected no hits section for empty session")
		}
	})
}
