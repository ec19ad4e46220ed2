package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bozidoz/ok22/internal/model"
)

// newTestResult builds a result with one real and one demo entry.
func newTestResult(t *testing.T, mac string) *model.ScanResult {
	t.Helper()

	return model.NewScanResult(
		model.MustNewMACAddress(mac),
		model.ActivationPayload{
			DeviceKey:  "key-" + mac,
			ExpiryDate: "2027-01-01",
			BoxDetails: model.BoxDetails{
				LastSeen:     "2026-08-01",
				SwitchedFrom: "portal-a",
				SwitchedTo:   "portal-b",
				SwitchedDate: "2026-07-15",
			},
			Playlists: []model.StreamEntry{
				{
					PlaylistName: "main",
					URL:          "http://portal.example.com/live.m3u8#x",
					Username:     "u",
					Password:     "p",
				},
				{
					PlaylistName: "sample",
					URL:          "http://demo.example.com/sample.m3u8",
				},
			},
		},
		"",
	)
}

// openTestLog opens a ResultLog in a temp dir and returns it with its paths.
func openTestLog(t *testing.T) (*ResultLog, string, string) {
	t.Helper()

	dir := t.TempDir()
	hitsPath := filepath.Join(dir, "hits.txt")
	urlsPath := filepath.Join(dir, "urls.txt")

	log, err := Open(hitsPath, urlsPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return log, hitsPath, urlsPath
}

// TestOpenWritesHeaderAndTruncates tests initial file state.
func TestOpenWritesHeaderAndTruncates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hitsPath := filepath.Join(dir, "hits.txt")
	urlsPath := filepath.Join(dir, "urls.txt")

	// Pre-existing content must be discarded on open
	if err := os.WriteFile(hitsPath, []byte("stale\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(urlsPath, []byte("stale\n"), 0600); err != nil {
		t.Fatal(err)
	}

	log, err := Open(hitsPath, urlsPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	hits, err := os.ReadFile(hitsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(hits), "====") || !strings.Contains(string(hits), "ok22 scan results") {
		t.Errorf("expected header in hits file, got %q", hits)
	}
	if strings.Contains(string(hits), "stale") {
		t.Error("expected hits file to be truncated")
	}

	urls, err := os.ReadFile(urlsPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(urls) != 0 {
		t.Errorf("expected empty urls file, got %q", urls)
	}
}

// TestOpenFailsOnBadPath tests that an unopenable destination is fatal.
func TestOpenFailsOnBadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "no", "such", "dir", "hits.txt"), filepath.Join(dir, "urls.txt")); err == nil {
		t.Error("expected error for unopenable hits path")
	}
	if _, err := Open(filepath.Join(dir, "hits.txt"), filepath.Join(dir, "no", "such", "dir", "urls.txt")); err == nil {
		t.Error("expected error for unopenable urls path")
	}
}

// TestLogResult tests the content of both destinations for one result.
func TestLogResult(t *testing.T) {
	t.Parallel()

	log, hitsPath, urlsPath := openTestLog(t)
	res := newTestResult(t, "AABBCCDDEEFF")

	if err := log.LogResult(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	hits, err := os.ReadFile(hitsPath)
	if err != nil {
		t.Fatal(err)
	}
	detail := string(hits)

	for _, want := range []string{
		"AA:BB:CC:DD:EE:FF",
		"Proxy:         direct",
		"Device Key:    key-AABBCCDDEEFF",
		"Expiry Date:   2027-01-01",
		"Last Seen:     2026-08-01",
		"Switched From: portal-a",
		"Switched To:   portal-b",
		"Switched Date: 2026-07-15",
		"Playlist: main",
		"URL: http://portal.example.com/live.m3u8",
		"API: http://portal.example.com/player_api.php?username=u&password=p",
	} {
		if !strings.Contains(detail, want) {
			t.Errorf("expected hits log to contain %q", want)
		}
	}

	urls, err := os.ReadFile(urlsPath)
	if err != nil {
		t.Fatal(err)
	}
	wantURLs := "http://portal.example.com/live.m3u8\n" +
		"http://portal.example.com/player_api.php?username=u&password=p\n"
	if string(urls) != wantURLs {
		t.Errorf("expected urls file %q, got %q", wantURLs, urls)
	}

	// Demo entries never appear in either destination
	if strings.Contains(detail, "demo.example.com") || strings.Contains(string(urls), "demo.example.com") {
		t.Error("expected demo entries to be excluded from both destinations")
	}
}

// TestLogResultConcurrent tests that blocks from concurrent writers
// never interleave: every blank-line-separated block must reference
// exactly one address.
func TestLogResultConcurrent(t *testing.T) {
	t.Parallel()

	log, hitsPath, _ := openTestLog(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			mac := fmt.Sprintf("AABBCCDDEE%02X", i)
			if err := log.LogResult(newTestResult(t, mac)); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := log.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	hits, err := os.ReadFile(hitsPath)
	if err != nil {
		t.Fatal(err)
	}

	// Skip the header block, then verify each result block is contiguous.
	content := string(hits)
	blocks := strings.Split(content, "\n\n")
	resultBlocks := 0
	for _, block := range blocks {
		if !strings.Contains(block, "Device Key:") {
			continue
		}
		resultBlocks++

		var blockMAC string
		for _, line := range strings.SplitAfter(block, "\n") {
			if !strings.HasPrefix(line, "[") {
				continue
			}
			mac := strings.TrimSpace(line[strings.IndexByte(line, ']')+1:])
			if blockMAC != "" && blockMAC != mac {
				t.Errorf("interleaved block: %q and %q", blockMAC, mac)
			}
			blockMAC = mac
		}
		if strings.Count(block, "Device Key:") != 1 {
			t.Errorf("expected one result per block, got %q", block)
		}
	}
	if resultBlocks != writers {
		t.Errorf("expected %d result blocks, got %d", writers, resultBlocks)
	}
}
