package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests YAML loading and error cases.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".ok22")
		content := `endpoint: https://portal.example.com/api/process
user_agent: custom-agent
timeout: 30s
retries: 5
backoff: 2s
concurrency: 8
proxies: /etc/ok22/proxies.txt
output_dir: /var/lib/ok22
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.Endpoint != "https://portal.example.com/api/process" {
			t.Errorf("unexpected endpoint %q", f.Endpoint)
		}
		if time.Duration(f.Timeout) != 30*time.Second {
			t.Errorf("expected timeout 30s, got %v", time.Duration(f.Timeout))
		}
		if time.Duration(f.Backoff) != 2*time.Second {
			t.Errorf("expected backoff 2s, got %v", time.Duration(f.Backoff))
		}
		if f.Retries != 5 || f.Concurrency != 8 {
			t.Errorf("unexpected retries/concurrency: %d/%d", f.Retries, f.Concurrency)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("broken yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".ok22")
		if err := os.WriteFile(path, []byte("endpoint: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".ok22")
		if err := os.WriteFile(path, []byte("timeout: soon"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected duration parse error")
		}
	})
}

// TestFileApply tests merging file values over defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("non-zero values override", func(t *testing.T) {
		t.Parallel()

		c := New()
		f := &File{
			Endpoint:    "https://other.example.com/api",
			Timeout:     Duration(42 * time.Second),
			Retries:     7,
			Concurrency: 3,
			Proxies:     "p.txt",
			OutputDir:   "/out",
		}
		f.Apply(c)

		if c.Endpoint != "https://other.example.com/api" {
			t.Errorf("expected endpoint override, got %q", c.Endpoint)
		}
		if c.Timeout != 42*time.Second {
			t.Errorf("expected timeout override, got %v", c.Timeout)
		}
		if c.Retries != 7 || c.Concurrency != 3 {
			t.Errorf("expected retries/concurrency override, got %d/%d", c.Retries, c.Concurrency)
		}
		if c.ProxyFile != "p.txt" || c.OutputDir != "/out" {
			t.Errorf("expected proxy/output override, got %q/%q", c.ProxyFile, c.OutputDir)
		}
	})

	t.Run("zero values leave defaults", func(t *testing.T) {
		t.Parallel()

		c := New()
		(&File{}).Apply(c)

		if c.Endpoint != DefaultEndpoint || c.Timeout != DefaultTimeout || c.Retries != DefaultRetries {
			t.Error("expected defaults to survive empty file")
		}
	})
}

// TestFindConfigFile tests the search order.
func TestFindConfigFile(t *testing.T) {
	// Not parallel: changes working directory.
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})

	if got := FindConfigFile("explicit.yml"); got != "explicit.yml" {
		t.Errorf("expected explicit path to win, got %q", got)
	}

	if got := FindConfigFile(""); got != "" {
		t.Errorf("expected no config found in empty dir, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("retries: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(""); got != DefaultConfigFile {
		t.Errorf("expected %q, got %q", DefaultConfigFile, got)
	}
}
