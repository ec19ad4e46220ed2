package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultEndpoint is the activation portal endpoint. Portals move;
	// the value can be overridden from the config file or --endpoint.
	DefaultEndpoint = "https://portal.stbactivation.example/api/process"

	// DefaultUserAgent mimics the Android client the portal expects.
	// The inner request already declares appType "android", and portals
	// have been seen rejecting mismatched agents.
	DefaultUserAgent = "okhttp/3.12.1"

	// DefaultTimeout bounds each individual activation attempt. Portals
	// answer in well under a second when they answer at all; 10 seconds
	// covers slow proxies without letting a hung attempt block a worker
	// for long.
	DefaultTimeout = 10 * time.Second

	// DefaultRetries is the fixed attempt budget per address.
	DefaultRetries = 3

	// DefaultBackoff is the flat wait between failed attempts. No jitter
	// and no exponential growth: the next attempt usually goes out
	// through a different proxy anyway.
	DefaultBackoff = 1 * time.Second

	// DefaultConcurrency is the ceiling on in-flight scan tasks.
	// 20 keeps throughput high without tripping portal rate limits.
	DefaultConcurrency = 20

	// DefaultHitsFile is the detailed results file, created in the
	// output directory and truncated on every run.
	DefaultHitsFile = "hits.txt"

	// DefaultURLFile is the flat URL list, created alongside the hits
	// file and truncated on every run.
	DefaultURLFile = "urls.txt"

	// AppName is the application name used for XDG directory paths.
	AppName = "ok22"
)

// Config holds all options for one scan invocation.
//
// Design decision: A single flat struct populated from flags and the
// config file, passed by reference, rather than nested sub-configs or
// globals. The option count is small enough that nesting would only add
// noise.
type Config struct {
	// Endpoint is the activation portal URL every attempt POSTs to.
	Endpoint string

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Timeout bounds each individual activation attempt.
	Timeout time.Duration

	// Retries is the attempt budget per address.
	Retries int

	// Backoff is the fixed wait between failed attempts.
	Backoff time.Duration

	// Concurrency is the maximum number of in-flight scan tasks.
	Concurrency int

	// ProxyFile is the line-oriented egress path list. Empty means no
	// pool is loaded.
	ProxyFile string

	// UseProxies routes attempts through the pool. Requires ProxyFile.
	UseProxies bool

	// OutputDir is the directory the hits and URL files are created in.
	OutputDir string

	// HitsFile is the detailed results file name within OutputDir.
	HitsFile string

	// URLFile is the flat URL list file name within OutputDir.
	URLFile string

	// SummaryFile, when set, receives a Markdown session summary.
	SummaryFile string

	// Targets are raw identifiers from positional arguments.
	Targets []string

	// ListFile is a line-oriented file of raw identifiers.
	ListFile string

	// RandomCount generates this many random identifiers as additional
	// scan input.
	RandomCount int

	// RandomPrefix anchors generated identifiers to a vendor prefix.
	RandomPrefix string

	// Verbose enables debug-level logging.
	Verbose bool
}

// New creates a Config with default values.
//
// Design decision: A constructor instead of relying on zero values,
// because most defaults are non-zero and this doubles as documentation
// of what they are.
func New() *Config {
	return &Config{
		Endpoint:    DefaultEndpoint,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		Retries:     DefaultRetries,
		Backoff:     DefaultBackoff,
		Concurrency: DefaultConcurrency,
		OutputDir:   ".",
		HitsFile:    DefaultHitsFile,
		URLFile:     DefaultURLFile,
	}
}

// HitsPath returns the full path of the detailed results file.
func (c *Config) HitsPath() string {
	return filepath.Join(c.OutputDir, c.HitsFile)
}

// URLPath returns the full path of the flat URL list.
func (c *Config) URLPath() string {
	return filepath.Join(c.OutputDir, c.URLFile)
}

// HasInput reports whether any identifier source is configured.
func (c *Config) HasInput() bool {
	return len(c.Targets) > 0 || c.ListFile != "" || c.RandomCount > 0
}

// XDGConfigDir returns the XDG config directory for the application.
// On Linux: ~/.config/ok22
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for the application.
// On Linux: ~/.local/share/ok22
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// Called once after flag and file merging, before any scanning begins.
func (c *Config) Validate() error {
	if !c.HasInput() {
		return ErrNoInput
	}
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Retries <= 0 {
		return ErrInvalidRetries
	}
	if c.Backoff < 0 {
		return ErrInvalidBackoff
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.RandomCount < 0 {
		return ErrInvalidRandomCount
	}
	if c.UseProxies && c.ProxyFile == "" {
		return ErrNoProxyFile
	}
	return nil
}
