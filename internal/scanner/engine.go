package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bozidoz/ok22/internal/model"
	"github.com/bozidoz/ok22/internal/proxy"
)

// Default engine policy. The retry and backoff values are deliberately
// fixed and small: the portal either knows the address or it does not,
// and hammering it with exponential schedules buys nothing.
const (
	// DefaultRetries is the attempt budget per address.
	DefaultRetries = 3
	// DefaultBackoff is the fixed wait between failed attempts.
	DefaultBackoff = 1 * time.Second
	// DefaultConcurrency is the ceiling on in-flight tasks.
	DefaultConcurrency = 20
)

// Checker performs one activation attempt for one address.
// It is implemented by activation.Client; tests substitute stubs.
type Checker interface {
	Check(ctx context.Context, mac model.MACAddress, egress string) (model.ActivationPayload, error)
}

// ResultSink receives every successful result exactly once.
// It is implemented by report.ResultLog.
type ResultSink interface {
	LogResult(res *model.ScanResult) error
}

// Engine runs mass scans: one task per address, bounded parallelism,
// per-task retries with a freshly selected egress path on every attempt.
//
// Design decision: The engine owns all shared mutable state of a scan
// session (hit counter, proxy pool, sinks) and is constructed once per
// invocation rather than relying on package-level globals. Each piece of
// shared state has its own synchronization and no lock is ever held
// across a network call.
type Engine struct {
	checker  Checker
	sink     ResultSink
	pool     *proxy.Pool
	progress io.Writer
	logger   *slog.Logger

	// session uniquely identifies this invocation in logs.
	session string

	retries     int
	backoff     time.Duration
	concurrency int

	// hits is the session-wide success counter.
	mu   sync.Mutex
	hits int
}

// Option configures an Engine.
type Option func(*Engine)

// WithResultSink sets the sink successful results are handed to.
// Without a sink, hits are only reported on the progress writer.
func WithResultSink(sink ResultSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithProxyPool sets the egress path pool used when proxy routing is on.
func WithProxyPool(pool *proxy.Pool) Option {
	return func(e *Engine) {
		if pool != nil {
			e.pool = pool
		}
	}
}

// WithProgress sets the writer one-line progress summaries go to.
// Defaults to stdout.
func WithProgress(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.progress = w
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRetries sets the attempt budget per address.
func WithRetries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.retries = n
		}
	}
}

// WithBackoff sets the fixed wait between failed attempts.
func WithBackoff(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.backoff = d
		}
	}
}

// WithConcurrency sets the ceiling on concurrently running tasks.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New creates an Engine around the given checker.
func New(checker Checker, opts ...Option) *Engine {
	e := &Engine{
		checker:     checker,
		pool:        &proxy.Pool{},
		progress:    os.Stdout,
		session:     uuid.NewString(),
		retries:     DefaultRetries,
		backoff:     DefaultBackoff,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Hits returns the session-wide success count so far.
func (e *Engine) Hits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits
}

// Session returns the unique id of this invocation.
func (e *Engine) Session() string {
	return e.session
}

// ScanOne processes a single raw identifier through validation and the
// attempt loop. It returns nil for an invalid identifier (which consumes
// no attempt and is not an error) and nil after the attempt budget is
// exhausted; any non-nil result is a confirmed hit.
func (e *Engine) ScanOne(ctx context.Context, raw string, useProxy bool) *model.ScanResult {
	mac, err := model.NewMACAddress(raw)
	if err != nil {
		// Invalid input is silently excluded from the batch; it is not
		// an attempt and is never retried.
		e.logger.Debug("skipping invalid identifier",
			"session", e.session,
			"input", raw,
			"error", err,
		)
		return nil
	}

	tk := newTask(mac)
	for tk.attempt < e.retries {
		var egress string
		if useProxy {
			egress, _ = e.pool.Select()
		}
		tk.beginAttempt(egress)

		payload, err := e.checker.Check(ctx, mac, egress)
		if err == nil {
			tk.succeed()
			e.mu.Lock()
			e.hits++
			e.mu.Unlock()
			e.logger.Debug("task finished",
				"session", e.session,
				"mac", mac.String(),
				"state", tk.state.String(),
				"attempt", tk.attempt,
			)
			return model.NewScanResult(mac, payload, egress)
		}

		e.logger.Debug("attempt failed",
			"session", e.session,
			"mac", mac.String(),
			"attempt", tk.attempt,
			"egress", egress,
			"error", err,
		)

		// Fixed backoff between attempts, context-aware so shutdown
		// does not hang on sleeping tasks.
		if tk.attempt < e.retries {
			select {
			case <-time.After(e.backoff):
			case <-ctx.Done():
				tk.exhaust()
				return nil
			}
		}
	}

	tk.exhaust()
	e.logger.Debug("task finished",
		"session", e.session,
		"mac", mac.String(),
		"state", tk.state.String(),
		"attempt", tk.attempt,
	)
	return nil
}

// MassScan dispatches one task per identifier with bounded parallelism.
// When useProxy is set and proxyList names a file, the pool is populated
// before any task runs. Returns the number of hits for the invocation.
//
// Design decision: We use a plain errgroup with SetLimit rather than
// errgroup.WithContext because a failing task must never cancel its
// siblings; every task runs to its own Success/Exhausted conclusion and
// reports problems on the progress sink instead of the group error.
func (e *Engine) MassScan(ctx context.Context, identifiers []string, proxyList string, useProxy bool) (int, error) {
	if useProxy && proxyList != "" {
		n, err := e.pool.LoadFile(proxyList)
		if err != nil {
			return 0, fmt.Errorf("failed to load proxy pool: %w", err)
		}
		e.logger.Info("proxy pool loaded",
			"session", e.session,
			"file", proxyList,
			"count", n,
		)
	}

	targets := dedupe(identifiers)

	e.logger.Info("starting mass scan",
		"session", e.session,
		"targets", len(targets),
		"concurrency", e.concurrency,
		"useProxy", useProxy,
	)
	startTime := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)

	for _, raw := range targets {
		raw := raw
		g.Go(func() error {
			res := e.ScanOne(ctx, raw, useProxy)
			if res == nil {
				return nil
			}

			fmt.Fprintf(e.progress, "[hit] %s  expiry=%s  playlists=%d\n",
				res.MAC, res.Payload.ExpiryDate, len(res.Payload.Playlists))

			if e.sink != nil {
				if err := e.sink.LogResult(res); err != nil {
					// A persistence failure is confined to this task; the
					// batch keeps running.
					fmt.Fprintf(e.progress, "[error] %s: %v\n", res.MAC, err)
					e.logger.Error("failed to persist result",
						"session", e.session,
						"mac", res.MAC.String(),
						"error", err,
					)
				}
			}
			return nil
		})
	}

	// Tasks never return errors; Wait only synchronizes completion.
	_ = g.Wait() //nolint:errcheck // See above

	e.logger.Info("mass scan complete",
		"session", e.session,
		"targets", len(targets),
		"hits", e.Hits(),
		"elapsed", time.Since(startTime),
	)

	return e.Hits(), nil
}

// dedupe drops repeated identifiers so no address is scanned twice in
// one invocation. Identifiers are compared by canonical form; inputs
// that fail validation pass through once and are dropped later by
// ScanOne without consuming an attempt.
func dedupe(identifiers []string) []string {
	seen := make(map[string]bool, len(identifiers))
	out := make([]string, 0, len(identifiers))
	for _, raw := range identifiers {
		key := raw
		if mac, err := model.NewMACAddress(raw); err == nil {
			key = mac.String()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, raw)
	}
	return out
}
