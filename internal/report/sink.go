package report

import (
	"sync"

	"github.com/bozidoz/ok22/internal/model"
)

// Sink receives successful scan results.
// ResultLog is the primary implementation; Collector and MultiSink
// exist so one result can feed several consumers.
type Sink interface {
	// LogResult consumes one result. Implementations must be safe for
	// concurrent callers.
	LogResult(res *model.ScanResult) error
}

// MultiSink fans one result out to several sinks.
//
// Design decision: A dedicated type instead of io.MultiWriter because
// sinks consume results, not bytes. Delivery stops at the first failing
// sink so the caller sees the error; earlier sinks have already
// consumed the result, which is acceptable for append-only outputs.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a Sink that delivers to all given sinks in order.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// LogResult delivers the result to every sink, stopping on first error.
func (m *MultiSink) LogResult(res *model.ScanResult) error {
	for _, s := range m.sinks {
		if err := s.LogResult(res); err != nil {
			return err
		}
	}
	return nil
}

// Collector retains every result it receives, in arrival order.
// It backs the session summary, which needs the full hit list after
// the scan completes.
type Collector struct {
	mu      sync.Mutex
	results []*model.ScanResult
}

// LogResult implements Sink.
func (c *Collector) LogResult(res *model.ScanResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, res)
	return nil
}

// Results returns the collected results in arrival order.
func (c *Collector) Results() []*model.ScanResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.ScanResult, len(c.results))
	copy(out, c.results)
	return out
}
