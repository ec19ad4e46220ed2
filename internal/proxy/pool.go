package proxy

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
)

// Pool is a thread-safe registry of egress path addresses.
// The zero value is an empty, usable pool.
//
// Design decision: One mutex guards the whole slice. Loads are rare
// (typically once per process) and Select copies nothing, so contention
// is negligible even with hundreds of concurrent tasks.
type Pool struct {
	mu    sync.Mutex
	paths []string
}

// Load reads path addresses from a line-oriented source and atomically
// replaces the held set. Blank lines and lines starting with '#' are
// skipped; surrounding whitespace is trimmed. Returns the number of
// paths loaded.
func (p *Pool) Load(r io.Reader) (int, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read proxy list: %w", err)
	}

	p.mu.Lock()
	p.paths = paths
	p.mu.Unlock()

	return len(paths), nil
}

// LoadFile loads path addresses from a file. See Load for the format.
func (p *Pool) LoadFile(path string) (int, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided proxy list path is intentional
	if err != nil {
		return 0, fmt.Errorf("failed to open proxy list: %w", err)
	}
	defer f.Close()

	return p.Load(f)
}

// Select returns one uniformly random path from the pool.
// The second return value is false when the pool is empty.
// Selection does not remove or mark the path; the same path may be
// handed to any number of concurrent callers.
func (p *Pool) Select() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.paths) == 0 {
		return "", false
	}
	return p.paths[rand.Intn(len(p.paths))], true
}

// Len returns the number of paths currently held.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.paths)
}
