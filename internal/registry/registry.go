// Package registry discovers live matrix backends and selects the default one.
package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/born-ml/linalg/internal/backend/dense"
	"github.com/born-ml/linalg/internal/backend/gomatrix"
	"github.com/born-ml/linalg/internal/backend/gonum"
	"github.com/born-ml/linalg/internal/matrix"
)

// EnvBackend names the preferred default backend.
const EnvBackend = "LINALG_BACKEND"

// Candidate is a backend that discovery may admit.
type Candidate struct {
	Name string
	New  func() (matrix.Backend, error)
}

// Skipped records a candidate that failed its probe.
type Skipped struct {
	Name string
	Err  error
}

// Config controls discovery and default selection.
type Config struct {
	// Candidates are probed in order; the order is the default tie-break.
	Candidates []Candidate
	// Preferred names the default backend when it is live. Empty means
	// the first live candidate.
	Preferred string
}

// DefaultCandidates returns the shipped backends in preference order.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: gonum.Name, New: func() (matrix.Backend, error) { return gonum.New(), nil }},
		{Name: gomatrix.Name, New: gomatrix.New},
		{Name: dense.Name, New: func() (matrix.Backend, error) { return dense.New(), nil }},
	}
}

// DefaultConfig returns the shipped candidates with the preference read
// from EnvBackend.
func DefaultConfig() Config {
	return Config{
		Candidates: DefaultCandidates(),
		Preferred:  strings.TrimSpace(os.Getenv(EnvBackend)),
	}
}

// Registry is an immutable ordered set of live backends.
type Registry struct {
	live      []matrix.Backend
	dtypes    []matrix.DataType
	skipped   []Skipped
	preferred string
}

// Discover probes every candidate and returns the registry of live ones.
// A candidate is live when New succeeds and the backend builds a 1×1 zero
// matrix. Candidates whose engine is not compiled in (ErrBackendAbsent) are
// dropped silently; any other failure, panics included, is kept in Skipped.
func Discover(candidates []Candidate) *Registry {
	return discover(Config{Candidates: candidates})
}

func discover(cfg Config) *Registry {
	r := &Registry{preferred: cfg.Preferred}
	seen := make(map[string]bool, len(cfg.Candidates))
	for _, c := range cfg.Candidates {
		if seen[c.Name] {
			continue
		}
		b, dt, err := probe(c)
		switch {
		case err == nil:
			seen[c.Name] = true
			r.live = append(r.live, b)
			r.dtypes = append(r.dtypes, dt)
		case errors.Is(err, matrix.ErrBackendAbsent):
		default:
			r.skipped = append(r.skipped, Skipped{Name: c.Name, Err: err})
		}
	}
	return r
}

// probe admits a candidate and reports the element kind of its matrices.
func probe(c Candidate) (b matrix.Backend, dt matrix.DataType, err error) {
	defer func() {
		if p := recover(); p != nil {
			b, err = nil, fmt.Errorf("probe %s: panic: %v", c.Name, p)
		}
	}()

	if c.New == nil {
		return nil, 0, fmt.Errorf("probe %s: no constructor", c.Name)
	}
	b, err = c.New()
	if err != nil {
		return nil, 0, err
	}
	if b == nil {
		return nil, 0, fmt.Errorf("probe %s: constructor returned nil backend", c.Name)
	}
	m, err := b.Zeros(1, 1)
	if err != nil {
		return nil, 0, fmt.Errorf("probe %s: %w", c.Name, err)
	}
	if m == nil || m.Rows() != 1 || m.Cols() != 1 {
		return nil, 0, fmt.Errorf("probe %s: zero matrix has wrong shape", c.Name)
	}
	return b, m.DType(), nil
}

// Backends returns the live backends in discovery order.
func (r *Registry) Backends() []matrix.Backend {
	return append([]matrix.Backend(nil), r.live...)
}

// Names returns the live backend names in discovery order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.live))
	for i, b := range r.live {
		names[i] = b.Name()
	}
	return names
}

// Skipped returns the candidates that failed their probe.
func (r *Registry) Skipped() []Skipped {
	return append([]Skipped(nil), r.skipped...)
}

// Lookup returns the live backend called name.
func (r *Registry) Lookup(name string) (matrix.Backend, error) {
	for _, b := range r.live {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (live: %s)", matrix.ErrUnknownBackend, name, strings.Join(r.Names(), ", "))
}

// Default returns the preferred backend if it is live, otherwise the first
// live one.
func (r *Registry) Default() (matrix.Backend, error) {
	if len(r.live) == 0 {
		return nil, fmt.Errorf("%w: select a backend explicitly or build with a matrix engine (-tags gomatrix)",
			matrix.ErrNoBackendAvailable)
	}
	if r.preferred != "" {
		if b, err := r.Lookup(r.preferred); err == nil {
			return b, nil
		}
	}
	return r.live[0], nil
}

// DType returns the element kind of the matrices built by the live backend
// called name.
func (r *Registry) DType(name string) (matrix.DataType, error) {
	for i, b := range r.live {
		if b.Name() == name {
			return r.dtypes[i], nil
		}
	}
	return 0, fmt.Errorf("%w: %q", matrix.ErrUnknownBackend, name)
}

// DefaultFor returns the default backend among those whose matrices hold dt.
// The preferred backend wins when it qualifies.
func (r *Registry) DefaultFor(dt matrix.DataType) (matrix.Backend, error) {
	var first matrix.Backend
	for i, b := range r.live {
		if r.dtypes[i] != dt {
			continue
		}
		if b.Name() == r.preferred {
			return b, nil
		}
		if first == nil {
			first = b
		}
	}
	if first == nil {
		return nil, fmt.Errorf("%w: no live backend builds %s matrices", matrix.ErrNoBackendAvailable, dt)
	}
	return first, nil
}

var (
	mu     sync.Mutex
	once   = new(sync.Once)
	global *Registry
	config *Config
)

// Global returns the process-wide registry, discovering it on first use.
// Concurrent first calls share a single discovery.
func Global() *Registry {
	for {
		mu.Lock()
		o := once
		mu.Unlock()

		o.Do(func() {
			mu.Lock()
			cfg := DefaultConfig()
			if config != nil {
				cfg = *config
			}
			mu.Unlock()

			r := discover(cfg)

			mu.Lock()
			if once == o {
				global = r
			}
			mu.Unlock()
		})

		mu.Lock()
		if once == o && global != nil {
			g := global
			mu.Unlock()
			return g
		}
		// Reset or Configure ran concurrently; discover again.
		mu.Unlock()
	}
}

// Configure sets the configuration used by the next discovery and clears
// the current registry.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	config = &cfg
	once = new(sync.Once)
	global = nil
}

// Reset clears the process-wide registry and configuration. The next
// Global call rediscovers with DefaultConfig.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	config = nil
	once = new(sync.Once)
	global = nil
}

// Default returns the default backend of the process-wide registry.
func Default() (matrix.Backend, error) {
	return Global().Default()
}
