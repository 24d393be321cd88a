package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/backend/dense"
	"github.com/born-ml/linalg/internal/backend/gomatrix"
	"github.com/born-ml/linalg/internal/backend/gonum"
	"github.com/born-ml/linalg/internal/matrix"
)

// brokenBackend passes construction but cannot build matrices.
type brokenBackend struct{ matrix.Backend }

func (brokenBackend) Name() string { return "broken" }
func (brokenBackend) Zeros(_, _ int) (matrix.Matrix, error) {
	return nil, errors.New("out of memory")
}

// float32Backend reports its matrices as float32.
type float32Backend struct{ matrix.Backend }

type float32Matrix struct{ matrix.Matrix }

func (float32Matrix) DType() matrix.DataType { return matrix.Float32 }

func (float32Backend) Name() string { return "half" }
func (b float32Backend) Zeros(rows, cols int) (matrix.Matrix, error) {
	m, err := b.Backend.Zeros(rows, cols)
	if err != nil {
		return nil, err
	}
	return float32Matrix{m}, nil
}

func candidate(name string, b matrix.Backend) Candidate {
	return Candidate{Name: name, New: func() (matrix.Backend, error) { return b, nil }}
}

func absent(name string) Candidate {
	return Candidate{Name: name, New: func() (matrix.Backend, error) {
		return nil, fmt.Errorf("%s: %w", name, matrix.ErrBackendAbsent)
	}}
}

func TestDiscover_OrderAndDefault(t *testing.T) {
	r := Discover([]Candidate{
		absent("missing"),
		candidate(dense.Name, dense.New()),
		candidate(gonum.Name, gonum.New()),
	})

	assert.Equal(t, []string{dense.Name, gonum.Name}, r.Names())
	assert.Len(t, r.Backends(), 2)
	assert.Empty(t, r.Skipped(), "absent candidates are not reported")

	b, err := r.Default()
	require.NoError(t, err)
	assert.Equal(t, dense.Name, b.Name())

	b, err = r.Lookup(gonum.Name)
	require.NoError(t, err)
	assert.Equal(t, gonum.Name, b.Name())

	_, err = r.Lookup("missing")
	require.ErrorIs(t, err, matrix.ErrUnknownBackend)
}

func TestDiscover_ZeroLive(t *testing.T) {
	r := Discover([]Candidate{absent("a"), absent("b")})

	assert.Empty(t, r.Names())
	_, err := r.Default()
	require.ErrorIs(t, err, matrix.ErrNoBackendAvailable)
	assert.Contains(t, err.Error(), "select a backend explicitly")

	_, err = Discover(nil).Default()
	require.ErrorIs(t, err, matrix.ErrNoBackendAvailable)
}

func TestDiscover_RecordsFailures(t *testing.T) {
	r := Discover([]Candidate{
		{Name: "panics", New: func() (matrix.Backend, error) { panic("driver crashed") }},
		{Name: "errors", New: func() (matrix.Backend, error) { return nil, errors.New("no device") }},
		{Name: "nil", New: func() (matrix.Backend, error) { return nil, nil }},
		{Name: "noctor"},
		candidate("broken", brokenBackend{}),
		candidate(dense.Name, dense.New()),
	})

	assert.Equal(t, []string{dense.Name}, r.Names())

	skipped := r.Skipped()
	require.Len(t, skipped, 5)
	names := make([]string, len(skipped))
	for i, s := range skipped {
		names[i] = s.Name
		require.Error(t, s.Err)
	}
	assert.Equal(t, []string{"panics", "errors", "nil", "noctor", "broken"}, names)
	assert.Contains(t, skipped[0].Err.Error(), "driver crashed")
	assert.Contains(t, skipped[4].Err.Error(), "out of memory")
}

func TestDiscover_DuplicateNames(t *testing.T) {
	first, second := dense.New(), dense.New()
	r := Discover([]Candidate{candidate(dense.Name, first), candidate(dense.Name, second)})

	require.Len(t, r.Backends(), 1)
	assert.Same(t, first, r.Backends()[0])
}

func TestDefault_Preferred(t *testing.T) {
	cands := []Candidate{candidate(gonum.Name, gonum.New()), candidate(dense.Name, dense.New())}

	r := discover(Config{Candidates: cands, Preferred: dense.Name})
	b, err := r.Default()
	require.NoError(t, err)
	assert.Equal(t, dense.Name, b.Name())

	// A preference for a backend that is not live falls back to order.
	r = discover(Config{Candidates: cands, Preferred: "cuda"})
	b, err = r.Default()
	require.NoError(t, err)
	assert.Equal(t, gonum.Name, b.Name())
}

func TestDefaultFor(t *testing.T) {
	half := float32Backend{dense.New()}
	cands := []Candidate{candidate(gonum.Name, gonum.New()), candidate("half", half), candidate(dense.Name, dense.New())}

	r := discover(Config{Candidates: cands})
	dt, err := r.DType("half")
	require.NoError(t, err)
	assert.Equal(t, matrix.Float32, dt)
	dt, err = r.DType(dense.Name)
	require.NoError(t, err)
	assert.Equal(t, matrix.Float64, dt)
	_, err = r.DType("cuda")
	require.ErrorIs(t, err, matrix.ErrUnknownBackend)

	b, err := r.DefaultFor(matrix.Float64)
	require.NoError(t, err)
	assert.Equal(t, gonum.Name, b.Name())
	b, err = r.DefaultFor(matrix.Float32)
	require.NoError(t, err)
	assert.Equal(t, "half", b.Name())

	_, err = r.DefaultFor(matrix.Int)
	require.ErrorIs(t, err, matrix.ErrNoBackendAvailable)
	assert.Contains(t, err.Error(), "int")

	// The preference only applies among backends of the requested kind.
	r = discover(Config{Candidates: cands, Preferred: "half"})
	b, err = r.DefaultFor(matrix.Float64)
	require.NoError(t, err)
	assert.Equal(t, gonum.Name, b.Name())
	r = discover(Config{Candidates: cands, Preferred: dense.Name})
	b, err = r.DefaultFor(matrix.Float64)
	require.NoError(t, err)
	assert.Equal(t, dense.Name, b.Name())
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv(EnvBackend, " dense ")
	cfg := DefaultConfig()
	assert.Equal(t, dense.Name, cfg.Preferred)

	names := make([]string, len(cfg.Candidates))
	for i, c := range cfg.Candidates {
		names[i] = c.Name
	}
	assert.Equal(t, []string{gonum.Name, gomatrix.Name, dense.Name}, names)
}

func TestDefaultCandidates_Discover(t *testing.T) {
	r := Discover(DefaultCandidates())

	want := []string{gonum.Name, dense.Name}
	if gomatrix.Available {
		want = []string{gonum.Name, gomatrix.Name, dense.Name}
	}
	assert.Equal(t, want, r.Names())
	assert.Empty(t, r.Skipped())
}

func TestGlobal(t *testing.T) {
	t.Cleanup(Reset)

	t.Setenv(EnvBackend, dense.Name)
	Reset()
	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, dense.Name, b.Name())
	assert.Same(t, Global(), Global())

	Configure(Config{Candidates: []Candidate{absent("x")}})
	_, err = Default()
	require.ErrorIs(t, err, matrix.ErrNoBackendAvailable)

	Configure(Config{Candidates: []Candidate{candidate(gonum.Name, gonum.New())}})
	b, err = Default()
	require.NoError(t, err)
	assert.Equal(t, gonum.Name, b.Name())
}

func TestGlobal_ConcurrentFirstUse(t *testing.T) {
	t.Cleanup(Reset)

	var calls int
	var callsMu sync.Mutex
	Configure(Config{Candidates: []Candidate{{
		Name: dense.Name,
		New: func() (matrix.Backend, error) {
			callsMu.Lock()
			calls++
			callsMu.Unlock()
			return dense.New(), nil
		},
	}}})

	var wg sync.WaitGroup
	regs := make([]*Registry, 16)
	for i := range regs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			regs[i] = Global()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, r := range regs {
		assert.Same(t, regs[0], r)
	}
}
