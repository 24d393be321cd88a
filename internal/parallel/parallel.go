// Package parallel fans loop iterations out to goroutines for the dense
// kernels and the column-wise solves of the matrix exponential.
package parallel

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// EnvNoParallel disables parallel fan-out when set to a true value
// (anything strconv.ParseBool accepts).
const EnvNoParallel = "LINALG_NO_PARALLEL"

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on concurrent goroutines.
	MinChunkSize int  // Below this many iterations work stays sequential.
}

// DefaultConfig returns defaults based on CPU count, honoring EnvNoParallel.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	cfg := Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
	if v, ok := os.LookupEnv(EnvNoParallel); ok {
		if off, err := strconv.ParseBool(v); err == nil && off {
			cfg.Enabled = false
		}
	}
	return cfg
}

// Sequential reports whether n iterations would run on the calling goroutine.
func (c Config) Sequential(n int) bool {
	return !c.Enabled || c.NumWorkers <= 1 || n < c.MinChunkSize
}

func (c Config) chunk(n int) int {
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize, 1)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if cfg.Sequential(n) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	size := cfg.chunk(n)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForErr executes f(ctx, i) for i in [0, n) and returns the first error.
//
// In parallel mode at most cfg.NumWorkers iterations run at once and the
// context passed to f is canceled after the first failure, so long-running
// iterations may stop early. Sequential mode stops at the first error.
func ForErr(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if cfg.Sequential(n) {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorkers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i)
		})
	}
	return g.Wait()
}
