package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parallelConfig() Config {
	return Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
}

func TestFor(t *testing.T) {
	for name, cfg := range map[string]Config{
		"parallel":   parallelConfig(),
		"sequential": {Enabled: false},
		"default":    DefaultConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			seen := make([]int32, 1000)
			For(len(seen), func(i int) {
				atomic.AddInt32(&seen[i], 1)
			}, cfg)
			for i, v := range seen {
				require.EqualValues(t, 1, v, "index %d", i)
			}
		})
	}
}

func TestFor_SmallChunk(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1
	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
	assert.True(t, cfg.Sequential(n))
}

func TestForErr_VisitsAll(t *testing.T) {
	var counter int64
	err := ForErr(context.Background(), 200, func(_ context.Context, _ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}, parallelConfig())

	require.NoError(t, err)
	assert.Equal(t, int64(200), counter)
}

func TestForErr_ReturnsFailure(t *testing.T) {
	boom := errors.New("boom")
	for name, cfg := range map[string]Config{
		"parallel":   parallelConfig(),
		"sequential": {Enabled: false},
	} {
		t.Run(name, func(t *testing.T) {
			err := ForErr(context.Background(), 50, func(_ context.Context, i int) error {
				if i == 17 {
					return boom
				}
				return nil
			}, cfg)
			require.ErrorIs(t, err, boom)
		})
	}
}

func TestForErr_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter int64
	err := ForErr(ctx, 10, func(_ context.Context, _ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}, Config{Enabled: false})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, counter)
}

func TestDefaultConfig_EnvDisables(t *testing.T) {
	t.Setenv(EnvNoParallel, "true")
	assert.False(t, DefaultConfig().Enabled)

	t.Setenv(EnvNoParallel, "not-a-bool")
	cfg := DefaultConfig()
	assert.Positive(t, cfg.NumWorkers)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}
