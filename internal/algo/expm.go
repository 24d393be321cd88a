// Package algo implements backend-independent algorithms on top of the
// matrix interface.
package algo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/linalg/internal/matrix"
	"github.com/born-ml/linalg/internal/parallel"
)

var (
	// ErrDegree reports a Padé degree outside {3, 5, 7, 9, 13}.
	ErrDegree = errors.New("algo: unsupported Padé degree")

	// ErrNonFinite reports an input whose norm is NaN or infinite.
	ErrNonFinite = errors.New("algo: matrix has non-finite entries")
)

// Config controls Expm.
type Config struct {
	// Parallel fans out the column solves of Q·X = P.
	Parallel parallel.Config
}

// DefaultConfig returns the default Expm configuration.
func DefaultConfig() Config {
	return Config{Parallel: parallel.DefaultConfig()}
}

// Expm returns the matrix exponential of a square matrix using
// scaling-and-squaring with Padé approximants. The result is produced by
// the backend of a.
func Expm(a matrix.Matrix) (matrix.Matrix, error) {
	return ExpmWithConfig(context.Background(), a, DefaultConfig())
}

// ExpmWithConfig is Expm with explicit cancellation and configuration.
func ExpmWithConfig(ctx context.Context, a matrix.Matrix, cfg Config) (matrix.Matrix, error) {
	if err := matrix.CheckSquare("Expm", a); err != nil {
		return nil, err
	}
	norm, err := a.Norm(matrix.NormOne)
	if err != nil {
		return nil, fmt.Errorf("Expm: %w", err)
	}
	if math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("Expm: %w", ErrNonFinite)
	}

	degree, s := PadeDegree(norm)
	if s > 0 {
		a = a.DivScalar(math.Exp2(float64(s)))
	}
	u, v, err := Pade(a, degree)
	if err != nil {
		return nil, fmt.Errorf("Expm: %w", err)
	}

	p, err := v.Add(u)
	if err != nil {
		return nil, fmt.Errorf("Expm: %w", err)
	}
	q, err := v.Sub(u)
	if err != nil {
		return nil, fmt.Errorf("Expm: %w", err)
	}
	r, err := SolveColumns(ctx, q, p, cfg.Parallel)
	if err != nil {
		return nil, fmt.Errorf("Expm: %w", err)
	}

	for i := 0; i < s; i++ {
		if r, err = r.Mul(r); err != nil {
			return nil, fmt.Errorf("Expm: squaring %d: %w", i, err)
		}
	}
	return r, nil
}

// SolveColumns returns X with a·X = b, solving one column of b at a time
// with the backend's Solve and assembling X column by column. Backends only
// need to handle a single right-hand side. When a implements
// matrix.Factorizer it is factored once and every column reuses the factors.
// Column solves run through cfg; assembly is sequential.
func SolveColumns(ctx context.Context, a, b matrix.Matrix, cfg parallel.Config) (matrix.Matrix, error) {
	if err := matrix.CheckSolve("SolveColumns", a, b); err != nil {
		return nil, err
	}
	solve := a.Solve
	if f, ok := a.(matrix.Factorizer); ok {
		s, err := f.Factorize()
		if err != nil {
			return nil, err
		}
		solve = s.Solve
	}
	cols := make([]matrix.Matrix, b.Cols())
	err := parallel.ForErr(ctx, b.Cols(), func(_ context.Context, j int) error {
		bj, err := b.Col(j)
		if err != nil {
			return err
		}
		xj, err := solve(bj)
		if err != nil {
			return fmt.Errorf("column %d: %w", j, err)
		}
		cols[j] = xj
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}

	x, err := a.Backend().Zeros(a.Cols(), b.Cols())
	if err != nil {
		return nil, err
	}
	for j, xj := range cols {
		if err := x.SetCol(j, xj); err != nil {
			return nil, err
		}
	}
	return x, nil
}
