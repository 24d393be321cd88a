// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dense provides the pure Go matrix backend.
//
// It is always available and serves as the last fallback of backend
// discovery. Matrix products fan rows out over goroutines and use fused
// multiply-add on CPUs that have it. Set LINALG_NO_PARALLEL=1 to keep every
// kernel on the calling goroutine.
package dense

import (
	internaldense "github.com/born-ml/linalg/internal/backend/dense"
	"github.com/born-ml/linalg/internal/parallel"
	"github.com/born-ml/linalg/matrix"
)

// Name is the registry identifier of this backend.
const Name = internaldense.Name

// Backend is the pure Go backend.
type Backend = internaldense.Backend

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements matrix.Backend.
var _ matrix.Backend = (*Backend)(nil)

// New creates a dense backend with the default parallel configuration.
//
// Example:
//
//	b := dense.New()
//	a, _ := b.FromSlice([]float64{4, 2, 2, 3}, 2, 2)
//	l, err := a.Chol()
func New() *Backend {
	return internaldense.New()
}

// NewWithConfig creates a dense backend with an explicit parallel configuration.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internaldense.NewWithConfig(cfg)
}

// DefaultParallelConfig returns the parallel configuration used by New.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
