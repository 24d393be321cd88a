// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gonum provides a matrix backend on top of gonum.org/v1/gonum/mat.
package gonum

import (
	"gonum.org/v1/gonum/mat"

	internalgonum "github.com/born-ml/linalg/internal/backend/gonum"
	"github.com/born-ml/linalg/matrix"
)

// Name is the registry identifier of this backend.
const Name = internalgonum.Name

// Backend is the gonum backend.
type Backend = internalgonum.Backend

// Compile-time check that Backend implements matrix.Backend.
var _ matrix.Backend = (*Backend)(nil)

// New creates a gonum backend.
func New() *Backend {
	return internalgonum.New()
}

// Wrap adopts d as a matrix of b without copying, so writes through either
// are visible to the other.
func Wrap(b *Backend, d *mat.Dense) matrix.Matrix {
	return b.Wrap(d)
}
