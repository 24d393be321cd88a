// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the public API for backend-agnostic dense matrices.
//
// A Matrix is always created by a Backend and can only be combined with
// matrices of the same backend. Backends are discovered at first use:
//   - gonum: gonum.org/v1/gonum/mat
//   - gomatrix: github.com/skelterjohn/go.matrix (build tag "gomatrix")
//   - dense: pure Go fallback
//
// The first live backend in that order is the default. Set LINALG_BACKEND to
// prefer another one.
//
// Example:
//
//	a, err := matrix.FromSlice([]float64{0, 1, -1, 0}, 2, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e, err := matrix.Expm(a)  // rotation by one radian
package matrix
