// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gomatrix provides a matrix backend on top of
// github.com/skelterjohn/go.matrix.
//
// The engine is compiled in only with the "gomatrix" build tag:
//
//	go build -tags gomatrix ./...
//
// Without it, New returns an error and the backend is not listed by
// matrix.Backends.
package gomatrix

import (
	internalgomatrix "github.com/born-ml/linalg/internal/backend/gomatrix"
	"github.com/born-ml/linalg/matrix"
)

// Name is the registry identifier of this backend.
const Name = internalgomatrix.Name

// Available reports whether the engine is compiled into this binary.
const Available = internalgomatrix.Available

// New creates a gomatrix backend, or fails when the engine is not compiled in.
func New() (matrix.Backend, error) {
	return internalgomatrix.New()
}
