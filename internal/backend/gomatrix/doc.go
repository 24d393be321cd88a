// Package gomatrix adapts github.com/skelterjohn/go.matrix to the matrix
// interface.
//
// The engine is only compiled with the "gomatrix" build tag. Without it, New
// reports matrix.ErrBackendAbsent and discovery skips the backend silently.
//
// The engine has no pivoted LU export, no pseudo-inverse and no mean
// reduction; those operations fail with matrix.ErrUnsupported.
package gomatrix

// Name is the registry identifier of this backend.
const Name = "gomatrix"
