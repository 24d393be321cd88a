//go:build arm64

package dense

import "golang.org/x/sys/cpu"

// FMADD is part of the base ARMv8 floating point unit.
var useFMA = cpu.ARM64.HasFP
