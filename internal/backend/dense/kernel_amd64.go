//go:build amd64

package dense

import "golang.org/x/sys/cpu"

// math.FMA is emulated in software without the FMA3 extension, which makes
// it far slower than a separate multiply and add.
var useFMA = cpu.X86.HasFMA
