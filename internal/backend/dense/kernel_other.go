//go:build !amd64 && !arm64

package dense

var useFMA = false
