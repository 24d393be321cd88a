// Package main provides the linalg CLI.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/born-ml/linalg/internal/registry"
	"github.com/born-ml/linalg/matrix"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("linalg %s\n", version)
	case "backends":
		backends()
	case "expm":
		name := ""
		if len(os.Args) > 2 {
			name = os.Args[2]
		}
		expm(name)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("linalg - backend-agnostic dense matrices for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version          Show version")
	fmt.Println("  backends         List live and skipped backends")
	fmt.Println("  expm [backend]   Exponentiate a 2x2 rotation generator")
	fmt.Println("")
	fmt.Printf("Set %s to choose the default backend.\n", registry.EnvBackend)
}

func backends() {
	r := registry.Global()
	def, err := r.Default()
	if err != nil {
		log.Fatalf("backends: %v", err)
	}

	fmt.Println("Live:")
	for _, name := range r.Names() {
		marker := " "
		if name == def.Name() {
			marker = "*"
		}
		dt, err := r.DType(name)
		if err != nil {
			log.Fatalf("backends: %v", err)
		}
		fmt.Printf("  %s %-10s %s (%d bytes/element)\n", marker, name, dt, dt.Size())
	}
	if skipped := r.Skipped(); len(skipped) > 0 {
		fmt.Println("Skipped:")
		for _, s := range skipped {
			fmt.Printf("    %s: %v\n", s.Name, s.Err)
		}
	}
}

func expm(name string) {
	var (
		b   matrix.Backend
		err error
	)
	if name == "" {
		b, err = matrix.Default()
	} else {
		b, err = matrix.Use(name)
	}
	if err != nil {
		log.Fatalf("expm: %v", err)
	}

	a, err := b.FromSlice([]float64{0, 1, -1, 0}, 2, 2)
	if err != nil {
		log.Fatalf("expm: %v", err)
	}
	e, err := matrix.Expm(a)
	if err != nil {
		log.Fatalf("expm: %v", err)
	}

	fmt.Printf("Backend: %s\n\n", b.Name())
	fmt.Printf("A =\n%s\n", matrix.Format(a))
	fmt.Printf("expm(A) =\n%s", matrix.Format(e))
}
