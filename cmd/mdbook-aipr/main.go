package main

import (
	"fmt"
	"os"

	"github.com/vectorinstitute/mdbook-aipr/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
