package main

import (
	"os"

	"github.com/rgrove/selleck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
