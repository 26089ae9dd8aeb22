package main

import (
	"os"

	"github.com/tascade/tascade/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
