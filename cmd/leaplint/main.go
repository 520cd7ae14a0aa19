// Package main provides the leaplint command.
package main

import (
	"os"

	"github.com/leapstack-labs/leaplint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
