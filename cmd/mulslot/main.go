// Package main provides the mulslot CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/mulslot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
