package main

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"

	"github.com/runnerr0/dayreport/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		// go-flags has already printed its own parse errors.
		if _, ok := err.(*goflags.Error); !ok {
			fmt.Fprintf(os.Stderr, "dayreport: %v\n", err)
		}
		os.Exit(1)
	}
}
