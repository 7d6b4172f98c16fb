// Command brainspread captures notes and enriches them with a summary and
// topical labels.
package main

import (
	"os"

	"github.com/custodia-labs/brainspread/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
