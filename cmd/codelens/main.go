// Command codelens serves the codelens HTTP API and MCP server and provides
// local parsing and explanation tools.
package main

import (
	"os"

	"github.com/custodia-labs/codelens/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
