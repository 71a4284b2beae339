// admin-console serves the user administration console and its CLI.
package main

import "github.com/99minutos/admin-console/internal/cli"

// Build-time variables set via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.Execute()
}
