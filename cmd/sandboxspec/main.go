// Command sandboxspec decodes and validates test-job directive files.
package main

import (
	"github.com/alecthomas/kong"
)

// CLI defines the command-line interface structure.
type CLI struct {
	Parse    ParseCmd    `cmd:"" help:"Decode a single directive document and print it (JSON)"`
	Validate ValidateCmd `cmd:"" help:"Decode a directive file, exit 0 or report the first error"`
	Inspect  InspectCmd  `cmd:"" help:"Print decoded directives for a file (JSON)"`
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("sandboxspec"),
		kong.Description("Decode and inspect test-job directive files"),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
