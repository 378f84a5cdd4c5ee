package main

import (
	"github.com/packio/bitpack/cmd/packcli/cmd"
)

// Set at build time via -ldflags.
var (
	version = "development"
	commit  = ""
)

func main() {
	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
