package main

import (
	"os"

	"github.com/mmcdole/lorastudio/internal/cli"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	cli.SetVersion(Version)

	if err := cli.Execute(); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
