package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// versionCmd prints the build version.
type versionCmd struct{}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "print the version and exit" }
func (*versionCmd) Usage() string {
	return `version:
  Print the simian compiler version.
`
}

func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("simian %s\n", version)
	return subcommands.ExitSuccess
}
