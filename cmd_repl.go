package main

import (
	"context"
	"flag"
	"fmt"
	"os/user"

	"github.com/google/subcommands"

	"simian/repl"
)

// replCmd starts the interactive bubbletea-based REPL.
type replCmd struct {
	debug   bool
	noColor bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive REPL session" }
func (*replCmd) Usage() string {
	return `repl [-debug] [-no-color]:
  Start an interactive Monke REPL.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "print the bytecode, any errors, and the total evaluation time for each evaluation")
	f.BoolVar(&r.noColor, "no-color", false, "disable syntax highlighting and colored output")
}

func (r *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	username := "unknown"
	if usr, err := user.Current(); err == nil {
		username = usr.Username
	}

	fmt.Println("Hello", username+",", "welcome to the simian compiler!")
	fmt.Println("Feel free to type in Monke code. (Ctrl+D or Ctrl+C to exit)")

	repl.Start(username, repl.Options{
		NoColor: r.noColor,
		Debug:   r.debug,
	})

	return subcommands.ExitSuccess
}
