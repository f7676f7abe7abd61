package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"simian/vm"
)

// evalCmd compiles and runs a single Monke expression given on the command line.
type evalCmd struct{}

func (*evalCmd) Name() string     { return "eval" }
func (*evalCmd) Synopsis() string { return "evaluate a Monke expression and print the result" }
func (*evalCmd) Usage() string {
	return `eval <expression>:
  Compile and run a single Monke expression, printing its result.
`
}

func (*evalCmd) SetFlags(_ *flag.FlagSet) {}

func (*evalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		_, _ = fmt.Fprintln(os.Stderr, "eval: an expression is required")
		return subcommands.ExitUsageError
	}

	code, status := compileSource(strings.Join(args, " "))
	if status != subcommands.ExitSuccess {
		return status
	}

	machine := vm.New(code)
	if err := machine.Run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "eval: VM error: %s\n", err)
		return subcommands.ExitFailure
	}

	if top := machine.LastPoppedStackItem(); top != nil {
		fmt.Println(top.Inspect())
	}

	return subcommands.ExitSuccess
}
