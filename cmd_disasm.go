package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// disasmCmd compiles a Monke source file and prints its disassembled bytecode.
type disasmCmd struct {
	constants bool
}

func (*disasmCmd) Name() string { return "disasm" }
func (*disasmCmd) Synopsis() string {
	return "compile a file and print its disassembled bytecode"
}
func (*disasmCmd) Usage() string {
	return `disasm [-constants] <file>:
  Compile a Monke script and print its instructions in human-readable form.
`
}

func (d *disasmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&d.constants, "constants", false, "also print the constant pool")
}

func (d *disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		_, _ = fmt.Fprintln(os.Stderr, "disasm: a file path is required")
		return subcommands.ExitUsageError
	}

	//nolint:gosec // the path comes from a trusted CLI argument, not untrusted input
	content, err := os.ReadFile(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "disasm: reading %s: %s\n", args[0], err)
		return subcommands.ExitFailure
	}

	code, status := compileSource(string(content))
	if status != subcommands.ExitSuccess {
		return status
	}

	fmt.Print(code.Instructions.String())

	if d.constants {
		fmt.Println("\nConstants:")
		for i, c := range code.Constants {
			fmt.Printf("%4d %s\n", i, c.Inspect())
		}
	}

	return subcommands.ExitSuccess
}
