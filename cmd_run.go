package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"simian/compiler"
	"simian/lexer"
	"simian/parser"
	"simian/vm"
)

// runCmd compiles and executes a Monke source file.
type runCmd struct {
	debug bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "execute a Monke script file" }
func (*runCmd) Usage() string {
	return `run [-debug] <file>:
  Compile and execute a Monke script file.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "print the top of the VM stack after execution")
}

func (r *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		_, _ = fmt.Fprintln(os.Stderr, "run: a file path is required")
		return subcommands.ExitUsageError
	}

	absolute, err := filepath.Abs(filepath.Clean(args[0]))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "run: resolving path: %s\n", err)
		return subcommands.ExitFailure
	}

	//nolint:gosec // the path comes from a trusted CLI argument, not untrusted input
	content, err := os.ReadFile(absolute)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "run: reading %s: %s\n", absolute, err)
		return subcommands.ExitFailure
	}

	code, status := compileSource(string(content))
	if status != subcommands.ExitSuccess {
		return status
	}

	machine := vm.New(code)
	if err := machine.Run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "run: VM error: %s\n", err)
		return subcommands.ExitFailure
	}

	if r.debug {
		if top := machine.LastPoppedStackItem(); top != nil {
			fmt.Println(top.Inspect())
		}
	}

	return subcommands.ExitSuccess
}

// compileSource parses and compiles src, printing any parser or compiler
// errors to stderr. It is shared by the run, eval, and disasm subcommands.
func compileSource(src string) (*compiler.Bytecode, subcommands.ExitStatus) {
	l := lexer.New(src)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) != 0 {
		printParserErrors(p.Errors())
		return nil, subcommands.ExitFailure
	}

	comp := compiler.New()
	if err := comp.Compile(program); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "compilation error: %s\n", err)
		return nil, subcommands.ExitFailure
	}

	return comp.Bytecode(), subcommands.ExitSuccess
}

func printParserErrors(errors []string) {
	_, _ = fmt.Fprintln(os.Stderr, "parser errors:")
	for _, msg := range errors {
		_, _ = fmt.Fprintln(os.Stderr, "\t"+msg)
	}
}
