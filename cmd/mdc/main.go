// Command mdc compiles a MiniDecaf source file to RISC-V 64-bit
// assembly text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/arc-language/minidecaf-riscv/codegen"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mdc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	outPath := fs.String("o", "", "output assembly file path (default: stdout)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: mdc [-o output.s] <source.dc>")
	}
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	srcPath := fs.Arg(0)
	srcBytes, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdc: %v\n", err)
		return 1
	}

	out, err := newOutput(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdc: %v\n", err)
		return 1
	}
	defer out.Close()

	if err := codegen.GenerateAssembly(string(srcBytes), out); err != nil {
		fmt.Fprintf(os.Stderr, "mdc: %v\n", err)
		return 1
	}
	return 0
}

// newOutput opens path for writing, or wraps stdout (which must never
// be closed) when path is empty.
func newOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
