// Package codegen is the top-level driver: parse source text, then
// compile the resulting parse tree to RISC-V assembly text. It is the
// single public entry point cmd/mdc calls.
package codegen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arc-language/minidecaf-riscv/arch/riscv"
	"github.com/arc-language/minidecaf-riscv/emitter"
	"github.com/arc-language/minidecaf-riscv/frontend"
)

// GenerateAssembly parses src and writes the compiled RISC-V assembly
// to out.
func GenerateAssembly(src string, out io.Writer) error {
	prog, err := frontend.Parse(src)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	em := emitter.New(out)
	if err := riscv.Compile(prog, em); err != nil {
		return fmt.Errorf("compile error: %w", err)
	}
	return nil
}

// GenerateAssemblyText is a convenience wrapper returning the emitted
// assembly as a string, used by tests that assert on the emitted text.
func GenerateAssemblyText(src string) (string, error) {
	var buf bytes.Buffer
	if err := GenerateAssembly(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
