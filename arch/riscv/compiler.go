package riscv

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/emitter"
	"github.com/arc-language/minidecaf-riscv/scope"
	"github.com/arc-language/minidecaf-riscv/types"
)

// funcSig is the signature of one function, recorded when its
// definition is visited and consulted at call sites.
type funcSig struct {
	Params []types.Type
	Return types.Type
}

// compiler holds all translator state for one program compilation.
// It is constructed fresh by Compile and torn down when Compile
// returns; there is no persistent compiler value across programs.
type compiler struct {
	out    *emitter.Emitter
	scopes *scope.Manager // reset to a fresh stack at the start of every function
	funcs  map[string]funcSig
	curRet types.Type
	curFn  string
	labels int
}

// Compile translates an entire program, emitting RISC-V assembly
// through out: its function definitions, plus a synthesized main
// wrapping the top-level statements when the source didn't define
// main explicitly. A source that defines main and also has top-level
// statements is rejected, since those statements would have nowhere
// to go.
func Compile(prog *ast.Program, out *emitter.Emitter) error {
	c := &compiler{
		out:   out,
		funcs: make(map[string]funcSig),
	}

	hasExplicitMain := false
	for _, fn := range prog.Funcs {
		if fn.Name == "main" {
			hasExplicitMain = true
		}
		if err := c.compileFunc(fn); err != nil {
			return fmt.Errorf("in function %s: %w", fn.Name, err)
		}
	}

	if hasExplicitMain {
		if len(prog.TopStmts) > 0 {
			return fmt.Errorf("program defines main() explicitly and also has top-level statements")
		}
		return nil
	}

	main := &ast.FuncDecl{
		Name:       "main",
		ReturnType: types.Int,
		Params:     nil,
		Body:       prog.TopStmts,
	}
	if err := c.compileFunc(main); err != nil {
		return fmt.Errorf("in function main: %w", err)
	}
	return nil
}

// newLabel allocates the next _L<n> branch target. The counter is
// never reset between functions, so labels are unique program-wide.
func (c *compiler) newLabel() string {
	l := fmt.Sprintf("_L%d", c.labels)
	c.labels++
	return l
}
