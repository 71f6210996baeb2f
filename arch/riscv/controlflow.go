package riscv

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/types"
)

// compileIf allocates a then-label and a join label (plus an
// else-label when there is an else arm) and emits the condition, the
// conditional branch, both arms, and the join.
func (c *compiler) compileIf(s *ast.IfStmt) error {
	thenLabel := c.newLabel()
	outLabel := c.newLabel()
	var elseLabel string
	if s.Else != nil {
		elseLabel = c.newLabel()
	}

	condType, err := c.translateExpr(s.Cond)
	if err != nil {
		return err
	}
	if !condType.Equal(types.Int) {
		return fmt.Errorf("if condition must be int, got %s", condType)
	}

	c.out.PopReg("t1")
	c.out.Instr("bnez t1,%s", thenLabel)
	if s.Else != nil {
		c.out.Instr("j %s", elseLabel)
	} else {
		c.out.Instr("j %s", outLabel)
	}

	c.out.Label(thenLabel)
	if err := c.compileStmt(s.Then); err != nil {
		return err
	}
	c.out.Instr("j %s", outLabel)

	if s.Else != nil {
		c.out.Label(elseLabel)
		if err := c.compileStmt(s.Else); err != nil {
			return err
		}
		c.out.Instr("j %s", outLabel)
	}

	c.out.Label(outLabel)
	return nil
}

// compileCall resolves the callee's signature, checks arity and
// per-argument types, materializes arguments into a0..a7 left to
// right, and emits the call. The return value in a0 is pushed so the
// call leaves one word on the stack like every other expression.
func (c *compiler) compileCall(e *ast.CallExpr) (types.Type, error) {
	sig, ok := c.funcs[e.Callee]
	if !ok {
		return types.Type{}, fmt.Errorf("call to undeclared function %q", e.Callee)
	}
	if len(e.Args) != len(sig.Params) {
		return types.Type{}, fmt.Errorf("%s expects %d arguments, got %d", e.Callee, len(sig.Params), len(e.Args))
	}
	if len(e.Args) > MaxRegArgs {
		return types.Type{}, fmt.Errorf("call to %s: more than %d arguments are not supported", e.Callee, MaxRegArgs)
	}

	c.out.Comment("call %s", e.Callee)
	for i, arg := range e.Args {
		argType, err := c.translateExpr(arg)
		if err != nil {
			return types.Type{}, err
		}
		if !argType.Equal(sig.Params[i]) {
			return types.Type{}, fmt.Errorf("argument %d to %s: expected %s, got %s", i, e.Callee, sig.Params[i], argType)
		}
		c.out.PopReg(ArgRegs[i])
	}

	c.out.Instr("call %s", e.Callee)
	c.out.PushReg("a0")
	return sig.Return, nil
}
