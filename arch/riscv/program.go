package riscv

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/scope"
	"github.com/arc-language/minidecaf-riscv/types"
)

// compileFunc records fn's signature, then emits its prologue, body,
// and epilogue with a fresh scope stack.
func (c *compiler) compileFunc(fn *ast.FuncDecl) error {
	paramTypes := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		paramTypes[i] = p.Type
	}
	c.funcs[fn.Name] = funcSig{Params: paramTypes, Return: fn.ReturnType}

	c.curFn = fn.Name
	c.curRet = fn.ReturnType
	c.scopes = scope.New()

	if err := c.emitPrologue(fn); err != nil {
		return err
	}

	for _, s := range fn.Body {
		if err := c.compileStmt(s); err != nil {
			return err
		}
	}

	c.emitEpilogue(fn.Name)
	return nil
}

// emitPrologue pushes ra and fp, establishes the new frame base, and
// materializes every parameter's incoming value into its stack slot.
// Parameters beyond MaxRegArgs are a compile error; there is no
// stack-argument convention for them.
func (c *compiler) emitPrologue(fn *ast.FuncDecl) error {
	if len(fn.Params) > MaxRegArgs {
		return fmt.Errorf("more than %d parameters are not supported", MaxRegArgs)
	}

	c.out.Global(fn.Name)
	c.out.Label(fn.Name)
	c.out.PushReg("ra")
	c.out.PushReg("fp")
	c.out.Instr("mv fp,sp")

	for i, p := range fn.Params {
		sym, err := c.scopes.Declare(p.Name, p.Type)
		if err != nil {
			return err
		}
		c.out.Comment("param %s -> %d(fp)", p.Name, sym.Offset)
		c.out.PushReg(ArgRegs[i])
	}
	return nil
}

// emitEpilogue tears down the outermost scope, then restores fp and
// ra and returns. The return value, when a return statement jumped
// here, sits at 0(sp).
func (c *compiler) emitEpilogue(name string) {
	if n := c.scopes.Pop(); n > 0 {
		c.out.PopN(n / types.WordSize)
	}

	c.out.Label(name + "_exit")
	c.out.Instr("ld a0,0(sp)")
	c.out.Instr("mv sp,fp")
	c.out.PopReg("fp")
	c.out.PopReg("ra")
	c.out.Instr("jr ra")
}
