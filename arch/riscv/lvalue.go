package riscv

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/types"
)

// translateLvalue emits code that leaves exactly one word on sp: the
// ADDRESS the expression denotes, never its value. The three lvalue
// forms (a bare name, a dereference, an index) are the only
// expressions that can appear on the left of an assignment.
func (c *compiler) translateLvalue(e ast.Expr) (types.Type, error) {
	switch n := e.(type) {
	case *ast.Ident:
		sym, ok := c.scopes.Lookup(n.Name)
		if !ok {
			return types.Type{}, fmt.Errorf("undeclared identifier %q", n.Name)
		}
		c.out.Comment("addr of %s", n.Name)
		c.out.Instr("addi t1,fp,%d", sym.Offset)
		c.out.PushReg("t1")
		return sym.Type, nil

	case *ast.UnaryExpr:
		if n.Op != ast.UnaryDeref {
			return types.Type{}, fmt.Errorf("invalid assignment target")
		}
		// *e: the operand is a pointer rvalue; its value already IS the
		// address the dereference denotes, so nothing further to emit.
		operandType, err := c.translateExpr(n.Operand)
		if err != nil {
			return types.Type{}, err
		}
		return types.Deref(operandType)

	case *ast.IndexExpr:
		return c.translateIndex(n)

	default:
		return types.Type{}, fmt.Errorf("expression of type %T is not assignable", e)
	}
}

// translateIndexBase pushes the base address/pointer value an index
// operates on, distinguishing arrays (whose "value" is their own
// storage address; they never decay through a separate pointer slot)
// from pointer-valued expressions (whose value must be loaded, not
// their storage address).
func (c *compiler) translateIndexBase(e ast.Expr) (types.Type, error) {
	if ident, ok := e.(*ast.Ident); ok {
		sym, found := c.scopes.Lookup(ident.Name)
		if !found {
			return types.Type{}, fmt.Errorf("undeclared identifier %q", ident.Name)
		}
		if sym.Type.IsArray() {
			c.out.Comment("addr of %s", ident.Name)
			c.out.Instr("addi t1,fp,%d", sym.Offset)
			c.out.PushReg("t1")
			return sym.Type, nil
		}
		return c.translateExpr(e)
	}
	if idx, ok := e.(*ast.IndexExpr); ok {
		// A nested index into a multi-dimensional array still denotes
		// inline storage, so the same address-of-lvalue path applies.
		// A pointer-typed element is a base only through its value,
		// so that is loaded from the element's address.
		t, err := c.translateLvalue(idx)
		if err != nil || t.IsArray() {
			return t, err
		}
		c.out.PopReg("t1")
		c.out.Instr("ld t1,0(t1)")
		c.out.PushReg("t1")
		return t, nil
	}
	return c.translateExpr(e)
}

// translateIndex implements lv[i]: scale i by the element size of
// lv's next level and add it to lv's base address.
func (c *compiler) translateIndex(n *ast.IndexExpr) (types.Type, error) {
	baseType, err := c.translateIndexBase(n.Base)
	if err != nil {
		return types.Type{}, err
	}

	var elemType types.Type
	if baseType.IsArray() {
		elemType, err = baseType.NextArrayLevel()
	} else if baseType.IsPointer() {
		elemType, err = baseType.UnwrapPtr()
	} else {
		err = fmt.Errorf("cannot index value of type %s", baseType)
	}
	if err != nil {
		return types.Type{}, err
	}

	indexType, err := c.translateExpr(n.Index)
	if err != nil {
		return types.Type{}, err
	}
	if !indexType.Equal(types.Int) {
		return types.Type{}, fmt.Errorf("array index must be int, got %s", indexType)
	}

	elemSize := elemType.Size()
	c.out.Comment("index scale by %d", elemSize)
	c.out.PopReg("t2")
	c.out.Instr("li t3,%d", elemSize)
	c.out.Instr("mul t2,t2,t3")
	c.out.PopReg("t1")
	c.out.Instr("add t1,t1,t2")
	c.out.PushReg("t1")
	return elemType, nil
}
