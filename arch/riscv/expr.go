package riscv

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/types"
)

// translateExpr emits code that leaves exactly one word on sp, the
// expression's VALUE, and returns its type. This is the single-pass
// syntax-directed translation at the heart of the compiler: no
// intermediate tree is built, no side table of types is consulted,
// the type returned here IS the type-checking result.
func (c *compiler) translateExpr(e ast.Expr) (types.Type, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		c.out.PushImm(n.Value)
		return types.Int, nil

	case *ast.Ident:
		return c.translateIdent(n)

	case *ast.ParenExpr:
		return c.translateExpr(n.Inner)

	case *ast.UnaryExpr:
		return c.translateUnary(n)

	case *ast.BinaryExpr:
		return c.translateBinary(n)

	case *ast.RelExpr:
		return c.translateRel(n)

	case *ast.CastExpr:
		return c.translateCast(n)

	case *ast.IndexExpr:
		return c.translateIndexValue(n)

	case *ast.CallExpr:
		return c.compileCall(n)

	default:
		return types.Type{}, fmt.Errorf("unhandled expression type %T", e)
	}
}

// translateIndexValue computes lv[i]'s address via translateIndex,
// then either loads the scalar/pointer word it denotes, or, when the
// element itself is an array, leaves the address as-is: an array's
// address already IS its decayed value (mirroring translateIdent's
// array-decay case).
func (c *compiler) translateIndexValue(n *ast.IndexExpr) (types.Type, error) {
	elemType, err := c.translateIndex(n)
	if err != nil {
		return types.Type{}, err
	}
	if elemType.IsArray() {
		return elemType.ArrayBase().WrapPtr(), nil
	}
	c.out.PopReg("t1")
	c.out.Instr("ld t1,0(t1)")
	c.out.PushReg("t1")
	return elemType, nil
}

// translateIdent loads a scalar variable's value, or decays an array
// variable to the address of its storage.
func (c *compiler) translateIdent(n *ast.Ident) (types.Type, error) {
	sym, ok := c.scopes.Lookup(n.Name)
	if !ok {
		return types.Type{}, fmt.Errorf("undeclared identifier %q", n.Name)
	}
	if sym.Type.IsArray() {
		c.out.Comment("decay %s", n.Name)
		c.out.Instr("addi t1,fp,%d", sym.Offset)
		c.out.PushReg("t1")
		return sym.Type.ArrayBase().WrapPtr(), nil
	}
	c.out.Comment("load %s", n.Name)
	c.out.Instr("ld t1,%d(fp)", sym.Offset)
	c.out.PushReg("t1")
	return sym.Type, nil
}

func (c *compiler) translateUnary(n *ast.UnaryExpr) (types.Type, error) {
	switch n.Op {
	case ast.UnaryNeg:
		t, err := c.translateExpr(n.Operand)
		if err != nil {
			return types.Type{}, err
		}
		resultType, err := types.UnaryInt(t)
		if err != nil {
			return types.Type{}, err
		}
		c.out.PopReg("t1")
		c.out.Instr("neg t1,t1")
		c.out.PushReg("t1")
		return resultType, nil

	case ast.UnaryDeref:
		t, err := c.translateExpr(n.Operand)
		if err != nil {
			return types.Type{}, err
		}
		pointee, err := types.Deref(t)
		if err != nil {
			return types.Type{}, err
		}
		c.out.PopReg("t1")
		c.out.Instr("ld t1,0(t1)")
		c.out.PushReg("t1")
		return pointee, nil

	case ast.UnaryAddr:
		ident, ok := n.Operand.(*ast.Ident)
		if !ok {
			return types.Type{}, fmt.Errorf("cannot take address of a non-variable expression")
		}
		sym, ok := c.scopes.Lookup(ident.Name)
		if !ok {
			return types.Type{}, fmt.Errorf("undeclared identifier %q", ident.Name)
		}
		c.out.Comment("addr-of %s", ident.Name)
		c.out.Instr("addi t1,fp,%d", sym.Offset)
		c.out.PushReg("t1")
		return sym.Type.WrapPtr(), nil

	default:
		return types.Type{}, fmt.Errorf("unhandled unary operator %v", n.Op)
	}
}

func (c *compiler) translateBinary(n *ast.BinaryExpr) (types.Type, error) {
	lt, err := c.translateExpr(n.Left)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := c.translateExpr(n.Right)
	if err != nil {
		return types.Type{}, err
	}

	resultType, err := types.BinaryInt(lt, rt)
	if err == nil {
		c.out.PopReg("t2")
		c.out.PopReg("t1")
		c.emitArith(n.Op)
		c.out.PushReg("t1")
		return resultType, nil
	}

	// Not two ints: fall back to pointer arithmetic, which only
	// permits add/sub with exactly one pointer side.
	if n.Op != ast.BinAdd && n.Op != ast.BinSub {
		return types.Type{}, fmt.Errorf("operator requires int operands, got %s and %s", lt, rt)
	}
	resultType, ptrErr := types.BinaryPtrArith(lt, rt)
	if ptrErr != nil {
		return types.Type{}, ptrErr
	}
	elemSize, sizeErr := resultType.ElementSize()
	if sizeErr != nil {
		return types.Type{}, sizeErr
	}

	c.out.Comment("pointer arith scale by %d", elemSize)
	c.out.PopReg("t2")
	c.out.PopReg("t1")
	if lt.IsPointer() {
		c.out.Instr("li t3,%d", elemSize)
		c.out.Instr("mul t2,t2,t3")
		c.emitArith(n.Op)
	} else {
		// The pointer is on the right, so the integer side is t1.
		c.out.Instr("li t3,%d", elemSize)
		c.out.Instr("mul t1,t1,t3")
		c.emitArith(n.Op)
	}
	c.out.PushReg("t1")
	return resultType, nil
}

// emitArith emits the add/sub/mul/div/rem instruction for op, assuming
// the two operands already sit in t1 (left) and t2 (right) and leaves
// the result in t1.
func (c *compiler) emitArith(op ast.BinaryOp) {
	switch op {
	case ast.BinAdd:
		c.out.Instr("add t1,t1,t2")
	case ast.BinSub:
		c.out.Instr("sub t1,t1,t2")
	case ast.BinMul:
		c.out.Instr("mul t1,t1,t2")
	case ast.BinDiv:
		c.out.Instr("div t1,t1,t2")
	case ast.BinMod:
		c.out.Instr("rem t1,t1,t2")
	}
}

func (c *compiler) translateRel(n *ast.RelExpr) (types.Type, error) {
	lt, err := c.translateExpr(n.Left)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := c.translateExpr(n.Right)
	if err != nil {
		return types.Type{}, err
	}
	resultType, err := types.SameType(lt, rt)
	if err != nil {
		return types.Type{}, err
	}

	c.out.PopReg("t2")
	c.out.PopReg("t1")
	switch n.Op {
	case ast.RelEq:
		c.out.Instr("sub t1,t1,t2")
		c.out.Instr("seqz t1,t1")
	case ast.RelNe:
		c.out.Instr("sub t1,t1,t2")
		c.out.Instr("snez t1,t1")
	case ast.RelLt:
		c.out.Instr("slt t1,t1,t2")
	case ast.RelLe:
		c.out.Instr("slt t1,t2,t1")
		c.out.Instr("xori t1,t1,1")
	case ast.RelGt:
		c.out.Instr("slt t1,t2,t1")
	case ast.RelGe:
		c.out.Instr("slt t1,t1,t2")
		c.out.Instr("xori t1,t1,1")
	default:
		return types.Type{}, fmt.Errorf("unhandled relational operator %v", n.Op)
	}
	c.out.PushReg("t1")
	return resultType, nil
}

// translateCast reinterprets any non-array value as the cast's target
// type: the value's bit pattern is unchanged, only the static type
// changes. Array-typed operands are rejected.
func (c *compiler) translateCast(n *ast.CastExpr) (types.Type, error) {
	operandType, err := c.translateExpr(n.Operand)
	if err != nil {
		return types.Type{}, err
	}
	if operandType.IsArray() {
		return types.Type{}, fmt.Errorf("cannot cast array value of type %s", operandType)
	}
	c.out.Comment("cast to %s", n.Type)
	return n.Type, nil
}
