package riscv

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/types"
)

// compileStmt dispatches on the statement's concrete node kind.
func (c *compiler) compileStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.DeclStmt:
		return c.compileDecl(n)
	case *ast.AssignStmt:
		return c.compileAssign(n)
	case *ast.ReturnStmt:
		return c.compileReturn(n)
	case *ast.IfStmt:
		return c.compileIf(n)
	case *ast.BlockStmt:
		return c.compileBlock(n)
	case *ast.ExprStmt:
		return c.compileExprStmt(n)
	default:
		return fmt.Errorf("unhandled statement type %T", s)
	}
}

// compileDecl inserts the declared name into the innermost scope and
// materializes its initial storage on the stack.
func (c *compiler) compileDecl(s *ast.DeclStmt) error {
	declType := s.Type
	if len(s.Dims) > 0 {
		declType = s.Type.ToArray(s.Dims)
	}

	sym, err := c.scopes.Declare(s.Name, declType)
	if err != nil {
		return err
	}
	c.out.Comment("decl %s -> %d(fp)", s.Name, sym.Offset)

	if declType.IsArray() {
		// Arrays never take an initializer expression; zero every word
		// so reads before a store observe 0, not garbage.
		n := declType.Size() / types.WordSize
		c.out.Instr("addi sp,sp,-%d", declType.Size())
		for i := 0; i < n; i++ {
			c.out.Instr("sd zero,%d(sp)", i*types.WordSize)
		}
		return nil
	}

	if s.Init == nil {
		c.out.PushImm(0)
		return nil
	}
	initType, err := c.translateExpr(s.Init)
	if err != nil {
		return err
	}
	if !initType.Equal(declType) {
		return fmt.Errorf("cannot initialize %s (%s) with value of type %s", s.Name, declType, initType)
	}
	return nil
}

// compileAssign translates the lvalue address, then the rvalue, and
// stores.
func (c *compiler) compileAssign(s *ast.AssignStmt) error {
	lhsType, err := c.translateLvalue(s.LHS)
	if err != nil {
		return err
	}
	rhsType, err := c.translateExpr(s.RHS)
	if err != nil {
		return err
	}
	if lhsType.IsArray() {
		return fmt.Errorf("cannot assign to array-typed destination")
	}
	if !lhsType.Equal(rhsType) {
		return fmt.Errorf("cannot assign value of type %s to destination of type %s", rhsType, lhsType)
	}

	c.out.Comment("store")
	c.out.PopReg("t2") // value
	c.out.PopReg("t1") // address
	c.out.Instr("sd t2,0(t1)")
	return nil
}

// compileReturn checks the return type and branches unconditionally
// to the function's exit label, leaving the value on sp for the
// epilogue to pick up.
func (c *compiler) compileReturn(s *ast.ReturnStmt) error {
	t, err := c.translateExpr(s.Value)
	if err != nil {
		return err
	}
	if !t.Equal(c.curRet) {
		return fmt.Errorf("return type %s does not match declared return type %s", t, c.curRet)
	}
	c.out.Instr("j %s_exit", c.curFn)
	return nil
}

// compileBlock enters a new scope, translates every child statement,
// then exits the scope, deallocating its locals from sp.
func (c *compiler) compileBlock(s *ast.BlockStmt) error {
	c.scopes.Push()
	for _, child := range s.Stmts {
		if err := c.compileStmt(child); err != nil {
			return err
		}
	}
	if n := c.scopes.Pop(); n > 0 {
		c.out.PopN(n / types.WordSize)
	}
	return nil
}

// compileExprStmt translates the expression and discards its one
// result word to keep the stack balanced.
func (c *compiler) compileExprStmt(s *ast.ExprStmt) error {
	if _, err := c.translateExpr(s.Expr); err != nil {
		return err
	}
	c.out.PopN(1)
	return nil
}
