package riscv_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arc-language/minidecaf-riscv/arch/riscv"
	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/emitter"
	"github.com/arc-language/minidecaf-riscv/types"
)

func compile(t *testing.T, prog *ast.Program) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	em := emitter.New(&buf)
	err := riscv.Compile(prog, em)
	return buf.String(), err
}

func TestReturnLiteral(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{&ast.ReturnStmt{Value: &ast.IntLit{Value: 42}}},
	}
	out, err := compile(t, prog)
	require.NoError(t, err)
	require.Contains(t, out, ".global main")
	require.Contains(t, out, "main:")
	require.Contains(t, out, "main_exit:")
	require.Contains(t, out, "jr ra")
}

func TestFunctionCallAndArithmetic(t *testing.T) {
	square := &ast.FuncDecl{
		Name:       "square",
		ReturnType: types.Int,
		Params:     []ast.Param{{Name: "x", Type: types.Int}},
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:    ast.BinMul,
				Left:  &ast.Ident{Name: "x"},
				Right: &ast.Ident{Name: "x"},
			}},
		},
	}
	prog := &ast.Program{
		Funcs: []*ast.FuncDecl{square},
		TopStmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.CallExpr{Callee: "square", Args: []ast.Expr{&ast.IntLit{Value: 7}}}},
		},
	}
	out, err := compile(t, prog)
	require.NoError(t, err)
	require.Contains(t, out, ".global square")
	require.Contains(t, out, "call square")
	require.Contains(t, out, "mul t1,t1,t2")
}

func TestCallArityMismatch(t *testing.T) {
	fn := &ast.FuncDecl{Name: "f", ReturnType: types.Int, Params: []ast.Param{{Name: "a", Type: types.Int}}, Body: []ast.Stmt{
		&ast.ReturnStmt{Value: &ast.Ident{Name: "a"}},
	}}
	prog := &ast.Program{
		Funcs:    []*ast.FuncDecl{fn},
		TopStmts: []ast.Stmt{&ast.ReturnStmt{Value: &ast.CallExpr{Callee: "f"}}},
	}
	_, err := compile(t, prog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expects 1 arguments")
}

func TestCallUndeclaredFunction(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{&ast.ReturnStmt{Value: &ast.CallExpr{Callee: "nope"}}},
	}
	_, err := compile(t, prog)
	require.Error(t, err)
}

func TestMoreThanEightParamsRejected(t *testing.T) {
	var params []ast.Param
	for i := 0; i < 9; i++ {
		params = append(params, ast.Param{Name: "p", Type: types.Int})
	}
	fn := &ast.FuncDecl{Name: "many", ReturnType: types.Int, Params: params, Body: []ast.Stmt{
		&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
	}}
	prog := &ast.Program{Funcs: []*ast.FuncDecl{fn}}
	_, err := compile(t, prog)
	require.Error(t, err)
}

func TestDeclRedeclarationInSameScopeRejected(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{
			&ast.DeclStmt{Name: "x", Type: types.Int, Init: &ast.IntLit{Value: 1}},
			&ast.DeclStmt{Name: "x", Type: types.Int, Init: &ast.IntLit{Value: 2}},
			&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
		},
	}
	_, err := compile(t, prog)
	require.Error(t, err)
}

func TestAssignTypeMismatchRejected(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{
			&ast.DeclStmt{Name: "p", Type: types.Int.WrapPtr()},
			&ast.AssignStmt{LHS: &ast.Ident{Name: "p"}, RHS: &ast.IntLit{Value: 1}},
			&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
		},
	}
	_, err := compile(t, prog)
	require.Error(t, err)
}

func TestPointerArithmeticScaling(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{
			&ast.DeclStmt{Name: "arr", Type: types.Int, Dims: []int{4}},
			&ast.DeclStmt{
				Name: "p",
				Type: types.Int.WrapPtr(),
				Init: &ast.Ident{Name: "arr"},
			},
			&ast.AssignStmt{
				LHS: &ast.Ident{Name: "p"},
				RHS: &ast.BinaryExpr{Op: ast.BinAdd, Left: &ast.Ident{Name: "p"}, Right: &ast.IntLit{Value: 1}},
			},
			&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
		},
	}
	out, err := compile(t, prog)
	require.NoError(t, err)
	require.Contains(t, out, "li t3,8")
}

func TestPointerMinusPointerRejected(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{
			&ast.DeclStmt{Name: "p", Type: types.Int.WrapPtr(), Init: &ast.CastExpr{Type: types.Int.WrapPtr(), Operand: &ast.IntLit{Value: 0}}},
			&ast.DeclStmt{Name: "q", Type: types.Int.WrapPtr(), Init: &ast.CastExpr{Type: types.Int.WrapPtr(), Operand: &ast.IntLit{Value: 0}}},
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: ast.BinSub, Left: &ast.Ident{Name: "p"}, Right: &ast.Ident{Name: "q"}}},
		},
	}
	_, err := compile(t, prog)
	require.Error(t, err)
}

func TestArrayIndexAssignment(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{
			&ast.DeclStmt{Name: "arr", Type: types.Int, Dims: []int{4}},
			&ast.AssignStmt{
				LHS: &ast.IndexExpr{Base: &ast.Ident{Name: "arr"}, Index: &ast.IntLit{Value: 2}},
				RHS: &ast.IntLit{Value: 9},
			},
			&ast.ReturnStmt{Value: &ast.IndexExpr{Base: &ast.Ident{Name: "arr"}, Index: &ast.IntLit{Value: 2}}},
		},
	}
	out, err := compile(t, prog)
	require.NoError(t, err)
	require.Contains(t, out, "li t3,8")
	require.Contains(t, out, "sd t2,0(t1)")
}

func TestIfElseBranching(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{
			&ast.IfStmt{
				Cond: &ast.RelExpr{Op: ast.RelLt, Left: &ast.IntLit{Value: 1}, Right: &ast.IntLit{Value: 2}},
				Then: &ast.ReturnStmt{Value: &ast.IntLit{Value: 1}},
				Else: &ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
			},
		},
	}
	out, err := compile(t, prog)
	require.NoError(t, err)
	require.Contains(t, out, "bnez t1,_L")
	require.True(t, strings.Count(out, "_L") >= 3)
}

func TestBlockExitReclaimsLocalBytes(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{
			&ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.DeclStmt{Name: "a", Type: types.Int, Init: &ast.IntLit{Value: 1}},
				&ast.DeclStmt{Name: "b", Type: types.Int, Init: &ast.IntLit{Value: 2}},
			}},
			&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
		},
	}
	out, err := compile(t, prog)
	require.NoError(t, err)
	// Two 8-byte locals leave the block, so sp comes back up by 16.
	require.Contains(t, out, "addi sp,sp,16")
}

func TestReturnTypeMismatchRejected(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: types.Int.WrapPtr(),
		Body:       []ast.Stmt{&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}}},
	}
	prog := &ast.Program{Funcs: []*ast.FuncDecl{fn}}
	_, err := compile(t, prog)
	require.Error(t, err)
}

func TestUndeclaredIdentifierRejected(t *testing.T) {
	prog := &ast.Program{
		TopStmts: []ast.Stmt{&ast.ReturnStmt{Value: &ast.Ident{Name: "missing"}}},
	}
	_, err := compile(t, prog)
	require.Error(t, err)
}
