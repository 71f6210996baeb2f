// Package ast defines the parse-tree node shapes the code generator
// consumes. They are produced by the frontend package, but the
// codegen packages only ever depend on these shapes, never on how
// they were built; tests construct them directly.
package ast

import "github.com/arc-language/minidecaf-riscv/types"

// Pos is a source position, carried for frontend diagnostics only;
// the codegen packages never consult it.
type Pos struct {
	Line, Col int
}

// Program is the root node: a sequence of function definitions
// followed by a trailing sequence of top-level statements that form
// the body of a synthesized main.
type Program struct {
	Funcs    []*FuncDecl
	TopStmts []Stmt
}

// Param is one function parameter.
type Param struct {
	Name string
	Type types.Type
	Pos  Pos
}

// FuncDecl is one function definition.
type FuncDecl struct {
	Name       string
	ReturnType types.Type
	Params     []Param
	Body       []Stmt
	Pos        Pos
}

// Stmt is implemented by every statement node kind.
type Stmt interface {
	stmtNode()
}

// DeclStmt declares a local variable, optionally an array, optionally
// with a scalar initializer.
type DeclStmt struct {
	Name string
	Type types.Type // base type before Dims is attached
	Dims []int      // nil/empty for a scalar declaration
	Init Expr       // nil when absent; never set together with Dims
	Pos  Pos
}

// AssignStmt assigns RHS to the lvalue LHS.
type AssignStmt struct {
	LHS Expr
	RHS Expr
	Pos Pos
}

// ReturnStmt returns Value from the enclosing function.
type ReturnStmt struct {
	Value Expr
	Pos   Pos
}

// IfStmt is `if (Cond) Then [else Else]`. Else is nil when absent.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Pos  Pos
}

// BlockStmt is a brace-delimited statement sequence that introduces a
// new lexical scope.
type BlockStmt struct {
	Stmts []Stmt
	Pos   Pos
}

// ExprStmt evaluates Expr and discards the result.
type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (*DeclStmt) stmtNode()   {}
func (*AssignStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*BlockStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()   {}

// Expr is implemented by every expression node kind.
type Expr interface {
	exprNode()
	position() Pos
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	Pos   Pos
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Pos  Pos
}

// ParenExpr is a parenthesized sub-expression; translation is
// transparent, it exists only to preserve source shape.
type ParenExpr struct {
	Inner Expr
	Pos   Pos
}

// UnaryOp enumerates the three prefix unary operators.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryDeref
	UnaryAddr
)

// UnaryExpr is `-e`, `*e`, or `&e`.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Pos     Pos
}

// BinaryOp enumerates the arithmetic binary operators.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
)

// BinaryExpr is `l OP r` for arithmetic operators.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Pos   Pos
}

// RelOp enumerates the relational operators.
type RelOp int

const (
	RelEq RelOp = iota
	RelNe
	RelLt
	RelLe
	RelGt
	RelGe
)

// RelExpr is `l OP r` for relational operators.
type RelExpr struct {
	Op    RelOp
	Left  Expr
	Right Expr
	Pos   Pos
}

// CastExpr is `(T)e`.
type CastExpr struct {
	Type    types.Type
	Operand Expr
	Pos     Pos
}

// IndexExpr is `base[index]`.
type IndexExpr struct {
	Base  Expr
	Index Expr
	Pos   Pos
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee string
	Args   []Expr
	Pos    Pos
}

func (*IntLit) exprNode()     {}
func (*Ident) exprNode()      {}
func (*ParenExpr) exprNode()  {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*RelExpr) exprNode()    {}
func (*CastExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}

func (n *IntLit) position() Pos     { return n.Pos }
func (n *Ident) position() Pos      { return n.Pos }
func (n *ParenExpr) position() Pos  { return n.Pos }
func (n *UnaryExpr) position() Pos  { return n.Pos }
func (n *BinaryExpr) position() Pos { return n.Pos }
func (n *RelExpr) position() Pos    { return n.Pos }
func (n *CastExpr) position() Pos   { return n.Pos }
func (n *IndexExpr) position() Pos  { return n.Pos }
func (n *CallExpr) position() Pos   { return n.Pos }
