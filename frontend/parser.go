package frontend

import (
	"fmt"

	"github.com/arc-language/minidecaf-riscv/ast"
	"github.com/arc-language/minidecaf-riscv/types"
)

// Parse lexes and parses src into a Program. A function is recognized
// by lookahead: a type followed by IDENT followed by "(" starts a
// function definition; anything else at the top level is a statement
// destined for the synthesized main.
func Parse(src string) (*ast.Program, error) {
	toks, err := newLexer(src).tokenize()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) peekAt(offset int) token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.cur().kind != kind {
		return token{}, fmt.Errorf("%d:%d: expected %s, got %s", p.cur().line, p.cur().col, tokenNames[kind], p.cur())
	}
	return p.advance(), nil
}

func (p *parser) at(kind tokenKind) bool { return p.cur().kind == kind }

func (p *parser) pos_() ast.Pos { return ast.Pos{Line: p.cur().line, Col: p.cur().col} }

// parseProgram implements `top := func* stmt* EOF`, distinguishing a
// function definition from a leading top-level statement by looking
// two tokens ahead for "IDENT (".
func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.at(tokEOF) {
		if p.looksLikeFuncDecl() {
			fn, err := p.parseFunc()
			if err != nil {
				return nil, err
			}
			prog.Funcs = append(prog.Funcs, fn)
			continue
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.TopStmts = append(prog.TopStmts, s)
	}
	return prog, nil
}

func (p *parser) looksLikeFuncDecl() bool {
	if !p.at(tokKwInt) {
		return false
	}
	save := p.pos
	defer func() { p.pos = save }()
	if _, err := p.parseType(); err != nil {
		return false
	}
	if !p.at(tokIdent) {
		return false
	}
	p.advance()
	return p.at(tokLParen)
}

// parseType implements `type := "int" "*"*`.
func (p *parser) parseType() (types.Type, error) {
	if _, err := p.expect(tokKwInt); err != nil {
		return types.Type{}, err
	}
	t := types.Int
	for p.at(tokStar) {
		p.advance()
		t = t.WrapPtr()
	}
	return t, nil
}

func (p *parser) parseFunc() (*ast.FuncDecl, error) {
	pos := p.pos_()
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	if !p.at(tokRParen) {
		for {
			ppos := p.pos_()
			pt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pname, err := p.expect(tokIdent)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Name: pname.text, Type: pt, Pos: ppos})
			if p.at(tokComma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	for !p.at(tokRBrace) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	if _, err := p.expect(tokRBrace); err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Name: nameTok.text, ReturnType: retType, Params: params, Body: body, Pos: pos}, nil
}

// parseStmt implements the `stmt` production, disambiguating decl vs.
// assign vs. bare-expression statements by trial parse of a leading
// type, and lvalue vs. expression by trial parse of the lvalue forms.
func (p *parser) parseStmt() (ast.Stmt, error) {
	pos := p.pos_()
	switch {
	case p.at(tokKwReturn):
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Value: e, Pos: pos}, nil

	case p.at(tokKwIf):
		return p.parseIf()

	case p.at(tokLBrace):
		return p.parseBlock()

	case p.at(tokKwInt):
		return p.parseDecl()
	}

	// Either an assignment (`lvalue "=" expr ";"`) or a bare expression
	// statement; try the lvalue+`=` shape first and fall back.
	save := p.pos
	if lv, ok := p.tryParseLvalue(); ok && p.at(tokAssign) {
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{LHS: lv, RHS: rhs, Pos: pos}, nil
	}
	p.pos = save

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e, Pos: pos}, nil
}

// tryParseLvalue attempts `lvalue := IDENT | "*" unary | lvalue "[" expr "]"`.
// It parses via the same unary/postfix machinery as an expression and
// reports whether the resulting node is syntactically an lvalue shape;
// semantic lvalue-ness (e.g. rejecting `(-x)[0]`) is checked later by
// the translator. The grammar only constrains lvalue syntax, not
// semantics.
func (p *parser) tryParseLvalue() (ast.Expr, bool) {
	start := p.pos
	e, err := p.parseUnary()
	if err != nil {
		p.pos = start
		return nil, false
	}
	if !isLvalueShape(e) {
		p.pos = start
		return nil, false
	}
	return e, true
}

func isLvalueShape(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Ident:
		return true
	case *ast.UnaryExpr:
		return n.Op == ast.UnaryDeref
	case *ast.IndexExpr:
		return true
	default:
		return false
	}
}

func (p *parser) parseIf() (ast.Stmt, error) {
	pos := p.pos_()
	p.advance()
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.at(tokKwElse) {
		p.advance()
		elseStmt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Pos: pos}, nil
}

func (p *parser) parseBlock() (ast.Stmt, error) {
	pos := p.pos_()
	if _, err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.at(tokRBrace) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(tokRBrace); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Stmts: stmts, Pos: pos}, nil
}

// parseDecl implements `decl := type IDENT ("[" INT "]")* ("=" expr)?`.
func (p *parser) parseDecl() (ast.Stmt, error) {
	pos := p.pos_()
	baseType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	var dims []int
	for p.at(tokLBracket) {
		p.advance()
		n, err := p.expect(tokInt)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		dims = append(dims, int(n.val))
	}
	var init ast.Expr
	if p.at(tokAssign) {
		if len(dims) > 0 {
			return nil, fmt.Errorf("%d:%d: array declarations cannot have an initializer", p.cur().line, p.cur().col)
		}
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(tokSemi); err != nil {
		return nil, err
	}
	return &ast.DeclStmt{Name: name.text, Type: baseType, Dims: dims, Init: init, Pos: pos}, nil
}

// parseExpr is the entry point `expr := relExpr`.
func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseRel()
}

func (p *parser) parseRel() (ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.RelOp
		switch p.cur().kind {
		case tokEq:
			op = ast.RelEq
		case tokNe:
			op = ast.RelNe
		case tokLt:
			op = ast.RelLt
		case tokLe:
			op = ast.RelLe
		case tokGt:
			op = ast.RelGt
		case tokGe:
			op = ast.RelGe
		default:
			return left, nil
		}
		pos := p.pos_()
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.RelExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
}

func (p *parser) parseAdd() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.at(tokPlus) || p.at(tokMinus) {
		op := ast.BinAdd
		if p.at(tokMinus) {
			op = ast.BinSub
		}
		pos := p.pos_()
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

func (p *parser) parseMul() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(tokStar) || p.at(tokSlash) || p.at(tokPercent) {
		var op ast.BinaryOp
		switch p.cur().kind {
		case tokStar:
			op = ast.BinMul
		case tokSlash:
			op = ast.BinDiv
		case tokPercent:
			op = ast.BinMod
		}
		pos := p.pos_()
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left, nil
}

// parseUnary implements `unary := ("-"|"*"|"&") unary | postfix`.
func (p *parser) parseUnary() (ast.Expr, error) {
	pos := p.pos_()
	switch p.cur().kind {
	case tokMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnaryNeg, Operand: operand, Pos: pos}, nil
	case tokStar:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnaryDeref, Operand: operand, Pos: pos}, nil
	case tokAmp:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.UnaryAddr, Operand: operand, Pos: pos}, nil
	}
	return p.parsePostfix()
}

// parsePostfix implements `postfix := primary ("[" expr "]")*`.
func (p *parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(tokLBracket) {
		pos := p.pos_()
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		e = &ast.IndexExpr{Base: e, Index: idx, Pos: pos}
	}
	return e, nil
}

// parsePrimary implements `primary := INT | IDENT "(" args? ")" | IDENT
// | "(" type ")" unary | "(" expr ")"`. A parenthesized cast is
// disambiguated from a parenthesized sub-expression by checking
// whether "(" is immediately followed by the "int" keyword.
func (p *parser) parsePrimary() (ast.Expr, error) {
	pos := p.pos_()
	switch p.cur().kind {
	case tokInt:
		t := p.advance()
		return &ast.IntLit{Value: t.val, Pos: pos}, nil

	case tokIdent:
		name := p.advance()
		if p.at(tokLParen) {
			p.advance()
			var args []ast.Expr
			if !p.at(tokRParen) {
				for {
					a, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if p.at(tokComma) {
						p.advance()
						continue
					}
					break
				}
			}
			if _, err := p.expect(tokRParen); err != nil {
				return nil, err
			}
			return &ast.CallExpr{Callee: name.text, Args: args, Pos: pos}, nil
		}
		return &ast.Ident{Name: name.text, Pos: pos}, nil

	case tokLParen:
		if p.peekAt(1).kind == tokKwInt {
			p.advance()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen); err != nil {
				return nil, err
			}
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.CastExpr{Type: t, Operand: operand, Pos: pos}, nil
		}
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Inner: inner, Pos: pos}, nil

	default:
		return nil, fmt.Errorf("%d:%d: unexpected token %s in expression", p.cur().line, p.cur().col, p.cur())
	}
}
