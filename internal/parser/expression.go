package parser

import (
	"nvcfg/internal/ast"
	"nvcfg/internal/diag"
	"nvcfg/internal/token"
)

// Binary operator precedence, Lua 5.1 table. Concatenation and
// exponentiation are right-associative.
func binPrec(k token.Kind) (left, right int, ok bool) {
	switch k {
	case token.KwOr:
		return 1, 1, true
	case token.KwAnd:
		return 2, 2, true
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.TildeEq, token.EqEq:
		return 3, 3, true
	case token.DotDot:
		return 9, 8, true
	case token.Plus, token.Minus:
		return 10, 10, true
	case token.Star, token.Slash, token.Percent:
		return 11, 11, true
	case token.Caret:
		return 14, 13, true
	default:
		return 0, 0, false
	}
}

const unaryPrec = 12

func (p *Parser) parseExpr() *ast.Expr {
	return p.parseBinExpr(0)
}

func (p *Parser) parseExprList() ([]*ast.Expr, []token.Token) {
	var exprs []*ast.Expr
	var commas []token.Token
	for {
		e := p.parseExpr()
		if e == nil {
			break
		}
		exprs = append(exprs, e)
		if !p.at(token.Comma) {
			break
		}
		commas = append(commas, p.next())
	}
	return exprs, commas
}

func (p *Parser) parseBinExpr(limit int) *ast.Expr {
	var left *ast.Expr

	switch k := p.peek().Kind; k {
	case token.KwNot, token.Hash, token.Minus:
		op := p.next()
		operand := p.parseBinExpr(unaryPrec)
		if operand == nil {
			p.errSyn(diag.SynExpectExpression, op.Span, "expected expression after unary operator")
			return nil
		}
		left = &ast.Expr{Kind: ast.ExprUnary, Unary: &ast.UnaryExpr{OpTok: op, Operand: operand}}
		left.Span = spanOf(left)
	default:
		left = p.parseSimpleExpr()
	}
	if left == nil {
		return nil
	}

	for {
		lp, rp, ok := binPrec(p.peek().Kind)
		if !ok || lp <= limit {
			return left
		}
		op := p.next()
		right := p.parseBinExpr(rp)
		if right == nil {
			p.errSyn(diag.SynExpectExpression, op.Span, "expected expression after '"+op.Text+"'")
			return left
		}
		left = &ast.Expr{Kind: ast.ExprBinary, Binary: &ast.BinaryExpr{X: left, OpTok: op, Y: right}}
		left.Span = spanOf(left)
	}
}

func (p *Parser) parseSimpleExpr() *ast.Expr {
	switch p.peek().Kind {
	case token.NumberLit, token.StringLit, token.KwTrue, token.KwFalse,
		token.KwNil, token.Ellipsis:
		tok := p.next()
		return &ast.Expr{Kind: ast.ExprLiteral, Span: tok.Span, Lit: &ast.LiteralExpr{Tok: tok}}
	case token.LBrace:
		return p.parseTable()
	case token.KwFunction:
		return p.parseFunctionExpr()
	case token.Ident, token.LParen:
		return p.parseSuffixedExpr()
	default:
		return nil
	}
}

// parseSuffixedExpr parses a primary (name or parenthesized expression)
// followed by any chain of index and call suffixes.
func (p *Parser) parseSuffixedExpr() *ast.Expr {
	var e *ast.Expr

	switch p.peek().Kind {
	case token.Ident:
		tok := p.next()
		e = &ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, Ident: &ast.IdentExpr{Tok: tok}}
	case token.LParen:
		lp := p.next()
		inner := p.parseExpr()
		if inner == nil {
			p.errSyn(diag.SynExpectExpression, lp.Span, "expected expression after '('")
			return nil
		}
		var rp token.Token
		if p.at(token.RParen) {
			rp = p.next()
		} else {
			p.errSyn(diag.SynUnclosedCall, lp.Span, "missing ')'")
			rp = token.Token{Kind: token.RParen, Span: p.peek().Span}
		}
		e = &ast.Expr{Kind: ast.ExprParen, Paren: &ast.ParenExpr{LParenTok: lp, Inner: inner, RParenTok: rp}}
		e.Span = spanOf(e)
	default:
		return nil
	}

	for {
		switch p.peek().Kind {
		case token.Dot:
			dot := p.next()
			if !p.at(token.Ident) {
				p.errSyn(diag.SynExpectIdentifier, dot.Span, "expected name after '.'")
				return e
			}
			name := p.next()
			e = &ast.Expr{Kind: ast.ExprIndex, Index: &ast.IndexExpr{Base: e, DotTok: dot, NameTok: name}}
			e.Span = spanOf(e)
		case token.LBracket:
			lb := p.next()
			sub := p.parseExpr()
			if sub == nil {
				p.errSyn(diag.SynExpectExpression, lb.Span, "expected expression after '['")
				return e
			}
			var rb token.Token
			if p.at(token.RBracket) {
				rb = p.next()
			} else {
				p.errSyn(diag.SynUnexpectedToken, lb.Span, "missing ']'")
				rb = token.Token{Kind: token.RBracket, Span: p.peek().Span}
			}
			e = &ast.Expr{Kind: ast.ExprIndex, Index: &ast.IndexExpr{
				Base: e, Bracket: true, LBrackTok: lb, Sub: sub, RBrackTok: rb,
			}}
			e.Span = spanOf(e)
		case token.Colon:
			colon := p.next()
			if !p.at(token.Ident) {
				p.errSyn(diag.SynExpectIdentifier, colon.Span, "expected method name after ':'")
				return e
			}
			method := p.next()
			call := p.parseCallArgs(e)
			if call == nil {
				p.errSyn(diag.SynUnexpectedToken, method.Span, "expected call arguments after method name")
				return e
			}
			call.Call.ColonTok = &colon
			call.Call.MethodTok = &method
			call.Span = spanOf(call)
			e = call
		case token.LParen, token.StringLit, token.LBrace:
			call := p.parseCallArgs(e)
			if call == nil {
				return e
			}
			e = call
		default:
			return e
		}
	}
}

// parseCallArgs parses one of Lua's call argument forms attached to base.
func (p *Parser) parseCallArgs(base *ast.Expr) *ast.Expr {
	c := &ast.CallExpr{Base: base}
	switch p.peek().Kind {
	case token.LParen:
		c.Style = ast.ArgsParen
		c.LParenTok = p.next()
		if !p.at(token.RParen) {
			c.Args, c.Commas = p.parseExprList()
		}
		if p.at(token.RParen) {
			c.RParenTok = p.next()
		} else {
			p.errSyn(diag.SynUnclosedCall, c.LParenTok.Span, "missing ')' in call arguments")
			c.RParenTok = token.Token{Kind: token.RParen, Span: p.peek().Span}
		}
	case token.StringLit:
		c.Style = ast.ArgsString
		tok := p.next()
		c.Arg = &ast.Expr{Kind: ast.ExprLiteral, Span: tok.Span, Lit: &ast.LiteralExpr{Tok: tok}}
	case token.LBrace:
		c.Style = ast.ArgsTable
		c.Arg = p.parseTable()
		if c.Arg == nil {
			return nil
		}
	default:
		return nil
	}
	e := &ast.Expr{Kind: ast.ExprCall, Call: c}
	e.Span = spanOf(e)
	return e
}

func (p *Parser) parseTable() *ast.Expr {
	t := &ast.TableExpr{LBraceTok: p.next()}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		f := p.parseField()
		if f == nil {
			break
		}
		t.Fields = append(t.Fields, f)
		if !p.at(token.Comma) && !p.at(token.Semicolon) {
			break
		}
		sep := p.next()
		f.Sep = &sep
	}

	if p.at(token.RBrace) {
		t.RBraceTok = p.next()
	} else {
		p.errSyn(diag.SynUnclosedTable, t.LBraceTok.Span, "missing '}' to close table constructor")
		t.RBraceTok = token.Token{Kind: token.RBrace, Span: p.peek().Span}
	}

	e := &ast.Expr{Kind: ast.ExprTable, Table: t}
	e.Span = spanOf(e)
	return e
}

func (p *Parser) parseField() *ast.Field {
	switch p.peek().Kind {
	case token.LBracket:
		f := &ast.Field{Kind: ast.FieldBracket, LBrackTok: p.next()}
		f.KeyExpr = p.parseExpr()
		if f.KeyExpr == nil {
			p.errSyn(diag.SynExpectExpression, f.LBrackTok.Span, "expected key expression after '['")
			return nil
		}
		if p.at(token.RBracket) {
			f.RBrackTok = p.next()
		} else {
			p.errSyn(diag.SynUnexpectedToken, f.LBrackTok.Span, "missing ']' in table key")
			f.RBrackTok = token.Token{Kind: token.RBracket, Span: p.peek().Span}
		}
		if p.at(token.Assign) {
			f.AssignTok = p.next()
		} else {
			p.errSyn(diag.SynExpectAssign, f.RBrackTok.Span, "expected '=' after table key")
			return nil
		}
		f.Value = p.parseExpr()
		if f.Value == nil {
			p.errSyn(diag.SynExpectExpression, f.AssignTok.Span, "expected value after '='")
			return nil
		}
		f.Span = f.LBrackTok.Span.Cover(spanOf(f.Value))
		return f
	case token.Ident:
		if p.peek2().Kind == token.Assign {
			f := &ast.Field{Kind: ast.FieldNamed, NameTok: p.next()}
			f.AssignTok = p.next()
			f.Value = p.parseExpr()
			if f.Value == nil {
				p.errSyn(diag.SynExpectExpression, f.AssignTok.Span, "expected value after '='")
				return nil
			}
			f.Span = f.NameTok.Span.Cover(spanOf(f.Value))
			return f
		}
	}

	v := p.parseExpr()
	if v == nil {
		return nil
	}
	return &ast.Field{Kind: ast.FieldValue, Span: spanOf(v), Value: v}
}

// parseFunctionExpr keeps "function ... end" as a raw balanced run.
func (p *Parser) parseFunctionExpr() *ast.Expr {
	start := p.pos
	depth := 0
	for {
		if p.at(token.EOF) {
			p.errSyn(diag.SynUnexpectedToken, p.toks[start].Span, "unterminated function: missing 'end'")
			break
		}
		t := p.next()
		switch t.Kind {
		case token.KwFunction, token.KwDo, token.KwIf:
			depth++
		case token.KwEnd:
			depth--
		}
		if depth == 0 {
			break
		}
	}
	toks := append([]token.Token(nil), p.toks[start:p.pos]...)
	e := &ast.Expr{Kind: ast.ExprFunction, Func: &ast.FuncExpr{Tokens: toks}}
	if len(toks) > 0 {
		e.Span = toks[0].Span.Cover(toks[len(toks)-1].Span)
	}
	return e
}
