package parser

import (
	"nvcfg/internal/ast"
	"nvcfg/internal/diag"
	"nvcfg/internal/token"
)

func (p *Parser) parseStmt() *ast.Stmt {
	switch p.peek().Kind {
	case token.Semicolon:
		tok := p.next()
		return &ast.Stmt{Kind: ast.StmtSemi, Span: tok.Span, Semi: &ast.SemiStmt{Tok: tok}}
	case token.KwLocal:
		if p.peek2().Kind == token.KwFunction {
			return p.parseOpaque()
		}
		return p.parseLocal()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwDo:
		return p.parseDo()
	case token.KwIf, token.KwWhile, token.KwFor, token.KwFunction,
		token.KwRepeat, token.KwBreak, token.KwGoto, token.Colon:
		return p.parseOpaque()
	case token.Ident, token.LParen:
		return p.parseAssignOrCall()
	default:
		return p.recoverStmt()
	}
}

func (p *Parser) parseLocal() *ast.Stmt {
	l := &ast.LocalStmt{LocalTok: p.next()}

	for {
		if !p.at(token.Ident) {
			p.errSyn(diag.SynExpectIdentifier, p.peek().Span, "expected name after 'local'")
			break
		}
		l.Names = append(l.Names, p.next())
		if !p.at(token.Comma) {
			break
		}
		l.NameCommas = append(l.NameCommas, p.next())
	}

	if p.at(token.Assign) {
		eq := p.next()
		l.AssignTok = &eq
		l.Values, l.ValueCommas = p.parseExprList()
	}

	st := &ast.Stmt{Kind: ast.StmtLocal, Local: l}
	st.Span = stmtSpan(st)
	return st
}

func (p *Parser) parseReturn() *ast.Stmt {
	r := &ast.ReturnStmt{ReturnTok: p.next()}
	if !p.atBlockEnd() && !p.at(token.Semicolon) {
		r.Values, r.Commas = p.parseExprList()
	}
	st := &ast.Stmt{Kind: ast.StmtReturn, Return: r}
	st.Span = stmtSpan(st)
	return st
}

func (p *Parser) parseDo() *ast.Stmt {
	d := &ast.DoStmt{DoTok: p.next()}
	for !p.at(token.KwEnd) && !p.at(token.EOF) {
		before := p.pos
		st := p.parseStmt()
		if st != nil {
			d.Body = append(d.Body, st)
		}
		if p.pos == before {
			break
		}
	}
	if p.at(token.KwEnd) {
		d.EndTok = p.next()
	} else {
		p.errSyn(diag.SynUnexpectedToken, p.peek().Span, "missing 'end' to close 'do' block")
		d.EndTok = token.Token{Kind: token.EOF, Span: p.peek().Span}
	}
	st := &ast.Stmt{Kind: ast.StmtDo, Do: d}
	st.Span = stmtSpan(st)
	return st
}

// atBlockEnd reports whether the current token terminates a statement
// list.
func (p *Parser) atBlockEnd() bool {
	switch p.peek().Kind {
	case token.EOF, token.KwEnd, token.KwElse, token.KwElseif, token.KwUntil:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAssignOrCall() *ast.Stmt {
	e := p.parseSuffixedExpr()
	if e == nil {
		return p.recoverStmt()
	}

	if e.Kind == ast.ExprCall && !p.at(token.Assign) && !p.at(token.Comma) {
		st := &ast.Stmt{Kind: ast.StmtCall, Call: &ast.CallStmt{Call: e}}
		st.Span = stmtSpan(st)
		return st
	}

	a := &ast.AssignStmt{Targets: []*ast.Expr{e}}
	for p.at(token.Comma) {
		a.Commas = append(a.Commas, p.next())
		t := p.parseSuffixedExpr()
		if t == nil {
			break
		}
		a.Targets = append(a.Targets, t)
	}

	if !p.at(token.Assign) {
		p.errSyn(diag.SynExpectAssign, p.peek().Span, "expected '=' after assignment target")
		// degrade: keep everything consumed so far as an error statement
		return p.errorStmtFromExprs(a)
	}
	a.AssignTok = p.next()
	a.Values, a.ValueCommas = p.parseExprList()

	st := &ast.Stmt{Kind: ast.StmtAssign, Assign: a}
	st.Span = stmtSpan(st)
	return st
}

// errorStmtFromExprs flattens a half-parsed assignment back into its
// tokens and wraps them in an error statement.
func (p *Parser) errorStmtFromExprs(a *ast.AssignStmt) *ast.Stmt {
	var toks []token.Token
	tmp := &ast.Stmt{Kind: ast.StmtAssign, Assign: a}
	tmp.VisitTokens(func(t *token.Token) {
		toks = append(toks, *t)
	})
	return errStmtFrom(toks)
}

// recoverStmt consumes tokens up to a likely statement boundary and
// wraps them in an error statement. Progress is guaranteed.
func (p *Parser) recoverStmt() *ast.Stmt {
	start := p.pos
	bad := p.peek()
	p.next()
	for {
		switch p.peek().Kind {
		case token.EOF, token.Semicolon, token.Ident, token.KwLocal,
			token.KwReturn, token.KwDo, token.KwIf, token.KwWhile,
			token.KwFor, token.KwFunction, token.KwRepeat, token.KwBreak,
			token.KwGoto, token.KwEnd, token.KwElse, token.KwElseif,
			token.KwUntil:
			toks := append([]token.Token(nil), p.toks[start:p.pos]...)
			p.errSyn(diag.SynErrorNode, bad.Span, "unparseable statement starting at "+bad.Kind.String())
			return errStmtFrom(toks)
		}
		p.next()
	}
}

// parseOpaque consumes one balanced statement the model does not
// interpret (control flow, function declarations, labels) and keeps it
// verbatim.
func (p *Parser) parseOpaque() *ast.Stmt {
	start := p.pos
	switch p.peek().Kind {
	case token.KwBreak:
		p.next()
	case token.KwGoto:
		p.next()
		if p.at(token.Ident) {
			p.next()
		}
	case token.Colon:
		// "::label::"
		for p.at(token.Colon) || p.at(token.Ident) {
			p.next()
		}
	default:
		if !p.scanBalancedBlock() {
			toks := append([]token.Token(nil), p.toks[start:p.pos]...)
			p.errSyn(diag.SynUnexpectedToken, p.toks[start].Span, "unterminated block: missing 'end'")
			return errStmtFrom(toks)
		}
	}
	toks := append([]token.Token(nil), p.toks[start:p.pos]...)
	st := &ast.Stmt{Kind: ast.StmtOpaque, Opaque: &ast.OpaqueStmt{Tokens: toks}}
	st.Span = stmtSpan(st)
	return st
}

// scanBalancedBlock advances past a block statement by matching
// 'function'/'if'/'do' openers with 'end' and 'repeat' with 'until'.
// The condition after a top-level 'until' is parsed as an expression so
// its tokens land inside the run. Returns false at EOF with open blocks.
func (p *Parser) scanBalancedBlock() bool {
	depth, rdepth := 0, 0
	for {
		if p.at(token.EOF) {
			return false
		}
		t := p.next()
		switch t.Kind {
		case token.KwFunction, token.KwDo, token.KwIf:
			depth++
		case token.KwEnd:
			depth--
			if depth <= 0 && rdepth == 0 {
				return true
			}
		case token.KwRepeat:
			rdepth++
		case token.KwUntil:
			rdepth--
			if depth == 0 && rdepth == 0 {
				p.parseExpr()
				return true
			}
		}
	}
}
