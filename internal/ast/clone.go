package ast

import "nvcfg/internal/token"

// Clone deep-copies the chunk. The patch engine mutates a clone so a
// rejected patch leaves the original tree untouched.
func (c *Chunk) Clone() *Chunk {
	out := &Chunk{Span: c.Span, EOF: cloneTok(c.EOF)}
	out.Stmts = make([]*Stmt, len(c.Stmts))
	for i, st := range c.Stmts {
		out.Stmts[i] = st.Clone()
	}
	return out
}

func cloneTok(t token.Token) token.Token {
	out := t
	if t.Leading != nil {
		out.Leading = append([]token.Trivia(nil), t.Leading...)
	}
	return out
}

func cloneTokPtr(t *token.Token) *token.Token {
	if t == nil {
		return nil
	}
	out := cloneTok(*t)
	return &out
}

func cloneToks(ts []token.Token) []token.Token {
	if ts == nil {
		return nil
	}
	out := make([]token.Token, len(ts))
	for i := range ts {
		out[i] = cloneTok(ts[i])
	}
	return out
}

func cloneExprs(es []*Expr) []*Expr {
	if es == nil {
		return nil
	}
	out := make([]*Expr, len(es))
	for i, e := range es {
		out[i] = e.Clone()
	}
	return out
}

func (s *Stmt) Clone() *Stmt {
	out := &Stmt{Kind: s.Kind, Span: s.Span}
	switch s.Kind {
	case StmtAssign:
		a := s.Assign
		out.Assign = &AssignStmt{
			Targets:     cloneExprs(a.Targets),
			Commas:      cloneToks(a.Commas),
			AssignTok:   cloneTok(a.AssignTok),
			Values:      cloneExprs(a.Values),
			ValueCommas: cloneToks(a.ValueCommas),
		}
	case StmtLocal:
		l := s.Local
		out.Local = &LocalStmt{
			LocalTok:    cloneTok(l.LocalTok),
			Names:       cloneToks(l.Names),
			NameCommas:  cloneToks(l.NameCommas),
			AssignTok:   cloneTokPtr(l.AssignTok),
			Values:      cloneExprs(l.Values),
			ValueCommas: cloneToks(l.ValueCommas),
		}
	case StmtCall:
		out.Call = &CallStmt{Call: s.Call.Call.Clone()}
	case StmtReturn:
		r := s.Return
		out.Return = &ReturnStmt{
			ReturnTok: cloneTok(r.ReturnTok),
			Values:    cloneExprs(r.Values),
			Commas:    cloneToks(r.Commas),
		}
	case StmtDo:
		d := s.Do
		body := make([]*Stmt, len(d.Body))
		for i, st := range d.Body {
			body[i] = st.Clone()
		}
		out.Do = &DoStmt{DoTok: cloneTok(d.DoTok), Body: body, EndTok: cloneTok(d.EndTok)}
	case StmtSemi:
		out.Semi = &SemiStmt{Tok: cloneTok(s.Semi.Tok)}
	case StmtOpaque:
		out.Opaque = &OpaqueStmt{Tokens: cloneToks(s.Opaque.Tokens)}
	case StmtError:
		out.Error = &ErrorStmt{Tokens: cloneToks(s.Error.Tokens)}
	}
	return out
}

func (e *Expr) Clone() *Expr {
	out := &Expr{Kind: e.Kind, Span: e.Span}
	switch e.Kind {
	case ExprIdent:
		out.Ident = &IdentExpr{Tok: cloneTok(e.Ident.Tok)}
	case ExprLiteral:
		out.Lit = &LiteralExpr{Tok: cloneTok(e.Lit.Tok)}
	case ExprIndex:
		ix := e.Index
		out.Index = &IndexExpr{
			Base:      ix.Base.Clone(),
			Bracket:   ix.Bracket,
			DotTok:    cloneTok(ix.DotTok),
			NameTok:   cloneTok(ix.NameTok),
			LBrackTok: cloneTok(ix.LBrackTok),
			RBrackTok: cloneTok(ix.RBrackTok),
		}
		if ix.Sub != nil {
			out.Index.Sub = ix.Sub.Clone()
		}
	case ExprCall:
		c := e.Call
		nc := &CallExpr{
			Base:      c.Base.Clone(),
			ColonTok:  cloneTokPtr(c.ColonTok),
			MethodTok: cloneTokPtr(c.MethodTok),
			Style:     c.Style,
			LParenTok: cloneTok(c.LParenTok),
			Args:      cloneExprs(c.Args),
			Commas:    cloneToks(c.Commas),
			RParenTok: cloneTok(c.RParenTok),
		}
		if c.Arg != nil {
			nc.Arg = c.Arg.Clone()
		}
		out.Call = nc
	case ExprTable:
		t := e.Table
		fields := make([]*Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = f.Clone()
		}
		out.Table = &TableExpr{
			LBraceTok: cloneTok(t.LBraceTok),
			Fields:    fields,
			RBraceTok: cloneTok(t.RBraceTok),
		}
	case ExprFunction:
		out.Func = &FuncExpr{Tokens: cloneToks(e.Func.Tokens)}
	case ExprUnary:
		out.Unary = &UnaryExpr{OpTok: cloneTok(e.Unary.OpTok), Operand: e.Unary.Operand.Clone()}
	case ExprBinary:
		out.Binary = &BinaryExpr{X: e.Binary.X.Clone(), OpTok: cloneTok(e.Binary.OpTok), Y: e.Binary.Y.Clone()}
	case ExprParen:
		out.Paren = &ParenExpr{
			LParenTok: cloneTok(e.Paren.LParenTok),
			Inner:     e.Paren.Inner.Clone(),
			RParenTok: cloneTok(e.Paren.RParenTok),
		}
	}
	return out
}

func (f *Field) Clone() *Field {
	out := &Field{
		Kind:      f.Kind,
		Span:      f.Span,
		NameTok:   cloneTok(f.NameTok),
		LBrackTok: cloneTok(f.LBrackTok),
		RBrackTok: cloneTok(f.RBrackTok),
		AssignTok: cloneTok(f.AssignTok),
		Sep:       cloneTokPtr(f.Sep),
	}
	if f.KeyExpr != nil {
		out.KeyExpr = f.KeyExpr.Clone()
	}
	if f.Value != nil {
		out.Value = f.Value.Clone()
	}
	return out
}
