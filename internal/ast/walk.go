package ast

import (
	"nvcfg/internal/token"
)

// VisitTokens calls fn for every token of the chunk in exact source
// order, EOF last. Callers receive pointers so they can rewrite trivia
// in place; the printer and patch engine both depend on this order.
func (c *Chunk) VisitTokens(fn func(*token.Token)) {
	for _, st := range c.Stmts {
		st.VisitTokens(fn)
	}
	fn(&c.EOF)
}

// FirstToken returns the first token of the statement, or nil for an
// empty token run.
func (s *Stmt) FirstToken() *token.Token {
	var first *token.Token
	s.VisitTokens(func(t *token.Token) {
		if first == nil {
			first = t
		}
	})
	return first
}

// LastToken returns the last token of the statement.
func (s *Stmt) LastToken() *token.Token {
	var last *token.Token
	s.VisitTokens(func(t *token.Token) {
		last = t
	})
	return last
}

func (s *Stmt) VisitTokens(fn func(*token.Token)) {
	switch s.Kind {
	case StmtAssign:
		a := s.Assign
		for i, tgt := range a.Targets {
			tgt.VisitTokens(fn)
			if i < len(a.Commas) {
				fn(&a.Commas[i])
			}
		}
		fn(&a.AssignTok)
		for i, v := range a.Values {
			v.VisitTokens(fn)
			if i < len(a.ValueCommas) {
				fn(&a.ValueCommas[i])
			}
		}
	case StmtLocal:
		l := s.Local
		fn(&l.LocalTok)
		for i := range l.Names {
			fn(&l.Names[i])
			if i < len(l.NameCommas) {
				fn(&l.NameCommas[i])
			}
		}
		if l.AssignTok != nil {
			fn(l.AssignTok)
			for i, v := range l.Values {
				v.VisitTokens(fn)
				if i < len(l.ValueCommas) {
					fn(&l.ValueCommas[i])
				}
			}
		}
	case StmtCall:
		s.Call.Call.VisitTokens(fn)
	case StmtReturn:
		r := s.Return
		fn(&r.ReturnTok)
		for i, v := range r.Values {
			v.VisitTokens(fn)
			if i < len(r.Commas) {
				fn(&r.Commas[i])
			}
		}
	case StmtDo:
		d := s.Do
		fn(&d.DoTok)
		for _, st := range d.Body {
			st.VisitTokens(fn)
		}
		fn(&d.EndTok)
	case StmtSemi:
		fn(&s.Semi.Tok)
	case StmtOpaque:
		for i := range s.Opaque.Tokens {
			fn(&s.Opaque.Tokens[i])
		}
	case StmtError:
		for i := range s.Error.Tokens {
			fn(&s.Error.Tokens[i])
		}
	}
}

func (e *Expr) VisitTokens(fn func(*token.Token)) {
	switch e.Kind {
	case ExprIdent:
		fn(&e.Ident.Tok)
	case ExprLiteral:
		fn(&e.Lit.Tok)
	case ExprIndex:
		ix := e.Index
		ix.Base.VisitTokens(fn)
		if ix.Bracket {
			fn(&ix.LBrackTok)
			ix.Sub.VisitTokens(fn)
			fn(&ix.RBrackTok)
		} else {
			fn(&ix.DotTok)
			fn(&ix.NameTok)
		}
	case ExprCall:
		c := e.Call
		c.Base.VisitTokens(fn)
		if c.ColonTok != nil {
			fn(c.ColonTok)
			fn(c.MethodTok)
		}
		switch c.Style {
		case ArgsParen:
			fn(&c.LParenTok)
			for i, a := range c.Args {
				a.VisitTokens(fn)
				if i < len(c.Commas) {
					fn(&c.Commas[i])
				}
			}
			fn(&c.RParenTok)
		case ArgsString, ArgsTable:
			c.Arg.VisitTokens(fn)
		}
	case ExprTable:
		t := e.Table
		fn(&t.LBraceTok)
		for _, f := range t.Fields {
			f.VisitTokens(fn)
		}
		fn(&t.RBraceTok)
	case ExprFunction:
		for i := range e.Func.Tokens {
			fn(&e.Func.Tokens[i])
		}
	case ExprUnary:
		fn(&e.Unary.OpTok)
		e.Unary.Operand.VisitTokens(fn)
	case ExprBinary:
		e.Binary.X.VisitTokens(fn)
		fn(&e.Binary.OpTok)
		e.Binary.Y.VisitTokens(fn)
	case ExprParen:
		fn(&e.Paren.LParenTok)
		e.Paren.Inner.VisitTokens(fn)
		fn(&e.Paren.RParenTok)
	}
}

func (f *Field) VisitTokens(fn func(*token.Token)) {
	switch f.Kind {
	case FieldValue:
		f.Value.VisitTokens(fn)
	case FieldNamed:
		fn(&f.NameTok)
		fn(&f.AssignTok)
		f.Value.VisitTokens(fn)
	case FieldBracket:
		fn(&f.LBrackTok)
		f.KeyExpr.VisitTokens(fn)
		fn(&f.RBrackTok)
		fn(&f.AssignTok)
		f.Value.VisitTokens(fn)
	}
	if f.Sep != nil {
		fn(f.Sep)
	}
}

// HasErrors reports whether the chunk contains any error statements.
func (c *Chunk) HasErrors() bool {
	for _, st := range c.Stmts {
		if st.Kind == StmtError {
			return true
		}
		if st.Kind == StmtDo {
			for _, inner := range st.Do.Body {
				if inner.Kind == StmtError {
					return true
				}
			}
		}
	}
	return false
}
