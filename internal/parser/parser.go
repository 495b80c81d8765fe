// Package parser builds the concrete syntax tree for Lua configuration
// sources. Parsing never fails outright: unparseable regions degrade to
// error statements carrying their raw tokens, so the rest of the tree
// stays usable and the file stays printable.
package parser

import (
	"nvcfg/internal/ast"
	"nvcfg/internal/diag"
	"nvcfg/internal/lexer"
	"nvcfg/internal/source"
	"nvcfg/internal/token"
)

type Options struct {
	// Reporter receives diagnostics. When nil, ParseFile creates an
	// internal bag so Result.Bag is always populated.
	Reporter diag.Reporter
	// MaxErrors caps reported syntax errors; 0 means unlimited.
	MaxErrors uint
}

type Result struct {
	Chunk *ast.Chunk
	Bag   *diag.Bag
}

// Parser holds per-file parse state over a pre-lexed token slice.
type Parser struct {
	file *source.File
	toks []token.Token
	pos  int
	opts Options
	errs uint
}

// ParseFile lexes and parses one file.
func ParseFile(file *source.File, opts Options) Result {
	var bag *diag.Bag
	if opts.Reporter == nil {
		bag = diag.NewBag(0)
		opts.Reporter = diag.NewBagReporter(bag)
	} else if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}

	toks := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		file: file,
		toks: toks,
		opts: opts,
	}

	chunk := p.parseChunk()
	return Result{Chunk: chunk, Bag: bag}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek2() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) next() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors > 0 && p.errs >= p.opts.MaxErrors
}

func (p *Parser) errSyn(code diag.Code, sp source.Span, msg string) {
	if p.enough() {
		return
	}
	p.errs++
	diag.Error(p.opts.Reporter, code, sp, msg)
}

func (p *Parser) parseChunk() *ast.Chunk {
	chunk := &ast.Chunk{}
	for !p.at(token.EOF) {
		before := p.pos
		st := p.parseStmt()
		if st != nil {
			chunk.Stmts = append(chunk.Stmts, st)
		}
		if p.pos == before {
			// no progress; swallow one token into an error statement
			bad := p.next()
			p.errSyn(diag.SynUnexpectedToken, bad.Span, "unexpected token "+bad.Kind.String())
			chunk.Stmts = append(chunk.Stmts, errStmtFrom([]token.Token{bad}))
		}
	}
	chunk.EOF = p.peek()
	if len(chunk.Stmts) > 0 {
		first := chunk.Stmts[0].FirstToken()
		last := chunk.Stmts[len(chunk.Stmts)-1].LastToken()
		chunk.Span = first.Span.Cover(last.Span)
	} else {
		chunk.Span = chunk.EOF.Span
	}
	return chunk
}

func errStmtFrom(toks []token.Token) *ast.Stmt {
	st := &ast.Stmt{Kind: ast.StmtError, Error: &ast.ErrorStmt{Tokens: toks}}
	if len(toks) > 0 {
		st.Span = toks[0].Span.Cover(toks[len(toks)-1].Span)
	}
	return st
}

// spanOf covers an expression's tokens.
func spanOf(e *ast.Expr) source.Span {
	var first, last *token.Token
	e.VisitTokens(func(t *token.Token) {
		if first == nil {
			first = t
		}
		last = t
	})
	if first == nil {
		return source.Span{}
	}
	return first.Span.Cover(last.Span)
}

func stmtSpan(s *ast.Stmt) source.Span {
	first := s.FirstToken()
	last := s.LastToken()
	if first == nil || last == nil {
		return source.Span{}
	}
	return first.Span.Cover(last.Span)
}
