package model

import (
	"strconv"
	"strings"

	"nvcfg/internal/ast"
	"nvcfg/internal/printer"
	"nvcfg/internal/token"
)

// optionScopes are the vim namespaces whose assignments count as option
// entities.
var optionScopes = map[string]bool{
	"opt":        true,
	"opt_local":  true,
	"opt_global": true,
	"o":          true,
	"g":          true,
	"bo":         true,
	"wo":         true,
}

// Extract walks one chunk and collects option assignments and plugin
// declarations. filePath is recorded on plugin entities for cross-file
// duplicate reporting.
func Extract(chunk *ast.Chunk, filePath string) *File {
	ex := extractor{
		out:     &File{Path: filePath},
		aliases: map[string]string{},
	}
	for i, st := range chunk.Stmts {
		ex.stmt(st, ast.Path{i})
	}
	return ex.out
}

type extractor struct {
	out *File
	// aliases maps local names to option scopes, from statements like
	// "local opt = vim.opt".
	aliases map[string]string
}

func (ex *extractor) stmt(st *ast.Stmt, path ast.Path) {
	switch st.Kind {
	case ast.StmtLocal:
		ex.recordAliases(st.Local)
	case ast.StmtAssign:
		ex.assign(st, path)
	case ast.StmtCall:
		ex.call(st.Call.Call, path)
	case ast.StmtDo:
		for i, inner := range st.Do.Body {
			ex.stmt(inner, path.Child(i))
		}
	}
}

// recordAliases tracks "local opt = vim.opt" style bindings.
func (ex *extractor) recordAliases(l *ast.LocalStmt) {
	for i, name := range l.Names {
		if i >= len(l.Values) {
			break
		}
		if scope, ok := scopeOfExpr(l.Values[i]); ok {
			ex.aliases[name.Text] = scope
		}
	}
}

func (ex *extractor) assign(st *ast.Stmt, path ast.Path) {
	a := st.Assign
	for i, tgt := range a.Targets {
		if i >= len(a.Values) {
			break
		}
		scope, key, ok := ex.optionTarget(tgt)
		if !ok {
			continue
		}
		ex.out.Options = append(ex.out.Options, OptionAssign{
			Key:        key,
			Scope:      scope,
			Value:      ResolveValue(a.Values[i]),
			Path:       path,
			Span:       st.Span,
			ValueIndex: i,
		})
	}
}

// optionTarget matches "vim.<scope>.<key...>" or "<alias>.<key...>",
// including bracket string keys.
func (ex *extractor) optionTarget(e *ast.Expr) (scope, key string, ok bool) {
	var parts []string
	cur := e
	for cur.Kind == ast.ExprIndex {
		ix := cur.Index
		if ix.Bracket {
			if ix.Sub.Kind != ast.ExprLiteral || ix.Sub.Lit.Tok.Kind != token.StringLit {
				return "", "", false
			}
			parts = append(parts, DecodeString(ix.Sub.Lit.Tok.Text))
		} else {
			parts = append(parts, ix.Name())
		}
		cur = ix.Base
	}
	if cur.Kind != ast.ExprIdent || len(parts) == 0 {
		return "", "", false
	}

	// parts are collected innermost-first; reverse them
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	root := cur.Ident.Name()
	if root == "vim" {
		if len(parts) < 2 || !optionScopes[parts[0]] {
			return "", "", false
		}
		return parts[0], strings.Join(parts[1:], "."), true
	}
	if s, aliased := ex.aliases[root]; aliased {
		return s, strings.Join(parts, "."), true
	}
	return "", "", false
}

// scopeOfExpr matches a bare "vim.<scope>" expression.
func scopeOfExpr(e *ast.Expr) (string, bool) {
	if e.Kind != ast.ExprIndex || e.Index.Bracket {
		return "", false
	}
	base := e.Index.Base
	if base.Kind != ast.ExprIdent || base.Ident.Name() != "vim" {
		return "", false
	}
	if !optionScopes[e.Index.Name()] {
		return "", false
	}
	return e.Index.Name(), true
}

// call looks for the plugin-manager setup convention:
// require("lazy").setup({...}) or require("lazy").setup("...", {...}).
func (ex *extractor) call(call *ast.Expr, path ast.Path) {
	c := call.Call
	if !IsLazySetup(c.Base) {
		return
	}
	spec := setupSpecTable(c)
	if spec == nil {
		return
	}
	ex.specList(spec.expr, path.Child(spec.argIndex))
}

type specArg struct {
	expr     *ast.Expr
	argIndex int
}

// setupSpecTable finds the table argument holding plugin specs.
func setupSpecTable(c *ast.CallExpr) *specArg {
	switch c.Style {
	case ast.ArgsTable:
		return &specArg{expr: c.Arg, argIndex: 0}
	case ast.ArgsParen:
		for i, a := range c.Args {
			if a.Kind == ast.ExprTable {
				return &specArg{expr: a, argIndex: i}
			}
		}
	}
	return nil
}

// IsLazySetup matches `require("lazy").setup`.
func IsLazySetup(e *ast.Expr) bool {
	if e.Kind != ast.ExprIndex || e.Index.Bracket || e.Index.Name() != "setup" {
		return false
	}
	base := e.Index.Base
	if base.Kind != ast.ExprCall {
		return false
	}
	rc := base.Call
	if rc.Base.Kind != ast.ExprIdent || rc.Base.Ident.Name() != "require" {
		return false
	}
	mod := ""
	switch rc.Style {
	case ast.ArgsString:
		mod = DecodeString(rc.Arg.Lit.Tok.Text)
	case ast.ArgsParen:
		if len(rc.Args) == 1 && rc.Args[0].Kind == ast.ExprLiteral &&
			rc.Args[0].Lit.Tok.Kind == token.StringLit {
			mod = DecodeString(rc.Args[0].Lit.Tok.Text)
		}
	}
	return mod == "lazy"
}

// specList walks a table of plugin specs. Entries may be spec tables,
// bare name strings, or named list fields (lazy's `spec = {...}`)
// which recurse.
func (ex *extractor) specList(tbl *ast.Expr, path ast.Path) {
	if tbl.Kind != ast.ExprTable {
		return
	}
	for i, f := range tbl.Table.Fields {
		fieldPath := path.Child(i)
		switch f.Kind {
		case ast.FieldValue:
			switch f.Value.Kind {
			case ast.ExprTable:
				ex.spec(f.Value, fieldPath)
			case ast.ExprLiteral:
				if f.Value.Lit.Tok.Kind == token.StringLit {
					ex.out.Plugins = append(ex.out.Plugins, PluginDecl{
						Name:       DecodeString(f.Value.Lit.Tok.Text),
						SourceFile: ex.out.Path,
						Path:       fieldPath,
						Span:       f.Span,
					})
				}
			}
		case ast.FieldNamed:
			// nested list fields such as "spec" or "plugins"
			if f.Value.Kind == ast.ExprTable && isSpecListTable(f.Value.Table) {
				ex.specList(f.Value, fieldPath)
			}
		}
	}
}

// isSpecListTable reports whether every positional entry is a table or a
// string, the shape of a spec list rather than an options table.
func isSpecListTable(t *ast.TableExpr) bool {
	positional := 0
	for _, f := range t.Fields {
		if f.Kind != ast.FieldValue {
			continue
		}
		positional++
		if f.Value.Kind != ast.ExprTable &&
			!(f.Value.Kind == ast.ExprLiteral && f.Value.Lit.Tok.Kind == token.StringLit) {
			return false
		}
	}
	return positional > 0
}

// spec extracts one plugin declaration table.
func (ex *extractor) spec(tbl *ast.Expr, path ast.Path) {
	decl := PluginDecl{SourceFile: ex.out.Path, Path: path, Span: tbl.Span}
	for i, f := range tbl.Table.Fields {
		switch f.Kind {
		case ast.FieldValue:
			switch f.Value.Kind {
			case ast.ExprLiteral:
				if decl.Name == "" && f.Value.Lit.Tok.Kind == token.StringLit {
					decl.Name = DecodeString(f.Value.Lit.Tok.Text)
				}
			case ast.ExprTable:
				// nested spec inside a spec (lazy allows grouping)
				ex.spec(f.Value, path.Child(i))
			}
		case ast.FieldNamed:
			switch f.NameTok.Text {
			case "dependencies":
				decl.Dependencies = stringList(f.Value)
			case "event":
				decl.Events = stringList(f.Value)
			case "enabled":
				if b, ok := boolOf(f.Value); ok {
					v := b
					decl.Enabled = &v
				}
			case "opts":
				decl.HasOpts = f.Value.Kind == ast.ExprTable
			}
		}
	}
	if decl.Name != "" {
		ex.out.Plugins = append(ex.out.Plugins, decl)
	}
}

// stringList accepts a single string or a table of strings. Nested spec
// tables inside dependencies contribute their name strings.
func stringList(e *ast.Expr) []string {
	switch e.Kind {
	case ast.ExprLiteral:
		if e.Lit.Tok.Kind == token.StringLit {
			return []string{DecodeString(e.Lit.Tok.Text)}
		}
	case ast.ExprTable:
		var out []string
		for _, f := range e.Table.Fields {
			if f.Kind != ast.FieldValue {
				continue
			}
			switch f.Value.Kind {
			case ast.ExprLiteral:
				if f.Value.Lit.Tok.Kind == token.StringLit {
					out = append(out, DecodeString(f.Value.Lit.Tok.Text))
				}
			case ast.ExprTable:
				// dependency declared inline as a spec table
				for _, inner := range f.Value.Table.Fields {
					if inner.Kind == ast.FieldValue && inner.Value.Kind == ast.ExprLiteral &&
						inner.Value.Lit.Tok.Kind == token.StringLit {
						out = append(out, DecodeString(inner.Value.Lit.Tok.Text))
						break
					}
				}
			}
		}
		return out
	}
	return nil
}

func boolOf(e *ast.Expr) (bool, bool) {
	if e.Kind != ast.ExprLiteral {
		return false, false
	}
	switch e.Lit.Tok.Kind {
	case token.KwTrue:
		return true, true
	case token.KwFalse:
		return false, true
	}
	return false, false
}

// ResolveValue types an expression by its literal kind.
func ResolveValue(e *ast.Expr) Value {
	raw := printer.PrintExpr(e)
	switch e.Kind {
	case ast.ExprLiteral:
		tok := e.Lit.Tok
		switch tok.Kind {
		case token.KwNil:
			return Value{Kind: ValueNil, Raw: raw}
		case token.KwTrue:
			return Value{Kind: ValueBool, Bool: true, Raw: raw}
		case token.KwFalse:
			return Value{Kind: ValueBool, Bool: false, Raw: raw}
		case token.NumberLit:
			n, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				// hex and exponent forms ParseFloat may reject
				if i, herr := strconv.ParseInt(tok.Text, 0, 64); herr == nil {
					n = float64(i)
					err = nil
				}
			}
			if err == nil {
				return Value{Kind: ValueNumber, Num: n, Raw: raw}
			}
		case token.StringLit:
			return Value{Kind: ValueString, Str: DecodeString(tok.Text), Raw: raw}
		}
	case ast.ExprTable:
		return Value{Kind: ValueTable, Raw: raw}
	case ast.ExprFunction:
		return Value{Kind: ValueFunction, Raw: raw}
	case ast.ExprUnary:
		if e.Unary.OpTok.Kind == token.Minus {
			inner := ResolveValue(e.Unary.Operand)
			if inner.Kind == ValueNumber {
				return Value{Kind: ValueNumber, Num: -inner.Num, Raw: raw}
			}
		}
	}
	return Value{Kind: ValueUnknown, Raw: raw}
}

// DecodeString strips quotes or long brackets from a string literal's
// source text and resolves the common escapes.
func DecodeString(text string) string {
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') {
		body := text[1 : len(text)-1]
		if !strings.ContainsRune(body, '\\') {
			return body
		}
		var sb strings.Builder
		for i := 0; i < len(body); i++ {
			if body[i] != '\\' || i+1 >= len(body) {
				sb.WriteByte(body[i])
				continue
			}
			i++
			switch body[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\', '"', '\'':
				sb.WriteByte(body[i])
			default:
				sb.WriteByte('\\')
				sb.WriteByte(body[i])
			}
		}
		return sb.String()
	}
	if strings.HasPrefix(text, "[") {
		// long bracket: strip [==[ ... ]==]
		open := strings.IndexByte(text, '[')
		second := strings.IndexByte(text[1:], '[')
		if second >= 0 {
			level := second
			start := open + level + 2
			end := len(text) - level - 2
			if start <= end {
				return text[start:end]
			}
		}
	}
	return text
}
