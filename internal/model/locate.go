package model

import (
	"nvcfg/internal/ast"
	"nvcfg/internal/token"
)

// SpecList locates the table plugin specs should be appended to: the
// table argument of require("lazy").setup, or its nested list field
// ("spec"/"plugins") when the setup call uses one.
func SpecList(chunk *ast.Chunk) (*ast.TableExpr, bool) {
	for _, st := range chunk.Stmts {
		if st.Kind != ast.StmtCall {
			continue
		}
		c := st.Call.Call.Call
		if !IsLazySetup(c.Base) {
			continue
		}
		arg := setupSpecTable(c)
		if arg == nil || arg.expr.Kind != ast.ExprTable {
			continue
		}
		tbl := arg.expr.Table
		for _, f := range tbl.Fields {
			if f.Kind == ast.FieldNamed && f.Value.Kind == ast.ExprTable &&
				isSpecListTable(f.Value.Table) {
				return f.Value.Table, true
			}
		}
		return tbl, true
	}
	return nil, false
}

// FindSpec locates the declaration entry for a plugin name: the owning
// table and field index. The entry may be a spec table or a bare name
// string.
func FindSpec(chunk *ast.Chunk, name string) (owner *ast.TableExpr, idx int, ok bool) {
	for _, st := range chunk.Stmts {
		if st.Kind != ast.StmtCall {
			continue
		}
		c := st.Call.Call.Call
		if !IsLazySetup(c.Base) {
			continue
		}
		arg := setupSpecTable(c)
		if arg == nil || arg.expr.Kind != ast.ExprTable {
			continue
		}
		if owner, idx, ok = findSpecIn(arg.expr.Table, name); ok {
			return owner, idx, true
		}
	}
	return nil, 0, false
}

func findSpecIn(tbl *ast.TableExpr, name string) (*ast.TableExpr, int, bool) {
	for i, f := range tbl.Fields {
		switch f.Kind {
		case ast.FieldValue:
			switch f.Value.Kind {
			case ast.ExprLiteral:
				if f.Value.Lit.Tok.Kind == token.StringLit &&
					DecodeString(f.Value.Lit.Tok.Text) == name {
					return tbl, i, true
				}
			case ast.ExprTable:
				if SpecName(f.Value.Table) == name {
					return tbl, i, true
				}
				if owner, idx, ok := findSpecIn(f.Value.Table, name); ok {
					return owner, idx, ok
				}
			}
		case ast.FieldNamed:
			if f.Value.Kind == ast.ExprTable && isSpecListTable(f.Value.Table) {
				if owner, idx, ok := findSpecIn(f.Value.Table, name); ok {
					return owner, idx, ok
				}
			}
		}
	}
	return nil, 0, false
}

// SpecName returns a spec table's first positional string, or "".
func SpecName(tbl *ast.TableExpr) string {
	for _, f := range tbl.Fields {
		if f.Kind == ast.FieldValue && f.Value.Kind == ast.ExprLiteral &&
			f.Value.Lit.Tok.Kind == token.StringLit {
			return DecodeString(f.Value.Lit.Tok.Text)
		}
	}
	return ""
}

// NamedField returns the field with the given name inside a spec table.
func NamedField(tbl *ast.TableExpr, name string) (*ast.Field, bool) {
	for _, f := range tbl.Fields {
		if f.Kind == ast.FieldNamed && f.NameTok.Text == name {
			return f, true
		}
	}
	return nil, false
}
