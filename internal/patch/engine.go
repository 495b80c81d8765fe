package patch

import (
	"nvcfg/internal/ast"
	"nvcfg/internal/model"
	"nvcfg/internal/parser"
	"nvcfg/internal/printer"
	"nvcfg/internal/source"
)

// Result is the outcome of a successfully applied patch.
type Result struct {
	Chunk *ast.Chunk
	// Notes describe the structural operations, in order, for diff
	// annotation.
	Notes []string
}

// Apply runs every op of the patch against a clone of the tree. On any
// failure the error is returned and the input tree is untouched.
func Apply(chunk *ast.Chunk, p Patch) (*Result, error) {
	work := chunk.Clone()
	hadErrors := chunk.HasErrors()

	notes := make([]string, 0, len(p.Ops))
	for _, op := range p.Ops {
		var err error
		switch op.Kind {
		case OpSetOption:
			err = applySetOption(work, op)
		case OpAddPlugin:
			err = applyAddPlugin(work, op)
		case OpRemovePlugin:
			err = applyRemovePlugin(work, op)
		case OpAddDependency:
			err = applyAddDependency(work, op)
		default:
			err = errMalformed(op, "unknown operation")
		}
		if err != nil {
			return nil, err
		}
		notes = append(notes, op.Describe())
	}

	// The patched tree must still reparse cleanly. Skipped when the
	// input already carried error nodes: those reprint verbatim.
	if !hadErrors {
		if err := verify(work); err != nil {
			return nil, err
		}
	}
	return &Result{Chunk: work, Notes: notes}, nil
}

func verify(c *ast.Chunk) error {
	text := printer.Print(c)
	fs := source.NewFileSet()
	id := fs.AddVirtual("verify.lua", []byte(text))
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	if res.Bag.HasErrors() {
		return &TransformError{Kind: Malformed, Op: "patch", Msg: "patched tree does not reparse"}
	}
	return nil
}

// resolveStmt follows a statement path (top-level index, then do-block
// body indices).
func resolveStmt(c *ast.Chunk, path ast.Path) *ast.Stmt {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(c.Stmts) {
		return nil
	}
	st := c.Stmts[path[0]]
	for _, step := range path[1:] {
		if st.Kind != ast.StmtDo || step < 0 || step >= len(st.Do.Body) {
			return nil
		}
		st = st.Do.Body[step]
	}
	return st
}

func applySetOption(c *ast.Chunk, op Op) error {
	m := model.Extract(c, "")

	// last matching assignment wins at runtime, so that is the one to
	// rewrite
	var found *model.OptionAssign
	for i := range m.Options {
		oa := &m.Options[i]
		if oa.Key != op.Key {
			continue
		}
		if op.Scope != "" && oa.Scope != op.Scope {
			continue
		}
		found = oa
	}

	if found != nil {
		st := resolveStmt(c, found.Path)
		if st == nil || st.Kind != ast.StmtAssign || found.ValueIndex >= len(st.Assign.Values) {
			return errMalformed(op, "option path no longer resolves")
		}
		newVal, ok := parseExprSnippet(op.Value.LuaText())
		if !ok {
			return errMalformed(op, "cannot render value")
		}
		old := st.Assign.Values[found.ValueIndex]
		copyLeading(firstTokenOfExpr(newVal), firstTokenOfExpr(old))
		st.Assign.Values[found.ValueIndex] = newVal
		return nil
	}

	// synthesize a new assignment after the last option statement
	scope := op.Scope
	if scope == "" {
		scope = "opt"
	}
	newStmt, ok := parseStmtSnippet("vim." + scope + "." + op.Key + " = " + op.Value.LuaText())
	if !ok {
		return errMalformed(op, "cannot render option assignment")
	}

	insertAt := len(c.Stmts)
	if len(m.Options) > 0 {
		insertAt = m.Options[len(m.Options)-1].Path[0] + 1
	}
	if insertAt > 0 {
		setLeading(newStmt.FirstToken(), "\n")
	} else {
		setLeading(newStmt.FirstToken(), "")
	}
	c.Stmts = append(c.Stmts[:insertAt], append([]*ast.Stmt{newStmt}, c.Stmts[insertAt:]...)...)
	return nil
}

func applyAddPlugin(c *ast.Chunk, op Op) error {
	if op.Spec.Name == "" {
		return errMalformed(op, "plugin spec has no name")
	}
	if _, _, ok := model.FindSpec(c, op.Spec.Name); ok {
		// already declared; a second application is a no-op
		return nil
	}

	list, ok := model.SpecList(c)
	if !ok {
		// no plugin-manager call anywhere: synthesize one
		st, ok2 := parseStmtSnippet("require(\"lazy\").setup({\n  " + specText(op.Spec) + ",\n})")
		if !ok2 {
			return errMalformed(op, "cannot render setup call")
		}
		if len(c.Stmts) > 0 {
			setLeading(st.FirstToken(), "\n")
		}
		c.Stmts = append(c.Stmts, st)
		return nil
	}

	specExpr, ok := parseExprSnippet(specText(op.Spec))
	if !ok {
		return errMalformed(op, "cannot render plugin spec")
	}
	field := &ast.Field{Kind: ast.FieldValue, Value: specExpr}
	insertAfterLastOfKind(list, field, ast.FieldValue)
	return nil
}

func applyRemovePlugin(c *ast.Chunk, op Op) error {
	owner, idx, ok := model.FindSpec(c, op.Plugin)
	if !ok {
		return errTarget(op, "plugin not declared: "+op.Plugin)
	}
	owner.Fields = append(owner.Fields[:idx], owner.Fields[idx+1:]...)
	return nil
}

func applyAddDependency(c *ast.Chunk, op Op) error {
	owner, idx, ok := model.FindSpec(c, op.Plugin)
	if !ok {
		return errTarget(op, "plugin not declared: "+op.Plugin)
	}
	f := owner.Fields[idx]

	// bare string spec: expand into a table spec carrying the dependency
	if f.Value.Kind == ast.ExprLiteral {
		newExpr, ok2 := parseExprSnippet("{ " + f.Value.Lit.Tok.Text + ", dependencies = { " + quoteLua(op.Dep) + " } }")
		if !ok2 {
			return errMalformed(op, "cannot expand plugin spec")
		}
		copyLeading(firstTokenOfExpr(newExpr), firstTokenOfExpr(f.Value))
		f.Value = newExpr
		return nil
	}
	if f.Value.Kind != ast.ExprTable {
		return errMalformed(op, "plugin spec is not a table")
	}
	tbl := f.Value.Table

	if df, has := model.NamedField(tbl, "dependencies"); has {
		if df.Value.Kind != ast.ExprTable {
			return errMalformed(op, "dependencies is not a table")
		}
		dt := df.Value.Table
		for _, fld := range dt.Fields {
			if fld.Kind == ast.FieldValue && fld.Value.Kind == ast.ExprLiteral &&
				model.DecodeString(fld.Value.Lit.Tok.Text) == op.Dep {
				// already declared
				return nil
			}
		}
		depExpr, ok2 := parseExprSnippet(quoteLua(op.Dep))
		if !ok2 {
			return errMalformed(op, "cannot render dependency")
		}
		insertAfterLastOfKind(dt, &ast.Field{Kind: ast.FieldValue, Value: depExpr}, ast.FieldValue)
		return nil
	}

	// no dependencies field yet: append one after the last field
	wrapped, ok2 := parseExprSnippet("{ dependencies = { " + quoteLua(op.Dep) + " } }")
	if !ok2 || len(wrapped.Table.Fields) != 1 {
		return errMalformed(op, "cannot render dependencies field")
	}
	nf := wrapped.Table.Fields[0]
	nf.Sep = nil
	insertAfterLastOfKind(tbl, nf, nf.Kind)
	return nil
}

// insertAfterLastOfKind places the new field after the last sibling of
// the same kind (or after the last field of any kind when none exists),
// matching the sibling's leading trivia and separator style.
func insertAfterLastOfKind(tbl *ast.TableExpr, f *ast.Field, kind ast.FieldKind) {
	last := -1
	for i, fld := range tbl.Fields {
		if fld.Kind == kind {
			last = i
		}
	}
	if last < 0 {
		last = len(tbl.Fields) - 1
	}

	first := firstTokenOfField(f)
	if last >= 0 {
		prev := tbl.Fields[last]
		copyLeading(first, firstTokenOfField(prev))
		if prev.Sep == nil {
			c := commaToken()
			prev.Sep = &c
		} else {
			c := commaToken()
			f.Sep = &c
		}
		at := last + 1
		tbl.Fields = append(tbl.Fields[:at], append([]*ast.Field{f}, tbl.Fields[at:]...)...)
		return
	}

	// empty table
	setLeading(first, " ")
	if len(tbl.RBraceTok.Leading) == 0 {
		setLeading(&tbl.RBraceTok, " ")
	}
	tbl.Fields = append(tbl.Fields, f)
}
