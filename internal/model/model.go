// Package model is the typed view over the syntax tree: it recognizes
// option assignments and plugin declarations and exposes them as plain
// entities. Anything it does not recognize is left alone: opaque
// constructs are not errors.
//
// Entities keep structural paths back into the tree, never node
// references. After any patch the model must be re-extracted.
package model

import (
	"nvcfg/internal/ast"
	"nvcfg/internal/source"
)

type ValueKind uint8

const (
	ValueUnknown ValueKind = iota
	ValueNil
	ValueBool
	ValueNumber
	ValueString
	ValueTable
	ValueFunction
)

func (k ValueKind) String() string {
	switch k {
	case ValueNil:
		return "nil"
	case ValueBool:
		return "boolean"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueTable:
		return "table"
	case ValueFunction:
		return "function"
	}
	return "unknown"
}

// Value is a resolved literal value. Raw always holds the printed
// source text; the typed fields are only meaningful for their kind.
type Value struct {
	Kind ValueKind
	Bool bool
	Num  float64
	Str  string
	Raw  string
}

// OptionAssign is one recognized option assignment, e.g.
// "vim.opt.tabstop = 4" (Key "tabstop", Scope "opt").
type OptionAssign struct {
	Key   string
	Scope string
	Value Value
	Path  ast.Path
	Span  source.Span
	// ValueIndex is the position within the assignment's value list,
	// for multi-assignment statements.
	ValueIndex int
}

// PluginDecl is one plugin spec extracted from a plugin-manager setup
// call. Name is the declaration's first positional string.
type PluginDecl struct {
	Name         string
	Dependencies []string
	Events       []string
	Enabled      *bool
	HasOpts      bool
	SourceFile   string
	Path         ast.Path
	Span         source.Span
}

// File is the extracted semantic model of one chunk.
type File struct {
	Path    string
	Options []OptionAssign
	Plugins []PluginDecl
}
