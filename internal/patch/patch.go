// Package patch applies structural edits to a syntax tree: option
// updates, plugin insertion/removal, and dependency edits. Targets are
// located by structure (option key, plugin name), never by line number.
// A Patch is all-or-nothing: it either yields a well-formed tree or is
// rejected in full with the original untouched.
package patch

import (
	"fmt"
	"strconv"
	"strings"

	"nvcfg/internal/model"
)

type OpKind uint8

const (
	OpSetOption OpKind = iota
	OpAddPlugin
	OpRemovePlugin
	OpAddDependency
)

func (k OpKind) String() string {
	switch k {
	case OpSetOption:
		return "set_option"
	case OpAddPlugin:
		return "add_plugin"
	case OpRemovePlugin:
		return "remove_plugin"
	case OpAddDependency:
		return "add_dependency"
	}
	return "unknown"
}

// Literal is a patch value: the subset of Lua literals an option can be
// set to.
type Literal struct {
	Kind model.ValueKind
	Bool bool
	Num  float64
	Str  string
}

func Bool(b bool) Literal      { return Literal{Kind: model.ValueBool, Bool: b} }
func Number(n float64) Literal { return Literal{Kind: model.ValueNumber, Num: n} }
func String(s string) Literal  { return Literal{Kind: model.ValueString, Str: s} }
func Nil() Literal             { return Literal{Kind: model.ValueNil} }

// LuaText renders the literal as Lua source.
func (l Literal) LuaText() string {
	switch l.Kind {
	case model.ValueBool:
		if l.Bool {
			return "true"
		}
		return "false"
	case model.ValueNumber:
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case model.ValueString:
		return quoteLua(l.Str)
	case model.ValueNil:
		return "nil"
	}
	return "nil"
}

func quoteLua(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// PluginSpec describes a plugin to insert.
type PluginSpec struct {
	Name         string
	Dependencies []string
	Events       []string
	Enabled      *bool
}

// Op is one edit. The meaning of the fields depends on Kind.
type Op struct {
	Kind OpKind

	// OpSetOption
	Scope string // defaults to "opt"
	Key   string
	Value Literal

	// OpAddPlugin
	Spec PluginSpec

	// OpRemovePlugin / OpAddDependency
	Plugin string
	Dep    string
}

func SetOption(key string, value Literal) Op {
	return Op{Kind: OpSetOption, Key: key, Value: value}
}

func SetScopedOption(scope, key string, value Literal) Op {
	return Op{Kind: OpSetOption, Scope: scope, Key: key, Value: value}
}

func AddPlugin(spec PluginSpec) Op {
	return Op{Kind: OpAddPlugin, Spec: spec}
}

func RemovePlugin(name string) Op {
	return Op{Kind: OpRemovePlugin, Plugin: name}
}

func AddDependency(plugin, dep string) Op {
	return Op{Kind: OpAddDependency, Plugin: plugin, Dep: dep}
}

// Describe renders the op for diff annotations and logs.
func (op Op) Describe() string {
	switch op.Kind {
	case OpSetOption:
		return fmt.Sprintf("set_option %s = %s", op.Key, op.Value.LuaText())
	case OpAddPlugin:
		return "add_plugin " + op.Spec.Name
	case OpRemovePlugin:
		return "remove_plugin " + op.Plugin
	case OpAddDependency:
		return fmt.Sprintf("add_dependency %s -> %s", op.Plugin, op.Dep)
	}
	return "unknown op"
}

// Patch is an ordered sequence of edits applied atomically.
type Patch struct {
	Ops []Op
}

// ErrorKind classifies why a patch was rejected.
type ErrorKind uint8

const (
	// TargetNotFound means an op's structural target does not exist and
	// no insertion policy applies.
	TargetNotFound ErrorKind = iota
	// Malformed means an op produced an ill-formed node.
	Malformed
)

func (k ErrorKind) String() string {
	switch k {
	case TargetNotFound:
		return "target not found"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// TransformError reports a rejected patch. The original tree is
// guaranteed untouched.
type TransformError struct {
	Kind ErrorKind
	Op   string
	Msg  string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s: %s: %s", e.Op, e.Kind, e.Msg)
}

func errTarget(op Op, msg string) *TransformError {
	return &TransformError{Kind: TargetNotFound, Op: op.Describe(), Msg: msg}
}

func errMalformed(op Op, msg string) *TransformError {
	return &TransformError{Kind: Malformed, Op: op.Describe(), Msg: msg}
}
