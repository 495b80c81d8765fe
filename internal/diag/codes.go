package diag

import "fmt"

// Code identifies a diagnostic kind. Numeric ranges group codes by the
// pipeline stage that produces them.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999)
	LexUnknownChar             Code = 1001
	LexUnterminatedString      Code = 1002
	LexUnterminatedLongBracket Code = 1003
	LexBadNumber               Code = 1004

	// Syntax (2000-2999)
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynExpectAssign     Code = 2004
	SynUnclosedTable    Code = 2005
	SynUnclosedCall     Code = 2006
	SynErrorNode        Code = 2007
	SynCrossCheckFailed Code = 2008

	// Semantic (3000-3999)
	SemaUnknownOption      Code = 3001
	SemaOptionTypeMismatch Code = 3002
	SemaUnknownEvent       Code = 3003
	SemaDuplicatePlugin    Code = 3004
	SemaDeprecatedOption   Code = 3005
	SemaInvalidPluginSpec  Code = 3006

	// I/O (4000-4999)
	IOLoadFileError Code = 4001

	// Dependency graph (5000-5999)
	DepUnresolvedDependency Code = 5001
	DepCyclicDependency     Code = 5002
	DepSelfDependency       Code = 5003

	// Runtime paths (6000-6999)
	PathMissingRoot       Code = 6001
	PathUnresolvedRequire Code = 6002

	// Transform engine (7000-7999)
	TransformTargetNotFound Code = 7001
	TransformMalformed      Code = 7002
)

// Category groups codes by validation stage for reporting.
type Category uint8

const (
	CategorySyntax Category = iota
	CategorySemantic
	CategoryDependency
	CategoryRuntimePath
	CategoryIO
	CategoryTransform
	CategoryUnknown
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategorySemantic:
		return "semantic"
	case CategoryDependency:
		return "dependency"
	case CategoryRuntimePath:
		return "runtime-path"
	case CategoryIO:
		return "io"
	case CategoryTransform:
		return "transform"
	}
	return "unknown"
}

var codeDescription = map[Code]string{
	UnknownCode:                "Unknown error",
	LexUnknownChar:             "Unknown character",
	LexUnterminatedString:      "Unterminated string",
	LexUnterminatedLongBracket: "Unterminated long bracket",
	LexBadNumber:               "Malformed number",
	SynUnexpectedToken:         "Unexpected token",
	SynExpectIdentifier:        "Expected identifier",
	SynExpectExpression:        "Expected expression",
	SynExpectAssign:            "Expected '=' in assignment",
	SynUnclosedTable:           "Unclosed table constructor",
	SynUnclosedCall:            "Unclosed call arguments",
	SynErrorNode:               "Unparseable statement",
	SynCrossCheckFailed:        "Reference parser rejected source",
	SemaUnknownOption:          "Unknown option",
	SemaOptionTypeMismatch:     "Option value type mismatch",
	SemaUnknownEvent:           "Unknown load event",
	SemaDuplicatePlugin:        "Duplicate plugin declaration",
	SemaDeprecatedOption:       "Deprecated option",
	SemaInvalidPluginSpec:      "Malformed plugin spec",
	IOLoadFileError:            "Failed to load file",
	DepUnresolvedDependency:    "Unresolved plugin dependency",
	DepCyclicDependency:        "Cyclic plugin dependency",
	DepSelfDependency:          "Plugin depends on itself",
	PathMissingRoot:            "Config root does not exist",
	PathUnresolvedRequire:      "Required runtime path not resolvable",
	TransformTargetNotFound:    "Patch target not found",
	TransformMalformed:         "Patch produced a malformed node",
}

// Category returns the validation stage a code belongs to.
func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 1000 && ic < 3000:
		return CategorySyntax
	case ic >= 3000 && ic < 4000:
		return CategorySemantic
	case ic >= 4000 && ic < 5000:
		return CategoryIO
	case ic >= 5000 && ic < 6000:
		return CategoryDependency
	case ic >= 6000 && ic < 7000:
		return CategoryRuntimePath
	case ic >= 7000 && ic < 8000:
		return CategoryTransform
	}
	return CategoryUnknown
}

// ID renders the short stable identifier, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("DEP%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("RTP%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("TRF%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
