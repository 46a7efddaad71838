package ast

import "meld/logging"

// Program represents the top level of a parsed module: a sequence of
// definitions followed by an optional body expression.  Definition order is
// significant for emission.  Programs (and all nodes beneath them) are treated
// as immutable once parsing produces them, so they may be freely shared across
// resolution workers.
type Program struct {
	// Module is the module this program was parsed from
	Module ModuleID

	// Definitions is the ordered list of top-level definitions
	Definitions []Definition

	// Body is the program's executable body expression.  It may be `nil` for
	// modules that only provide definitions.  A module's body is only relevant
	// when the module is the root of resolution -- it is never inlined into
	// dependents.
	Body Expr
}

// Clone produces a cheap copy of the program.  The definition slice and all
// nodes are shared: nothing downstream mutates them.
func (p *Program) Clone() *Program {
	return &Program{
		Module:      p.Module,
		Definitions: p.Definitions,
		Body:        p.Body,
	}
}

// -----------------------------------------------------------------------------

// Definition is the parent interface for all top-level definitions
type Definition interface {
	// Position returns the text position spanning the definition
	Position() *logging.TextPosition
}

// DefBase is the base struct embedded by all definitions
type DefBase struct {
	Pos *logging.TextPosition
}

func (db *DefBase) Position() *logging.TextPosition {
	return db.Pos
}

// FuncArg is a single (name, type) argument of a function definition
type FuncArg struct {
	Name Symbol
	Type TypeExpr
	Pos  *logging.TextPosition
}

// FuncDef is a top-level function definition
type FuncDef struct {
	DefBase

	Name Symbol

	// CgVars are the function's compile-time-generic parameters (`$n`)
	CgVars []Symbol

	// GenVars are the function's generic type parameters
	GenVars []Symbol

	Args []FuncArg

	// RetType is the declared return type; `nil` if none was given
	RetType TypeExpr

	Body Expr
}

// StructField is a single (name, type) field of a struct definition
type StructField struct {
	Name Symbol
	Type TypeExpr
	Pos  *logging.TextPosition
}

// StructDef is a top-level struct definition
type StructDef struct {
	DefBase

	Name   Symbol
	Fields []StructField
}

// ConstDef is a top-level constant definition
type ConstDef struct {
	DefBase

	Name  Symbol
	Value Expr
}

// RequireDef is a directive pulling another module's definitions into the
// current one.  No RequireDef survives resolution.
type RequireDef struct {
	DefBase

	Target ModuleID
}

// ProvideDef marks one local top-level name as part of this module's public,
// un-renamed surface
type ProvideDef struct {
	DefBase

	Name Symbol
}
