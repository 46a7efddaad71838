package ast

import "meld/logging"

// Expr is the parent interface for all expression nodes.  Every node carries
// the text position it was parsed at; positions are propagated through
// transforms but never computed over.
type Expr interface {
	// Position returns the text position spanning the expression
	Position() *logging.TextPosition
}

// ExprBase is the base struct embedded by all expressions
type ExprBase struct {
	Pos *logging.TextPosition
}

func (eb *ExprBase) Position() *logging.TextPosition {
	return eb.Pos
}

// -----------------------------------------------------------------------------

// NumberLit is a numeric literal.  Meld numbers are naturals; the value is
// stored as parsed since this stage never computes over it.
type NumberLit struct {
	ExprBase

	Value uint64
}

// VecLit is a vector literal: `[a, b, c]`
type VecLit struct {
	ExprBase

	Elements []Expr
}

// StructLitField is a single field initializer of a struct literal
type StructLitField struct {
	Name  Symbol
	Value Expr
}

// StructLit is a struct literal: `Point{x: 1, y: 2}`.  The struct name is an
// ordinary top-level symbol reference and is subject to renaming.
type StructLit struct {
	ExprBase

	Name   Symbol
	Fields []StructLitField
}

// Var is a reference to a named binding
type Var struct {
	ExprBase

	Name Symbol
}

// CgVar is a reference to a compile-time-generic variable: `$n`
type CgVar struct {
	ExprBase

	Name Symbol
}

// Let binds a name to a value within a body expression: `let x = e in body`.
// The bound value is evaluated before the binding exists.
type Let struct {
	ExprBase

	Name  Symbol
	Value Expr
	Body  Expr
}

// If is a conditional expression: `if c then a else b`
type If struct {
	ExprBase

	Cond Expr
	Then Expr
	Else Expr
}

// Enumeration of binary operators
const (
	OpAdd = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLtEq
	OpGtEq
)

// Binary is a binary operation over two sub-expressions
type Binary struct {
	ExprBase

	Op  int
	Lhs Expr
	Rhs Expr
}

// Apply is a function application: `f(a, b)`
type Apply struct {
	ExprBase

	Fn   Expr
	Args []Expr
}

// Field is a field access: `e.name`.  The field name belongs to the struct's
// field namespace and is not subject to renaming.
type Field struct {
	ExprBase

	Value Expr
	Name  Symbol
}

// VecRef is a vector index: `v[i]`
type VecRef struct {
	ExprBase

	Vec   Expr
	Index Expr
}

// VecSlice is a vector slice: `v[i..j]`
type VecSlice struct {
	ExprBase

	Vec  Expr
	From Expr
	To   Expr
}

// VecUpdate is a functional vector update: `v[i => x]`
type VecUpdate struct {
	ExprBase

	Vec   Expr
	Index Expr
	Value Expr
}

// LoopBinding is a single named accumulator binding of a loop
type LoopBinding struct {
	Name  Symbol
	Value Expr
}

// Loop is the bounded loop form: `loop n do x <- e, y <- f return r`.  The
// iteration count is a compile-time const expression; each binding rebinds a
// caller-visible accumulator on every iteration.
type Loop struct {
	ExprBase

	Count    ConstExpr
	Bindings []LoopBinding
	Result   Expr
}

// IsType is a runtime type test: `x is T`.  The operand is restricted to a
// plain symbol reference.
type IsType struct {
	ExprBase

	Name Symbol
	Type TypeExpr
}

// AsType is a runtime type cast: `e as T`
type AsType struct {
	ExprBase

	Value Expr
	Type  TypeExpr
}

// Fail is the explicit failure expression: `fail!`
type Fail struct {
	ExprBase
}
