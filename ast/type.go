package ast

import "meld/logging"

// TypeExpr is the parent interface for all type expression nodes
type TypeExpr interface {
	// Position returns the text position spanning the type expression
	Position() *logging.TextPosition
}

// TypeBase is the base struct embedded by all type expressions
type TypeBase struct {
	Pos *logging.TextPosition
}

func (tb *TypeBase) Position() *logging.TextPosition {
	return tb.Pos
}

// NamedType is a symbolic type reference: a struct name, a generic parameter,
// or a builtin
type NamedType struct {
	TypeBase

	Name Symbol
}

// UnionType is a union of two type expressions: `T | U`
type UnionType struct {
	TypeBase

	Lhs TypeExpr
	Rhs TypeExpr
}

// VecType is a fixed, heterogeneous vector type: `[T, U, V]`
type VecType struct {
	TypeBase

	Elements []TypeExpr
}

// VecOfType is a homogeneous vector type sized by a const expression: `[T; n]`
type VecOfType struct {
	TypeBase

	Element TypeExpr
	Length  ConstExpr
}

// NatRangeType is a numeric range type bound by const expressions: `{i..j}`
type NatRangeType struct {
	TypeBase

	Lo ConstExpr
	Hi ConstExpr
}

// -----------------------------------------------------------------------------

// ConstExpr is the parent interface for compile-time const expressions.  These
// appear wherever a size or range must be known without full evaluation
// (vector lengths, ranges, loop bounds).
type ConstExpr interface {
	// Position returns the text position spanning the const expression
	Position() *logging.TextPosition
}

// ConstBase is the base struct embedded by all const expressions
type ConstBase struct {
	Pos *logging.TextPosition
}

func (cb *ConstBase) Position() *logging.TextPosition {
	return cb.Pos
}

// ConstSym is a symbolic const reference (a cgvar or constant name)
type ConstSym struct {
	ConstBase

	Name Symbol
}

// ConstNum is a numeric const literal
type ConstNum struct {
	ConstBase

	Value uint64
}

// ConstSum is an associative addition of two const expressions
type ConstSum struct {
	ConstBase

	Lhs ConstExpr
	Rhs ConstExpr
}

// ConstProd is an associative multiplication of two const expressions
type ConstProd struct {
	ConstBase

	Lhs ConstExpr
	Rhs ConstExpr
}
