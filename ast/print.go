package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// opStrings maps binary operators back to their source spelling
var opStrings = map[int]string{
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "%",
	OpEq:   "==",
	OpNeq:  "!=",
	OpLt:   "<",
	OpGt:   ">",
	OpLtEq: "<=",
	OpGtEq: ">=",
}

// OpString returns the source spelling of a binary operator
func OpString(op int) string {
	return opStrings[op]
}

// Render writes a program back out as canonical Meld source: one definition
// per line followed by the body expression, with every binary operation fully
// parenthesized.
func Render(p *Program) string {
	sb := &strings.Builder{}

	for _, def := range p.Definitions {
		renderDef(sb, def)
		sb.WriteRune('\n')
	}

	if p.Body != nil {
		if len(p.Definitions) > 0 {
			sb.WriteRune('\n')
		}
		renderExpr(sb, p.Body)
		sb.WriteRune('\n')
	}

	return sb.String()
}

// RenderExpr renders a single expression as canonical source text
func RenderExpr(e Expr) string {
	sb := &strings.Builder{}
	renderExpr(sb, e)
	return sb.String()
}

// RenderType renders a single type expression as canonical source text
func RenderType(t TypeExpr) string {
	sb := &strings.Builder{}
	renderType(sb, t)
	return sb.String()
}

func renderDef(sb *strings.Builder, def Definition) {
	switch d := def.(type) {
	case *RequireDef:
		fmt.Fprintf(sb, "require %q", d.Target.Path())
	case *ProvideDef:
		fmt.Fprintf(sb, "provide %s", d.Name)
	case *ConstDef:
		fmt.Fprintf(sb, "const %s = ", d.Name)
		renderExpr(sb, d.Value)
	case *StructDef:
		fmt.Fprintf(sb, "struct %s {", d.Name)
		for i, field := range d.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: ", field.Name)
			renderType(sb, field.Type)
		}
		sb.WriteRune('}')
	case *FuncDef:
		fmt.Fprintf(sb, "def %s", d.Name)

		if len(d.CgVars) > 0 || len(d.GenVars) > 0 {
			sb.WriteRune('<')
			for i, cg := range d.CgVars {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(sb, "$%s", cg)
			}
			for i, gv := range d.GenVars {
				if i > 0 || len(d.CgVars) > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(string(gv))
			}
			sb.WriteRune('>')
		}

		sb.WriteRune('(')
		for i, arg := range d.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: ", arg.Name)
			renderType(sb, arg.Type)
		}
		sb.WriteRune(')')

		if d.RetType != nil {
			sb.WriteString(": ")
			renderType(sb, d.RetType)
		}

		sb.WriteString(" = ")
		renderExpr(sb, d.Body)
	default:
		panic(fmt.Sprintf("renderDef: unknown definition %T", def))
	}
}

func renderExpr(sb *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *NumberLit:
		sb.WriteString(strconv.FormatUint(v.Value, 10))
	case *Var:
		sb.WriteString(string(v.Name))
	case *CgVar:
		fmt.Fprintf(sb, "$%s", v.Name)
	case *Fail:
		sb.WriteString("fail!")
	case *VecLit:
		sb.WriteRune('[')
		for i, el := range v.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			renderExpr(sb, el)
		}
		sb.WriteRune(']')
	case *StructLit:
		fmt.Fprintf(sb, "%s{", v.Name)
		for i, field := range v.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: ", field.Name)
			renderExpr(sb, field.Value)
		}
		sb.WriteRune('}')
	case *Let:
		fmt.Fprintf(sb, "let %s = ", v.Name)
		renderExpr(sb, v.Value)
		sb.WriteString(" in ")
		renderExpr(sb, v.Body)
	case *If:
		sb.WriteString("if ")
		renderExpr(sb, v.Cond)
		sb.WriteString(" then ")
		renderExpr(sb, v.Then)
		sb.WriteString(" else ")
		renderExpr(sb, v.Else)
	case *Binary:
		sb.WriteRune('(')
		renderExpr(sb, v.Lhs)
		fmt.Fprintf(sb, " %s ", OpString(v.Op))
		renderExpr(sb, v.Rhs)
		sb.WriteRune(')')
	case *Apply:
		renderExpr(sb, v.Fn)
		sb.WriteRune('(')
		for i, arg := range v.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			renderExpr(sb, arg)
		}
		sb.WriteRune(')')
	case *Field:
		renderExpr(sb, v.Value)
		fmt.Fprintf(sb, ".%s", v.Name)
	case *VecRef:
		renderExpr(sb, v.Vec)
		sb.WriteRune('[')
		renderExpr(sb, v.Index)
		sb.WriteRune(']')
	case *VecSlice:
		renderExpr(sb, v.Vec)
		sb.WriteRune('[')
		renderExpr(sb, v.From)
		sb.WriteString("..")
		renderExpr(sb, v.To)
		sb.WriteRune(']')
	case *VecUpdate:
		renderExpr(sb, v.Vec)
		sb.WriteRune('[')
		renderExpr(sb, v.Index)
		sb.WriteString(" => ")
		renderExpr(sb, v.Value)
		sb.WriteRune(']')
	case *Loop:
		sb.WriteString("loop ")
		renderConst(sb, v.Count)
		sb.WriteString(" do ")
		for i, b := range v.Bindings {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s <- ", b.Name)
			renderExpr(sb, b.Value)
		}
		sb.WriteString(" return ")
		renderExpr(sb, v.Result)
	case *IsType:
		fmt.Fprintf(sb, "%s is ", v.Name)
		renderType(sb, v.Type)
	case *AsType:
		renderExpr(sb, v.Value)
		sb.WriteString(" as ")
		renderType(sb, v.Type)
	default:
		panic(fmt.Sprintf("renderExpr: unknown expression %T", e))
	}
}

func renderType(sb *strings.Builder, t TypeExpr) {
	switch v := t.(type) {
	case *NamedType:
		sb.WriteString(string(v.Name))
	case *UnionType:
		renderType(sb, v.Lhs)
		sb.WriteString(" | ")
		renderType(sb, v.Rhs)
	case *VecType:
		sb.WriteRune('[')
		for i, el := range v.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			renderType(sb, el)
		}
		sb.WriteRune(']')
	case *VecOfType:
		sb.WriteRune('[')
		renderType(sb, v.Element)
		sb.WriteString("; ")
		renderConst(sb, v.Length)
		sb.WriteRune(']')
	case *NatRangeType:
		sb.WriteRune('{')
		renderConst(sb, v.Lo)
		sb.WriteString("..")
		renderConst(sb, v.Hi)
		sb.WriteRune('}')
	default:
		panic(fmt.Sprintf("renderType: unknown type expression %T", t))
	}
}

func renderConst(sb *strings.Builder, c ConstExpr) {
	switch v := c.(type) {
	case *ConstSym:
		sb.WriteString(string(v.Name))
	case *ConstNum:
		sb.WriteString(strconv.FormatUint(v.Value, 10))
	case *ConstSum:
		sb.WriteRune('(')
		renderConst(sb, v.Lhs)
		sb.WriteString(" + ")
		renderConst(sb, v.Rhs)
		sb.WriteRune(')')
	case *ConstProd:
		sb.WriteRune('(')
		renderConst(sb, v.Lhs)
		sb.WriteString(" * ")
		renderConst(sb, v.Rhs)
		sb.WriteRune(')')
	default:
		panic(fmt.Sprintf("renderConst: unknown const expression %T", c))
	}
}
