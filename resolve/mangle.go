package resolve

import (
	"fmt"

	"meld/ast"
)

// scopeSet is a persistent set of symbols exempt from renaming.  Descending
// into a binding form layers a new frame on top of the enclosing set instead
// of copying it, so deeply nested scopes extend in constant time.  A nil
// *scopeSet is the empty set.
type scopeSet struct {
	parent *scopeSet
	names  map[ast.Symbol]struct{}
}

// extend layers the given names over the receiver, leaving it untouched
func (s *scopeSet) extend(names ...ast.Symbol) *scopeSet {
	if len(names) == 0 {
		return s
	}

	frame := make(map[ast.Symbol]struct{}, len(names))
	for _, name := range names {
		frame[name] = struct{}{}
	}

	return &scopeSet{parent: s, names: frame}
}

// contains reports whether a name is in the set
func (s *scopeSet) contains(name ast.Symbol) bool {
	for ; s != nil; s = s.parent {
		if _, ok := s.names[name]; ok {
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// MangleDefs hygienically renames a module's flattened definition sequence so
// it can be spliced into another module without collisions.  Every symbol that
// is neither provided by the owning module nor bound in the lexical scope
// being processed is rewritten to a form qualified by the owning module's tag.
// `require` and `provide` definitions are consumed: their effect has already
// been realized by the resolver as inlining or as set membership.
func MangleDefs(defs []ast.Definition, source ast.ModuleID) []ast.Definition {
	// seed the do-not-mangle set with the module's provided names
	var provided []ast.Symbol
	for _, def := range defs {
		if prov, ok := def.(*ast.ProvideDef); ok {
			provided = append(provided, prov.Name)
		}
	}
	noMangle := (*scopeSet)(nil).extend(provided...)

	var out []ast.Definition
	for _, def := range defs {
		switch d := def.(type) {
		case *ast.FuncDef:
			// the function's parameters shadow module-level names inside its
			// body and argument annotations; its own name follows ordinary
			// export rules under the outer set
			inner := noMangle.extend(d.CgVars...).extend(d.GenVars...)
			for _, arg := range d.Args {
				inner = inner.extend(arg.Name)
			}

			args := make([]ast.FuncArg, len(d.Args))
			for i, arg := range d.Args {
				args[i] = ast.FuncArg{
					Name: arg.Name,
					Type: mangleType(arg.Type, source, inner),
					Pos:  arg.Pos,
				}
			}

			var retType ast.TypeExpr
			if d.RetType != nil {
				retType = mangleType(d.RetType, source, noMangle)
			}

			out = append(out, &ast.FuncDef{
				DefBase: ast.DefBase{Pos: d.Pos},
				Name:    mangleSym(d.Name, source, noMangle),
				CgVars:  d.CgVars,
				GenVars: d.GenVars,
				Args:    args,
				RetType: retType,
				Body:    mangleExpr(d.Body, source, inner),
			})
		case *ast.StructDef:
			// only the struct's own name is renamed; fields live in the
			// struct's field namespace
			out = append(out, &ast.StructDef{
				DefBase: ast.DefBase{Pos: d.Pos},
				Name:    mangleSym(d.Name, source, noMangle),
				Fields:  d.Fields,
			})
		case *ast.ConstDef:
			out = append(out, &ast.ConstDef{
				DefBase: ast.DefBase{Pos: d.Pos},
				Name:    mangleSym(d.Name, source, noMangle),
				Value:   mangleExpr(d.Value, source, noMangle),
			})
		case *ast.RequireDef, *ast.ProvideDef:
			// dropped
		default:
			panic(fmt.Sprintf("MangleDefs: unknown definition %T", def))
		}
	}

	return out
}

// mangleExpr rewrites all non-exempt symbols in an expression, extending the
// do-not-mangle set as it descends into binding forms and reconstructing every
// node with the position it carried before
func mangleExpr(e ast.Expr, source ast.ModuleID, noMangle *scopeSet) ast.Expr {
	recurse := func(e ast.Expr) ast.Expr { return mangleExpr(e, source, noMangle) }

	switch v := e.(type) {
	case *ast.NumberLit, *ast.Fail:
		return e
	case *ast.Var:
		return &ast.Var{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Name:     mangleSym(v.Name, source, noMangle),
		}
	case *ast.CgVar:
		return &ast.CgVar{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Name:     mangleSym(v.Name, source, noMangle),
		}
	case *ast.Let:
		// the bound value executes before the binding exists, so it is
		// processed under the enclosing set; only the body sees the binding
		return &ast.Let{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Name:     v.Name,
			Value:    recurse(v.Value),
			Body:     mangleExpr(v.Body, source, noMangle.extend(v.Name)),
		}
	case *ast.If:
		return &ast.If{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Cond:     recurse(v.Cond),
			Then:     recurse(v.Then),
			Else:     recurse(v.Else),
		}
	case *ast.Binary:
		return &ast.Binary{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Op:       v.Op,
			Lhs:      recurse(v.Lhs),
			Rhs:      recurse(v.Rhs),
		}
	case *ast.VecLit:
		elems := make([]ast.Expr, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = recurse(el)
		}

		return &ast.VecLit{ExprBase: ast.ExprBase{Pos: v.Pos}, Elements: elems}
	case *ast.StructLit:
		fields := make([]ast.StructLitField, len(v.Fields))
		for i, field := range v.Fields {
			fields[i] = ast.StructLitField{Name: field.Name, Value: recurse(field.Value)}
		}

		return &ast.StructLit{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Name:     mangleSym(v.Name, source, noMangle),
			Fields:   fields,
		}
	case *ast.Apply:
		args := make([]ast.Expr, len(v.Args))
		for i, arg := range v.Args {
			args[i] = recurse(arg)
		}

		return &ast.Apply{ExprBase: ast.ExprBase{Pos: v.Pos}, Fn: recurse(v.Fn), Args: args}
	case *ast.Field:
		// field names are not subject to renaming
		return &ast.Field{ExprBase: ast.ExprBase{Pos: v.Pos}, Value: recurse(v.Value), Name: v.Name}
	case *ast.VecRef:
		return &ast.VecRef{ExprBase: ast.ExprBase{Pos: v.Pos}, Vec: recurse(v.Vec), Index: recurse(v.Index)}
	case *ast.VecSlice:
		return &ast.VecSlice{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Vec:      recurse(v.Vec),
			From:     recurse(v.From),
			To:       recurse(v.To),
		}
	case *ast.VecUpdate:
		return &ast.VecUpdate{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Vec:      recurse(v.Vec),
			Index:    recurse(v.Index),
			Value:    recurse(v.Value),
		}
	case *ast.Loop:
		// accumulator binders rebind caller-visible names, so they are
		// treated as plain references under the current set
		bindings := make([]ast.LoopBinding, len(v.Bindings))
		for i, b := range v.Bindings {
			bindings[i] = ast.LoopBinding{
				Name:  mangleSym(b.Name, source, noMangle),
				Value: recurse(b.Value),
			}
		}

		return &ast.Loop{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Count:    mangleConst(v.Count, source, noMangle),
			Bindings: bindings,
			Result:   recurse(v.Result),
		}
	case *ast.IsType:
		return &ast.IsType{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Name:     mangleSym(v.Name, source, noMangle),
			Type:     mangleType(v.Type, source, noMangle),
		}
	case *ast.AsType:
		return &ast.AsType{
			ExprBase: ast.ExprBase{Pos: v.Pos},
			Value:    recurse(v.Value),
			Type:     mangleType(v.Type, source, noMangle),
		}
	default:
		panic(fmt.Sprintf("mangleExpr: unknown expression %T", e))
	}
}

// mangleType rewrites all non-exempt symbols in a type expression
func mangleType(t ast.TypeExpr, source ast.ModuleID, noMangle *scopeSet) ast.TypeExpr {
	switch v := t.(type) {
	case *ast.NamedType:
		return &ast.NamedType{
			TypeBase: ast.TypeBase{Pos: v.Pos},
			Name:     mangleSym(v.Name, source, noMangle),
		}
	case *ast.UnionType:
		return &ast.UnionType{
			TypeBase: ast.TypeBase{Pos: v.Pos},
			Lhs:      mangleType(v.Lhs, source, noMangle),
			Rhs:      mangleType(v.Rhs, source, noMangle),
		}
	case *ast.VecType:
		elems := make([]ast.TypeExpr, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = mangleType(el, source, noMangle)
		}

		return &ast.VecType{TypeBase: ast.TypeBase{Pos: v.Pos}, Elements: elems}
	case *ast.VecOfType:
		return &ast.VecOfType{
			TypeBase: ast.TypeBase{Pos: v.Pos},
			Element:  mangleType(v.Element, source, noMangle),
			Length:   mangleConst(v.Length, source, noMangle),
		}
	case *ast.NatRangeType:
		return &ast.NatRangeType{
			TypeBase: ast.TypeBase{Pos: v.Pos},
			Lo:       mangleConst(v.Lo, source, noMangle),
			Hi:       mangleConst(v.Hi, source, noMangle),
		}
	default:
		panic(fmt.Sprintf("mangleType: unknown type expression %T", t))
	}
}

// mangleConst rewrites all non-exempt symbols in a const expression
func mangleConst(c ast.ConstExpr, source ast.ModuleID, noMangle *scopeSet) ast.ConstExpr {
	switch v := c.(type) {
	case *ast.ConstNum:
		return c
	case *ast.ConstSym:
		return &ast.ConstSym{
			ConstBase: ast.ConstBase{Pos: v.Pos},
			Name:      mangleSym(v.Name, source, noMangle),
		}
	case *ast.ConstSum:
		return &ast.ConstSum{
			ConstBase: ast.ConstBase{Pos: v.Pos},
			Lhs:       mangleConst(v.Lhs, source, noMangle),
			Rhs:       mangleConst(v.Rhs, source, noMangle),
		}
	case *ast.ConstProd:
		return &ast.ConstProd{
			ConstBase: ast.ConstBase{Pos: v.Pos},
			Lhs:       mangleConst(v.Lhs, source, noMangle),
			Rhs:       mangleConst(v.Rhs, source, noMangle),
		}
	default:
		panic(fmt.Sprintf("mangleConst: unknown const expression %T", c))
	}
}

// mangleSym rewrites a single symbol: exempt names pass through unchanged;
// everything else is qualified with the owning module's tag.  The mapping is a
// pure function of (symbol, module tag), so renaming is stable across runs for
// the same module identity assignment.
func mangleSym(sym ast.Symbol, source ast.ModuleID, noMangle *scopeSet) ast.Symbol {
	if noMangle.contains(sym) {
		return sym
	}

	return ast.Symbol(fmt.Sprintf("%s-%d", sym, source.Tag()))
}
