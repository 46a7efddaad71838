package syntax

import (
	"fmt"
	"strconv"

	"meld/ast"
	"meld/logging"
)

// Parse parses a module's source text into a program tagged with the given
// module ID.  Paths named by `require` directives are interned through the
// provided interner.  All failures are returned as `*syntax.Error` values
// carrying position context.
func Parse(src string, module ast.ModuleID, interner ast.Interner) (*ast.Program, error) {
	lctx := &logging.LogContext{ModuleName: module.Path(), FilePath: module.Path()}

	// tokenize the whole input up front: the grammar needs only single-token
	// lookahead but peeking is simpler over a slice
	sc := NewScanner(src, lctx)
	var toks []*Token
	for {
		tok, err := sc.ReadToken()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}

	p := &Parser{lctx: lctx, toks: toks, module: module, interner: interner}
	return p.parseProgram()
}

// Parser is a recursive descent parser over a scanned token stream
type Parser struct {
	lctx     *logging.LogContext
	toks     []*Token
	ndx      int
	module   ast.ModuleID
	interner ast.Interner
}

// -----------------------------------------------------------------------------

// parseProgram parses the top level of a module: definitions followed by an
// optional body expression
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{Module: p.module}

	for p.current().Kind != EOF {
		switch p.current().Kind {
		case REQUIRE, PROVIDE, DEF, STRUCT, CONST:
			def, err := p.parseDefinition()
			if err != nil {
				return nil, err
			}

			prog.Definitions = append(prog.Definitions, def)
		default:
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if p.current().Kind != EOF {
				return nil, p.unexpected(p.current(), "the body expression must be the last item in a module")
			}

			prog.Body = body
		}
	}

	return prog, nil
}

// parseDefinition parses a single top-level definition
func (p *Parser) parseDefinition() (ast.Definition, error) {
	leader := p.advance()

	switch leader.Kind {
	case REQUIRE:
		pathTok, err := p.expect(STRINGLIT)
		if err != nil {
			return nil, err
		}

		return &ast.RequireDef{
			DefBase: ast.DefBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), TextPositionOfToken(pathTok))},
			Target:  p.interner.Intern(pathTok.Value),
		}, nil
	case PROVIDE:
		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		return &ast.ProvideDef{
			DefBase: ast.DefBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), TextPositionOfToken(nameTok))},
			Name:    ast.Symbol(nameTok.Value),
		}, nil
	case CONST:
		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(ASSIGN); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &ast.ConstDef{
			DefBase: ast.DefBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), value.Position())},
			Name:    ast.Symbol(nameTok.Value),
			Value:   value,
		}, nil
	case STRUCT:
		return p.parseStructDef(leader)
	case DEF:
		return p.parseFuncDef(leader)
	}

	// unreachable: parseProgram dispatches on the leader kind
	return nil, p.unexpected(leader, "expected a definition")
}

// parseStructDef parses a struct definition after its `struct` keyword
func (p *Parser) parseStructDef(leader *Token) (ast.Definition, error) {
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	var fields []ast.StructField
	for p.current().Kind != RBRACE {
		if len(fields) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}

		fieldTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}

		ftype, err := p.parseType()
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.StructField{
			Name: ast.Symbol(fieldTok.Value),
			Type: ftype,
			Pos:  TextPositionOfSpan(TextPositionOfToken(fieldTok), ftype.Position()),
		})
	}

	closer := p.advance()
	return &ast.StructDef{
		DefBase: ast.DefBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), TextPositionOfToken(closer))},
		Name:    ast.Symbol(nameTok.Value),
		Fields:  fields,
	}, nil
}

// parseFuncDef parses a function definition after its `def` keyword
func (p *Parser) parseFuncDef(leader *Token) (ast.Definition, error) {
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	fn := &ast.FuncDef{Name: ast.Symbol(nameTok.Value)}

	// optional generic parameter list: `<$n, T, U>`
	if p.current().Kind == LT {
		p.advance()

		for first := true; first || p.current().Kind == COMMA; first = false {
			if !first {
				p.advance()
			}

			if p.current().Kind == DOLLAR {
				p.advance()
				cgTok, err := p.expect(IDENTIFIER)
				if err != nil {
					return nil, err
				}

				fn.CgVars = append(fn.CgVars, ast.Symbol(cgTok.Value))
			} else {
				gvTok, err := p.expect(IDENTIFIER)
				if err != nil {
					return nil, err
				}

				fn.GenVars = append(fn.GenVars, ast.Symbol(gvTok.Value))
			}
		}

		if _, err := p.expect(GT); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	for p.current().Kind != RPAREN {
		if len(fn.Args) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}

		argTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}

		atype, err := p.parseType()
		if err != nil {
			return nil, err
		}

		fn.Args = append(fn.Args, ast.FuncArg{
			Name: ast.Symbol(argTok.Value),
			Type: atype,
			Pos:  TextPositionOfSpan(TextPositionOfToken(argTok), atype.Position()),
		})
	}
	p.advance() // `)`

	// optional return type annotation
	if p.current().Kind == COLON {
		p.advance()

		rtype, err := p.parseType()
		if err != nil {
			return nil, err
		}

		fn.RetType = rtype
	}

	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	fn.Body = body
	fn.Pos = TextPositionOfSpan(TextPositionOfToken(leader), body.Position())
	return fn, nil
}

// -----------------------------------------------------------------------------

// parseExpr parses a full expression
func (p *Parser) parseExpr() (ast.Expr, error) {
	switch p.current().Kind {
	case LET:
		return p.parseLet()
	case IF:
		return p.parseIf()
	case LOOP:
		return p.parseLoop()
	default:
		return p.parseBinary()
	}
}

// parseLet parses a let binding: `let x = e in body`
func (p *Parser) parseLet() (ast.Expr, error) {
	leader := p.advance()

	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(IN); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.Let{
		ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), body.Position())},
		Name:     ast.Symbol(nameTok.Value),
		Value:    value,
		Body:     body,
	}, nil
}

// parseIf parses a conditional: `if c then a else b`
func (p *Parser) parseIf() (ast.Expr, error) {
	leader := p.advance()

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(THEN); err != nil {
		return nil, err
	}

	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(ELSE); err != nil {
		return nil, err
	}

	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.If{
		ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), els.Position())},
		Cond:     cond,
		Then:     then,
		Else:     els,
	}, nil
}

// parseLoop parses the bounded loop form:
// `loop n do x <- e, y <- f return r`
func (p *Parser) parseLoop() (ast.Expr, error) {
	leader := p.advance()

	count, err := p.parseConstExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(DO); err != nil {
		return nil, err
	}

	var bindings []ast.LoopBinding
	for first := true; first || p.current().Kind == COMMA; first = false {
		if !first {
			p.advance()
		}

		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(BINDTO); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		bindings = append(bindings, ast.LoopBinding{Name: ast.Symbol(nameTok.Value), Value: value})
	}

	if _, err := p.expect(RETURN); err != nil {
		return nil, err
	}

	result, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.Loop{
		ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), result.Position())},
		Count:    count,
		Bindings: bindings,
		Result:   result,
	}, nil
}

// binaryPrecedence maps binary operator tokens to (ast operator, precedence).
// Higher precedence binds tighter.
var binaryPrecedence = map[int]struct {
	op   int
	prec int
}{
	EQ:     {ast.OpEq, 1},
	NEQ:    {ast.OpNeq, 1},
	LT:     {ast.OpLt, 1},
	GT:     {ast.OpGt, 1},
	LTEQ:   {ast.OpLtEq, 1},
	GTEQ:   {ast.OpGtEq, 1},
	PLUS:   {ast.OpAdd, 2},
	MINUS:  {ast.OpSub, 2},
	STAR:   {ast.OpMul, 3},
	DIVIDE: {ast.OpDiv, 3},
	MOD:    {ast.OpMod, 3},
}

// parseBinary parses a binary operator expression by precedence climbing
func (p *Parser) parseBinary() (ast.Expr, error) {
	return p.parseBinaryPrec(1)
}

func (p *Parser) parseBinaryPrec(minPrec int) (ast.Expr, error) {
	var lhs ast.Expr
	var err error

	if minPrec < 3 {
		lhs, err = p.parseBinaryPrec(minPrec + 1)
	} else {
		lhs, err = p.parsePostfix()
	}
	if err != nil {
		return nil, err
	}

	for {
		entry, ok := binaryPrecedence[p.current().Kind]
		if !ok || entry.prec != minPrec {
			return lhs, nil
		}
		p.advance()

		var rhs ast.Expr
		if minPrec < 3 {
			rhs, err = p.parseBinaryPrec(minPrec + 1)
		} else {
			rhs, err = p.parsePostfix()
		}
		if err != nil {
			return nil, err
		}

		lhs = &ast.Binary{
			ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(lhs.Position(), rhs.Position())},
			Op:       entry.op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}
}

// parsePostfix parses an atom followed by any number of postfix operations:
// application, field access, vector index/slice/update, and type test/cast
func (p *Parser) parsePostfix() (ast.Expr, error) {
	value, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().Kind {
		case LPAREN:
			p.advance()

			var args []ast.Expr
			for p.current().Kind != RPAREN {
				if len(args) > 0 {
					if _, err := p.expect(COMMA); err != nil {
						return nil, err
					}
				}

				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}

				args = append(args, arg)
			}
			closer := p.advance()

			value = &ast.Apply{
				ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(value.Position(), TextPositionOfToken(closer))},
				Fn:       value,
				Args:     args,
			}
		case DOT:
			p.advance()

			nameTok, err := p.expect(IDENTIFIER)
			if err != nil {
				return nil, err
			}

			value = &ast.Field{
				ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(value.Position(), TextPositionOfToken(nameTok))},
				Value:    value,
				Name:     ast.Symbol(nameTok.Value),
			}
		case LBRACKET:
			value, err = p.parseVecOp(value)
			if err != nil {
				return nil, err
			}
		case AS:
			p.advance()

			ctype, err := p.parseType()
			if err != nil {
				return nil, err
			}

			value = &ast.AsType{
				ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(value.Position(), ctype.Position())},
				Value:    value,
				Type:     ctype,
			}
		case IS:
			isTok := p.advance()

			// the left operand of `is` is restricted to a plain name
			v, ok := value.(*ast.Var)
			if !ok {
				return nil, p.unexpected(isTok, "left operand of `is` must be a name")
			}

			ttype, err := p.parseType()
			if err != nil {
				return nil, err
			}

			value = &ast.IsType{
				ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(value.Position(), ttype.Position())},
				Name:     v.Name,
				Type:     ttype,
			}
		default:
			return value, nil
		}
	}
}

// parseVecOp parses a bracketed vector postfix: index, slice, or update
func (p *Parser) parseVecOp(vec ast.Expr) (ast.Expr, error) {
	p.advance() // `[`

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	switch p.current().Kind {
	case RANGETO:
		p.advance()

		to, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		closer, err := p.expect(RBRACKET)
		if err != nil {
			return nil, err
		}

		return &ast.VecSlice{
			ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(vec.Position(), TextPositionOfToken(closer))},
			Vec:      vec,
			From:     first,
			To:       to,
		}, nil
	case UPDATER:
		p.advance()

		newValue, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		closer, err := p.expect(RBRACKET)
		if err != nil {
			return nil, err
		}

		return &ast.VecUpdate{
			ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(vec.Position(), TextPositionOfToken(closer))},
			Vec:      vec,
			Index:    first,
			Value:    newValue,
		}, nil
	default:
		closer, err := p.expect(RBRACKET)
		if err != nil {
			return nil, err
		}

		return &ast.VecRef{
			ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(vec.Position(), TextPositionOfToken(closer))},
			Vec:      vec,
			Index:    first,
		}, nil
	}
}

// parseAtom parses an atomic expression
func (p *Parser) parseAtom() (ast.Expr, error) {
	switch p.current().Kind {
	case INTLIT:
		tok := p.advance()

		value, err := strconv.ParseUint(tok.Value, 10, 64)
		if err != nil {
			return nil, p.unexpected(tok, "numeric literal out of range")
		}

		return &ast.NumberLit{ExprBase: ast.ExprBase{Pos: TextPositionOfToken(tok)}, Value: value}, nil
	case FAIL:
		tok := p.advance()
		return &ast.Fail{ExprBase: ast.ExprBase{Pos: TextPositionOfToken(tok)}}, nil
	case DOLLAR:
		tok := p.advance()

		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		return &ast.CgVar{
			ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(TextPositionOfToken(tok), TextPositionOfToken(nameTok))},
			Name:     ast.Symbol(nameTok.Value),
		}, nil
	case IDENTIFIER:
		nameTok := p.advance()

		// a brace directly after a name begins a struct literal
		if p.current().Kind == LBRACE {
			return p.parseStructLit(nameTok)
		}

		return &ast.Var{ExprBase: ast.ExprBase{Pos: TextPositionOfToken(nameTok)}, Name: ast.Symbol(nameTok.Value)}, nil
	case LBRACKET:
		leader := p.advance()

		var elems []ast.Expr
		for p.current().Kind != RBRACKET {
			if len(elems) > 0 {
				if _, err := p.expect(COMMA); err != nil {
					return nil, err
				}
			}

			elem, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			elems = append(elems, elem)
		}
		closer := p.advance()

		return &ast.VecLit{
			ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), TextPositionOfToken(closer))},
			Elements: elems,
		}, nil
	case LPAREN:
		p.advance()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}

		return inner, nil
	case LET, IF, LOOP:
		return p.parseExpr()
	}

	return nil, p.unexpected(p.current(), "expected an expression")
}

// parseStructLit parses a struct literal after its leading name
func (p *Parser) parseStructLit(nameTok *Token) (ast.Expr, error) {
	p.advance() // `{`

	var fields []ast.StructLitField
	for p.current().Kind != RBRACE {
		if len(fields) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}

		fieldTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.StructLitField{Name: ast.Symbol(fieldTok.Value), Value: value})
	}
	closer := p.advance()

	return &ast.StructLit{
		ExprBase: ast.ExprBase{Pos: TextPositionOfSpan(TextPositionOfToken(nameTok), TextPositionOfToken(closer))},
		Name:     ast.Symbol(nameTok.Value),
		Fields:   fields,
	}, nil
}

// -----------------------------------------------------------------------------

// parseType parses a type expression
func (p *Parser) parseType() (ast.TypeExpr, error) {
	lhs, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}

	// unions are left-associative
	for p.current().Kind == PIPE {
		p.advance()

		rhs, err := p.parsePrimaryType()
		if err != nil {
			return nil, err
		}

		lhs = &ast.UnionType{
			TypeBase: ast.TypeBase{Pos: TextPositionOfSpan(lhs.Position(), rhs.Position())},
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs, nil
}

// parsePrimaryType parses a non-union type expression
func (p *Parser) parsePrimaryType() (ast.TypeExpr, error) {
	switch p.current().Kind {
	case IDENTIFIER:
		tok := p.advance()
		return &ast.NamedType{TypeBase: ast.TypeBase{Pos: TextPositionOfToken(tok)}, Name: ast.Symbol(tok.Value)}, nil
	case LBRACKET:
		leader := p.advance()

		first, err := p.parseType()
		if err != nil {
			return nil, err
		}

		// `[T; n]` is a sized vector; `[T, U, ...]` is a fixed vector
		if p.current().Kind == SEMICOLON {
			p.advance()

			length, err := p.parseConstExpr()
			if err != nil {
				return nil, err
			}

			closer, err := p.expect(RBRACKET)
			if err != nil {
				return nil, err
			}

			return &ast.VecOfType{
				TypeBase: ast.TypeBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), TextPositionOfToken(closer))},
				Element:  first,
				Length:   length,
			}, nil
		}

		elems := []ast.TypeExpr{first}
		for p.current().Kind == COMMA {
			p.advance()

			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}

			elems = append(elems, elem)
		}

		closer, err := p.expect(RBRACKET)
		if err != nil {
			return nil, err
		}

		return &ast.VecType{
			TypeBase: ast.TypeBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), TextPositionOfToken(closer))},
			Elements: elems,
		}, nil
	case LBRACE:
		leader := p.advance()

		lo, err := p.parseConstExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RANGETO); err != nil {
			return nil, err
		}

		hi, err := p.parseConstExpr()
		if err != nil {
			return nil, err
		}

		closer, err := p.expect(RBRACE)
		if err != nil {
			return nil, err
		}

		return &ast.NatRangeType{
			TypeBase: ast.TypeBase{Pos: TextPositionOfSpan(TextPositionOfToken(leader), TextPositionOfToken(closer))},
			Lo:       lo,
			Hi:       hi,
		}, nil
	}

	return nil, p.unexpected(p.current(), "expected a type")
}

// -----------------------------------------------------------------------------

// parseConstExpr parses a compile-time const expression: sums of products
func (p *Parser) parseConstExpr() (ast.ConstExpr, error) {
	lhs, err := p.parseConstTerm()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == PLUS {
		p.advance()

		rhs, err := p.parseConstTerm()
		if err != nil {
			return nil, err
		}

		lhs = &ast.ConstSum{
			ConstBase: ast.ConstBase{Pos: TextPositionOfSpan(lhs.Position(), rhs.Position())},
			Lhs:       lhs,
			Rhs:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) parseConstTerm() (ast.ConstExpr, error) {
	lhs, err := p.parseConstAtom()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == STAR {
		p.advance()

		rhs, err := p.parseConstAtom()
		if err != nil {
			return nil, err
		}

		lhs = &ast.ConstProd{
			ConstBase: ast.ConstBase{Pos: TextPositionOfSpan(lhs.Position(), rhs.Position())},
			Lhs:       lhs,
			Rhs:       rhs,
		}
	}

	return lhs, nil
}

func (p *Parser) parseConstAtom() (ast.ConstExpr, error) {
	switch p.current().Kind {
	case IDENTIFIER:
		tok := p.advance()
		return &ast.ConstSym{ConstBase: ast.ConstBase{Pos: TextPositionOfToken(tok)}, Name: ast.Symbol(tok.Value)}, nil
	case INTLIT:
		tok := p.advance()

		value, err := strconv.ParseUint(tok.Value, 10, 64)
		if err != nil {
			return nil, p.unexpected(tok, "numeric literal out of range")
		}

		return &ast.ConstNum{ConstBase: ast.ConstBase{Pos: TextPositionOfToken(tok)}, Value: value}, nil
	case LPAREN:
		p.advance()

		inner, err := p.parseConstExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}

		return inner, nil
	}

	return nil, p.unexpected(p.current(), "expected a const expression")
}

// -----------------------------------------------------------------------------

// current returns the token under the cursor without consuming it
func (p *Parser) current() *Token {
	return p.toks[p.ndx]
}

// advance consumes and returns the token under the cursor.  The cursor never
// moves past the trailing EOF token.
func (p *Parser) advance() *Token {
	tok := p.toks[p.ndx]
	if tok.Kind != EOF {
		p.ndx++
	}

	return tok
}

// expect consumes a token of the given kind or fails with a syntax error
func (p *Parser) expect(kind int) (*Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return nil, p.unexpected(tok, fmt.Sprintf("unexpected token `%s`", tok.Value))
	}

	return p.advance(), nil
}

// unexpected produces a syntax error at the given token
func (p *Parser) unexpected(tok *Token, message string) error {
	pos := TextPositionOfToken(tok)
	if tok.Kind == EOF {
		message = "unexpected end of input"
	}

	return &Error{
		Message:  message,
		Kind:     logging.LMKSyntax,
		Context:  p.lctx,
		Position: pos,
	}
}
