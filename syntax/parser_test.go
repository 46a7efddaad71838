package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meld/ast"
)

// mapInterner assigns tags to paths in first-seen order, standing in for the
// project registry
type mapInterner struct {
	ids map[string]ast.ModuleID
}

func (m *mapInterner) Intern(path string) ast.ModuleID {
	if m.ids == nil {
		m.ids = make(map[string]ast.ModuleID)
	}

	if id, ok := m.ids[path]; ok {
		return id
	}

	id := ast.MakeModuleID(path, uint32(len(m.ids)))
	m.ids[path] = id
	return id
}

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()

	in := &mapInterner{}
	prog, err := Parse(src, in.Intern("test"), in)
	require.NoError(t, err)
	return prog
}

// -----------------------------------------------------------------------------

func TestParseDirectives(t *testing.T) {
	prog := parseSrc(t, "require \"lib/vec\"\nprovide norm")

	require.Len(t, prog.Definitions, 2)

	req := prog.Definitions[0].(*ast.RequireDef)
	assert.Equal(t, "lib/vec", req.Target.Path())

	prov := prog.Definitions[1].(*ast.ProvideDef)
	assert.Equal(t, ast.Symbol("norm"), prov.Name)
}

func TestParseFuncDef(t *testing.T) {
	prog := parseSrc(t, "def add(a: Nat, b: Nat): Nat = a + b")

	fn := prog.Definitions[0].(*ast.FuncDef)
	assert.Equal(t, ast.Symbol("add"), fn.Name)
	require.Len(t, fn.Args, 2)
	assert.Equal(t, ast.Symbol("a"), fn.Args[0].Name)
	assert.Equal(t, ast.Symbol("Nat"), fn.RetType.(*ast.NamedType).Name)

	body := fn.Body.(*ast.Binary)
	assert.Equal(t, ast.OpAdd, body.Op)
}

func TestParseGenericFuncDef(t *testing.T) {
	prog := parseSrc(t, "def head<$n, T>(v: [T; n]): T = v[0]")

	fn := prog.Definitions[0].(*ast.FuncDef)
	assert.Equal(t, []ast.Symbol{ast.Symbol("n")}, fn.CgVars)
	assert.Equal(t, []ast.Symbol{ast.Symbol("T")}, fn.GenVars)

	vtype := fn.Args[0].Type.(*ast.VecOfType)
	assert.Equal(t, ast.Symbol("T"), vtype.Element.(*ast.NamedType).Name)
	assert.Equal(t, ast.Symbol("n"), vtype.Length.(*ast.ConstSym).Name)

	ref := fn.Body.(*ast.VecRef)
	assert.Equal(t, uint64(0), ref.Index.(*ast.NumberLit).Value)
}

func TestParseStructDef(t *testing.T) {
	prog := parseSrc(t, "struct Pair { fst: Nat, snd: Nat | Bool }")

	st := prog.Definitions[0].(*ast.StructDef)
	assert.Equal(t, ast.Symbol("Pair"), st.Name)
	require.Len(t, st.Fields, 2)

	union := st.Fields[1].Type.(*ast.UnionType)
	assert.Equal(t, ast.Symbol("Nat"), union.Lhs.(*ast.NamedType).Name)
	assert.Equal(t, ast.Symbol("Bool"), union.Rhs.(*ast.NamedType).Name)
}

func TestParseConstDef(t *testing.T) {
	prog := parseSrc(t, "const width = 3 + 4")

	def := prog.Definitions[0].(*ast.ConstDef)
	assert.Equal(t, ast.Symbol("width"), def.Name)
	assert.Equal(t, ast.OpAdd, def.Value.(*ast.Binary).Op)
}

func TestParseBodyMustBeLast(t *testing.T) {
	_, err := Parse("1 + 1\ndef f(): Nat = 2", ast.MakeModuleID("test", 0), &mapInterner{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body expression")
}

func TestParsePrecedence(t *testing.T) {
	prog := parseSrc(t, "1 + 2 * 3 == 7")

	eq := prog.Body.(*ast.Binary)
	require.Equal(t, ast.OpEq, eq.Op)

	sum := eq.Lhs.(*ast.Binary)
	require.Equal(t, ast.OpAdd, sum.Op)
	assert.Equal(t, uint64(1), sum.Lhs.(*ast.NumberLit).Value)

	prod := sum.Rhs.(*ast.Binary)
	assert.Equal(t, ast.OpMul, prod.Op)
}

func TestParseGrouping(t *testing.T) {
	prog := parseSrc(t, "(1 + 2) * 3")

	prod := prog.Body.(*ast.Binary)
	require.Equal(t, ast.OpMul, prod.Op)
	assert.Equal(t, ast.OpAdd, prod.Lhs.(*ast.Binary).Op)
}

func TestParseLetIf(t *testing.T) {
	prog := parseSrc(t, "let x = 1 in if x == 1 then x else fail!")

	let := prog.Body.(*ast.Let)
	assert.Equal(t, ast.Symbol("x"), let.Name)

	cond := let.Body.(*ast.If)
	assert.IsType(t, &ast.Binary{}, cond.Cond)
	assert.IsType(t, &ast.Fail{}, cond.Else)
}

func TestParseLoop(t *testing.T) {
	prog := parseSrc(t, "loop n * 2 do acc <- acc + 1, i <- i return acc")

	loop := prog.Body.(*ast.Loop)
	assert.IsType(t, &ast.ConstProd{}, loop.Count)
	require.Len(t, loop.Bindings, 2)
	assert.Equal(t, ast.Symbol("acc"), loop.Bindings[0].Name)
	assert.Equal(t, ast.Symbol("i"), loop.Bindings[1].Name)
	assert.Equal(t, ast.Symbol("acc"), loop.Result.(*ast.Var).Name)
}

func TestParsePostfixChain(t *testing.T) {
	prog := parseSrc(t, "f(x).field[0]")

	ref := prog.Body.(*ast.VecRef)
	field := ref.Vec.(*ast.Field)
	assert.Equal(t, ast.Symbol("field"), field.Name)

	call := field.Value.(*ast.Apply)
	assert.Equal(t, ast.Symbol("f"), call.Fn.(*ast.Var).Name)
	require.Len(t, call.Args, 1)
}

func TestParseVecForms(t *testing.T) {
	prog := parseSrc(t, "[v[1 .. 3], v[0 => 9], [1, 2]]")

	lit := prog.Body.(*ast.VecLit)
	require.Len(t, lit.Elements, 3)

	slice := lit.Elements[0].(*ast.VecSlice)
	assert.Equal(t, uint64(1), slice.From.(*ast.NumberLit).Value)
	assert.Equal(t, uint64(3), slice.To.(*ast.NumberLit).Value)

	update := lit.Elements[1].(*ast.VecUpdate)
	assert.Equal(t, uint64(9), update.Value.(*ast.NumberLit).Value)

	inner := lit.Elements[2].(*ast.VecLit)
	assert.Len(t, inner.Elements, 2)
}

func TestParseStructLit(t *testing.T) {
	prog := parseSrc(t, "Pair{fst: 1, snd: 2}")

	lit := prog.Body.(*ast.StructLit)
	assert.Equal(t, ast.Symbol("Pair"), lit.Name)
	require.Len(t, lit.Fields, 2)
	assert.Equal(t, ast.Symbol("snd"), lit.Fields[1].Name)
}

func TestParseTypeOps(t *testing.T) {
	prog := parseSrc(t, "if x is {0..15} then x as Byte else 0")

	cond := prog.Body.(*ast.If)

	is := cond.Cond.(*ast.IsType)
	assert.Equal(t, ast.Symbol("x"), is.Name)

	rng := is.Type.(*ast.NatRangeType)
	assert.Equal(t, uint64(15), rng.Hi.(*ast.ConstNum).Value)

	as := cond.Then.(*ast.AsType)
	assert.Equal(t, ast.Symbol("Byte"), as.Type.(*ast.NamedType).Name)
}

func TestParseIsRequiresName(t *testing.T) {
	_, err := Parse("f() is Nat", ast.MakeModuleID("test", 0), &mapInterner{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left operand of `is`")
}

func TestParseCgVarExpr(t *testing.T) {
	prog := parseSrc(t, "def rep<$n>(x: Nat): [Nat; n] = loop n do v <- v return $n")

	fn := prog.Definitions[0].(*ast.FuncDef)
	loop := fn.Body.(*ast.Loop)

	cg := loop.Result.(*ast.CgVar)
	assert.Equal(t, ast.Symbol("n"), cg.Name)
}

func TestParseUnexpectedEOF(t *testing.T) {
	_, err := Parse("def f(", ast.MakeModuleID("test", 0), &mapInterner{})
	require.Error(t, err)

	synErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "unexpected end of input", synErr.Message)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("def f(): Nat =\n  @", ast.MakeModuleID("test", 0), &mapInterner{})
	require.Error(t, err)

	synErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 2, synErr.Position.StartLn)
}
