package resolve

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meld/ast"
	"meld/mods"
)

// testLoader is an in-memory loader/interner that counts loads per module so
// tests can observe caching behavior
type testLoader struct {
	registry *mods.Registry
	sources  map[string]string

	m     sync.Mutex
	loads map[string]int
}

func newTestLoader(sources map[string]string) *testLoader {
	return &testLoader{
		registry: mods.NewRegistry(),
		sources:  sources,
		loads:    make(map[string]int),
	}
}

func (l *testLoader) Load(id ast.ModuleID) (string, error) {
	l.m.Lock()
	l.loads[id.Path()]++
	l.m.Unlock()

	src, ok := l.sources[id.Path()]
	if !ok {
		return "", fmt.Errorf("no module at %s", id.Path())
	}

	return src, nil
}

func (l *testLoader) Intern(path string) ast.ModuleID {
	return l.registry.Intern(path)
}

func (l *testLoader) loadCount(path string) int {
	l.m.Lock()
	defer l.m.Unlock()

	return l.loads[path]
}

// defNames extracts the top-level definition names of a program in order
func defNames(prog *ast.Program) []string {
	var names []string
	for _, def := range prog.Definitions {
		switch d := def.(type) {
		case *ast.FuncDef:
			names = append(names, string(d.Name))
		case *ast.StructDef:
			names = append(names, string(d.Name))
		case *ast.ConstDef:
			names = append(names, string(d.Name))
		case *ast.ProvideDef:
			names = append(names, "provide "+string(d.Name))
		case *ast.RequireDef:
			names = append(names, "require "+d.Target.Path())
		}
	}

	return names
}

// -----------------------------------------------------------------------------

func TestResolveCachesFlattenedPrograms(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"main": "require \"util\"\ndef run(): Nat = double(2)\nrun()",
		"util": "provide double\ndef double(n: Nat): Nat = n * 2",
	})
	r := NewResolver(loader, loader)

	first, err := r.Resolve(loader.Intern("main"))
	require.NoError(t, err)

	second, err := r.Resolve(loader.Intern("main"))
	require.NoError(t, err)

	// the second resolution is served entirely from the cache
	assert.Equal(t, 1, loader.loadCount("main"))
	assert.Equal(t, 1, loader.loadCount("util"))
	assert.Equal(t, ast.Render(first), ast.Render(second))
}

func TestResolveSharedDependencyLoadedOnce(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"a":      "require \"b\"\nrequire \"c\"\ndef fa(): Nat = 1",
		"b":      "require \"shared\"\ndef fb(): Nat = 2",
		"c":      "require \"shared\"\ndef fc(): Nat = 3",
		"shared": "def fs(): Nat = 4",
	})
	r := NewResolver(loader, loader)

	_, err := r.Resolve(loader.Intern("a"))
	require.NoError(t, err)

	// b and c both require shared, but the second expansion hits the cache
	assert.Equal(t, 1, loader.loadCount("shared"))
}

func TestHygieneDistinctPrivateNames(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"a": "require \"b\"\ndef f(x: Nat): Nat = f(x)",
		"b": "def f(x: Nat): Nat = f(x)",
	})
	r := NewResolver(loader, loader)

	prog, err := r.Resolve(loader.Intern("a"))
	require.NoError(t, err)

	names := defNames(prog)
	require.Len(t, names, 2)

	// the two `f`s must end up under different top-level names
	assert.NotEqual(t, names[0], names[1])

	// the root module's own definitions are never renamed
	assert.Equal(t, "f", names[1])

	// each body's recursive reference must point at its own definition, not
	// the other module's
	for _, def := range prog.Definitions {
		fn := def.(*ast.FuncDef)
		call := fn.Body.(*ast.Apply)
		assert.Equal(t, fn.Name, call.Fn.(*ast.Var).Name)
	}
}

func TestExplicitReexportOnly(t *testing.T) {
	// c provides g; b requires c but does not re-provide g; a requires b.
	// g must not be visible under its plain name from a.
	loader := newTestLoader(map[string]string{
		"a": "require \"b\"\ndef main(): Nat = 0",
		"b": "require \"c\"\ndef fb(): Nat = g()",
		"c": "provide g\ndef g(): Nat = 1",
	})
	r := NewResolver(loader, loader)

	prog, err := r.Resolve(loader.Intern("a"))
	require.NoError(t, err)

	bTag := loader.Intern("b").Tag()
	names := defNames(prog)

	// g was visible unmangled inside b, but crossing the b -> a edge renames
	// it with b's tag since b never re-provided it
	assert.NotContains(t, names, "g")
	assert.Contains(t, names, fmt.Sprintf("g-%d", bTag))

	// b's call site was renamed consistently with the definition
	for _, def := range prog.Definitions {
		if fn, ok := def.(*ast.FuncDef); ok && fn.Name == ast.Symbol(fmt.Sprintf("fb-%d", bTag)) {
			call := fn.Body.(*ast.Apply)
			assert.Equal(t, fmt.Sprintf("g-%d", bTag), string(call.Fn.(*ast.Var).Name))
			return
		}
	}

	t.Fatal("inlined fb definition not found")
}

func TestLocalBindingsNotMangled(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"a": "require \"b\"\ndef main(): Nat = inc(1)",
		"b": "provide inc\ndef helper(n: Nat): Nat = n\ndef inc(x: Nat): Nat = let y = helper(x) in y + 1",
	})
	r := NewResolver(loader, loader)

	prog, err := r.Resolve(loader.Intern("a"))
	require.NoError(t, err)

	// locate the inlined `inc`: provided names survive unmangled
	var inc *ast.FuncDef
	var helperName ast.Symbol
	for _, def := range prog.Definitions {
		if fn, ok := def.(*ast.FuncDef); ok {
			switch {
			case fn.Name == ast.Symbol("inc"):
				inc = fn
			case fn.Name != ast.Symbol("main"):
				helperName = fn.Name
			}
		}
	}
	require.NotNil(t, inc)

	// the private helper was renamed
	assert.NotEqual(t, ast.Symbol("helper"), helperName)

	// the argument name is untouched
	assert.Equal(t, ast.Symbol("x"), inc.Args[0].Name)

	// let y = helper(x) in y + 1
	let := inc.Body.(*ast.Let)
	assert.Equal(t, ast.Symbol("y"), let.Name)

	call := let.Value.(*ast.Apply)
	assert.Equal(t, helperName, call.Fn.(*ast.Var).Name)
	assert.Equal(t, ast.Symbol("x"), call.Args[0].(*ast.Var).Name)

	sum := let.Body.(*ast.Binary)
	assert.Equal(t, ast.Symbol("y"), sum.Lhs.(*ast.Var).Name)
}

func TestOrderPreservation(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"root": "def f1(): Nat = 1\nrequire \"m\"\ndef f2(): Nat = 2",
		"m":    "def g1(): Nat = 1\ndef g2(): Nat = 2",
	})
	r := NewResolver(loader, loader)

	prog, err := r.Resolve(loader.Intern("root"))
	require.NoError(t, err)

	mTag := loader.Intern("m").Tag()
	assert.Equal(t, []string{
		"f1",
		fmt.Sprintf("g1-%d", mTag),
		fmt.Sprintf("g2-%d", mTag),
		"f2",
	}, defNames(prog))
}

func TestRequireCycleFailsDeterministically(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"a": "require \"b\"\ndef fa(): Nat = 1",
		"b": "require \"a\"\ndef fb(): Nat = 2",
	})
	r := NewResolver(loader, loader)

	_, err := r.Resolve(loader.Intern("a"))
	require.Error(t, err)

	cycle, ok := err.(*CycleError)
	require.True(t, ok, "expected a cycle error, got %v", err)

	// the chain closes on the module that was re-requested
	assert.Equal(t, cycle.Chain[0], cycle.Chain[len(cycle.Chain)-1])
	assert.Contains(t, cycle.Error(), "a -> b -> a")
}

func TestSelfRequireCycle(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"a": "require \"a\"\ndef fa(): Nat = 1",
	})
	r := NewResolver(loader, loader)

	_, err := r.Resolve(loader.Intern("a"))

	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
}

func TestMissingModuleError(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"a": "require \"ghost\"\ndef fa(): Nat = 1",
	})
	r := NewResolver(loader, loader)

	_, err := r.Resolve(loader.Intern("a"))
	require.Error(t, err)

	var notFound *ModuleNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Module.Path())
}

func TestDependencyBodyNotInlined(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"root": "require \"dep\"\n42",
		"dep":  "def fd(): Nat = 1\n99",
	})
	r := NewResolver(loader, loader)

	prog, err := r.Resolve(loader.Intern("root"))
	require.NoError(t, err)

	// the root's body survives; the dependency's body is discarded
	body, ok := prog.Body.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, uint64(42), body.Value)

	require.Len(t, prog.Definitions, 1)
}

func TestRootProvidesRetainedAndRequiresEliminated(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"root": "provide api\nrequire \"dep\"\ndef api(): Nat = 1",
		"dep":  "provide util\ndef util(): Nat = 2",
	})
	r := NewResolver(loader, loader)

	prog, err := r.Resolve(loader.Intern("root"))
	require.NoError(t, err)

	var provides, requires int
	for _, def := range prog.Definitions {
		switch def.(type) {
		case *ast.ProvideDef:
			provides++
		case *ast.RequireDef:
			requires++
		}
	}

	// the root's own provide markers are its advertised public surface; the
	// dependency's were consumed during inlining
	assert.Equal(t, 1, provides)
	assert.Zero(t, requires)
}

func TestDiamondDependencyReexpanded(t *testing.T) {
	// each require edge re-expands its dependency independently: the shared
	// leaf appears once per inlining site (value-equal copies)
	loader := newTestLoader(map[string]string{
		"a": "require \"b\"\nrequire \"c\"\ndef fa(): Nat = 1",
		"b": "require \"d\"\ndef fb(): Nat = 2",
		"c": "require \"d\"\ndef fc(): Nat = 3",
		"d": "def fd(): Nat = 4",
	})
	r := NewResolver(loader, loader)

	prog, err := r.Resolve(loader.Intern("a"))
	require.NoError(t, err)

	dTag := loader.Intern("d").Tag()
	mangled := fmt.Sprintf("fd-%d", dTag)

	var copies int
	for _, name := range defNames(prog) {
		if name == mangled {
			copies++
		}
	}

	assert.Equal(t, 2, copies)
}

func TestConcurrentResolutionsAgree(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"main": "require \"util\"\ndef run(): Nat = double(2)",
		"util": "provide double\ndef double(n: Nat): Nat = n * 2",
	})
	r := NewResolver(loader, loader)
	id := loader.Intern("main")

	const goroutines = 8
	results := make([]string, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			prog, err := r.Resolve(id)
			if err != nil {
				t.Error(err)
				return
			}

			results[i] = ast.Render(prog)
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestSyntaxErrorPropagates(t *testing.T) {
	loader := newTestLoader(map[string]string{
		"root": "require \"bad\"\ndef fa(): Nat = 1",
		"bad":  "def (): Nat = 1",
	})
	r := NewResolver(loader, loader)

	_, err := r.Resolve(loader.Intern("root"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}
