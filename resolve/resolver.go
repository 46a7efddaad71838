package resolve

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"meld/ast"
	"meld/common"
	"meld/syntax"
)

// Loader is the strategy that turns a module ID into raw source text.  The
// default implementation reads files under a project source root
// (`mods.Project`); any other strategy (in-memory map, network fetch) is a
// valid substitute.
type Loader interface {
	Load(id ast.ModuleID) (string, error)
}

// Resolver recursively flattens module graphs: it eliminates every `require`
// and `provide` directive by inlining the (hygienically renamed) definitions
// of required modules into the requesting module.  Results are memoized per
// module ID for the lifetime of the resolver.  A resolver is safe for
// concurrent use.
type Resolver struct {
	loader   Loader
	interner ast.Interner

	// workers bounds the number of definitions expanded in parallel per module
	workers int

	// m guards cache.  Entries are created on first resolution and never
	// invalidated or evicted.
	m     sync.RWMutex
	cache map[ast.ModuleID]*ast.Program

	// flight collapses concurrent top-level resolutions of the same module
	flight singleflight.Group
}

// NewResolver creates a resolver that loads raw module source through the
// given loader and interns require paths through the given interner
func NewResolver(loader Loader, interner ast.Interner) *Resolver {
	return &Resolver{
		loader:   loader,
		interner: interner,
		workers:  runtime.NumCPU(),
		cache:    make(map[ast.ModuleID]*ast.Program),
	}
}

// Resolve returns the flattened program for a module: a program containing no
// `require` definitions, in which every inlined dependency's non-exported
// symbol has been renamed to a collision-free form.  `provide` definitions of
// the requested module itself are retained as its advertised public surface.
func (r *Resolver) Resolve(id ast.ModuleID) (*ast.Program, error) {
	// concurrent first-time requests for the same root are collapsed into one
	// computation; nested (recursive) resolutions must not join a flight owned
	// by another resolution chain -- two chains waiting on each other's
	// modules would deadlock on cyclic graphs rather than report the cycle
	if prog, ok := r.cached(id); ok {
		return prog.Clone(), nil
	}

	v, err, _ := r.flight.Do(id.Path(), func() (interface{}, error) {
		return r.resolve(id, nil)
	})
	if err != nil {
		return nil, err
	}

	return v.(*ast.Program).Clone(), nil
}

// resolve is the re-entrant resolution entry point.  `chain` is the list of
// modules currently being resolved on this resolution path, used to fail fast
// on cyclic graphs.
func (r *Resolver) resolve(id ast.ModuleID, chain []ast.ModuleID) (*ast.Program, error) {
	for i, inProgress := range chain {
		if inProgress == id {
			cycle := make([]ast.ModuleID, 0, len(chain)-i+1)
			cycle = append(cycle, chain[i:]...)
			return nil, &CycleError{Chain: append(cycle, id)}
		}
	}

	if prog, ok := r.cached(id); ok {
		return prog.Clone(), nil
	}

	// extend the chain copy-on-write: sibling workers recurse concurrently
	// from the same prefix
	nextChain := make([]ast.ModuleID, len(chain)+1)
	copy(nextChain, chain)
	nextChain[len(chain)] = id

	text, err := r.loader.Load(id)
	if err != nil {
		return nil, &ModuleNotFoundError{Module: id, Err: err}
	}

	parsed, err := syntax.Parse(text, id, r.interner)
	if err != nil {
		return nil, err
	}

	// expand the definition list as an order-preserving parallel fold:
	// contiguous chunks are expanded independently and merged back by
	// concatenation in original partition order
	chunks := common.SplitChunks(parsed.Definitions, r.workers)
	results := make([][]ast.Definition, len(chunks))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			expanded, err := r.expandChunk(chunk, nextChain)
			if err != nil {
				return err
			}

			results[i] = expanded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var defs []ast.Definition
	for _, part := range results {
		defs = append(defs, part...)
	}

	// the body is copied through unchanged: a module's executable body only
	// matters when the module is the root of resolution
	prog := &ast.Program{Module: id, Definitions: defs, Body: parsed.Body}
	r.store(id, prog)
	return prog, nil
}

// expandChunk expands one contiguous run of definitions: each `require` is
// replaced in place by its dependency's flattened, renamed definitions; every
// other definition is copied through unchanged
func (r *Resolver) expandChunk(chunk []ast.Definition, chain []ast.ModuleID) ([]ast.Definition, error) {
	var out []ast.Definition
	for _, def := range chunk {
		if req, ok := def.(*ast.RequireDef); ok {
			dep, err := r.resolve(req.Target, chain)
			if err != nil {
				return nil, err
			}

			out = append(out, MangleDefs(dep.Definitions, req.Target)...)
		} else {
			out = append(out, def)
		}
	}

	return out, nil
}

// cached looks up a memoized resolution
func (r *Resolver) cached(id ast.ModuleID) (*ast.Program, bool) {
	r.m.RLock()
	defer r.m.RUnlock()

	prog, ok := r.cache[id]
	return prog, ok
}

// store memoizes a resolution.  Concurrent resolution chains may race to
// store the same module; both results are pure functions of the same input,
// so whichever write lands last is correct.
func (r *Resolver) store(id ast.ModuleID, prog *ast.Program) {
	r.m.Lock()
	r.cache[id] = prog
	r.m.Unlock()
}
