package mods

import (
	"path"
	"sync"

	"meld/ast"
)

// Registry interns module paths into module IDs.  It owns the assignment of
// the numeric tags used to namespace renamed symbols: tags are handed out in
// intern order, so the same sequence of interns always reproduces the same
// tags (and therefore the same mangled names), independent of any process
// global state.
type Registry struct {
	// m guards ids and nextTag -- interning happens concurrently from
	// resolution workers
	m sync.Mutex

	ids     map[string]ast.ModuleID
	nextTag uint32
}

// NewRegistry creates an empty module registry
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]ast.ModuleID)}
}

// Intern returns the module ID for a module path, creating one with a fresh
// tag if the path has not been seen before.  Paths are cleaned first so
// spellings like `./a/b` and `a/b` intern to the same module.
func (r *Registry) Intern(modPath string) ast.ModuleID {
	cleaned := path.Clean(modPath)

	r.m.Lock()
	defer r.m.Unlock()

	if id, ok := r.ids[cleaned]; ok {
		return id
	}

	id := ast.MakeModuleID(cleaned, r.nextTag)
	r.nextTag++
	r.ids[cleaned] = id
	return id
}

// Len returns the number of interned modules
func (r *Registry) Len() int {
	r.m.Lock()
	defer r.m.Unlock()

	return len(r.ids)
}
