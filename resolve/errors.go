package resolve

import (
	"fmt"
	"strings"

	"meld/ast"
)

// ModuleNotFoundError indicates that the loader failed to produce source text
// for a requested module.  It carries no source position: the failure occurs
// before any position metadata exists for the module.
type ModuleNotFoundError struct {
	// Module is the module that could not be loaded
	Module ast.ModuleID

	// Err is the underlying loader failure
	Err error
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module `%s` is unavailable: %s", e.Module, e.Err.Error())
}

func (e *ModuleNotFoundError) Unwrap() error {
	return e.Err
}

// CycleError indicates that a module was requested while it was already being
// resolved on the current resolution chain.  Module graphs must be acyclic.
type CycleError struct {
	// Chain is the require chain that closed the cycle; its first and last
	// elements are the same module
	Chain []ast.ModuleID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, id := range e.Chain {
		parts[i] = id.String()
	}

	return "require cycle detected: " + strings.Join(parts, " -> ")
}
