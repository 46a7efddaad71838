package build

import (
	"errors"
	"os"
	"path/filepath"

	"meld/ast"
	"meld/common"
	"meld/logging"
	"meld/mods"
	"meld/resolve"
	"meld/syntax"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of the Meld linker
type Compiler struct {
	// proj is the project being built
	proj *mods.Project

	// resolver flattens the project's module graph.  It lives as long as the
	// compiler so repeated checks reuse its module cache.
	resolver *resolve.Resolver
}

// NewCompiler creates a new compiler for a given project
func NewCompiler(proj *mods.Project) *Compiler {
	return &Compiler{
		proj:     proj,
		resolver: resolve.NewResolver(proj, proj),
	}
}

// Build runs the full linking algorithm on the project's entry module and
// writes the flattened program to the project output path.  It handles all
// errors appropriately and returns whether or not the build succeeded.
func (c *Compiler) Build() bool {
	prog, ok := c.Check()
	if !ok {
		return false
	}

	logging.BeginPhase("Emitting")

	if err := os.MkdirAll(filepath.Dir(c.proj.OutputPath), 0o755); err != nil {
		logging.EndPhase(false)
		logging.LogConfigError("Output", "error creating output directory: "+err.Error())
		return false
	}

	if err := os.WriteFile(c.proj.OutputPath, []byte(ast.Render(prog)), 0o644); err != nil {
		logging.EndPhase(false)
		logging.LogConfigError("Output", "error writing output: "+err.Error())
		return false
	}

	logging.EndPhase(true)
	return true
}

// Check runs just the resolution portion of the linking algorithm: it
// flattens the entry module's require graph without emitting anything.  This
// is exported for usage in the CLI (for editors/IDEs, etc.).  It returns the
// flattened program and a boolean indicating whether resolution succeeded.
func (c *Compiler) Check() (*ast.Program, bool) {
	logging.BeginPhase("Resolving")

	prog, err := c.resolver.Resolve(c.proj.EntryID())
	if err != nil {
		logging.EndPhase(false)
		c.logResolutionError(err)
		return nil, false
	}

	logging.EndPhase(true)
	logging.FlushWarnings()
	return prog, logging.ShouldProceed()
}

// logResolutionError maps a resolver error onto the logging package
func (c *Compiler) logResolutionError(err error) {
	var synErr *syntax.Error
	if errors.As(err, &synErr) {
		// the parser only knows module paths; point the log context at the
		// file under the project source root so the source can be displayed
		lctx := &logging.LogContext{
			ModuleName: synErr.Context.ModuleName,
			FilePath:   c.sourcePath(synErr.Context.FilePath),
		}

		logging.LogCompileError(lctx, synErr.Message, synErr.Kind, synErr.Position)
		return
	}

	var notFound *resolve.ModuleNotFoundError
	if errors.As(err, &notFound) {
		logging.LogConfigError("Module", err.Error())
		return
	}

	var cycle *resolve.CycleError
	if errors.As(err, &cycle) {
		logging.LogConfigError("Module", err.Error())
		return
	}

	logging.LogConfigError("Build", err.Error())
}

// sourcePath converts a module path into the path of its source file
func (c *Compiler) sourcePath(modPath string) string {
	if filepath.Ext(modPath) == "" {
		modPath += common.SrcFileExtension
	}

	return filepath.Join(c.proj.SourceRoot, filepath.FromSlash(modPath))
}
