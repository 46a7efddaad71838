package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"meld/ast"
	"meld/common"
	"meld/logging"
)

// tomlProjectFile represents the project file as it is encoded in TOML
type tomlProjectFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents a Meld project as it is encoded in TOML
type tomlModule struct {
	Name       string `toml:"name"`
	SourceRoot string `toml:"source-root,omitempty"`
	Entry      string `toml:"entry"`
	OutputPath string `toml:"output,omitempty"`
	Version    string `toml:"meld-version"`
}

// Project represents a loaded Meld project: the configuration needed to turn
// module paths into source text.  It implements both the resolver's loader
// contract and the parser's interner contract.
type Project struct {
	// Name is the name of the project
	Name string

	// RootDir is the directory enclosing the project file
	RootDir string

	// SourceRoot is the absolute directory module paths are resolved under
	SourceRoot string

	// Entry is the module path of the project's root module
	Entry string

	// OutputPath is where the flattened program is written by `build`
	OutputPath string

	registry *Registry
}

// LoadProject loads and validates a project file.  `dir` is the path to the
// project directory.
func LoadProject(dir string) (*Project, error) {
	buff, err := os.ReadFile(filepath.Join(dir, common.ModuleFileName))
	if err != nil {
		return nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, err
	}

	if tpf.Module == nil {
		return nil, errors.New("project file is missing a [module] table")
	}

	if tpf.Module.Name == "" {
		return nil, fmt.Errorf("missing project name for project at %s", dir)
	}

	if !IsValidIdentifier(tpf.Module.Name) {
		return nil, errors.New("project name must be a valid identifier")
	}

	if tpf.Module.Entry == "" {
		return nil, fmt.Errorf("project `%s` does not specify an entry module", tpf.Module.Name)
	}

	if tpf.Module.Version != common.MeldVersion {
		logging.PrintWarningMessage(
			"Project Warning",
			fmt.Sprintf("version of project `%s` (v%s) does not match current meld version (v%s)", tpf.Module.Name, tpf.Module.Version, common.MeldVersion),
		)
	}

	proj := &Project{
		Name:       tpf.Module.Name,
		RootDir:    dir,
		SourceRoot: filepath.Join(dir, tpf.Module.SourceRoot),
		Entry:      tpf.Module.Entry,
		OutputPath: tpf.Module.OutputPath,
		registry:   NewRegistry(),
	}

	if proj.OutputPath == "" {
		proj.OutputPath = filepath.Join(dir, proj.Name+common.SrcFileExtension)
	}

	return proj, nil
}

// EntryID interns and returns the ID of the project's entry module
func (p *Project) EntryID() ast.ModuleID {
	return p.Intern(p.Entry)
}

// Intern turns a module path into a module ID via the project registry
func (p *Project) Intern(modPath string) ast.ModuleID {
	return p.registry.Intern(modPath)
}

// Load reads the source text of a module from the project's source root.  A
// module path without an extension has the standard source extension appended.
func (p *Project) Load(id ast.ModuleID) (string, error) {
	modPath := id.Path()
	if filepath.Ext(modPath) == "" {
		modPath += common.SrcFileExtension
	}

	buff, err := os.ReadFile(filepath.Join(p.SourceRoot, filepath.FromSlash(modPath)))
	if err != nil {
		return "", err
	}

	return string(buff), nil
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (project name, module name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
