package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"meld/common"
)

// InitProject creates a new project with the given name at the given path
func InitProject(name, dir string) error {
	// convert the project directory to the path to the project file
	projFilePath := filepath.Join(dir, common.ModuleFileName)

	// check to see if a project already exists
	_, err := os.Stat(projFilePath)
	if err == nil {
		return errors.New("project file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("project file error: %s", err.Error())
	}

	// validate the project name
	if !IsValidIdentifier(name) {
		return errors.New("project name must be a valid identifier")
	}

	mod := &tomlModule{
		Name:       name,
		SourceRoot: "src",
		Entry:      "main",
		OutputPath: filepath.Join("out", name+common.SrcFileExtension),
		Version:    common.MeldVersion,
	}

	// create the source root so the entry module has somewhere to live
	if err := os.MkdirAll(filepath.Join(dir, mod.SourceRoot), 0o755); err != nil {
		return fmt.Errorf("error creating source root: %s", err.Error())
	}

	// encode and save the project to file
	f, err := os.Create(projFilePath)
	if err != nil {
		return fmt.Errorf("error creating project file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlProjectFile{Module: mod}); err != nil {
		return fmt.Errorf("error encoding TOML: %s", err.Error())
	}

	return nil
}
