package cmd

import (
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"meld/build"
	"meld/common"
	"meld/logging"
	"meld/mods"
)

// Execute runs the main `meld` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("meld", "meld is a tool for linking Meld projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the linker log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "flatten a project and write the result", true)
	buildCmd.AddPrimaryArg("project-path", "the path to the project to build", true)

	checkCmd := cli.AddSubcommand("check", "flatten a project and report errors", true)
	checkCmd.AddPrimaryArg("project-path", "the path to the project to check", true)

	modCmd := cli.AddSubcommand("mod", "manage projects", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a project", true)
	modInitCmd.AddPrimaryArg("project-name", "the name of the project to create", true)

	cli.AddSubcommand("version", "print the Meld version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string), true)
	case "check":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string), false)
	case "mod":
		execModCommand(subResult)
	case "version":
		logging.PrintInfoMessage("Meld Version", common.MeldVersion)
	}
}

// execBuildCommand executes the build and check subcommands and handles all
// errors.  `emit` selects between a full build and a check
func execBuildCommand(result *olive.ArgParseResult, loglevel string, emit bool) {
	projRelPath, _ := result.PrimaryArg()

	projPath, err := filepath.Abs(projRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	// attempt to load the project
	proj, err := mods.LoadProject(projPath)
	if err != nil {
		logging.PrintErrorMessage("Project Load Error", err)
		return
	}

	// initialize the logger
	logging.Initialize(proj.RootDir, loglevel)

	// link the project
	c := build.NewCompiler(proj)
	if emit {
		c.Build()
	} else {
		c.Check()
	}
}

// execModCommand executes the `mod` subcommand and its subcommands.  It
// handles all errors related to this command
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	switch subcmdName {
	case "init":
		projNameValue, _ := subResult.PrimaryArg()
		if err := mods.InitProject(projNameValue, workDir); err != nil {
			logging.PrintErrorMessage("Project Init Error", err)
		}
	}
}
