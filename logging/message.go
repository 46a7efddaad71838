package logging

// TextPosition represents a selection of text in a source file.  It is carried
// by every AST node and used to point diagnostics at the offending code.
type TextPosition struct {
	// StartLn is the line the selection begins on (starting at 1)
	StartLn int

	// StartCol is the column the selection begins at (starting at 0)
	StartCol int

	// EndLn is the line the selection ends on
	EndLn int

	// EndCol is the column (exclusive) the selection ends at
	EndCol int
}

// LogContext stores the contextual information associated with a log message:
// which module and file the message originated from
type LogContext struct {
	// ModuleName is the name/path of the module being processed
	ModuleName string

	// FilePath is the path to the source file the message refers to
	FilePath string
}

// LogMessage is the interface for all messages the logger can handle
type LogMessage interface {
	display()
	isError() bool
}

// CompileMessage is a message that arose from the user's source code: an error
// or warning with a position and a log context
type CompileMessage struct {
	Message  string
	Kind     int
	Position *TextPosition
	Context  *LogContext
	IsError  bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// Enumeration of the different kinds of compile messages
const (
	LMKToken  = iota // malformed token
	LMKSyntax        // grammatical errors
	LMKModule        // module resolution errors (missing modules, cycles)
	LMKName          // naming/renaming errors
)

// ConfigError is an error in the project or toolchain configuration.  It has
// no source position since it does not originate in user source code.
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}
