package logging

// logger is a global reference to a shared Logger (created/initialized with the
// linker, but separated for general usage).  It starts out usable so messages
// logged before Initialize are not lost.
var logger = newLogger("", LogLevelVerbose)

// Initialize initializes the global logger with the provided log level
func Initialize(buildPath string, loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warn":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(buildPath, loglevel)
}

// ShouldProceed indicates whether or not the log module has encountered errors.
// This is useful for sections of the linker where multiple items are processed
// concurrently and having an error accumulator would be practical
func ShouldProceed() bool {
	return logger.errors() == 0
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their
// appropriate log level.

// LogCompileError logs a compilation error (user-induced, bad code)
func LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	})
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to project or toolchain configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogFatal logs a fatal internal error that was not expected: ie. the linker
// did something it wasn't supposed to.  It stops the process outright.
func LogFatal(message string) {
	displayFatalError(message)
	panic(message)
}

// FlushWarnings displays all warnings accumulated during a phase
func FlushWarnings() {
	logger.flushWarnings()
}

// BeginPhase displays the start of a linking phase (verbose only)
func BeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// EndPhase displays the end of a linking phase
func EndPhase(success bool) {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}
