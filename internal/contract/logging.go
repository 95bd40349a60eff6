package contract

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
	Level:           charmlog.WarnLevel,
	Prefix:          "codequal",
})

// SetVerbose switches between warning-only output and debug output.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(charmlog.DebugLevel)
		return
	}
	logger.SetLevel(charmlog.WarnLevel)
}

// SetLogOutput redirects log output. Used by tests and the MCP server,
// which owns stdout and must keep stderr quiet.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	logger.Warn(msg, "err", err)
}

// LogInfo logs an informational message with optional key-value pairs.
func LogInfo(msg string, keyvals ...any) {
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with optional key-value pairs.
func LogDebug(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}
