package contract

import (
	"errors"
	"fmt"
)

// Terminal errors of an analysis run. None of them are retried.
var (
	ErrLanguageRequired    = errors.New("--language is required")
	ErrUnsupportedLanguage = errors.New("language is not supported")
	ErrNoSourceFiles       = errors.New("no source files found in the specified directory")
	ErrToolNotFound        = errors.New("analysis tool not found")
	ErrToolExecutionFailed = errors.New("analysis tool failed")
	ErrUnknownAnalysisMode = errors.New("unknown analysis mode")
	ErrThresholdExceeded   = errors.New("complexity threshold exceeded")
)

// ToolError describes a failed external tool invocation.
// It unwraps to ErrToolNotFound or ErrToolExecutionFailed.
type ToolError struct {
	Tool   string // Binary name as configured
	Target string // File or directory the tool was pointed at
	Detail string // Standard error text of the tool, if any
	Err    error  // ErrToolNotFound or ErrToolExecutionFailed
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	switch {
	case errors.Is(e.Err, ErrToolNotFound):
		return fmt.Sprintf("'%s' command not found. Please ensure it is installed and available on your PATH", e.Tool)
	case e.Detail != "":
		return fmt.Sprintf("error running %s on %s: %s", e.Tool, e.Target, e.Detail)
	default:
		return fmt.Sprintf("error running %s on %s", e.Tool, e.Target)
	}
}

// Unwrap returns the classification sentinel.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// UnsupportedLanguageError builds the error returned for an unregistered language id.
func UnsupportedLanguageError(language string) error {
	return fmt.Errorf("language '%s' is not supported: %w", language, ErrUnsupportedLanguage)
}
