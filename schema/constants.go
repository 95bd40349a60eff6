package schema

// Custom string types for type safety.
type (
	// AnalysisMode determines how an external tool is driven.
	AnalysisMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All analysis modes supported.
const (
	PerFileMode      AnalysisMode = "per-file"      // one tool invocation per source file
	WholeProjectMode AnalysisMode = "whole-project" // one tool invocation for the project root
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Severity labels, from worst to best.
const (
	CriticalLabel = "Critical"
	HighLabel     = "High"
	ModerateLabel = "Moderate"
	LowLabel      = "Low"
)

// ValidAnalysisModes lists all valid analysis modes.
var ValidAnalysisModes = map[AnalysisMode]struct{}{
	PerFileMode:      {},
	WholeProjectMode: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
