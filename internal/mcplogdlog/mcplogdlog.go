// Package mcplogdlog sends structured log lines to a local mcplogd collector.
// Production builds compile every call to a no-op; build with -tags dev to enable it.
package mcplogdlog

// Level is the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Fields is structured metadata attached to a log entry.
type Fields map[string]any
