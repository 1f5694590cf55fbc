//go:build !dev

package mcplogdlog

func Info(message string, metadata Fields) {
	_ = message
	_ = metadata
}

func Debug(message string, metadata Fields) {
	_ = message
	_ = metadata
}

func Warn(message string, metadata Fields) {
	_ = message
	_ = metadata
}

func Error(message string, metadata Fields) {
	_ = message
	_ = metadata
}
