//go:build dev

package mcplogdlog

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"
)

const defaultSocket = "/tmp/mcplogd.sock"
const appName = "ecocap"

// socketEnv overrides the socket path, for running several tools against one collector.
const socketEnv = "ECOCAP_LOG_SOCKET"

type entry struct {
	App       string `json:"app"`
	Level     Level  `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Metadata  Fields `json:"metadata,omitempty"`
}

func Info(message string, metadata Fields) {
	log(LevelInfo, message, metadata)
}

func Debug(message string, metadata Fields) {
	log(LevelDebug, message, metadata)
}

func Warn(message string, metadata Fields) {
	log(LevelWarn, message, metadata)
}

func Error(message string, metadata Fields) {
	log(LevelError, message, metadata)
}

func socketPath() string {
	if p := os.Getenv(socketEnv); p != "" {
		return p
	}
	return defaultSocket
}

func log(level Level, message string, metadata Fields) {
	conn, err := net.DialTimeout("unix", socketPath(), 200*time.Millisecond)
	if err != nil {
		return
	}
	defer conn.Close()

	data, err := json.Marshal(newEntry(level, message, metadata, time.Now()))
	if err != nil {
		return
	}
	fmt.Fprintf(conn, "%s\n", data)
}

func newEntry(level Level, message string, metadata Fields, now time.Time) entry {
	return entry{
		App:       appName,
		Level:     level,
		Message:   message,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Metadata:  metadata,
	}
}
