//go:build dev

package mcplogdlog

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	e := newEntry(LevelWarn, "catalog loaded", Fields{"rules": 2}, now)

	assert.Equal(t, "ecocap", e.App)
	assert.Equal(t, LevelWarn, e.Level)
	assert.Equal(t, "2024-05-01T10:00:00Z", e.Timestamp)
	assert.Equal(t, 2, e.Metadata["rules"])
}

func TestInfo_WritesToSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "log.sock")
	t.Setenv(socketEnv, socket)

	ln, err := net.Listen("unix", socket)
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan entry, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadBytes('\n')
		if err != nil {
			return
		}
		var e entry
		if json.Unmarshal(line, &e) == nil {
			received <- e
		}
	}()

	Info("check finished", Fields{"conflicts": 1})

	select {
	case e := <-received:
		assert.Equal(t, LevelInfo, e.Level)
		assert.Equal(t, "check finished", e.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("no log entry received")
	}
}
