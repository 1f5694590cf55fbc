package watch

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LegacyCodeHQ/ecocap/cmd/check"
	"github.com/LegacyCodeHQ/ecocap/conflict"
	"github.com/LegacyCodeHQ/ecocap/internal/testhelpers"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatchTarget_WatchesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "build.gradle.kts")
	catalogPath := filepath.Join(dir, "catalog.yaml")

	target, err := newWatchTarget(input, catalogPath, "")

	require.NoError(t, err)
	assert.Equal(t, []string{dir}, target.dirs)
	assert.Len(t, target.files, 2)
}

func TestWatchTarget_Matches(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "deps.txt")
	target, err := newWatchTarget(input)
	require.NoError(t, err)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write to input", event: fsnotify.Event{Name: input, Op: fsnotify.Write}, want: true},
		{name: "input replaced", event: fsnotify.Event{Name: input, Op: fsnotify.Create}, want: true},
		{name: "input removed", event: fsnotify.Event{Name: input, Op: fsnotify.Remove}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: input, Op: fsnotify.Chmod}, want: false},
		{name: "sibling file", event: fsnotify.Event{Name: filepath.Join(dir, "other.txt"), Op: fsnotify.Write}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, target.matches(tc.event))
		})
	}
}

func TestWatchAndRerun_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "deps.txt")
	require.NoError(t, os.WriteFile(input, []byte(testhelpers.CleanDeps), 0o644))

	target, err := newWatchTarget(input)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reruns := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchAndRerun(ctx, target, io.Discard, func() { reruns <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(input, []byte(testhelpers.ConflictingDeps), 0o644))
	}

	select {
	case <-reruns:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rerun")
	}

	select {
	case <-reruns:
		t.Fatal("burst of writes triggered more than one rerun")
	case <-time.After(2 * debounceInterval):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRunOnce_PublishesReport(t *testing.T) {
	input := filepath.Join(t.TempDir(), "deps.txt")
	require.NoError(t, os.WriteFile(input, []byte(testhelpers.ConflictingDeps), 0o644))

	b := newBroker()
	ch := b.subscribe()
	defer b.unsubscribe(ch)

	var out, errOut bytes.Buffer
	opts := check.DefaultOptions()
	require.NoError(t, runOnce(&out, &errOut, opts, input, b))

	assert.Contains(t, out.String(), "(unresolved)")
	assert.Equal(t, "1 unresolved capability conflicts\n", errOut.String())
	select {
	case got := <-ch:
		assert.Equal(t, out.String(), got.Body)
		assert.Equal(t, "text", got.Format)
		assert.Equal(t, input, got.Source)
		assert.Equal(t, 4, got.Dependencies)
		assert.Equal(t, 3, got.Tagged)
		assert.Equal(t, 1, got.Conflicts)
		assert.Equal(t, 0, got.Resolved)
		assert.Equal(t, []string{"javax.activation:activation"}, got.Unresolved)
	case <-time.After(time.Second):
		t.Fatal("report was not published")
	}
}

func TestRunOnce_HighestStrategyHasNoWarning(t *testing.T) {
	input := filepath.Join(t.TempDir(), "deps.txt")
	require.NoError(t, os.WriteFile(input, []byte(testhelpers.ConflictingDeps), 0o644))

	var out, errOut bytes.Buffer
	opts := check.DefaultOptions()
	opts.Strategy = string(conflict.StrategyHighestVersion)

	require.NoError(t, runOnce(&out, &errOut, opts, input, nil))
	assert.Contains(t, out.String(), "(selected: highest)")
	assert.Empty(t, errOut.String())
}

func TestWatchCommand_RejectsCommit(t *testing.T) {
	cmd := NewCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"deps.txt", "--commit", "HEAD"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--commit")
}
