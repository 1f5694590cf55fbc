package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupGitRepo initializes a git repository in a temporary directory
func setupGitRepo(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "user.email", "test@example.com")
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

func commitFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "-m", "update "+name)
	return runGit(t, dir, "rev-parse", "HEAD")
}

func TestFileContentAtCommit_ReadsOlderRevision(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)

	first := commitFile(t, dir, "build.gradle.kts", "v1\n")
	commitFile(t, dir, "build.gradle.kts", "v2\n")

	content, err := FileContentAtCommit(dir, first, "build.gradle.kts")
	require.NoError(t, err)
	assert.Equal(t, "v1\n", string(content))

	content, err = FileContentAtCommit(dir, "HEAD", "build.gradle.kts")
	require.NoError(t, err)
	assert.Equal(t, "v2\n", string(content))
}

func TestFileContentAtCommit_FileNotFound(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	commitFile(t, dir, "a.txt", "a\n")

	_, err := FileContentAtCommit(dir, "HEAD", "missing.txt")
	assert.Error(t, err)
}

func TestFileContentAtCommit_RejectsUnsafeInput(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		path   string
	}{
		{name: "empty ref", commit: "", path: "a.txt"},
		{name: "option-like ref", commit: "--output=/tmp/x", path: "a.txt"},
		{name: "ref with space", commit: "HEAD main", path: "a.txt"},
		{name: "absolute path", commit: "HEAD", path: "/etc/passwd"},
		{name: "escaping path", commit: "HEAD", path: "../outside.txt"},
		{name: "empty path", commit: "HEAD", path: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FileContentAtCommit(t.TempDir(), tc.commit, tc.path)
			assert.Error(t, err)
		})
	}
}

func TestValidateCommit(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	sha := commitFile(t, dir, "a.txt", "a\n")

	assert.NoError(t, ValidateCommit(dir, sha))
	assert.NoError(t, ValidateCommit(dir, "HEAD"))
	assert.Error(t, ValidateCommit(dir, "does-not-exist"))
}

func TestRepositoryRoot_FromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	commitFile(t, dir, "sub/a.txt", "a\n")

	root, err := RepositoryRoot(filepath.Join(dir, "sub"))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepositoryRoot_NotGitRepo(t *testing.T) {
	_, err := RepositoryRoot(t.TempDir())
	assert.Error(t, err)
}
