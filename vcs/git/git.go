package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryRoot returns the absolute path to the repository root
func RepositoryRoot(repoPath string) (string, error) {
	out, stderr, err := runGitCommand(repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", gitCommandError(err, stderr)
	}
	return strings.TrimSpace(string(out)), nil
}

// ValidateCommit checks that commitID names a commit in the repository.
func ValidateCommit(repoPath, commitID string) error {
	if err := validateGitRef(commitID); err != nil {
		return err
	}

	_, stderr, err := runGitCommand(repoPath, "rev-parse", "--verify", commitID+"^{commit}")
	if err != nil {
		if stderr != "" {
			return fmt.Errorf("invalid commit reference '%s': %s", commitID, stderr)
		}
		return fmt.Errorf("invalid commit reference '%s'", commitID)
	}
	return nil
}

// FileContentAtCommit reads a file at a specific commit using 'git show commit:path'.
// The filePath should be relative to the repository root.
func FileContentAtCommit(repoPath, commitID, filePath string) ([]byte, error) {
	if err := validateGitRef(commitID); err != nil {
		return nil, err
	}
	if err := validateGitRelPath(filePath); err != nil {
		return nil, err
	}

	out, stderr, err := runGitCommand(repoPath, "show", fmt.Sprintf("%s:%s", commitID, filePath))
	if err != nil {
		if stderr != "" {
			return nil, fmt.Errorf("git show failed: %s", stderr)
		}
		return nil, err
	}
	return out, nil
}

func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git reference cannot be empty")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("git reference cannot start with '-': %q", ref)
	}
	if strings.ContainsAny(ref, "\x00\n\r\t ") {
		return fmt.Errorf("git reference contains whitespace or NUL: %q", ref)
	}
	return nil
}

func validateGitRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("git path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("git path must be relative: %q", path)
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("git path contains NUL: %q", path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("git path escapes repository: %q", path)
	}
	return nil
}
