package vcs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LegacyCodeHQ/ecocap/vcs/git"
)

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, git, etc.)
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader reads files from the working tree.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}

// GitCommitContentReader reads files as they were at commitID.
// Paths may be absolute or relative to the working directory; they must lie inside the repository.
func GitCommitContentReader(repoPath, commitID string) (ContentReader, error) {
	if err := git.ValidateCommit(repoPath, commitID); err != nil {
		return nil, err
	}
	root, err := git.RepositoryRoot(repoPath)
	if err != nil {
		return nil, err
	}
	root = resolveSymlinks(root)

	return func(filePath string) ([]byte, error) {
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", filePath, err)
		}
		rel, err := filepath.Rel(root, resolveSymlinks(absPath))
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", filePath, err)
		}
		return git.FileContentAtCommit(root, commitID, filepath.ToSlash(rel))
	}, nil
}

func resolveSymlinks(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}
