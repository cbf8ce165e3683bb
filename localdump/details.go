package localdump

import (
	"path/filepath"
)

// RepoPath is where a repo's documents go, relative to the store.
func RepoPath(repoName string) RelativePath {
	return RelativePath(SanitiseName(repoName))
}

// DocPath is <repo>/<title>.md, relative to the store.
func DocPath(repoName string, title string) RelativePath {
	return RelativePath(filepath.Join(string(RepoPath(repoName)), SanitiseName(title)+".md"))
}
