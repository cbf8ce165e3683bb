package localdump

import (
	"fmt"
	"os"
	"path/filepath"
)

// pruneRepo deletes Markdown files in a repo directory that this run didn't write, i.e. documents
// that have been deleted or renamed upstream.
func (exporter *Exporter) pruneRepo(repoDir string, fresh map[RelativePath]bool) (int, error) {
	localFiles, err := ListAllMarkdownFiles(repoDir)
	if err != nil {
		return 0, fmt.Errorf("localdump: failed to list *.md in %s: %w", repoDir, err)
	}

	pruned := 0
	for _, file := range localFiles {
		relative, err := filepath.Rel(exporter.StorePath, file)
		if err != nil {
			return pruned, fmt.Errorf("localdump: failed to get relative path: %w", err)
		}

		if fresh[RelativePath(relative)] {
			continue
		}

		// if we're here, it's a stale/unknown file.
		exporter.Logger.Printf("Pruning: %s\n", relative)
		if err := os.Remove(file); err != nil {
			return pruned, fmt.Errorf("localdump: failed to delete: %w", err)
		}
		pruned++
	}

	return pruned, nil
}
