package localdump

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// returns absolute pathnames
func ListAllMarkdownFiles(inFolder string) ([]string, error) {
	if _, err := os.Stat(inFolder); err == nil {
		// path/to/whatever exists
	} else if errors.Is(err, os.ErrNotExist) {
		// path/to/whatever does *not* exist; this might mean this is the first time running.
		return []string{}, nil
	} else {
		// some other error
		return []string{}, fmt.Errorf("localdump: error opening %s for file tree walk: %w", inFolder, err)
	}

	filenames := []string{}

	err := filepath.WalkDir(inFolder,
		func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("localdump: error during file tree walk: %w", err)
			}
			// images live in assets/, there's no Markdown in there.
			if d.IsDir() && d.Name() == AssetsDir && path != inFolder {
				return filepath.SkipDir
			}
			if !d.IsDir() && strings.HasSuffix(path, ".md") {
				filenames = append(filenames, path)
			}
			return nil
		})
	if err != nil {
		return []string{}, fmt.Errorf("localdump: error initialising file tree walk: %w", err)
	}

	return filenames, nil
}
