package localdump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ensureDir creates dir and its parents.  Several goroutines may race to create the same assets
// directory; MkdirAll is happy when it already exists.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("localdump: couldn't create directory %s: %w", dir, err)
	}

	stat, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("localdump: cannot stat '%s': %w", dir, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("localdump: not a directory: '%s'", dir)
	}

	return nil
}

func (exporter *Exporter) WriteMarkdownIntoLocal(contents LocalMarkdown) error {
	abs := filepath.Join(exporter.StorePath, string(contents.RelativePath))

	if err := ensureDir(filepath.Dir(abs)); err != nil {
		return err
	}

	return writeFileAtomic(abs, func(w io.Writer) error {
		_, err := io.WriteString(w, contents.Content)
		return err
	})
}

// Temporary files get a short fixed prefix rather than the destination's name, which may already
// be close to NAME_MAX.
const tempPattern = ".yuque-dump-*"

// writeFileAtomic writes to a temporary sibling and renames it into place, so that two writers
// aiming at the same path leave one whole file behind rather than a mix of both.
func writeFileAtomic(dest string, fill func(w io.Writer) error) error {
	dir := filepath.Dir(dest)

	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("localdump: couldn't create file in %s: %w", dir, err)
	}
	tmp := f.Name()

	if err := fill(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("localdump: couldn't write to file %s: %w", dest, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("localdump: couldn't close file %s: %w", dest, err)
	}

	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("localdump: couldn't chmod %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("localdump: couldn't move %s into place: %w", dest, err)
	}

	return nil
}
