package fsstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dumpconv/dumpconv/internal/domain"
)

// Store is a file-based implementation of domain.DumpStore.
type Store struct{}

// New creates a new file-based store.
func New() *Store {
	return &Store{}
}

// Read loads one dump file relative to inputRoot.
func (s *Store) Read(inputRoot, relPath string) (domain.SourceFile, error) {
	data, err := os.ReadFile(filepath.Join(inputRoot, filepath.FromSlash(relPath)))
	if err != nil {
		return domain.SourceFile{}, err
	}
	return domain.ParseSource(relPath, data), nil
}

// Write stores file under outputRoot at its relative path, creating missing
// directories. Content goes to a temporary sibling first and is renamed into
// place, so an interrupted run never leaves a truncated file behind.
func (s *Store) Write(outputRoot string, file domain.OutputFile) error {
	dest := filepath.Join(outputRoot, filepath.FromSlash(file.Path))
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(file.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", file.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", file.Path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", file.Path, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	committed = true
	return nil
}

// EnsureDir creates path and any missing parents.
func (s *Store) EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
