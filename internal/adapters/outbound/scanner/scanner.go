package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dumpconv/dumpconv/internal/domain"
)

var skipDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// FileScanner implements domain.DumpScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns every regular file under inputRoot whose extension is listed
// in opts.Extensions, sorted by slash-separated relative path so runs are
// reproducible regardless of walk order.
func (s *FileScanner) Scan(inputRoot string, opts domain.ScanOptions) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(inputRoot)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInputNotDirectory, inputRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputNotDirectory, inputRoot)
	}

	extensions := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	skipAbs := make(map[string]bool, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		if abs, err := filepath.Abs(d); err == nil {
			skipAbs[abs] = true
		}
	}

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if path == absPath {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if err != nil {
			// An unreadable subdirectory fails on its own; siblings still run.
			result.Failures = append(result.Failures, domain.ScanFailure{Path: relPath, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || skipAbs[path] || excluded(opts.Exclude, d.Name(), relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			result.Skipped++
			return nil
		}
		if !extensions[strings.ToLower(filepath.Ext(d.Name()))] || excluded(opts.Exclude, d.Name(), relPath) {
			result.Skipped++
			return nil
		}

		result.Files = append(result.Files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(result.Files)
	slices.SortFunc(result.Failures, func(a, b domain.ScanFailure) int {
		return strings.Compare(a.Path, b.Path)
	})
	return result, nil
}

func excluded(patterns []string, name, relPath string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
		if ok, _ := filepath.Match(p, relPath); ok {
			return true
		}
	}
	return false
}
