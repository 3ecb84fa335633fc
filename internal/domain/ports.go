package domain

// DumpScanner enumerates dump files under an input root.
type DumpScanner interface {
	Scan(inputRoot string, opts ScanOptions) (*ScanResult, error)
}

// ScanOptions controls which files the scanner yields.
type ScanOptions struct {
	Extensions []string
	Exclude    []string
	// SkipDirs are absolute directories never descended into, typically an
	// output root nested under the input root.
	SkipDirs []string
}

// ScanResult holds the files found under an input root, sorted by their
// slash-separated relative path.
type ScanResult struct {
	RootPath string        `json:"root_path"`
	Files    []string      `json:"files"`
	Skipped  int           `json:"skipped"`
	Failures []ScanFailure `json:"failures,omitempty"`
}

// ScanFailure is a part of the tree below the input root that could not be
// listed. Its siblings are still scanned.
type ScanFailure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// DumpStore reads source files and writes converted ones.
type DumpStore interface {
	Read(inputRoot, relPath string) (SourceFile, error)
	Write(outputRoot string, file OutputFile) error
	EnsureDir(path string) error
}

// ConfigLoader loads the conversion config. path may be a file or a
// directory to search for a config file.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// RevisionReader reports the VCS revision of the tree containing path.
type RevisionReader interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
