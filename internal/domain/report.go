package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrInputNotDirectory is returned when the input root is missing or is not a
// directory. It aborts the whole run.
var ErrInputNotDirectory = errors.New("input is not a directory")

// FileState tracks one file through a run. Transitions only move forward.
type FileState int

const (
	StateUnvisited FileState = iota
	StateReading
	StateConverting
	StateWritten
	StateFailed
)

func (s FileState) String() string {
	switch s {
	case StateUnvisited:
		return "unvisited"
	case StateReading:
		return "reading"
	case StateConverting:
		return "converting"
	case StateWritten:
		return "written"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("FileState(%d)", int(s))
	}
}

// KindCounts holds the number of emitted macros per FieldKind.
type KindCounts struct {
	Standard int `json:"standard"`
	Vector   int `json:"vector"`
	BitField int `json:"bitfield"`
	Enum     int `json:"enum"`
}

func (c *KindCounts) Add(k FieldKind, n int) {
	switch k {
	case KindStandard:
		c.Standard += n
	case KindVector:
		c.Vector += n
	case KindBitField:
		c.BitField += n
	case KindEnum:
		c.Enum += n
	}
}

func (c KindCounts) Get(k FieldKind) int {
	switch k {
	case KindStandard:
		return c.Standard
	case KindVector:
		return c.Vector
	case KindBitField:
		return c.BitField
	case KindEnum:
		return c.Enum
	}
	return 0
}

func (c KindCounts) Total() int { return c.Standard + c.Vector + c.BitField + c.Enum }

// LineNote points at a declaration that was kept verbatim because it was
// malformed or its type is ignored. Line is 1-based.
type LineNote struct {
	Line   int        `json:"line"`
	Reason PassReason `json:"reason"`
}

// FileStats summarizes the conversion of a single file.
type FileStats struct {
	Lines    int        `json:"lines"`
	Fields   KindCounts `json:"fields"`
	Ignored  int        `json:"ignored"`
	Unmapped []string   `json:"unmapped,omitempty"`
	Notes    []LineNote `json:"notes,omitempty"`
}

// FileResult is what a worker hands back for one file.
type FileResult struct {
	Path  string
	State FileState
	Stats FileStats
	Err   error
}

// FileFailure records a file that could not be read or written.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report aggregates a whole run. It only lives for the duration of the
// process.
type Report struct {
	InputRoot      string        `json:"input_root"`
	OutputRoot     string        `json:"output_root"`
	InputRevision  string        `json:"input_revision,omitempty"`
	FilesProcessed int           `json:"files_processed"`
	FilesFailed    int           `json:"files_failed"`
	Lines          int           `json:"lines"`
	Fields         KindCounts    `json:"fields"`
	Ignored        int           `json:"ignored"`
	Unmapped       []string      `json:"unmapped"`
	Failures       []FileFailure `json:"failures,omitempty"`
	Interrupted    bool          `json:"interrupted,omitempty"`
	Duration       time.Duration `json:"duration_ns"`
}

// Add merges a finished file into the report. Unvisited results (jobs that
// never started because the run was interrupted) are ignored.
func (r *Report) Add(res FileResult) {
	switch res.State {
	case StateWritten:
		r.FilesProcessed++
		r.Lines += res.Stats.Lines
		for _, k := range AllKinds {
			r.Fields.Add(k, res.Stats.Fields.Get(k))
		}
		r.Ignored += res.Stats.Ignored
		for _, name := range res.Stats.Unmapped {
			if !slices.Contains(r.Unmapped, name) {
				r.Unmapped = append(r.Unmapped, name)
			}
		}
		slices.Sort(r.Unmapped)
	case StateFailed:
		r.FilesFailed++
		msg := "unknown error"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		r.Failures = append(r.Failures, FileFailure{Path: res.Path, Error: msg})
	}
}

// Clean reports whether every visited file was written.
func (r *Report) Clean() bool {
	return r.FilesFailed == 0 && !r.Interrupted
}
