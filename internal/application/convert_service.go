package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/dumpconv/dumpconv/internal/domain/convert"
	"github.com/dumpconv/dumpconv/internal/domain/typemap"
	applog "github.com/dumpconv/dumpconv/internal/log"
)

// ErrInterrupted is returned alongside a partial report when the run was
// cancelled before every file was visited.
var ErrInterrupted = errors.New("conversion interrupted")

// ConvertService orchestrates a tree conversion:
// scan → prepare output root → convert files in parallel → merge report.
type ConvertService struct {
	scanner   domain.DumpScanner
	store     domain.DumpStore
	configs   domain.ConfigLoader
	revisions domain.RevisionReader
	logger    *slog.Logger
}

// NewConvertService wires the service. revisions may be nil, in which case
// the report carries no input revision. configs may be nil, in which case
// LoadConfig returns the built-in defaults.
func NewConvertService(
	scanner domain.DumpScanner,
	store domain.DumpStore,
	configs domain.ConfigLoader,
	revisions domain.RevisionReader,
	logger *slog.Logger,
) *ConvertService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ConvertService{
		scanner:   scanner,
		store:     store,
		configs:   configs,
		revisions: revisions,
		logger:    logger,
	}
}

// LoadConfig reads the config at path, or searches the working directory
// when path is empty.
func (s *ConvertService) LoadConfig(path string) (domain.Config, error) {
	if s.configs == nil {
		return domain.DefaultConfig(), nil
	}
	if path == "" {
		path = "."
	}
	return s.configs.Load(path)
}

// Convert mirrors every dump file under inputRoot into outputRoot. A bad
// input root or config fails before anything is created on disk. Per-file
// failures are recorded in the report and never stop the other files.
// workers <= 0 falls back to cfg.Workers, then to the number of CPUs.
func (s *ConvertService) Convert(ctx context.Context, inputRoot, outputRoot string, cfg domain.Config, workers int) (*domain.Report, error) {
	start := time.Now()

	absOut, err := filepath.Abs(outputRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving output root: %w", err)
	}

	// 1. Scan the input tree, skipping the output root if it is nested.
	scan, err := s.scanner.Scan(inputRoot, domain.ScanOptions{
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
		SkipDirs:   []string{absOut},
	})
	if err != nil {
		return nil, fmt.Errorf("scanning input: %w", err)
	}

	// 2. Build the converter before touching the output tree.
	conv, err := convert.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("building converter: %w", err)
	}

	// 3. Output root.
	if err := s.store.EnsureDir(absOut); err != nil {
		return nil, fmt.Errorf("creating output root: %w", err)
	}

	workers = resolveWorkers(workers, cfg.Workers)
	s.logger.Info("converting",
		"input", scan.RootPath,
		"output", absOut,
		"files", len(scan.Files),
		"workers", workers,
	)

	// 4. One job per file. Each job owns its result slot, so no locking is
	// needed and the merge below runs in walker order.
	results := make([]domain.FileResult, len(scan.Files))
	for i, rel := range scan.Files {
		results[i] = domain.FileResult{Path: rel, State: domain.StateUnvisited}
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, rel := range scan.Files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = s.convertFile(ctx, conv, scan.RootPath, absOut, rel)
			return nil
		})
	}
	_ = g.Wait()

	// 5. Merge.
	report := &domain.Report{
		InputRoot:  inputRoot,
		OutputRoot: outputRoot,
		Unmapped:   []string{},
	}
	for _, f := range scan.Failures {
		s.logger.Error("directory failed", "dir", f.Path, "error", f.Err)
		report.Add(domain.FileResult{Path: f.Path, State: domain.StateFailed, Err: fmt.Errorf("listing: %w", f.Err)})
	}
	for _, res := range results {
		report.Add(res)
	}
	report.InputRevision = s.inputRevision(scan.RootPath)
	report.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		report.Interrupted = true
		s.logger.Warn("interrupted", "written", report.FilesProcessed, "total", len(scan.Files))
		return report, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	s.logger.Info("done",
		"files", report.FilesProcessed,
		"failed", report.FilesFailed,
		"fields", report.Fields.Total(),
		"unmapped", len(report.Unmapped),
		"duration", report.Duration,
	)
	return report, nil
}

func (s *ConvertService) inputRevision(root string) string {
	if s.revisions == nil || !s.revisions.IsGitRepo(root) {
		return ""
	}
	rev, err := s.revisions.CommitHash(root)
	if err != nil {
		// A repository without commits has no HEAD yet.
		s.logger.Warn("no input revision", "error", err)
		return ""
	}
	return rev
}

func (s *ConvertService) convertFile(ctx context.Context, conv *convert.Converter, inputRoot, outputRoot, rel string) domain.FileResult {
	res := domain.FileResult{Path: rel, State: domain.StateReading}
	log := s.logger.With("file", rel)

	src, err := s.store.Read(inputRoot, rel)
	if err != nil {
		res.State = domain.StateFailed
		res.Err = fmt.Errorf("reading: %w", err)
		log.Error("file failed", "error", res.Err)
		return res
	}

	res.State = domain.StateConverting
	out, stats := conv.ConvertFile(src)
	res.Stats = stats

	if err := s.store.Write(outputRoot, out); err != nil {
		res.State = domain.StateFailed
		res.Err = fmt.Errorf("writing: %w", err)
		log.Error("file failed", "error", res.Err)
		return res
	}

	res.State = domain.StateWritten
	for _, n := range stats.Notes {
		log.Log(ctx, applog.LevelTrace, "kept verbatim", "line", n.Line, "reason", n.Reason.String())
	}
	log.Debug("converted",
		"lines", stats.Lines,
		"fields", stats.Fields.Total(),
		"ignored", stats.Ignored,
		"unmapped", strings.Join(stats.Unmapped, ","),
	)
	return res
}

// ConvertLine converts a single dump line against cfg.
func (s *ConvertService) ConvertLine(cfg domain.Config, line string) (domain.ConvertedLine, error) {
	conv, err := convert.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("building converter: %w", err)
	}
	return conv.ConvertLine(line), nil
}

// ResolveTypes maps each type expression through cfg's type table.
func (s *ConvertService) ResolveTypes(cfg domain.Config, types []string) []typemap.Resolution {
	mapper := typemap.FromConfig(cfg)
	out := make([]typemap.Resolution, len(types))
	for i, t := range types {
		out[i] = mapper.ResolveExpr(t)
	}
	return out
}

func resolveWorkers(flag, configured int) int {
	switch {
	case flag > 0:
		return flag
	case configured > 0:
		return configured
	default:
		return runtime.NumCPU()
	}
}
