package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dumpconv/dumpconv/internal/adapters/outbound/config"
	"github.com/dumpconv/dumpconv/internal/adapters/outbound/fsstore"
	"github.com/dumpconv/dumpconv/internal/adapters/outbound/gitinfo"
	"github.com/dumpconv/dumpconv/internal/adapters/outbound/scanner"
	"github.com/dumpconv/dumpconv/internal/adapters/outbound/tui"
	"github.com/dumpconv/dumpconv/internal/application"
	applog "github.com/dumpconv/dumpconv/internal/log"
)

func newConvertCmd() *cobra.Command {
	var (
		configPath string
		workers    int
		jsonOutput bool
		ciMode     bool
		logLevel   string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "convert <input-dir> <output-dir>",
		Short: "Convert a dump tree into field macros",
		Long: "Mirror every .hpp/.h file under input-dir into output-dir, rewriting field declarations as macros.\n\n" +
			"Exit status: 0 when every file was written, 1 when some files failed (or --ci and a type was unmapped), " +
			"2 when the run could not start.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closers, err := applog.SetupLogger(logLevel, logFile, cmd.ErrOrStderr())
			if err != nil {
				return fatal(fmt.Errorf("opening log file: %w", err))
			}
			defer func() {
				for _, c := range closers {
					_ = c.Close()
				}
			}()

			svc := newConvertService(logger)
			cfg, err := svc.LoadConfig(configPath)
			if err != nil {
				return fatal(fmt.Errorf("loading config: %w", err))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, runErr := svc.Convert(ctx, args[0], args[1], cfg, workers)
			if report == nil {
				return fatal(runErr)
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return fatal(err)
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			switch {
			case errors.Is(runErr, application.ErrInterrupted):
				return partial(runErr)
			case runErr != nil:
				return fatal(runErr)
			case report.FilesFailed > 0:
				return partial(fmt.Errorf("%d of %d files failed", report.FilesFailed, report.FilesFailed+report.FilesProcessed))
			case ciMode && len(report.Unmapped) > 0:
				return partial(fmt.Errorf("%d unmapped type(s) in CI mode", len(report.Unmapped)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Mapping table file (defaults to .dumpconv.yaml/.toml in the working directory)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (default: number of CPUs)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any type was left unmapped")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Also write logs to this file")

	return cmd
}

func newConvertService(logger *slog.Logger) *application.ConvertService {
	return application.NewConvertService(
		scanner.New(),
		fsstore.New(),
		config.New(),
		gitinfo.New(),
		logger,
	)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
