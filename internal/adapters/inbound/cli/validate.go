package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dumpconv/dumpconv/internal/adapters/outbound/config"
	"github.com/dumpconv/dumpconv/internal/domain/convert"
)

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a mapping table for errors",
		Long:  "Load the mapping table the convert command would use, validate it and report what it contains.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = "."
			}

			loader := config.New()
			file, err := loader.Locate(path)
			if err != nil {
				return err
			}

			cfg, err := loader.Load(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			conv, err := convert.New(cfg)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			source := file
			if source == "" {
				source = "built-in defaults"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "OK %s\n", source)
			fmt.Fprintf(out, "  types:         %d\n", conv.Mapper().Len())
			fmt.Fprintf(out, "  ignored types: %d\n", len(cfg.IgnoredTypes))
			fmt.Fprintf(out, "  enum rules:    %d wrapper(s), %d pattern(s)\n", len(cfg.Enums.Wrappers), len(cfg.Enums.Patterns))
			fmt.Fprintf(out, "  macros:        %s %s %s %s\n", cfg.Macros.Standard, cfg.Macros.Vector, cfg.Macros.BitField, cfg.Macros.Enum)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Mapping table file (defaults to .dumpconv.yaml/.toml in the working directory)")

	return cmd
}
