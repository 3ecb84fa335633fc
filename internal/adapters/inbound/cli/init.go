package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dumpconv/dumpconv/internal/adapters/outbound/config"
	"github.com/dumpconv/dumpconv/internal/domain"
)

const configHeader = `# dumpconv mapping table
#
# Entries here extend the built-in table; set replace_defaults: true to start
# from scratch. Raw names are matched after const, class/struct and */&
# qualifiers are stripped.

`

func newInitCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .dumpconv.yaml mapping table",
		Long:  "Write the built-in type table, ignored types, enum rules and macro names to a config file you can edit.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			format = strings.ToLower(format)
			if format != "yaml" && format != "toml" {
				return fmt.Errorf("unknown format %q (valid: yaml, toml)", format)
			}

			name := ".dumpconv." + format
			dest := filepath.Join(absPath, name)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", name)
				}
			}

			data, err := config.Marshal(domain.DefaultConfig(), format)
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}

			if err := os.WriteFile(dest, append([]byte(configHeader), data...), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Config format (yaml, toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
