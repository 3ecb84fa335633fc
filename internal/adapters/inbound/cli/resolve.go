package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dumpconv/dumpconv/internal/adapters/outbound/tui"
)

type resolvedType struct {
	Input    string   `json:"input"`
	Type     string   `json:"type"`
	Source   string   `json:"source"`
	Unmapped []string `json:"unmapped,omitempty"`
}

func newResolveCmd() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <type>...",
		Short: "Show how raw dump types map through the type table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newConvertService(nil)
			cfg, err := svc.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			res := svc.ResolveTypes(cfg, args)

			if jsonOutput {
				out := make([]resolvedType, len(res))
				for i, r := range res {
					out[i] = resolvedType{Input: args[i], Type: r.Type, Source: r.Source.String(), Unmapped: r.Unmapped}
				}
				return renderJSON(cmd, out)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderResolutions(args, res))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Mapping table file (defaults to .dumpconv.yaml/.toml in the working directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
