package cli

import (
	mcpadapter "github.com/dumpconv/dumpconv/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the dumpconv MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start dumpconv MCP server (stdio)",
		Long:  "Start the dumpconv MCP server using stdio transport. This lets AI coding assistants convert dump lines, resolve types and convert whole dump trees.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = "."
			}
			s := mcpadapter.NewDumpconvMCPServer(configPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Mapping table file or directory (defaults to the working directory)")

	return cmd
}
