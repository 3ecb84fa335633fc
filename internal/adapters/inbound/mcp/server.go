package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDumpconvMCPServer creates an MCP server with every dumpconv tool and
// resource registered. configPath is a mapping-table file or a directory to
// search for one; it is re-read on each call so edits apply immediately.
func NewDumpconvMCPServer(configPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"dumpconv",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, configPath)
	registerResources(s, configPath)

	return s
}
