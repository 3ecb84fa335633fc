package mcp

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerResources registers all dumpconv MCP resources on the given server.
func registerResources(s *server.MCPServer, configPath string) {
	// 1. dumpconv://config - effective config after merging user overrides
	s.AddResource(
		mcplib.NewResource(
			"dumpconv://config",
			"Effective Config",
			mcplib.WithResourceDescription("Type table, ignored types, enum rules and macro names in effect"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(configPath),
	)

	// 2. dumpconv://types/{name} - resolution of one raw type (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"dumpconv://types/{name}",
			"Type Resolution",
			mcplib.WithTemplateDescription("Canonical name the converter emits for a raw type"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleTypeResource(configPath),
	)
}

func handleConfigResource(configPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := marshalJSON(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "dumpconv://config",
				MIMEType: "application/json",
				Text:     data,
			},
		}, nil
	}
}

func handleTypeResource(configPath string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		name, ok := request.Params.Arguments["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("type name is required")
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		res := newConvertService().ResolveTypes(cfg, []string{name})
		data, err := marshalJSON(res[0])
		if err != nil {
			return nil, fmt.Errorf("marshaling resolution: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     data,
			},
		}, nil
	}
}
