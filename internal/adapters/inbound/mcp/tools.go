package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dumpconv/dumpconv/internal/adapters/outbound/config"
	"github.com/dumpconv/dumpconv/internal/adapters/outbound/fsstore"
	"github.com/dumpconv/dumpconv/internal/adapters/outbound/gitinfo"
	"github.com/dumpconv/dumpconv/internal/adapters/outbound/scanner"
	"github.com/dumpconv/dumpconv/internal/application"
	"github.com/dumpconv/dumpconv/internal/domain"
	applog "github.com/dumpconv/dumpconv/internal/log"
)

// registerTools registers all dumpconv MCP tools on the given server.
func registerTools(s *server.MCPServer, configPath string) {
	// 1. dumpconv_convert_line
	s.AddTool(
		mcplib.NewTool("dumpconv_convert_line",
			mcplib.WithDescription("Converts one header-dump line into its field macro, or reports why it passes through unchanged"),
			mcplib.WithString("line",
				mcplib.Required(),
				mcplib.Description("A single dump line, e.g. `class AActor* Owner; // 0x0130 (size: 0x8)`"),
			),
		),
		handleConvertLine(configPath),
	)

	// 2. dumpconv_resolve_type
	s.AddTool(
		mcplib.NewTool("dumpconv_resolve_type",
			mcplib.WithDescription("Maps a raw dump type to its canonical namespaced name using the type table"),
			mcplib.WithString("type",
				mcplib.Required(),
				mcplib.Description("Type expression as written in the dump, e.g. `TArray<class AActor*>`"),
			),
		),
		handleResolveType(configPath),
	)

	// 3. dumpconv_convert
	s.AddTool(
		mcplib.NewTool("dumpconv_convert",
			mcplib.WithDescription("Converts every dump file under an input directory into an output directory and returns the run report"),
			mcplib.WithString("input", mcplib.Required(), mcplib.Description("Input directory holding the dump tree")),
			mcplib.WithString("output", mcplib.Required(), mcplib.Description("Output directory; created if missing")),
			mcplib.WithNumber("workers", mcplib.Description("Parallel workers (default: number of CPUs)")),
		),
		handleConvert(configPath),
	)
}

// lineResult is the tool view of a converted line.
type lineResult struct {
	Input      string   `json:"input"`
	Output     string   `json:"output"`
	Converted  bool     `json:"converted"`
	Kind       string   `json:"kind,omitempty"`
	MappedType string   `json:"mapped_type,omitempty"`
	Unmapped   []string `json:"unmapped,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

func newConvertService() *application.ConvertService {
	return application.NewConvertService(
		scanner.New(),
		fsstore.New(),
		config.New(),
		gitinfo.New(),
		applog.Discard(),
	)
}

func loadConfig(configPath string) (domain.Config, error) {
	return newConvertService().LoadConfig(configPath)
}

func handleConvertLine(configPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		line, err := request.RequireString("line")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		converted, err := newConvertService().ConvertLine(cfg, line)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		res := lineResult{Input: line, Output: converted.Text()}
		switch v := converted.(type) {
		case domain.MatchedField:
			res.Converted = true
			res.Kind = v.Kind.String()
			res.MappedType = v.MappedType
			res.Unmapped = v.Unmapped
		case domain.PassThrough:
			res.Reason = v.Reason.String()
		}
		return jsonResult(res)
	}
}

func handleResolveType(configPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("type")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		res := newConvertService().ResolveTypes(cfg, []string{raw})
		return jsonResult(res[0])
	}
}

func handleConvert(configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		input, err := request.RequireString("input")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		output, err := request.RequireString("output")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		workers, _ := request.GetArguments()["workers"].(float64)

		cfg, err := loadConfig(configPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		report, err := newConvertService().Convert(ctx, input, output, cfg, int(workers))
		if report == nil {
			return errorResult(fmt.Sprintf("convert failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
// Template brackets are kept literal so types stay readable.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := marshalJSON(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(data)},
	}, nil
}

func marshalJSON(v interface{}) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
