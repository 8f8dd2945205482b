// Package mcp is the optional MCP protocol surface: it re-uses the tool
// catalog and executor, translating between MCP tool calls and the
// invocation envelope. Nothing here touches the worker's wire format.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/toolgate/internal/catalog"
	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/config"
	"github.com/bobmcallan/toolgate/internal/executor"
	"github.com/bobmcallan/toolgate/internal/tool"
	"github.com/bobmcallan/toolgate/internal/wire"
)

// BuildTool converts a tool definition into an mcp.Tool with the
// equivalent input schema.
func BuildTool(def wire.ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, p := range def.Inputs {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(def.FullyQualified, opts...)
}

// buildParamOption maps an input parameter to the appropriate mcp-go
// tool option.
func buildParamOption(p wire.InputParameter) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.ValueSchema.ValType {
	case wire.TypeInteger, wire.TypeFloat:
		return mcp.WithNumber(p.Name, opts...)
	case wire.TypeBoolean:
		return mcp.WithBoolean(p.Name, opts...)
	case wire.TypeJSON:
		return mcp.WithObject(p.Name, opts...)
	default:
		if len(p.ValueSchema.Enum) > 0 {
			opts = append(opts, mcp.Enum(p.ValueSchema.Enum...))
		}
		return mcp.WithString(p.Name, opts...)
	}
}

// toolHandler routes an MCP tool call through the executor. Tool-level
// failures become MCP error results, never transport errors.
func toolHandler(mt *catalog.MaterializedTool, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inputs := r.GetArguments()

		tctx := &tool.Context{InvocationID: uuid.New().String()}
		resp := executor.Run(ctx, mt, inputs, tctx)

		if !resp.Success {
			logger.Warn().
				Str("tool", mt.Definition.FullyQualified).
				Str("error", resp.Output.Error.Message).
				Msg("mcp tool call failed")
			return errorResult(resp.Output.Error.Message), nil
		}

		data, err := json.Marshal(resp.Output.Value)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(string(data))}}, nil
	}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// NewServer builds an MCP server exposing every catalog entry as a tool.
func NewServer(cat *catalog.Catalog, logger *common.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"toolgate",
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)
	for _, mt := range cat.Tools() {
		s.AddTool(BuildTool(mt.Definition), toolHandler(mt, logger))
	}
	return s
}

// NewHTTPHandler wraps the MCP server in a stateless streamable HTTP
// transport, suitable for mounting on the main mux.
func NewHTTPHandler(cat *catalog.Catalog, logger *common.Logger) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		NewServer(cat, logger),
		server.WithStateLess(true),
	)
}
