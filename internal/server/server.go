// Package server assembles the MCP server: it exposes the tool registry
// over the Model Context Protocol and owns the stdio transport. No
// business logic lives here, only wiring.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/tools"
)

// New builds the MCP server with every registered tool attached.
func New(registry *tools.Registry, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"edubridge",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, tool := range registry.All() {
		s.AddTool(
			mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), tool.Parameters()),
			handler(tool),
		)
	}
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout until the
// client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// handler adapts one Tool to the MCP handler signature. Tool bodies
// already render failures as structured JSON, so a Go error here means
// the tool itself is broken, not the operation it ran.
func handler(tool schema.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := tool.Execute(ctx, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

const instructions = `MCP server for Edupage, a school information system used across
Slovakia and beyond. Authentication normally happens automatically at
startup from EDUPAGE_SUBDOMAIN, EDUPAGE_USERNAME and EDUPAGE_PASSWORD
(or the config file); call the 'login' tool only when no school is
logged in yet. Never ask the user for credentials.

The server can be logged in to several schools at once. List tools
query every school by default and tag each item with its school; pass
the 'school' argument to narrow to one. Use get_my_children to find
student names, then pass student_name to other tools for targeted
lookups. Every tool returns JSON with "ok" set; on failure branch on
"error_kind" and show "hint" to the user.`
