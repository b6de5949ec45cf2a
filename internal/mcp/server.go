package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quillnotes/quill/internal/executor"
	"github.com/quillnotes/quill/internal/tool"
	"github.com/quillnotes/quill/pkg/types"
)

// NewServer creates an MCP server exposing every catalog tool as a
// plan-proposing operation.
func NewServer(catalog *tool.Catalog, exec *executor.Executor) *server.MCPServer {
	s := server.NewMCPServer(
		"quill",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	for _, schema := range catalog.All() {
		s.AddTool(buildTool(schema), proposeHandler(catalog, exec, schema))
	}

	return s
}

// ServeStdio runs the MCP server over stdio until the client hangs up.
func ServeStdio(catalog *tool.Catalog, exec *executor.Executor) error {
	return server.ServeStdio(NewServer(catalog, exec))
}

// buildTool converts a catalog schema into an MCP tool declaration.
func buildTool(schema types.ToolSchema) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(schema.Description)}

	for name, param := range schema.Parameters {
		var propOpts []mcp.PropertyOption
		if param.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		propOpts = append(propOpts, mcp.Description(param.Description))

		switch param.Type {
		case "number":
			opts = append(opts, mcp.WithNumber(name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(name, propOpts...))
		case "object":
			opts = append(opts, mcp.WithObject(name, propOpts...))
		case "array":
			opts = append(opts, mcp.WithArray(name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(name, propOpts...))
		}
	}

	return mcp.NewTool(schema.ID, opts...)
}

// proposeHandler validates the call and files it as a pending
// single-step plan.
func proposeHandler(catalog *tool.Catalog, exec *executor.Executor, schema types.ToolSchema) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := request.GetArguments()

		if v := catalog.ValidateInput(schema.ID, input); !v.Valid {
			return mcp.NewToolResultError(strings.Join(v.Errors, "; ")), nil
		}

		plan := exec.CreatePlan(
			fmt.Sprintf("%s via MCP", schema.ID),
			[]executor.StepRequest{{ToolID: schema.ID, Input: input}},
		)

		return mcp.NewToolResultText(fmt.Sprintf(
			"proposed plan %s (step %s); awaiting approval before execution",
			plan.ID, plan.Steps[0].ID,
		)), nil
	}
}
