package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

// EntityHandler exposes the extract_entities tool.
type EntityHandler struct {
	client *hypersave.Client
}

func NewEntityHandler(c *hypersave.Client) *EntityHandler {
	return &EntityHandler{client: c}
}

func (eh *EntityHandler) RegisterTools(s *server.MCPServer) error {
	extractTool := mcp.NewTool("extract_entities",
		mcp.WithDescription("Extract named entities and the relations between them from text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to analyse")),
		mcp.WithString("types", mcp.Description("Comma separated entity types to keep, e.g. person,place")),
		mcp.WithBoolean("save", mcp.Description("Also store the entities in the user's graph")),
		userIDParam,
	)
	s.AddTool(extractTool, eh.handleExtract)
	return nil
}

func (eh *EntityHandler) handleExtract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := eh.client.ExtractEntities(ctx, hypersave.ExtractEntitiesRequest{
		Text:  text,
		Types: optList(req, "types"),
		Save:  optBool(req, "save"),
	}, callOpts(req)...)
	if err != nil {
		return toolError("extract_entities", err), nil
	}
	return jsonResult(map[string]any{
		"entities":  resp.Entities,
		"relations": resp.Relations,
	})
}
