package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

// MemoryHandler exposes save_memory, get_memory and delete_memory tools.
type MemoryHandler struct {
	client *hypersave.Client
}

// NewMemoryHandler returns a new handler.
func NewMemoryHandler(c *hypersave.Client) *MemoryHandler {
	return &MemoryHandler{client: c}
}

// RegisterTools registers memory tools.
func (mh *MemoryHandler) RegisterTools(s *server.MCPServer) error {
	saveTool := mcp.NewTool("save_memory",
		mcp.WithDescription("Store a piece of information in long-term memory. Returns the new memory id."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Text to remember")),
		mcp.WithString("title", mcp.Description("Short title")),
		mcp.WithString("type", mcp.Description("Memory type, e.g. note, fact, preference")),
		mcp.WithString("tags", mcp.Description("Comma separated tags")),
		mcp.WithBoolean("async", mcp.Description("Queue the save and return immediately")),
		userIDParam,
	)
	s.AddTool(saveTool, mh.handleSave)

	getTool := mcp.NewTool("get_memory",
		mcp.WithDescription("Fetch a stored memory by id"),
		mcp.WithString("memory_id", mcp.Required(), mcp.Description("The id of the memory")),
		userIDParam,
	)
	s.AddTool(getTool, mh.handleGet)

	deleteTool := mcp.NewTool("delete_memory",
		mcp.WithDescription("Permanently delete a memory by id"),
		mcp.WithString("memory_id", mcp.Required(), mcp.Description("The id of the memory")),
		userIDParam,
	)
	s.AddTool(deleteTool, mh.handleDelete)

	return nil
}

func (mh *MemoryHandler) handleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := hypersave.SaveRequest{
		Content: content,
		Title:   optString(req, "title"),
		Type:    optString(req, "type"),
		Tags:    optList(req, "tags"),
		Async:   optBool(req, "async"),
	}

	log.Debug().Int("content_len", len(content)).Str("title", in.Title).Bool("async", in.Async).Msg("save_memory")

	resp, err := mh.client.Save(ctx, in, callOpts(req)...)
	if err != nil {
		return toolError("save_memory", err), nil
	}
	return jsonResult(resp)
}

func (mh *MemoryHandler) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("memory_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := mh.client.GetMemory(ctx, id, callOpts(req)...)
	if err != nil {
		return toolError("get_memory", err), nil
	}
	return jsonResult(resp.Memory)
}

func (mh *MemoryHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("memory_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := mh.client.DeleteMemory(ctx, id, callOpts(req)...)
	if err != nil {
		return toolError("delete_memory", err), nil
	}
	return jsonResult(resp)
}
