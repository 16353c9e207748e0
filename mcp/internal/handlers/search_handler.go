package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

// SearchHandler exposes the ask_memory, search_memories and search_chunks tools.
type SearchHandler struct {
	client *hypersave.Client
}

func NewSearchHandler(c *hypersave.Client) *SearchHandler {
	return &SearchHandler{client: c}
}

// RegisterTools registers the retrieval tools.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	askTool := mcp.NewTool("ask_memory",
		mcp.WithDescription("Answer a question from the user's memories. Returns the answer and the memories it cites."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The question")),
		mcp.WithNumber("max_sources", mcp.Description("Maximum cited sources (1-100)")),
		userIDParam,
	)
	s.AddTool(askTool, sh.handleAsk)

	searchTool := mcp.NewTool("search_memories",
		mcp.WithDescription("Semantic search over stored memories, ranked by relevance score."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query text")),
		mcp.WithNumber("limit", mcp.Description("Number of results to return (1-100, default 10)")),
		userIDParam,
	)
	s.AddTool(searchTool, sh.handleSearch)

	chunkTool := mcp.NewTool("search_chunks",
		mcp.WithDescription("Chunk-level search over ingested documents."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query text")),
		mcp.WithNumber("limit", mcp.Description("Number of chunks to return (1-100, default 10)")),
		mcp.WithString("document_id", mcp.Description("Restrict to one document")),
		userIDParam,
	)
	s.AddTool(chunkTool, sh.handleChunks)
	return nil
}

func (sh *SearchHandler) handleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := sh.client.Ask(ctx, hypersave.AskRequest{
		Query:          query,
		MaxSources:     optInt(req, "max_sources", 0, maxToolLimit),
		IncludeSources: true,
	}, callOpts(req)...)
	if err != nil {
		return toolError("ask_memory", err), nil
	}
	return jsonResult(map[string]any{
		"answer":     resp.Answer,
		"sources":    resp.Sources,
		"confidence": resp.Confidence,
	})
}

func (sh *SearchHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := sh.client.Search(ctx, hypersave.SearchRequest{
		Query: query,
		Limit: optInt(req, "limit", 10, maxToolLimit),
	}, callOpts(req)...)
	if err != nil {
		return toolError("search_memories", err), nil
	}
	return jsonResult(map[string]any{
		"results": resp.Results,
		"count":   resp.Total,
	})
}

func (sh *SearchHandler) handleChunks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := hypersave.ChunkSearchRequest{
		Query: query,
		Limit: optInt(req, "limit", 10, maxToolLimit),
	}
	if doc := optString(req, "document_id"); doc != "" {
		in.DocumentIDs = []string{doc}
	}
	resp, err := sh.client.SearchChunks(ctx, in, callOpts(req)...)
	if err != nil {
		return toolError("search_chunks", err), nil
	}
	return jsonResult(map[string]any{
		"chunks": resp.Chunks,
		"count":  resp.Total,
	})
}
