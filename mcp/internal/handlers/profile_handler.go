package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

// ProfileHandler exposes get_profile and get_usage tools.
type ProfileHandler struct {
	client *hypersave.Client
}

func NewProfileHandler(c *hypersave.Client) *ProfileHandler {
	return &ProfileHandler{client: c}
}

func (ph *ProfileHandler) RegisterTools(s *server.MCPServer) error {
	profileTool := mcp.NewTool("get_profile",
		mcp.WithDescription("Return what Hypersave has learned about the user: name, preferences and facts."),
		userIDParam,
	)
	s.AddTool(profileTool, ph.handleProfile)

	usageTool := mcp.NewTool("get_usage",
		mcp.WithDescription("Report API usage against the current plan limits."),
	)
	s.AddTool(usageTool, ph.handleUsage)
	return nil
}

func (ph *ProfileHandler) handleProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := ph.client.GetProfile(ctx, callOpts(req)...)
	if err != nil {
		return toolError("get_profile", err), nil
	}
	return jsonResult(resp.Profile)
}

func (ph *ProfileHandler) handleUsage(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := ph.client.GetUsage(ctx)
	if err != nil {
		return toolError("get_usage", err), nil
	}
	return jsonResult(resp.Usage)
}
