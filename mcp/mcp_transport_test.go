//go:build integration
// +build integration

package mcp

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
	"github.com/Hypersave-AI/hypersave-sdk/internal/hsfake"
)

var expectedTools = []string{
	"save_memory", "get_memory", "delete_memory",
	"ask_memory", "search_memories", "search_chunks",
	"get_profile", "get_usage", "extract_entities",
}

func initialize(ctx context.Context, t *testing.T, c *client.Client) {
	t.Helper()
	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: "2024-11-05",
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "test-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to initialize MCP client: %v", err)
	}
}

// TestMCPServerTransports verifies that the MCP server correctly serves tools
// over both in-process (stdio-like) and HTTP transports
func TestMCPServerTransports(t *testing.T) {
	fake := hsfake.New("k")
	defer fake.Close()

	sdk, err := hypersave.New("k", hypersave.WithBaseURL(fake.URL()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	mcpServer, err := NewServer(sdk, "test-mcp-server", "1.0.0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	t.Run("InProcessTransport", func(t *testing.T) {
		inProcessTransport := transport.NewInProcessTransport(mcpServer)
		if err := inProcessTransport.Start(context.Background()); err != nil {
			t.Fatalf("failed to start in-process transport: %v", err)
		}
		defer inProcessTransport.Close()

		mcpClient := client.NewClient(inProcessTransport)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		initialize(ctx, t, mcpClient)

		tools, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
		if err != nil {
			t.Fatalf("tools/list failed over in-process transport: %v", err)
		}
		toolNames := make(map[string]bool)
		for _, tool := range tools.Tools {
			toolNames[tool.Name] = true
		}
		for _, expected := range expectedTools {
			if !toolNames[expected] {
				t.Errorf("expected tool %q not found in tools list", expected)
			}
		}

		var req mcp.CallToolRequest
		req.Params.Name = "save_memory"
		req.Params.Arguments = map[string]any{"content": "remember the milk"}
		res, err := mcpClient.CallTool(ctx, req)
		if err != nil {
			t.Fatalf("tools/call failed: %v", err)
		}
		if res.IsError {
			t.Fatalf("save_memory returned a tool error: %+v", res.Content)
		}
		if last, ok := fake.LastRequest(); !ok || last.Path != "/v1/save" {
			t.Fatalf("expected a save request to reach the API, got %+v", last)
		}
	})

	t.Run("HTTPTransport", func(t *testing.T) {
		streamSrv := server.NewStreamableHTTPServer(
			mcpServer,
			server.WithEndpointPath("/mcp"),
			server.WithHeartbeatInterval(30*time.Second),
		)

		httpSrv := httptest.NewServer(streamSrv)
		defer httpSrv.Close()

		httpTransport, err := transport.NewStreamableHTTP(httpSrv.URL + "/mcp")
		if err != nil {
			t.Fatalf("failed to create HTTP transport: %v", err)
		}
		if err := httpTransport.Start(context.Background()); err != nil {
			t.Fatalf("failed to start HTTP transport: %v", err)
		}
		defer httpTransport.Close()

		mcpClient := client.NewClient(httpTransport)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		initialize(ctx, t, mcpClient)

		tools, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
		if err != nil {
			t.Fatalf("tools/list failed over HTTP transport: %v", err)
		}
		if len(tools.Tools) != len(expectedTools) {
			t.Fatalf("expected %d tools, got %d", len(expectedTools), len(tools.Tools))
		}
	})
}
