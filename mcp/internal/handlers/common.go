package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

const maxToolLimit = 100

var userIDParam = mcp.WithString("user_id", mcp.Description("Act on behalf of this user instead of the server default"))

func optString(req mcp.CallToolRequest, key string) string {
	s, _ := req.GetArguments()[key].(string)
	return strings.TrimSpace(s)
}

// optInt reads a numeric argument; JSON numbers arrive as float64. Values
// outside [1, max] fall back to def.
func optInt(req mcp.CallToolRequest, key string, def, max int) int {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		if v >= 1 && v <= float64(max) {
			return int(v)
		}
	case int:
		if v >= 1 && v <= max {
			return v
		}
	}
	return def
}

func optBool(req mcp.CallToolRequest, key string) bool {
	b, _ := req.GetArguments()[key].(bool)
	return b
}

// optList accepts either a JSON array of strings or a comma separated string.
func optList(req mcp.CallToolRequest, key string) []string {
	var out []string
	switch v := req.GetArguments()[key].(type) {
	case []any:
		for _, x := range v {
			if s, ok := x.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func callOpts(req mcp.CallToolRequest) []hypersave.CallOption {
	if u := optString(req, "user_id"); u != "" {
		return []hypersave.CallOption{hypersave.AsUser(u)}
	}
	return nil
}

// toolError reports a failed SDK call to the model, tagged with its kind so
// the model can tell a bad argument from an outage.
func toolError(op string, err error) *mcp.CallToolResult {
	if kind := hypersave.KindOf(err); kind != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed [%s]: %v", op, kind, err))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
