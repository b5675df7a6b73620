package server

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestInvocationTarget(t *testing.T) {
	tests := []struct {
		name     string
		params   mcp.Params
		wantKind string
		wantName string
	}{
		{
			name:     "raw tool call params",
			params:   &mcp.CallToolParamsRaw{Name: "add"},
			wantKind: "tool",
			wantName: "add",
		},
		{
			name:     "typed tool call params",
			params:   &mcp.CallToolParams{Name: "search_google"},
			wantKind: "tool",
			wantName: "search_google",
		},
		{
			name:     "resource read params",
			params:   &mcp.ReadResourceParams{URI: "stats://invocations"},
			wantKind: "resource",
			wantName: "stats://invocations",
		},
		{
			name:     "unrecognized params",
			params:   &mcp.ListToolsParams{},
			wantKind: "unknown",
			wantName: "unknown",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			kind, name := invocationTarget(test.params)
			if kind != test.wantKind || name != test.wantName {
				t.Errorf("expected (%s, %s), got (%s, %s)", test.wantKind, test.wantName, kind, name)
			}
		})
	}
}

func TestResultErrorText(t *testing.T) {
	res := &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "search_google failed: missing key"}},
	}
	if got := resultErrorText(res); got != "search_google failed: missing key" {
		t.Errorf("expected tool error text, got %q", got)
	}

	empty := &mcp.CallToolResult{IsError: true}
	if got := resultErrorText(empty); got != "tool execution error" {
		t.Errorf("expected fallback text, got %q", got)
	}
}
