// Package client implements the demo-side invoker: it connects to a server
// endpoint, issues tool calls and resource reads over one session, and
// classifies failures.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/henry0hai/simple-mcp-server/logging"
)

// Invoker holds one client session against a server endpoint. The session
// lifecycle is disconnected -> connected -> (call)* -> disconnected.
type Invoker struct {
	endpoint string
	logger   *logging.Logger
	client   *mcp.Client
	session  *mcp.ClientSession
}

// New creates an invoker for the given endpoint URL. Connect must be called
// before any invocation.
func New(endpoint string, logger *logging.Logger) *Invoker {
	if logger == nil {
		logger = logging.New("info")
	}
	return &Invoker{
		endpoint: endpoint,
		logger:   logger,
	}
}

// Connect establishes the session. An unreachable server is a connection
// error, raised before any call is attempted.
func (inv *Invoker) Connect(ctx context.Context) error {
	inv.client = mcp.NewClient(&mcp.Implementation{
		Name:    "simple-mcp-client",
		Version: "1.0.0",
	}, nil)

	session, err := inv.client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: inv.endpoint}, nil)
	if err != nil {
		return &Error{Kind: KindConnection, Err: fmt.Errorf("failed to connect to %s: %w", inv.endpoint, err)}
	}

	inv.session = session
	inv.logger.Debug("connected to %s (session: %s)", inv.endpoint, session.ID())
	return nil
}

// Close terminates the session.
func (inv *Invoker) Close() error {
	if inv.session == nil {
		return nil
	}
	err := inv.session.Close()
	inv.session = nil
	return err
}

// ToolOutput is one decoded tool result.
type ToolOutput struct {
	Text       string // concatenated text content
	Structured any    // structured output, if the tool declares one
}

// CallTool invokes one tool and waits for its single response. Server-side
// failures come back classified: unknown name, schema-invalid arguments, or
// a handler that executed and failed.
func (inv *Invoker) CallTool(ctx context.Context, name string, args map[string]any) (*ToolOutput, error) {
	if inv.session == nil {
		return nil, &Error{Kind: KindConnection, Target: name, Err: errors.New("not connected")}
	}

	res, err := inv.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, classifyProtocolError(name, err)
	}

	text := textContent(res.Content)
	if res.IsError {
		if text == "" {
			text = "tool execution error"
		}
		return nil, &Error{Kind: KindUpstream, Target: name, Err: errors.New(text)}
	}

	return &ToolOutput{Text: text, Structured: res.StructuredContent}, nil
}

// ReadResource reads one resource and returns its first text content.
func (inv *Invoker) ReadResource(ctx context.Context, uri string) (string, error) {
	if inv.session == nil {
		return "", &Error{Kind: KindConnection, Target: uri, Err: errors.New("not connected")}
	}

	res, err := inv.session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uri})
	if err != nil {
		return "", classifyProtocolError(uri, err)
	}

	var parts []string
	for _, c := range res.Contents {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// ListTools returns the names of the server's tools, in server order.
func (inv *Invoker) ListTools(ctx context.Context) ([]string, error) {
	if inv.session == nil {
		return nil, &Error{Kind: KindConnection, Err: errors.New("not connected")}
	}

	res, err := inv.session.ListTools(ctx, nil)
	if err != nil {
		return nil, classifyProtocolError("tools/list", err)
	}

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names, nil
}

// ListResources returns the URIs of the server's resources, in server order.
func (inv *Invoker) ListResources(ctx context.Context) ([]string, error) {
	if inv.session == nil {
		return nil, &Error{Kind: KindConnection, Err: errors.New("not connected")}
	}

	res, err := inv.session.ListResources(ctx, nil)
	if err != nil {
		return nil, classifyProtocolError("resources/list", err)
	}

	uris := make([]string, 0, len(res.Resources))
	for _, r := range res.Resources {
		uris = append(uris, r.URI)
	}
	return uris, nil
}

func textContent(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(*mcp.TextContent); ok && tc.Text != "" {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
