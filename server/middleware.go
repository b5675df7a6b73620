package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// observeMiddleware records every dispatched tool call and resource read in
// the stats tracker and the invocation log. It runs after the SDK has
// resolved the method, so listing and session management stay unrecorded.
func (s *Server) observeMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/call" && method != "resources/read" {
			return next(ctx, method, req)
		}

		kind, name := invocationTarget(req.GetParams())
		start := time.Now()

		res, err := next(ctx, method, req)

		ok := err == nil
		errText := ""
		if err != nil {
			errText = err.Error()
		}
		// A tool that ran and failed is a failed invocation too.
		if ctr, isCall := res.(*mcp.CallToolResult); isCall && ctr != nil && ctr.IsError {
			ok = false
			errText = resultErrorText(ctr)
		}

		s.stats.Record(name, ok)
		if dbErr := RecordInvocation(s.db, kind, name, ok, errText, time.Since(start)); dbErr != nil {
			s.logger.Warn("failed to log invocation %s: %v", name, dbErr)
		}
		s.logger.Debug("%s %s ok=%t (%s)", method, name, ok, time.Since(start))

		return res, err
	}
}

// invocationTarget names the tool or resource a dispatched request is for.
// Incoming tools/call params arrive with raw arguments, so both shapes of
// the call params are handled.
func invocationTarget(p mcp.Params) (kind string, name string) {
	switch params := p.(type) {
	case *mcp.CallToolParamsRaw:
		return string(KindTool), params.Name
	case *mcp.CallToolParams:
		return string(KindTool), params.Name
	case *mcp.ReadResourceParams:
		return string(KindResource), params.URI
	default:
		return "unknown", "unknown"
	}
}

func resultErrorText(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return "tool execution error"
}
