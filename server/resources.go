package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	configResourceURI   = "resource://config"
	greetingResourceURI = "greetings://welcome"
	statsResourceURI    = "stats://invocations"
	historyResourceURI  = "history://invocations"
)

// handleConfigResource serves the non-secret config snapshot. Idempotent:
// the config is immutable after startup.
func (s *Server) handleConfigResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.config.Snapshot())
}

// handleGreetingResource serves a deterministic greeting for the configured
// name.
func (s *Server) handleGreetingResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	greeting := fmt.Sprintf("Hello, %s! Welcome to the MCP server.", s.config.GreetName)
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "text/plain", Text: greeting},
		},
	}, nil
}

// handleStatsResource serves the live invocation counters.
func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.stats.Snapshot())
}

// handleHistoryResource serves the newest rows of the invocation log.
func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := RecentInvocations(s.db, 50)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []InvocationRecord{}
	}
	return jsonResource(req.Params.URI, records)
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}

// registerResources adds every resource to the registration table and the
// protocol runtime.
func (s *Server) registerResources() error {
	resources := []struct {
		resource *mcp.Resource
		handler  mcp.ResourceHandler
	}{
		{
			&mcp.Resource{
				URI:         configResourceURI,
				Name:        "config",
				Description: "Provides the application's configuration.",
				MIMEType:    "application/json",
			},
			s.handleConfigResource,
		},
		{
			&mcp.Resource{
				URI:         greetingResourceURI,
				Name:        "personalized_greeting",
				Description: "Generates a personalized greeting for the configured name.",
				MIMEType:    "text/plain",
			},
			s.handleGreetingResource,
		},
		{
			&mcp.Resource{
				URI:         statsResourceURI,
				Name:        "invocation_stats",
				Description: "Live invocation counters for this server.",
				MIMEType:    "application/json",
			},
			s.handleStatsResource,
		},
		{
			&mcp.Resource{
				URI:         historyResourceURI,
				Name:        "invocation_history",
				Description: "Most recent entries of the invocation log.",
				MIMEType:    "application/json",
			},
			s.handleHistoryResource,
		},
	}

	for _, r := range resources {
		if err := s.registry.Register(KindResource, r.resource.URI, r.resource.Description); err != nil {
			return err
		}
		s.mcpServer.AddResource(r.resource, r.handler)
	}

	return nil
}
