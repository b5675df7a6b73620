package server

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/henry0hai/simple-mcp-server/search"
	"github.com/henry0hai/simple-mcp-server/weather"
)

type addArgs struct {
	A float64 `json:"a" jsonschema:"first number to add"`
	B float64 `json:"b" jsonschema:"second number to add"`
}

type addResult struct {
	Sum float64 `json:"sum" jsonschema:"the sum of a and b"`
}

// handleAdd adds two numbers. Pure function, no side effects.
func (s *Server) handleAdd(ctx context.Context, req *mcp.CallToolRequest, args addArgs) (*mcp.CallToolResult, addResult, error) {
	return nil, addResult{Sum: args.A + args.B}, nil
}

type searchArgs struct {
	Query string `json:"query" jsonschema:"the search query"`
}

type searchResults struct {
	Results []search.Result `json:"results"`
}

// handleSearch runs one Google search through the configured provider.
// Provider failures, including a missing key, surface as tool execution
// errors on this call only.
func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, searchResults, error) {
	s.logger.Info("calling search provider for query: %s", args.Query)

	results, err := s.searcher.Search(ctx, args.Query)
	if err != nil {
		return nil, searchResults{}, fmt.Errorf("search_google failed: %w", err)
	}
	if results == nil {
		results = []search.Result{}
	}
	return nil, searchResults{Results: results}, nil
}

type weatherArgs struct {
	City string `json:"city" jsonschema:"city to get current weather for"`
}

// handleWeather fetches current conditions for a city.
func (s *Server) handleWeather(ctx context.Context, req *mcp.CallToolRequest, args weatherArgs) (*mcp.CallToolResult, any, error) {
	report, err := s.weather.Current(ctx, args.City)
	if err != nil {
		return nil, nil, fmt.Errorf("get_weather failed: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: report.Describe()}},
	}, nil, nil
}

type systemInfo struct {
	AppVersion string  `json:"app_version"`
	OS         string  `json:"os"`
	Arch       string  `json:"arch"`
	GoVersion  string  `json:"go_version"`
	CPUCount   int     `json:"cpu_count"`
	Goroutines int     `json:"goroutines"`
	HeapMB     float64 `json:"heap_mb"`
	Uptime     string  `json:"uptime"`
}

// handleSystemInfo reports a snapshot of the server process runtime state.
func (s *Server) handleSystemInfo(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, systemInfo, error) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return nil, systemInfo{
		AppVersion: Version,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		GoVersion:  runtime.Version(),
		CPUCount:   runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
		HeapMB:     float64(mem.HeapAlloc) / (1 << 20),
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
	}, nil
}

// registerTools adds every tool to the registration table and the protocol
// runtime. Registration happens once at startup; a name collision aborts
// server construction.
func (s *Server) registerTools() error {
	if err := registerTool(s, &mcp.Tool{
		Name:        "add",
		Description: "Adds two numbers together.",
	}, s.handleAdd); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "search_google",
		Description: "Search Google and return the top results using SerpAPI.",
	}, s.handleSearch); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "system_info",
		Description: "Retrieves server system information.",
	}, s.handleSystemInfo); err != nil {
		return err
	}

	if err := registerTool(s, &mcp.Tool{
		Name:        "get_weather",
		Description: "Get current weather information for a given city.",
	}, s.handleWeather); err != nil {
		return err
	}

	return s.registerBudgetTools()
}

// registerTool records the tool in the registration table before handing it
// to the SDK, so duplicate names fail loudly instead of silently replacing.
func registerTool[In, Out any](s *Server, t *mcp.Tool, h mcp.ToolHandlerFor[In, Out]) error {
	if err := s.registry.Register(KindTool, t.Name, t.Description); err != nil {
		return err
	}
	mcp.AddTool(s.mcpServer, t, h)
	return nil
}

var _ search.Provider = (*search.Client)(nil)
var _ weather.Provider = (*weather.Client)(nil)
