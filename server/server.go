package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/henry0hai/simple-mcp-server/budget"
	"github.com/henry0hai/simple-mcp-server/logging"
	"github.com/henry0hai/simple-mcp-server/search"
	"github.com/henry0hai/simple-mcp-server/weather"
)

const shutdownTimeout = 30 * time.Second

// Server exposes the registered tools and resources over streamable HTTP at
// /mcp, with a health probe at /healthz.
type Server struct {
	config     Config
	db         *sql.DB
	logger     *logging.Logger
	registry   *Registry
	stats      *StatsTracker
	budget     *budget.Store
	searcher   search.Provider
	weather    weather.Provider
	mcpServer  *mcp.Server
	httpServer *http.Server
	listener   net.Listener
	startTime  time.Time
	mu         sync.RWMutex
}

// NewServer creates a server wired to the real SerpAPI and OpenWeather
// clients.
func NewServer(config Config) (*Server, error) {
	return NewServerWithProviders(config,
		search.New(config.SerpAPIKey, nil),
		weather.New(config.WeatherKey, nil))
}

// NewServerWithProviders creates a server with injected upstream providers,
// so the dispatch path can be exercised without network access.
func NewServerWithProviders(config Config, searcher search.Provider, weatherProvider weather.Provider) (*Server, error) {
	db, err := openDatabase(config.DBPath)
	if err != nil {
		return nil, err
	}

	store, err := budget.NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &Server{
		config:    config,
		db:        db,
		budget:    store,
		logger:    logging.New(config.LogLevel),
		registry:  NewRegistry(),
		stats:     NewStatsTracker(),
		searcher:  searcher,
		weather:   weatherProvider,
		startTime: time.Now(),
	}

	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "simple-mcp-server",
		Version: Version,
	}, nil)
	s.mcpServer.AddReceivingMiddleware(s.observeMiddleware)

	if err := s.registerTools(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	if err := s.registerResources(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register resources: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.mcpServer
	}, nil))

	s.httpServer = &http.Server{
		Addr:    config.ListenAddr(),
		Handler: mux,
	}

	return s, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var err error
	s.listener, err = net.Listen("tcp", s.config.ListenAddr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	defer s.listener.Close()

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("server started on %s (%d tools, %d resources)",
			s.listener.Addr().String(), s.registry.Count(KindTool), s.registry.Count(KindResource))
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		if err != http.ErrServerClosed {
			return err
		}
	}

	return nil
}

// GetListenAddr returns the bound address once listening, or the configured
// address before that.
func (s *Server) GetListenAddr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.ListenAddr()
}

// Registry returns the server's registration table.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Stats returns the server's invocation counters.
func (s *Server) Stats() *StatsTracker {
	return s.stats
}

// DB returns the invocation log database.
func (s *Server) DB() *sql.DB {
	return s.db
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}

	return nil
}
