package server

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// Version is reported by the config snapshot and the system_info tool.
	Version = "1.0.0"

	defaultHost      = "127.0.0.1"
	defaultPort      = 8000
	defaultGreetName = "Alice"
)

// Config holds the process-wide server configuration. It is loaded once at
// startup and never mutated after; handlers that need it receive it
// explicitly.
type Config struct {
	Host       string
	Port       int
	LogLevel   string
	DBPath     string
	SerpAPIKey string
	WeatherKey string
	GreetName  string
}

// DefaultConfig returns the built-in defaults with environment overrides
// applied. Flags are applied on top by the caller, so precedence is
// flag > env > default.
func DefaultConfig() Config {
	cfg := Config{
		Host:      defaultHost,
		Port:      defaultPort,
		LogLevel:  "info",
		GreetName: defaultGreetName,
	}

	if host := os.Getenv("MCP_SERVER_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("MCP_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if name := os.Getenv("MCP_GREETING_NAME"); name != "" {
		cfg.GreetName = name
	}

	// Key absence is not a startup error: search_google and get_weather
	// report it when invoked.
	cfg.SerpAPIKey = os.Getenv("SERPAPI_KEY")
	cfg.WeatherKey = os.Getenv("WEATHER_API_KEY")

	return cfg
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Endpoint returns the MCP endpoint URL clients connect to.
func (c Config) Endpoint() string {
	return fmt.Sprintf("http://%s/mcp", c.ListenAddr())
}

// Snapshot returns the non-secret configuration served by the config
// resource. Key material never appears here, only whether each upstream is
// configured.
func (c Config) Snapshot() map[string]any {
	return map[string]any{
		"version":         Version,
		"host":            c.Host,
		"port":            c.Port,
		"endpoint":        c.Endpoint(),
		"log_level":       c.LogLevel,
		"greet_name":      c.GreetName,
		"search_enabled":  c.SerpAPIKey != "",
		"weather_enabled": c.WeatherKey != "",
	}
}
