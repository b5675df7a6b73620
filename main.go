package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/henry0hai/simple-mcp-server/client"
	"github.com/henry0hai/simple-mcp-server/cmd"
	"github.com/henry0hai/simple-mcp-server/logging"
	"github.com/henry0hai/simple-mcp-server/server"
)

func main() {
	command, argv := splitCommand(os.Args[1:])

	switch command {
	case "serve":
		handleServeCommand(argv)
	case "demo":
		handleDemoCommand(argv)
	case "version":
		fmt.Println("simple-mcp-server v" + server.Version)
	case "help":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printHelp()
		os.Exit(2)
	}
}

// splitCommand separates the subcommand from its arguments. A bare
// invocation, or one that starts straight with flags, runs the server.
func splitCommand(argv []string) (string, []string) {
	if len(argv) == 0 || strings.HasPrefix(argv[0], "-") {
		return "serve", argv
	}
	return argv[0], argv[1:]
}

func handleServeCommand(argv []string) {
	args := cmd.ParseArgs(argv)
	config := buildServerConfig(args)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("received shutdown signal")
		cancel()
	}()

	if err := runServe(ctx, config); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}

	log.Println("server shutdown complete")
}

func runServe(ctx context.Context, config server.Config) error {
	srv, err := server.NewServer(config)
	if err != nil {
		return fmt.Errorf("failed to create server: %v", err)
	}
	defer srv.Close()

	log.Printf("MCP server starting on %s", config.Endpoint())

	return srv.ListenAndServe(ctx)
}

func handleDemoCommand(argv []string) {
	args := cmd.ParseArgs(argv)

	endpoint := args.Endpoint
	if endpoint == "" {
		endpoint = buildServerConfig(args).Endpoint()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	fmt.Println("Starting MCP Client Demo...")

	inv := client.New(endpoint, logging.New(args.LogLevel))
	if err := inv.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "demo error: %v\n", err)
		os.Exit(1)
	}
	defer inv.Close()

	if err := inv.Demo(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "demo error: %v\n", err)
		os.Exit(1)
	}
}

func buildServerConfig(args cmd.CLIArgs) server.Config {
	// Precedence: flag > environment > default.
	config := server.DefaultConfig()
	if args.Host != "" {
		config.Host = args.Host
	}
	if args.Port != 0 {
		config.Port = args.Port
	}
	if args.LogLevel != "" {
		config.LogLevel = args.LogLevel
	}
	if args.DBPath != "" {
		config.DBPath = args.DBPath
	}
	if args.GreetName != "" {
		config.GreetName = args.GreetName
	}
	return config
}

func printHelp() {
	fmt.Print(`
simple-mcp-server v` + server.Version + `

USAGE:
  simple-mcp-server [COMMAND] [FLAGS]

COMMANDS:
  serve         Start the MCP server (default when no command is given)
  demo          Connect as a client and run the demo invocation sequence
  version       Print version
  help          Print this help message

FLAGS:
  -host STRING        Host to listen on (default: 127.0.0.1, env MCP_SERVER_HOST)
  -port INT           Port to listen on (default: 8000, env MCP_SERVER_PORT)
  -log-level STRING   Log level: debug, info, warn, error (default: info)
  -db STRING          SQLite invocation log path (default: in-memory)
  -greet-name STRING  Name used by the greeting resource (env MCP_GREETING_NAME)
  -endpoint STRING    MCP endpoint URL for demo (default: derived from host/port)

ENVIRONMENT:
  SERPAPI_KEY         Key for the search_google tool (checked at call time)
  WEATHER_API_KEY     Key for the get_weather tool (checked at call time)
  MCP_SERVER_HOST     Default host
  MCP_SERVER_PORT     Default port
  MCP_GREETING_NAME   Default greeting name

EXAMPLES:
  # Start the server on the default endpoint http://127.0.0.1:8000/mcp
  simple-mcp-server serve

  # Start on another port with a persistent invocation log
  simple-mcp-server serve -port 3003 -db ./invocations.db

  # Run the client demo against a running server
  simple-mcp-server demo -endpoint http://127.0.0.1:8000/mcp
`)
}
