package cmd

import (
	"flag"
	"os"
)

type CLIArgs struct {
	Host      string
	Port      int
	LogLevel  string
	DBPath    string
	GreetName string
	Endpoint  string
}

func ParseArgs(args []string) CLIArgs {
	if args == nil {
		args = os.Args[1:]
	}
	return ParseArgsWithArgs(args)
}

func ParseArgsWithArgs(args []string) CLIArgs {
	cliArgs := CLIArgs{}

	fs := flag.NewFlagSet("simple-mcp-server", flag.ContinueOnError)
	fs.StringVar(&cliArgs.Host, "host", "", "Host to listen on (default: 127.0.0.1, env MCP_SERVER_HOST)")
	fs.IntVar(&cliArgs.Port, "port", 0, "Port to listen on (default: 8000, env MCP_SERVER_PORT)")
	fs.StringVar(&cliArgs.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&cliArgs.DBPath, "db", "", "SQLite invocation log path (default: in-memory)")
	fs.StringVar(&cliArgs.GreetName, "greet-name", "", "Name used by the greeting resource (env MCP_GREETING_NAME)")
	fs.StringVar(&cliArgs.Endpoint, "endpoint", "", "MCP endpoint URL for the demo client (default: derived from host/port)")

	fs.Parse(args)

	return cliArgs
}
