package client

import (
	"context"
	"fmt"
	"io"
)

// Demo issues the fixed demonstration sequence over the established session:
// add, then the config resource, then the greeting resource, printing each
// result before the next call. The first failure aborts the remaining steps.
func (inv *Invoker) Demo(ctx context.Context, out io.Writer) error {
	const a, b = 15, 27

	fmt.Fprintf(out, "--- Calling tool: add(a=%d, b=%d) ---\n", a, b)
	result, err := inv.CallTool(ctx, "add", map[string]any{"a": a, "b": b})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Server response: %s\n", result.Text)
	if sum, ok := structuredSum(result.Structured); ok {
		fmt.Fprintf(out, "Result of %d + %d = %v\n", a, b, sum)
	}

	fmt.Fprintln(out, "--- Accessing resource: resource://config ---")
	config, err := inv.ReadResource(ctx, "resource://config")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Server response (config):")
	fmt.Fprintln(out, config)

	fmt.Fprintln(out, "--- Accessing resource: greetings://welcome ---")
	greeting, err := inv.ReadResource(ctx, "greetings://welcome")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Server response:")
	fmt.Fprintln(out, greeting)

	fmt.Fprintln(out, "Client demo finished.")
	return nil
}

func structuredSum(structured any) (float64, bool) {
	m, ok := structured.(map[string]any)
	if !ok {
		return 0, false
	}
	sum, ok := m["sum"].(float64)
	return sum, ok
}
