package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpuslint/internal/adapters/driving/mcp"
)

// mcp serve flags.
var (
	mcpPort    int
	mcpPersist bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so that assistants and
pipelines can validate corpora and read reports.

The server exposes the validate_corpus tool and the corpuslint://reports
resources. By default it communicates over stdio using JSON-RPC and keeps
reports in memory for the lifetime of the process. Use --persist to keep
them in the report history instead.

Use --port to start an HTTP server instead. In HTTP mode Prometheus
metrics are served at /metrics.

Examples:
  # Stdio mode (default)
  corpuslint mcp serve

  # HTTP mode with persistent history
  corpuslint mcp serve --port 8080 --persist`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().BoolVar(&mcpPersist, "persist", false, "save reports to the report history")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	opts := appOptions{history: historyMemory, metrics: mcpPort > 0}
	if mcpPersist {
		opts.history = historySQLite
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ports := &mcp.Ports{
		Validation: a.validation,
		Parser:     a.loader,
		Reports:    a.reports,
	}
	if a.metrics != nil {
		ports.Metrics = a.metrics.Handler()
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
