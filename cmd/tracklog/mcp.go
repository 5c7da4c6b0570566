// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs stdio-based MCP server over the open repository.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Add it to an MCP client config:

  {
    "mcpServers": {
      "tracklog": {
        "command": "tracklog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_sprint_rep   Record a timed sprint rep
  log_lift_rep     Record a lift rep, optionally with bar velocity
  log_race         Record a race result under a meet
  list_sessions    List recent sessions
  get_session      Get a session with all its contents
  sprint_trend     Best time and rolling averages at a distance
  lift_trend       Max load and velocity-by-load for an exercise
  weekly_volume    Weekly sprint/tempo volume
  get_insights     Current PRs, stagnation, and milestones

AVAILABLE RESOURCES:

  tracklog://recent    Last 10 sessions
  tracklog://summary   Trend summaries, weekly volume, and insights`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, engine)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
