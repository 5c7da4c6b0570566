// ABOUTME: Root Cobra command for tracklog CLI.
// ABOUTME: Opens and closes the sqlite store via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/analytics"
	"github.com/tracklog/tracklog/internal/config"
	"github.com/tracklog/tracklog/internal/storage"
)

var (
	repo   storage.Repository
	engine *analytics.Engine
)

var rootCmd = &cobra.Command{
	Use:   "tracklog",
	Short: "Personal athletic training logger",
	Long: `Tracklog is a CLI tool for logging sprint training, weightlifting,
competition meets, and auxiliary work.

WHAT IT TRACKS:

  Sprint sessions   timed reps grouped into sets, with fly-in, intensity,
                    and sprint/tempo work type tags
  Lift sessions     sets of one exercise at one load, reps optionally
                    measured with bar peak velocity
  Meets             races with round, wind (outdoor), and place
  Auxiliary work    plyos, medball, circuits, hurdle mobility, core

QUICK START:

  $ tracklog session start sprint              # Open a sprint session for today
  $ tracklog rep add abc123 60 7.12            # Log a 60m rep in its first set
  $ tracklog session complete abc123           # Close the session
  $ tracklog session list                      # See recent sessions
  $ tracklog trend sprint 60                   # Best time and rolling averages

TEMPLATES:

  $ tracklog template save abc123 "speed day"  # Snapshot a session's structure
  $ tracklog template use def456               # Materialize it into a new session

ANALYTICS:

  $ tracklog volume --weeks 6     # Weekly sprint/tempo meters
  $ tracklog trend lift "back squat"
  $ tracklog insights             # PRs, stagnation, milestones

MCP INTEGRATION:

  Run 'tracklog mcp' to start the Model Context Protocol server for use with
  MCP-compatible AI assistants:

  {
    "mcpServers": {
      "tracklog": { "command": "tracklog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in SQLite at ~/.local/share/tracklog/tracklog.db.
  Override the directory with 'data_dir' in ~/.config/tracklog/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		engine = analytics.New(repo)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}
