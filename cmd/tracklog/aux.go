// ABOUTME: CLI command for logging auxiliary work entries.
// ABOUTME: Aux entries attach to sessions of any kind, not to sets.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/models"
)

var (
	auxIntensity int
)

var auxCmd = &cobra.Command{
	Use:   "aux",
	Short: "Manage auxiliary work entries",
	Long: `Auxiliary entries record supplementary training volume.

CATEGORIES:

  plyometric, medball, circuit, hurdle_mobility, core, general_strength

METRICS:

  contacts, distance, reps, time, sets

An entry attaches to a session of any kind, so plyos done inside a sprint
session are logged against that session directly.`,
}

var auxAddCmd = &cobra.Command{
	Use:   "add <session-id> <category> <name> <metric> <value>",
	Short: "Log an auxiliary entry",
	Long: `Log a unit of auxiliary work under a session.

Examples:
  tracklog aux add abc123 plyometric "hurdle hops" contacts 40
  tracklog aux add abc123 circuit "GS circuit A" time 900 --intensity 60
  tracklog aux add abc123 medball "overhead throws" reps 20`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}

		if !models.IsValidAuxCategory(args[1]) {
			return fmt.Errorf("unknown category: %s\nValid categories: plyometric, medball, circuit, hurdle_mobility, core, general_strength", args[1])
		}
		if !models.IsValidAuxMetric(args[3]) {
			return fmt.Errorf("unknown metric: %s\nValid metrics: contacts, distance, reps, time, sets", args[3])
		}
		value, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[4])
		}

		e := models.NewAuxEntry(sess.ID, models.AuxCategory(args[1]), args[2], models.AuxMetric(args[3]), value)
		if auxIntensity > 0 {
			e.WithIntensity(auxIntensity)
		}

		if err := repo.AddAuxEntry(e); err != nil {
			return fmt.Errorf("failed to log entry: %w", err)
		}

		color.Green("✓ Logged %s: %s", e.Category, e.Name)
		fmt.Printf("  %s %g %s\n", color.New(color.Faint).Sprint(e.ID.String()[:8]), e.MetricValue, e.Metric)
		return nil
	},
}

var auxDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an auxiliary entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteAuxEntry(args[0]); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		color.Yellow("✗ Deleted entry")
		return nil
	},
}

func init() {
	auxAddCmd.Flags().IntVar(&auxIntensity, "intensity", 0, "intensity percentage (0-100)")

	auxCmd.AddCommand(auxAddCmd)
	auxCmd.AddCommand(auxDeleteCmd)
	rootCmd.AddCommand(auxCmd)
}
