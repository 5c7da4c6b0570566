// ABOUTME: CLI command for insight detection output.
// ABOUTME: Prints PRs, stagnation, and milestones ordered by severity.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/analytics"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show current insights",
	Long: `Scan the full history for noteworthy patterns.

WHAT IT FINDS:

  PRs           newest record at a distance, exercise, or load is the best
  Stagnation    several recent sessions without beating an older best
  Milestones    round-number rep/race counts (10th, 25th, 50th...)

Insights are recomputed on every run; nothing is stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		insights, err := engine.Detect()
		if err != nil {
			return fmt.Errorf("failed to detect insights: %w", err)
		}

		if len(insights) == 0 {
			fmt.Println("No insights right now. Keep logging.")
			return nil
		}

		for _, in := range insights {
			marker := "•"
			switch in.Severity {
			case analytics.SeveritySignificant:
				marker = color.GreenString("★")
			case analytics.SeverityNotable:
				marker = color.YellowString("▲")
			}
			fmt.Printf("%s [%s] %s\n", marker, in.Domain, in.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
