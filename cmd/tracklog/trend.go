// ABOUTME: CLI commands for trend views: sprint distances, lift exercises, meets.
// ABOUTME: Thin presentation over the analytics engine.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/analytics"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show performance trends",
	Long: `Trend views over the full training history.

  trend sprint <distance>   best time, recent reps, rolling 7/14/30 day means
  trend lift <exercise>     max load and best bar velocity per load
  trend meet <distance>     lifetime PR, season best, last race vs PR

Without arguments, 'trend sprint' and 'trend lift' print summary tables with
a coarse improving/declining/stable direction per distance or exercise.`,
}

var trendSprintCmd = &cobra.Command{
	Use:   "sprint [distance]",
	Short: "Sprint trend at a distance, or the summary table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			rows, err := engine.SprintSummary()
			if err != nil {
				return fmt.Errorf("failed to compute summary: %w", err)
			}
			printSummary(rows, "%.2fs")
			return nil
		}

		distance, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid distance: %s", args[0])
		}

		trend, err := engine.SprintDistanceTrend(distance)
		if err != nil {
			return fmt.Errorf("failed to compute trend: %w", err)
		}
		if len(trend.Points) == 0 {
			fmt.Printf("No reps recorded at %gm.\n", distance)
			return nil
		}

		if trend.Best != nil {
			color.Green("Best: %.2fs on %s", trend.Best.TimeSec, trend.Best.Date)
		}
		for _, w := range trend.Windows {
			if w.Count == 0 {
				fmt.Printf("  %2dd: no reps\n", w.Days)
				continue
			}
			fmt.Printf("  %2dd: %.2fs mean over %d reps (%+.1f%%)\n", w.Days, w.Mean, w.Count, w.ChangePercent)
		}
		return nil
	},
}

var trendLiftCmd = &cobra.Command{
	Use:   "lift [exercise]",
	Short: "Lift trend for an exercise, or the summary table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			rows, err := engine.LiftSummary()
			if err != nil {
				return fmt.Errorf("failed to compute summary: %w", err)
			}
			printSummary(rows, "%g")
			return nil
		}

		trend, err := engine.LiftExerciseTrend(args[0])
		if err != nil {
			return fmt.Errorf("failed to compute trend: %w", err)
		}
		if trend.MaxLoad == 0 {
			fmt.Printf("No sets recorded for %s.\n", args[0])
			return nil
		}

		color.Green("Max load: %g on %s", trend.MaxLoad, trend.MaxLoadDate)
		for _, lv := range trend.VelocityByLoad {
			fmt.Printf("  @%g: best %.2f m/s\n", lv.Load, lv.PeakVelocity)
		}
		return nil
	},
}

var trendMeetCmd = &cobra.Command{
	Use:   "meet <distance>",
	Short: "Race trend at a distance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		distance, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid distance: %s", args[0])
		}

		trend, err := engine.MeetDistanceTrend(distance)
		if err != nil {
			return fmt.Errorf("failed to compute trend: %w", err)
		}
		if trend.PR == nil {
			fmt.Printf("No races recorded at %gm.\n", distance)
			return nil
		}

		color.Green("PR: %.2fs on %s", trend.PR.TimeSec, trend.PR.Date)
		if trend.SeasonBest != nil {
			fmt.Printf("  Season best: %.2fs on %s\n", trend.SeasonBest.TimeSec, trend.SeasonBest.Date)
		} else {
			fmt.Println("  No races this season.")
		}
		fmt.Printf("  Last race vs PR: %+.2fs\n", trend.LastDeltaVsPR)
		return nil
	},
}

func printSummary(rows []analytics.SummaryRow, bestFormat string) {
	if len(rows) == 0 {
		fmt.Println("Nothing recorded yet.")
		return
	}
	for _, row := range rows {
		dir := string(row.Direction)
		switch row.Direction {
		case analytics.Improving:
			dir = color.GreenString(dir)
		case analytics.Declining:
			dir = color.RedString(dir)
		}
		fmt.Printf("%s %4d  best "+bestFormat+"  latest "+bestFormat+"  %s\n",
			padRight(row.Key, 16), row.Count, row.Best, row.Latest, dir)
	}
}

func init() {
	trendCmd.AddCommand(trendSprintCmd)
	trendCmd.AddCommand(trendLiftCmd)
	trendCmd.AddCommand(trendMeetCmd)
	rootCmd.AddCommand(trendCmd)
}
