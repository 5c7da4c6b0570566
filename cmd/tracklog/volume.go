// ABOUTME: CLI command for volume reports: per session, per day, per ISO week.
// ABOUTME: Volume is summed rep distance split into sprint and tempo meters.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/analytics"
)

var (
	volumeDate    string
	volumeSession string
	volumeWeeks   int
)

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Show training volume",
	Long: `Show sprint/tempo volume in distance-equivalent meters.

Without flags, prints the last 4 ISO weeks with week-over-week change.
Weeks with no training show as zero rows so the series has no holes.

Examples:
  tracklog volume                      # Last 4 weeks
  tracklog volume --weeks 12           # Last 12 weeks
  tracklog volume --date 2026-03-01    # One calendar day
  tracklog volume --session abc123     # One session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if volumeSession != "" {
			sess, err := repo.GetSession(volumeSession)
			if err != nil {
				return fmt.Errorf("session not found: %s", volumeSession)
			}
			v, err := engine.SessionVolume(sess.ID)
			if err != nil {
				return fmt.Errorf("failed to compute volume: %w", err)
			}
			fmt.Printf("%s %s\n", sess.Date, formatVolume(v))
			return nil
		}

		if volumeDate != "" {
			v, err := engine.DayVolume(volumeDate)
			if err != nil {
				return fmt.Errorf("failed to compute volume: %w", err)
			}
			fmt.Printf("%s %s\n", volumeDate, formatVolume(v))
			return nil
		}

		weeks, err := engine.WeeklyVolume(volumeWeeks)
		if err != nil {
			return fmt.Errorf("failed to compute volume: %w", err)
		}

		faint := color.New(color.Faint)
		for _, w := range weeks {
			change := ""
			if w.ChangePercent != 0 {
				change = fmt.Sprintf(" (%+.0f%%)", w.ChangePercent)
			}
			fmt.Printf("%s W%02d  %s%s\n",
				faint.Sprintf("%s", w.Start.Format("2006-01-02")),
				w.Week, formatVolume(w.Volume), change)
		}
		return nil
	},
}

func formatVolume(v analytics.Volume) string {
	return fmt.Sprintf("%gm sprint + %gm tempo = %gm", v.Sprint, v.Tempo, v.Total())
}

func init() {
	volumeCmd.Flags().StringVar(&volumeDate, "date", "", "one calendar day (YYYY-MM-DD)")
	volumeCmd.Flags().StringVar(&volumeSession, "session", "", "one session by ID or prefix")
	volumeCmd.Flags().IntVar(&volumeWeeks, "weeks", 4, "number of recent ISO weeks")

	rootCmd.AddCommand(volumeCmd)
}
