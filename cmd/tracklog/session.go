// ABOUTME: CLI commands for managing training sessions.
// ABOUTME: Supports start, list, show, complete, reopen, and delete subcommands.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/models"
)

var (
	sessionDate     string
	sessionTitle    string
	sessionLocation string
	sessionNotes    string
	sessionVenue    string
	sessionTiming   string
	sessionKind     string
	sessionLimit    int
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Manage training sessions",
	Long: `Sessions are the top-level training units: one per kind per day.

KINDS:

  sprint      timed running reps grouped into sets
  lift        weightlifting sets, reps optionally velocity-measured
  meet        competition day with races (requires --venue and --timing)
  auxiliary   plyos, circuits, and other supplementary work

WORKFLOW:

  1. Start a session:     tracklog session start sprint
  2. Log work into it:    tracklog rep add <set-id> 60 7.12
  3. Close it:            tracklog session complete <id>

A completed session rejects new reps until reopened. Starting a sprint
session creates its first set automatically.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <kind>",
	Short: "Start a new session",
	Long: `Start a new active session of the given kind.

The date defaults to today. Meets additionally need the venue (indoor or
outdoor) and the meet-wide timing precision (hand or fat).

Examples:
  tracklog session start sprint
  tracklog session start lift --date 2026-03-01 --title "max effort lower"
  tracklog session start meet --venue outdoor --timing fat --location "City Champs"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if !models.IsValidSessionKind(kind) {
			return fmt.Errorf("unknown session kind: %s\nValid kinds: sprint, lift, meet, auxiliary", kind)
		}

		date := sessionDate
		if date == "" {
			date = time.Now().Format(models.DateLayout)
		}

		var s *models.Session
		if models.SessionKind(kind) == models.KindMeet {
			if sessionVenue == "" || sessionTiming == "" {
				return fmt.Errorf("a meet requires --venue (indoor|outdoor) and --timing (hand|fat)")
			}
			if !models.IsValidVenue(sessionVenue) {
				return fmt.Errorf("unknown venue: %s\nValid venues: indoor, outdoor", sessionVenue)
			}
			if !models.IsValidTiming(sessionTiming) {
				return fmt.Errorf("unknown timing: %s\nValid timing tags: hand, fat", sessionTiming)
			}
			s = models.NewMeet(date, models.Venue(sessionVenue), models.Timing(sessionTiming))
		} else {
			s = models.NewSession(models.SessionKind(kind), date)
		}

		if sessionTitle != "" {
			s.WithTitle(sessionTitle)
		}
		if sessionLocation != "" {
			s.WithLocation(sessionLocation)
		}
		if sessionNotes != "" {
			s.WithNotes(sessionNotes)
		}

		if err := repo.CreateSession(s); err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		color.Green("✓ Started %s session on %s", s.Kind, s.Date)
		fmt.Printf("  ID: %s\n", s.ID.String()[:8])
		if len(s.SprintSets) > 0 {
			fmt.Printf("  Set 1: %s\n", color.New(color.Faint).Sprint(s.SprintSets[0].ID.String()[:8]))
		}
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sessions",
	Long: `List recent sessions, newest first.

Each line shows: ID  DATE  KIND  STATUS  TITLE

Examples:
  tracklog session list                 # Last 20 sessions (all kinds)
  tracklog session list --kind sprint   # Only sprint sessions
  tracklog session list -n 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind *models.SessionKind
		if sessionKind != "" {
			if !models.IsValidSessionKind(sessionKind) {
				return fmt.Errorf("unknown session kind: %s", sessionKind)
			}
			k := models.SessionKind(sessionKind)
			kind = &k
		}

		sessions, err := repo.ListSessions(kind, sessionLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			title := ""
			if s.Title != nil {
				title = *s.Title
			}
			status := string(s.Status)
			if s.Status == models.StatusActive {
				status = color.YellowString(status)
			}
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(s.ID.String()[:8]),
				s.Date,
				padRight(string(s.Kind), 10),
				padRight(status, 10),
				title)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session with all its contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := repo.GetSessionWithChildren(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}

		printSession(s)
		return nil
	},
}

var sessionCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a session completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.CompleteSession(args[0]); err != nil {
			return fmt.Errorf("failed to complete session: %w", err)
		}
		color.Green("✓ Session completed")
		return nil
	},
}

var sessionReopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Reopen a completed session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.ReopenSession(args[0]); err != nil {
			return fmt.Errorf("failed to reopen session: %w", err)
		}
		color.Green("✓ Session reopened")
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session and everything in it",
	Long: `Delete a session by ID or ID prefix.

All sets, reps, races, and auxiliary entries under the session are deleted
with it. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}

		if err := repo.DeleteSession(args[0]); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		color.Yellow("✗ Deleted %s session from %s", s.Kind, s.Date)
		return nil
	},
}

func printSession(s *models.Session) {
	faint := color.New(color.Faint)

	title := ""
	if s.Title != nil {
		title = " " + *s.Title
	}
	fmt.Printf("%s %s %s [%s]%s\n", faint.Sprint(s.ID.String()[:8]), s.Date, s.Kind, s.Status, title)
	if s.Kind == models.KindMeet && s.Venue != nil && s.Timing != nil {
		fmt.Printf("  %s, %s timing\n", *s.Venue, *s.Timing)
	}
	if s.Location != nil {
		fmt.Printf("  Location: %s\n", *s.Location)
	}
	if s.Notes != nil {
		fmt.Printf("  Notes: %s\n", *s.Notes)
	}

	for _, set := range s.SprintSets {
		name := ""
		if set.Name != nil {
			name = " " + *set.Name
		}
		fmt.Printf("  Set %d %s%s\n", set.Seq, faint.Sprint(set.ID.String()[:8]), name)
		for _, r := range set.Reps {
			fmt.Printf("    %d. %s\n", r.Seq, formatSprintRep(r))
		}
	}

	for _, set := range s.LiftSets {
		fmt.Printf("  Set %d %s %s @ %g\n", set.Seq, faint.Sprint(set.ID.String()[:8]), set.Exercise, set.Load)
		for _, r := range set.Reps {
			if r.PeakVelocity != nil {
				fmt.Printf("    %d. %.2f m/s\n", r.Seq, *r.PeakVelocity)
			} else {
				fmt.Printf("    %d. (unmeasured)\n", r.Seq)
			}
		}
	}

	for _, r := range s.Races {
		wind := ""
		if r.Wind != nil {
			wind = fmt.Sprintf(" (%+.1f)", *r.Wind)
		}
		place := ""
		if r.Place != nil {
			place = fmt.Sprintf(", place %d", *r.Place)
		}
		fmt.Printf("  Race %d %s %gm %s %.2fs%s%s\n",
			r.Seq, faint.Sprint(r.ID.String()[:8]), r.Distance, r.Round, r.TimeSec, wind, place)
	}

	for _, e := range s.AuxEntries {
		fmt.Printf("  Aux %d %s %s: %s, %g %s\n",
			e.Seq, faint.Sprint(e.ID.String()[:8]), e.Category, e.Name, e.MetricValue, e.Metric)
	}
}

func formatSprintRep(r models.SprintRep) string {
	var b strings.Builder
	if r.IsFly && r.FlyIn != nil {
		fmt.Fprintf(&b, "fly %gm (+%dm in) %.2fs", r.Distance, *r.FlyIn, r.TimeSec)
	} else {
		fmt.Fprintf(&b, "%gm %.2fs", r.Distance, r.TimeSec)
	}
	fmt.Fprintf(&b, " %s", r.Timing)
	if r.WorkType == models.WorkTempo {
		b.WriteString(" tempo")
	}
	if r.Intensity != nil {
		fmt.Fprintf(&b, " @%d%%", *r.Intensity)
	}
	return b.String()
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	sessionStartCmd.Flags().StringVar(&sessionDate, "date", "", "session date (YYYY-MM-DD, default today)")
	sessionStartCmd.Flags().StringVar(&sessionTitle, "title", "", "session title")
	sessionStartCmd.Flags().StringVar(&sessionLocation, "location", "", "session location")
	sessionStartCmd.Flags().StringVar(&sessionNotes, "notes", "", "session notes")
	sessionStartCmd.Flags().StringVar(&sessionVenue, "venue", "", "meet venue (indoor|outdoor)")
	sessionStartCmd.Flags().StringVar(&sessionTiming, "timing", "", "meet timing precision (hand|fat)")

	sessionListCmd.Flags().StringVarP(&sessionKind, "kind", "k", "", "filter by kind")
	sessionListCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 20, "max number of results")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionCompleteCmd)
	sessionCmd.AddCommand(sessionReopenCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
