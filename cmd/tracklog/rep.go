// ABOUTME: CLI commands for logging, editing, and deleting reps.
// ABOUTME: Dispatches on the parent set type: sprint reps vs lift reps.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/models"
)

var (
	repTiming    string
	repRest      int
	repFlyIn     int
	repIntensity int
	repTempo     bool
	repVelocity  float64

	repUpdateDistance  float64
	repUpdateTime      float64
	repUpdateNoFly     bool
	repUpdateClearVelo bool
)

var repCmd = &cobra.Command{
	Use:   "rep",
	Short: "Manage reps within a set",
	Long: `Reps are the leaf measurements of training.

A sprint rep is a timed run: distance, time, timing precision, rest, and
optional fly-in, intensity, and tempo tags. A lift rep is one repetition of
the parent set's exercise, optionally with a bar peak velocity.

Reps can only be added to active sessions. Reopen a completed session first.`,
}

var repAddCmd = &cobra.Command{
	Use:   "add <set-id> [distance time]",
	Short: "Log a rep",
	Long: `Log a rep under a sprint or lift set.

Sprint sets require distance (meters) and time (seconds) as positional
arguments. Lift sets take no positionals; pass --velocity when the rep was
measured.

Examples:
  tracklog rep add abc123 60 7.12
  tracklog rep add abc123 30 3.95 --fly-in 20 --timing fat
  tracklog rep add abc123 200 26.5 --tempo --rest 90
  tracklog rep add def456 --velocity 0.82`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if set, err := repo.GetSprintSet(args[0]); err == nil {
			return addSprintRep(set, args[1:])
		}

		set, err := repo.GetLiftSet(args[0])
		if err != nil {
			return fmt.Errorf("set not found: %s", args[0])
		}

		r := models.NewLiftRep(set.ID)
		if repVelocity > 0 {
			r.WithVelocity(repVelocity)
		}
		if err := repo.AddLiftRep(r); err != nil {
			return fmt.Errorf("failed to log rep: %w", err)
		}

		color.Green("✓ Logged rep %d of %s", r.Seq, set.Exercise)
		if r.PeakVelocity != nil {
			fmt.Printf("  %s %.2f m/s\n", color.New(color.Faint).Sprint(r.ID.String()[:8]), *r.PeakVelocity)
		} else {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(r.ID.String()[:8]))
		}
		return nil
	},
}

func addSprintRep(set *models.SprintSet, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("a sprint rep requires distance and time: tracklog rep add <set-id> <distance> <time>")
	}
	distance, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid distance: %s", args[0])
	}
	timeSec, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid time: %s", args[1])
	}

	r := models.NewSprintRep(set.ID, distance, timeSec)
	if repTiming != "" {
		r.WithTiming(models.Timing(repTiming))
	}
	if repRest > 0 {
		r.WithRest(repRest)
	}
	if repFlyIn > 0 {
		r.WithFly(repFlyIn)
	}
	if repIntensity > 0 {
		r.WithIntensity(repIntensity)
	}
	if repTempo {
		r.WithWorkType(models.WorkTempo)
	}

	if err := repo.AddSprintRep(r); err != nil {
		return fmt.Errorf("failed to log rep: %w", err)
	}

	color.Green("✓ Logged %s", formatSprintRep(*r))
	fmt.Printf("  %s rep %d\n", color.New(color.Faint).Sprint(r.ID.String()[:8]), r.Seq)
	return nil
}

var repUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a rep",
	Long: `Edit a rep by ID or ID prefix. Only the flags you pass are changed.

Passing --no-fly clears the fly-in distance along with the fly tag.
Passing --clear-velocity resets a lift rep to unmeasured.

Examples:
  tracklog rep update abc123 --time 7.05
  tracklog rep update abc123 --no-fly
  tracklog rep update def456 --velocity 0.85
  tracklog rep update def456 --clear-velocity`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := repo.GetSprintRep(args[0]); err == nil {
			return updateSprintRep(cmd, args[0])
		}

		var patch models.LiftRepPatch
		if cmd.Flags().Changed("velocity") {
			v := repVelocity
			patch.PeakVelocity = &v
		}
		if repUpdateClearVelo {
			patch.ClearVelocity = true
		}

		r, err := repo.UpdateLiftRep(args[0], patch)
		if err != nil {
			return fmt.Errorf("failed to update rep: %w", err)
		}
		if r.PeakVelocity != nil {
			color.Green("✓ Updated rep %d: %.2f m/s", r.Seq, *r.PeakVelocity)
		} else {
			color.Green("✓ Updated rep %d: unmeasured", r.Seq)
		}
		return nil
	},
}

func updateSprintRep(cmd *cobra.Command, idOrPrefix string) error {
	var patch models.SprintRepPatch
	if cmd.Flags().Changed("distance") {
		d := repUpdateDistance
		patch.Distance = &d
	}
	if cmd.Flags().Changed("time") {
		t := repUpdateTime
		patch.TimeSec = &t
	}
	if cmd.Flags().Changed("timing") {
		t := models.Timing(repTiming)
		patch.Timing = &t
	}
	if cmd.Flags().Changed("rest") {
		r := repRest
		patch.RestSec = &r
	}
	if cmd.Flags().Changed("fly-in") {
		fly := true
		patch.IsFly = &fly
		f := repFlyIn
		patch.FlyIn = &f
	}
	if repUpdateNoFly {
		fly := false
		patch.IsFly = &fly
	}
	if cmd.Flags().Changed("intensity") {
		i := repIntensity
		patch.Intensity = &i
	}
	if cmd.Flags().Changed("tempo") {
		wt := models.WorkSprint
		if repTempo {
			wt = models.WorkTempo
		}
		patch.WorkType = &wt
	}

	r, err := repo.UpdateSprintRep(idOrPrefix, patch)
	if err != nil {
		return fmt.Errorf("failed to update rep: %w", err)
	}
	color.Green("✓ Updated rep %d: %s", r.Seq, formatSprintRep(*r))
	return nil
}

var repDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a rep",
	Long: `Delete a rep by ID or ID prefix.

The rep's sequence number is not reused; later reps keep their numbers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := repo.GetSprintRep(args[0]); err == nil {
			if err := repo.DeleteSprintRep(args[0]); err != nil {
				return fmt.Errorf("failed to delete rep: %w", err)
			}
			color.Yellow("✗ Deleted sprint rep")
			return nil
		}
		if err := repo.DeleteLiftRep(args[0]); err != nil {
			return fmt.Errorf("failed to delete rep: %w", err)
		}
		color.Yellow("✗ Deleted lift rep")
		return nil
	},
}

func init() {
	repAddCmd.Flags().StringVar(&repTiming, "timing", "", "timing precision (hand|fat)")
	repAddCmd.Flags().IntVar(&repRest, "rest", 0, "rest after the rep in seconds (default 180)")
	repAddCmd.Flags().IntVar(&repFlyIn, "fly-in", 0, "fly-in distance for fly reps (10|20|30)")
	repAddCmd.Flags().IntVar(&repIntensity, "intensity", 0, "intensity percentage (0-100)")
	repAddCmd.Flags().BoolVar(&repTempo, "tempo", false, "tag as tempo work")
	repAddCmd.Flags().Float64Var(&repVelocity, "velocity", 0, "bar peak velocity in m/s (lift reps)")

	repUpdateCmd.Flags().Float64Var(&repUpdateDistance, "distance", 0, "distance in meters")
	repUpdateCmd.Flags().Float64Var(&repUpdateTime, "time", 0, "time in seconds")
	repUpdateCmd.Flags().StringVar(&repTiming, "timing", "", "timing precision (hand|fat)")
	repUpdateCmd.Flags().IntVar(&repRest, "rest", 0, "rest after the rep in seconds")
	repUpdateCmd.Flags().IntVar(&repFlyIn, "fly-in", 0, "fly-in distance (10|20|30)")
	repUpdateCmd.Flags().BoolVar(&repUpdateNoFly, "no-fly", false, "clear the fly tag and fly-in distance")
	repUpdateCmd.Flags().IntVar(&repIntensity, "intensity", 0, "intensity percentage (0-100)")
	repUpdateCmd.Flags().BoolVar(&repTempo, "tempo", false, "tag as tempo work")
	repUpdateCmd.Flags().Float64Var(&repVelocity, "velocity", 0, "bar peak velocity in m/s (lift reps)")
	repUpdateCmd.Flags().BoolVar(&repUpdateClearVelo, "clear-velocity", false, "reset a lift rep to unmeasured")

	repCmd.AddCommand(repAddCmd)
	repCmd.AddCommand(repUpdateCmd)
	repCmd.AddCommand(repDeleteCmd)
	rootCmd.AddCommand(repCmd)
}
