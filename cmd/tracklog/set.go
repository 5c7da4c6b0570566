// ABOUTME: CLI commands for adding and deleting sets within a session.
// ABOUTME: Dispatches on the parent session kind: sprint sets vs lift sets.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/models"
)

var (
	setName string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage sets within a session",
	Long: `Sets group reps within a session.

For a sprint session a set is an optional named grouping ("accels", "flys").
For a lift session a set is one exercise at one load; its reps are logged
individually so each can carry a bar velocity.`,
}

var setAddCmd = &cobra.Command{
	Use:   "add <session-id> [exercise load]",
	Short: "Add a set to a session",
	Long: `Add a set to a sprint or lift session.

Sprint sessions take an optional --name. Lift sessions require the exercise
and load as positional arguments.

Examples:
  tracklog set add abc123 --name "flys"
  tracklog set add def456 "back squat" 140`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}

		switch sess.Kind {
		case models.KindSprint:
			s := models.NewSprintSet(sess.ID)
			if setName != "" {
				s.WithName(setName)
			}
			if err := repo.AddSprintSet(s); err != nil {
				return fmt.Errorf("failed to add set: %w", err)
			}
			color.Green("✓ Added set %d", s.Seq)
			fmt.Printf("  ID: %s\n", s.ID.String()[:8])

		case models.KindLift:
			if len(args) < 3 {
				return fmt.Errorf("a lift set requires exercise and load: tracklog set add <session-id> <exercise> <load>")
			}
			load, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid load: %s", args[2])
			}
			s := models.NewLiftSet(sess.ID, args[1], load)
			if err := repo.AddLiftSet(s); err != nil {
				return fmt.Errorf("failed to add set: %w", err)
			}
			color.Green("✓ Added set %d: %s @ %g", s.Seq, s.Exercise, s.Load)
			fmt.Printf("  ID: %s\n", s.ID.String()[:8])

		default:
			return fmt.Errorf("sessions of kind %s do not have sets", sess.Kind)
		}
		return nil
	},
}

var setDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a set and its reps",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := repo.GetSprintSet(args[0]); err == nil {
			if err := repo.DeleteSprintSet(args[0]); err != nil {
				return fmt.Errorf("failed to delete set: %w", err)
			}
			color.Yellow("✗ Deleted sprint set")
			return nil
		}

		set, err := repo.GetLiftSet(args[0])
		if err != nil {
			return fmt.Errorf("set not found: %s", args[0])
		}
		if err := repo.DeleteLiftSet(args[0]); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}
		color.Yellow("✗ Deleted %s set", set.Exercise)
		return nil
	},
}

func init() {
	setAddCmd.Flags().StringVar(&setName, "name", "", "sprint set name")

	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setDeleteCmd)
	rootCmd.AddCommand(setCmd)
}
