// ABOUTME: CLI commands for logging and deleting races under a meet.
// ABOUTME: Wind readings are accepted only for outdoor meets (enforced by storage).
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/models"
)

var (
	raceWind  float64
	racePlace int
)

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Manage races within a meet",
	Long: `Races are the results logged under a meet session.

Each race records distance, round (heat, semi, or final), official time,
and optionally wind and place. Timing precision comes from the meet itself
and applies to every race in it. Wind readings are rejected for indoor meets.`,
}

var raceAddCmd = &cobra.Command{
	Use:   "add <meet-id> <distance> <round> <time>",
	Short: "Log a race result",
	Long: `Log a race under a meet session.

Examples:
  tracklog race add abc123 100 heat 10.85 --wind 1.2
  tracklog race add abc123 100 final 10.79 --wind -0.4 --place 2
  tracklog race add abc123 60 final 6.95              # indoor, no wind`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		meet, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("meet not found: %s", args[0])
		}

		distance, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid distance: %s", args[1])
		}
		if !models.IsValidRound(args[2]) {
			return fmt.Errorf("unknown round: %s (use heat, semi, or final)", args[2])
		}
		timeSec, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid time: %s", args[3])
		}

		r := models.NewRace(meet.ID, distance, models.Round(args[2]), timeSec)
		if cmd.Flags().Changed("wind") {
			r.WithWind(raceWind)
		}
		if racePlace > 0 {
			r.WithPlace(racePlace)
		}

		if err := repo.AddRace(r); err != nil {
			return fmt.Errorf("failed to log race: %w", err)
		}

		color.Green("✓ Logged %gm %s in %.2fs", r.Distance, r.Round, r.TimeSec)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(r.ID.String()[:8]))
		return nil
	},
}

var raceDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a race",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteRace(args[0]); err != nil {
			return fmt.Errorf("failed to delete race: %w", err)
		}
		color.Yellow("✗ Deleted race")
		return nil
	},
}

func init() {
	raceAddCmd.Flags().Float64Var(&raceWind, "wind", 0, "wind reading in m/s (outdoor meets only)")
	raceAddCmd.Flags().IntVar(&racePlace, "place", 0, "finishing place")

	raceCmd.AddCommand(raceAddCmd)
	raceCmd.AddCommand(raceDeleteCmd)
	rootCmd.AddCommand(raceCmd)
}
