// ABOUTME: CLI commands for showing and updating preferences.
// ABOUTME: Updates are merge patches; unmentioned fields keep their values.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/models"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show and change preferences",
	Long: `Preferences hold defaults and favorites used across the tool.

KEYS:

  rest        default rest seconds for sprint reps        prefs set rest 120
  timing      default timing precision (hand|fat)         prefs set timing fat
  season      season start as MM-DD                       prefs set season 08-01
  distances   favorite distances, comma-separated         prefs set distances 30,60,100
  exercises   favorite exercises, comma-separated         prefs set exercises "back squat,power clean"
  toggle      a named feature toggle                      prefs set toggle show_wind on

The season start drives season-best calculations in 'trend meet'.`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetPreferences()
		if err != nil {
			return fmt.Errorf("failed to load preferences: %w", err)
		}

		fmt.Printf("Default rest:       %ds\n", p.DefaultRestSec)
		fmt.Printf("Default timing:     %s\n", p.DefaultTiming)
		fmt.Printf("Season start:       %s %d\n", p.SeasonStartMonth, p.SeasonStartDay)
		fmt.Printf("Favorite distances: %v\n", p.FavoriteDistances)
		fmt.Printf("Favorite exercises: %s\n", strings.Join(p.FavoriteExercises, ", "))
		if len(p.Toggles) > 0 {
			fmt.Println("Toggles:")
			for k, v := range p.Toggles {
				fmt.Printf("  %s: %v\n", k, v)
			}
		}
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value> [value2]",
	Short: "Change a preference",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch models.PreferencesPatch

		switch args[0] {
		case "rest":
			sec, err := strconv.Atoi(args[1])
			if err != nil || sec <= 0 {
				return fmt.Errorf("invalid rest seconds: %s", args[1])
			}
			patch.DefaultRestSec = &sec

		case "timing":
			if args[1] != string(models.TimingHand) && args[1] != string(models.TimingFAT) {
				return fmt.Errorf("invalid timing: %s (use hand or fat)", args[1])
			}
			t := models.Timing(args[1])
			patch.DefaultTiming = &t

		case "season":
			t, err := time.Parse("01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid season start: %s (use MM-DD)", args[1])
			}
			month := t.Month()
			day := t.Day()
			patch.SeasonStartMonth = &month
			patch.SeasonStartDay = &day

		case "distances":
			var distances []float64
			for _, part := range strings.Split(args[1], ",") {
				d, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
				if err != nil {
					return fmt.Errorf("invalid distance: %s", part)
				}
				distances = append(distances, d)
			}
			patch.FavoriteDistances = &distances

		case "exercises":
			var exercises []string
			for _, part := range strings.Split(args[1], ",") {
				exercises = append(exercises, strings.TrimSpace(part))
			}
			patch.FavoriteExercises = &exercises

		case "toggle":
			if len(args) < 3 {
				return fmt.Errorf("toggle requires a name and on/off: prefs set toggle <name> on")
			}
			switch args[2] {
			case "on", "true":
				patch.Toggles = map[string]bool{args[1]: true}
			case "off", "false":
				patch.Toggles = map[string]bool{args[1]: false}
			default:
				return fmt.Errorf("invalid toggle value: %s (use on or off)", args[2])
			}

		default:
			return fmt.Errorf("unknown preference key: %s\nValid keys: rest, timing, season, distances, exercises, toggle", args[0])
		}

		if _, err := repo.UpdatePreferences(patch); err != nil {
			return fmt.Errorf("failed to update preferences: %w", err)
		}

		color.Green("✓ Updated %s", args[0])
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
