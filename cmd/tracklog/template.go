// ABOUTME: CLI commands for session templates: save, use, list, delete.
// ABOUTME: Templates snapshot structure only; times and velocities are dropped.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	templateDescription string
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage session templates",
	Long: `Templates are reusable structural snapshots of sprint or lift sessions.

Saving a template copies the session's sets (and for sprint sessions the rep
structure) without any outcome values. Using a template materializes it into
a fresh active session dated today, ready to log into.

WORKFLOW:

  1. Build a session you like:   tracklog session start sprint ...
  2. Snapshot it:                tracklog template save abc123 "speed day"
  3. Reuse it any time:          tracklog template use def456`,
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <session-id> <name>",
	Short: "Snapshot a session's structure as a template",
	Long: `Snapshot a sprint or lift session as a named template.

Examples:
  tracklog template save abc123 "speed day"
  tracklog template save abc123 "max effort lower" --description "squat + pulls"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var desc *string
		if templateDescription != "" {
			desc = &templateDescription
		}

		t, err := repo.SnapshotTemplate(args[0], args[1], desc)
		if err != nil {
			return fmt.Errorf("failed to save template: %w", err)
		}

		color.Green("✓ Saved template %q (%s, %d sets)", t.Name, t.Kind, len(t.Sets))
		fmt.Printf("  ID: %s\n", t.ID.String()[:8])
		return nil
	},
}

var templateUseCmd = &cobra.Command{
	Use:   "use <template-id>",
	Short: "Materialize a template into a new session",
	Long: `Create a new active session dated today from a template.

Sprint templates create their sets but no reps; reps are logged as they are
run. Lift templates create their sets with exercise and load prefilled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := repo.MaterializeTemplate(args[0])
		if err != nil {
			return fmt.Errorf("failed to use template: %w", err)
		}

		color.Green("✓ Started %s session on %s", s.Kind, s.Date)
		fmt.Printf("  ID: %s\n", s.ID.String()[:8])
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := repo.ListTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if len(templates) == 0 {
			fmt.Println("No templates saved.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			lastUsed := "never used"
			if t.LastUsedAt != nil {
				lastUsed = fmt.Sprintf("used %dx, last %s", t.UseCount, t.LastUsedAt.Format("2006-01-02"))
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(t.ID.String()[:8]),
				padRight(string(t.Kind), 8),
				padRight(t.Name, 24),
				faint.Sprint(lastUsed))
		}
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteTemplate(args[0]); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		color.Yellow("✗ Deleted template")
		return nil
	},
}

func init() {
	templateSaveCmd.Flags().StringVar(&templateDescription, "description", "", "template description")

	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateUseCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}
