// ABOUTME: CLI commands for exporting and importing the full dataset.
// ABOUTME: Import is destructive and requires confirmation or --yes.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tracklog/tracklog/internal/storage"
)

var (
	exportOutput string
	importYes    bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the full dataset",
	Long: `Export every session, set, rep, race, template, and the preferences
record as one snapshot.

FORMATS:

  json   Full JSON export (suitable for backup and re-import)
  yaml   YAML export (human-readable; cannot be re-imported)

EXAMPLES:

  tracklog export json                   # Print to stdout
  tracklog export json -o backup.json    # Save to file
  tracklog export yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := repo.ExportAll()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = snap.EncodeJSON()
		case "yaml":
			data, err = snap.EncodeYAML()
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a dataset snapshot, replacing all current data",
	Long: `Import a JSON snapshot previously produced by 'tracklog export json'.

The import replaces the ENTIRE dataset: every session, template, and the
preferences record are deleted first, then the snapshot is inserted in one
transaction. A snapshot that fails validation is rejected before anything
is touched.

EXAMPLES:

  tracklog import backup.json          # Prompts for confirmation
  tracklog import backup.json --yes    # Skip the prompt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		snap, err := storage.DecodeSnapshot(data)
		if err != nil {
			return fmt.Errorf("failed to parse snapshot: %w", err)
		}

		problems, warnings := repo.ValidateSnapshot(snap)
		if len(problems) > 0 {
			color.Red("Snapshot failed validation:")
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
			return fmt.Errorf("import aborted: %d problem(s)", len(problems))
		}
		for _, w := range warnings {
			color.Yellow("Warning: %s", w)
		}

		if !importYes {
			count := len(snap.SprintSessions) + len(snap.LiftSessions) + len(snap.Meets) + len(snap.AuxSessions)
			color.Yellow("This replaces ALL current data with %d sessions from %s.", count, args[0])
			fmt.Print("Continue? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Import cancelled.")
				return nil
			}
		}

		if err := repo.ImportAll(snap); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
