// ABOUTME: Integration tests for tracklog CLI.
// ABOUTME: Builds the binary and drives a full logging workflow end to end.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var idPattern = regexp.MustCompile(`ID: ([0-9a-f]{8})`)
var setPattern = regexp.MustCompile(`Set 1: ([0-9a-f]{8})`)
var repPattern = regexp.MustCompile(`([0-9a-f]{8}) rep \d`)

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(projectRoot, "tracklog-test-bin")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/tracklog")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(binary)

	// Isolate config and data under temp dirs
	tmpDir := t.TempDir()
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Start a sprint session; the first set comes with it
	output, err := run("session", "start", "sprint")
	if err != nil {
		t.Fatalf("Failed to start session: %v\n%s", err, output)
	}
	idMatch := idPattern.FindStringSubmatch(output)
	setMatch := setPattern.FindStringSubmatch(output)
	if idMatch == nil || setMatch == nil {
		t.Fatalf("Start output missing IDs:\n%s", output)
	}
	sessionID, setID := idMatch[1], setMatch[1]

	// Log reps into the set
	output, err = run("rep", "add", setID, "60", "7.12")
	if err != nil {
		t.Fatalf("Failed to log rep: %v\n%s", err, output)
	}
	if !strings.Contains(output, "60m 7.12s") {
		t.Errorf("Expected rep echo, got:\n%s", output)
	}
	if _, err := run("rep", "add", setID, "60", "7.05", "--timing", "fat"); err != nil {
		t.Fatalf("Failed to log second rep: %v", err)
	}

	// The session shows both reps
	output, err = run("session", "show", sessionID)
	if err != nil {
		t.Fatalf("Failed to show session: %v\n%s", err, output)
	}
	if !strings.Contains(output, "7.12s") || !strings.Contains(output, "7.05s") {
		t.Errorf("Session show missing reps:\n%s", output)
	}

	// Trend picks up the distance
	output, err = run("trend", "sprint", "60")
	if err != nil {
		t.Fatalf("Failed to show trend: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Best: 7.05s") {
		t.Errorf("Expected best time in trend, got:\n%s", output)
	}

	// Completing the session blocks further logging
	if output, err = run("session", "complete", sessionID); err != nil {
		t.Fatalf("Failed to complete session: %v\n%s", err, output)
	}
	if output, err = run("rep", "add", setID, "60", "7.30"); err == nil {
		t.Errorf("Expected rep add to fail on completed session, got:\n%s", output)
	}

	// Reopening unblocks it
	if _, err = run("session", "reopen", sessionID); err != nil {
		t.Fatalf("Failed to reopen session: %v", err)
	}
	if output, err = run("rep", "add", setID, "60", "7.30"); err != nil {
		t.Fatalf("Failed to log rep after reopen: %v\n%s", err, output)
	}

	// Deleting a rep works by ID, and an unknown ID reports not-found
	repMatch := repPattern.FindStringSubmatch(output)
	if repMatch == nil {
		t.Fatalf("Rep add output missing ID:\n%s", output)
	}
	if output, err = run("rep", "delete", repMatch[1]); err != nil {
		t.Fatalf("Failed to delete rep: %v\n%s", err, output)
	}
	if output, err = run("rep", "delete", "deadbeef"); err == nil {
		t.Errorf("Expected delete of unknown rep to fail, got:\n%s", output)
	} else if !strings.Contains(output, "not found") {
		t.Errorf("Expected not-found error, got:\n%s", output)
	}

	// Export round-trips through import
	exportFile := filepath.Join(tmpDir, "backup.json")
	if output, err = run("export", "json", "-o", exportFile); err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if output, err = run("import", exportFile, "--yes"); err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}

	output, err = run("session", "list")
	if err != nil {
		t.Fatalf("Failed to list sessions: %v\n%s", err, output)
	}
	if !strings.Contains(output, "sprint") {
		t.Errorf("Expected sprint session after import, got:\n%s", output)
	}
}

func TestMeetWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(projectRoot, "tracklog-meet-bin")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/tracklog")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(binary)

	tmpDir := t.TempDir()
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// A meet needs venue and timing
	if output, err := run("session", "start", "meet"); err == nil {
		t.Errorf("Expected meet start without venue to fail, got:\n%s", output)
	}

	// Bad values are caught before anything is written
	if output, err := run("session", "start", "meet", "--venue", "stadium", "--timing", "fat"); err == nil {
		t.Errorf("Expected bad venue to fail, got:\n%s", output)
	} else if !strings.Contains(output, "unknown venue") {
		t.Errorf("Expected venue error, got:\n%s", output)
	}

	output, err := run("session", "start", "meet", "--venue", "indoor", "--timing", "fat")
	if err != nil {
		t.Fatalf("Failed to start meet: %v\n%s", err, output)
	}
	meetID := idPattern.FindStringSubmatch(output)[1]

	// Indoor meets reject wind readings
	if output, err := run("race", "add", meetID, "60", "final", "6.95", "--wind", "1.2"); err == nil {
		t.Errorf("Expected indoor wind to be rejected, got:\n%s", output)
	}
	if output, err := run("race", "add", meetID, "60", "final", "6.95"); err != nil {
		t.Fatalf("Failed to log race: %v\n%s", err, output)
	}

	output, err = run("trend", "meet", "60")
	if err != nil {
		t.Fatalf("Failed to show meet trend: %v\n%s", err, output)
	}
	if !strings.Contains(output, "PR: 6.95s") {
		t.Errorf("Expected PR in meet trend, got:\n%s", output)
	}
}
