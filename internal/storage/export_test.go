// ABOUTME: Tests for snapshot export, validation, and replace-all import.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklog/tracklog/internal/models"
)

func seedDataset(t *testing.T, d *DB) {
	t.Helper()

	sprint := models.NewSession(models.KindSprint, "2026-03-10")
	require.NoError(t, d.CreateSession(sprint))
	require.NoError(t, d.AddSprintRep(models.NewSprintRep(sprint.SprintSets[0].ID, 30, 4.05)))
	require.NoError(t, d.AddSprintRep(models.NewSprintRep(sprint.SprintSets[0].ID, 30, 4.00)))

	lift := models.NewSession(models.KindLift, "2026-03-11")
	require.NoError(t, d.CreateSession(lift))
	set := models.NewLiftSet(lift.ID, "back squat", 140)
	require.NoError(t, d.AddLiftSet(set))
	require.NoError(t, d.AddLiftRep(models.NewLiftRep(set.ID).WithVelocity(0.80)))

	meet := models.NewMeet("2026-05-01", models.VenueOutdoor, models.TimingFAT)
	require.NoError(t, d.CreateSession(meet))
	require.NoError(t, d.AddRace(models.NewRace(meet.ID, 100, models.RoundFinal, 10.85).WithWind(0.9)))

	require.NoError(t, d.AddAuxEntry(
		models.NewAuxEntry(sprint.ID, models.AuxPlyometric, "bounds", models.AuxMetricContacts, 30)))

	_, err := d.SnapshotTemplate(sprint.ID.String(), "accel day", nil)
	require.NoError(t, err)

	_, err = d.GetPreferences()
	require.NoError(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := testDB(t)
	seedDataset(t, src)

	snap, err := src.ExportAll()
	require.NoError(t, err)
	assert.Equal(t, SnapshotFormatVersion, snap.FormatVersion)
	assert.Equal(t, uint(3), snap.SchemaVersion)
	assert.Len(t, snap.SprintSessions, 1)
	assert.Len(t, snap.LiftSessions, 1)
	assert.Len(t, snap.Meets, 1)
	assert.Len(t, snap.SprintSets, 1)
	assert.Len(t, snap.SprintReps, 2)
	assert.Len(t, snap.LiftSets, 1)
	assert.Len(t, snap.LiftReps, 1)
	assert.Len(t, snap.Races, 1)
	assert.Len(t, snap.AuxEntries, 1)
	assert.Len(t, snap.Templates, 1)
	assert.Len(t, snap.TemplateSets, 1)
	assert.Len(t, snap.TemplateReps, 2)
	require.NotNil(t, snap.Preferences)

	data, err := snap.EncodeJSON()
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)

	dst, err := Open(filepath.Join(t.TempDir(), "dst.db"))
	require.NoError(t, err)
	defer dst.Close()

	problems, warnings := dst.ValidateSnapshot(decoded)
	assert.Empty(t, problems)
	assert.Empty(t, warnings)
	require.NoError(t, dst.ImportAll(decoded))

	again, err := dst.ExportAll()
	require.NoError(t, err)
	assert.Len(t, again.SprintSessions, 1)
	assert.Len(t, again.SprintReps, 2)
	assert.Len(t, again.Races, 1)
	assert.Len(t, again.TemplateReps, 2)

	// Child data survives intact, not just counts.
	sess, err := dst.GetSessionWithChildren(snap.SprintSessions[0].ID.String())
	require.NoError(t, err)
	require.Len(t, sess.SprintSets, 1)
	assert.Len(t, sess.SprintSets[0].Reps, 2)
}

func TestImportReplacesExistingData(t *testing.T) {
	src := testDB(t)
	seedDataset(t, src)
	snap, err := src.ExportAll()
	require.NoError(t, err)

	dst := testDB(t)
	doomed := models.NewSession(models.KindLift, "2025-01-01")
	require.NoError(t, dst.CreateSession(doomed))

	require.NoError(t, dst.ImportAll(snap))

	_, err = dst.GetSession(doomed.ID.String())
	require.Error(t, err, "pre-import data must be gone")

	all, err := dst.ListSessions(nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestValidateSnapshotFlagsProblems(t *testing.T) {
	d := testDB(t)

	snap := &Snapshot{
		FormatVersion: "9.9",
		SchemaVersion: 99,
		SprintReps: []models.SprintRep{
			{ID: uuid.New(), SetID: uuid.New(), Distance: 30, TimeSec: 4.0},
		},
		Meets: []models.Session{
			{ID: uuid.New(), Kind: models.KindMeet, Date: "2026-05-01", Status: models.StatusActive},
		},
	}

	problems, warnings := d.ValidateSnapshot(snap)
	require.NotEmpty(t, problems)

	joined := ""
	for _, p := range problems {
		joined += p + "\n"
	}
	assert.Contains(t, joined, "format version")
	assert.Contains(t, joined, "unknown set")
	assert.Contains(t, joined, "missing venue or timing")

	// A newer schema version is a warning, not a blocker.
	assert.NotContains(t, joined, "newer than this build")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "newer than this build")
}

func TestNewerSchemaSnapshotWarnsButImports(t *testing.T) {
	src := testDB(t)
	seedDataset(t, src)
	snap, err := src.ExportAll()
	require.NoError(t, err)
	snap.SchemaVersion++

	dst := testDB(t)
	problems, warnings := dst.ValidateSnapshot(snap)
	assert.Empty(t, problems)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "newer than this build")

	require.NoError(t, dst.ImportAll(snap))
	all, err := dst.ListSessions(nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImportFailureLeavesDataUntouched(t *testing.T) {
	src := testDB(t)
	seedDataset(t, src)
	snap, err := src.ExportAll()
	require.NoError(t, err)
	// A duplicate session ID fails the primary key mid-insert.
	snap.LiftSessions = append(snap.LiftSessions, snap.LiftSessions[0])

	dst := testDB(t)
	keeper := models.NewSession(models.KindSprint, "2025-06-01")
	require.NoError(t, dst.CreateSession(keeper))

	require.Error(t, dst.ImportAll(snap))

	// Import clears and repopulates in one tx; the failure must undo the clear.
	_, err = dst.GetSession(keeper.ID.String())
	require.NoError(t, err)
	all, err := dst.ListSessions(nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEncodeYAML(t *testing.T) {
	d := testDB(t)
	seedDataset(t, d)

	snap, err := d.ExportAll()
	require.NoError(t, err)

	data, err := snap.EncodeYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "format_version:")
	assert.Contains(t, string(data), "sprint_sessions:")
}
