// ABOUTME: Tests for template snapshot and materialization.
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklog/tracklog/internal/models"
)

func TestSnapshotSprintTemplateDropsOutcomes(t *testing.T) {
	d := testDB(t)
	s := sprintSession(t, d)
	setID := s.SprintSets[0].ID

	require.NoError(t, d.AddSprintRep(models.NewSprintRep(setID, 30, 4.05).WithIntensity(95)))
	require.NoError(t, d.AddSprintRep(models.NewSprintRep(setID, 30, 3.20).WithFly(20)))
	require.NoError(t, d.CompleteSession(s.ID.String()))

	desc := "standard accel block"
	tpl, err := d.SnapshotTemplate(s.ID.String(), "accel day", &desc)
	require.NoError(t, err)
	assert.Equal(t, models.KindSprint, tpl.Kind)
	require.Len(t, tpl.Sets, 1)
	assert.Equal(t, 2, tpl.Sets[0].RepCount)
	require.Len(t, tpl.Sets[0].Reps, 2)

	// Structure survives; times do not exist on template reps at all.
	assert.Equal(t, 30.0, tpl.Sets[0].Reps[0].Distance)
	require.NotNil(t, tpl.Sets[0].Reps[0].Intensity)
	assert.Equal(t, 95, *tpl.Sets[0].Reps[0].Intensity)
	assert.True(t, tpl.Sets[0].Reps[1].IsFly)
	require.NotNil(t, tpl.Sets[0].Reps[1].FlyIn)
	assert.Equal(t, 20, *tpl.Sets[0].Reps[1].FlyIn)
}

func TestSnapshotLiftTemplate(t *testing.T) {
	d := testDB(t)
	s := liftSession(t, d)

	set := models.NewLiftSet(s.ID, "back squat", 140)
	require.NoError(t, d.AddLiftSet(set))
	require.NoError(t, d.AddLiftRep(models.NewLiftRep(set.ID).WithVelocity(0.78)))
	require.NoError(t, d.AddLiftRep(models.NewLiftRep(set.ID).WithVelocity(0.74)))

	tpl, err := d.SnapshotTemplate(s.ID.String(), "squat day", nil)
	require.NoError(t, err)
	require.Len(t, tpl.Sets, 1)
	require.NotNil(t, tpl.Sets[0].Exercise)
	assert.Equal(t, "back squat", *tpl.Sets[0].Exercise)
	require.NotNil(t, tpl.Sets[0].Load)
	assert.Equal(t, 140.0, *tpl.Sets[0].Load)
	assert.Equal(t, 2, tpl.Sets[0].RepCount)
	assert.Empty(t, tpl.Sets[0].Reps, "lift templates carry no rep rows, velocities are outcomes")
}

func TestSnapshotEmptySessionSucceeds(t *testing.T) {
	d := testDB(t)
	s := liftSession(t, d)

	tpl, err := d.SnapshotTemplate(s.ID.String(), "empty day", nil)
	require.NoError(t, err)
	assert.Empty(t, tpl.Sets)
}

func TestSnapshotMeetRejected(t *testing.T) {
	d := testDB(t)
	m := meetSession(t, d, models.VenueOutdoor)

	_, err := d.SnapshotTemplate(m.ID.String(), "meet", nil)
	require.Error(t, err)
}

func TestMaterializeTemplate(t *testing.T) {
	d := testDB(t)
	s := sprintSession(t, d)
	require.NoError(t, d.AddSprintRep(models.NewSprintRep(s.SprintSets[0].ID, 60, 7.10)))

	tpl, err := d.SnapshotTemplate(s.ID.String(), "speed day", nil)
	require.NoError(t, err)

	fresh, err := d.MaterializeTemplate(tpl.ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.Equal(t, models.StatusActive, fresh.Status)
	require.Len(t, fresh.SprintSets, 1)

	// Reps are left for the live session.
	got, err := d.GetSessionWithChildren(fresh.ID.String())
	require.NoError(t, err)
	assert.Empty(t, got.SprintSets[0].Reps)

	// Use counter and last-used timestamp bumped.
	stored, err := d.GetTemplate(tpl.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UseCount)
	assert.NotNil(t, stored.LastUsedAt)
}

func TestMaterializeSurvivesSourceDeletion(t *testing.T) {
	d := testDB(t)
	s := liftSession(t, d)
	require.NoError(t, d.AddLiftSet(models.NewLiftSet(s.ID, "bench press", 100)))

	tpl, err := d.SnapshotTemplate(s.ID.String(), "bench day", nil)
	require.NoError(t, err)

	require.NoError(t, d.DeleteSession(s.ID.String()))

	fresh, err := d.MaterializeTemplate(tpl.ID.String())
	require.NoError(t, err)
	require.Len(t, fresh.LiftSets, 1)
	assert.Equal(t, "bench press", fresh.LiftSets[0].Exercise)
}

func TestListAndDeleteTemplates(t *testing.T) {
	d := testDB(t)
	s := liftSession(t, d)

	_, err := d.SnapshotTemplate(s.ID.String(), "one", nil)
	require.NoError(t, err)
	tpl2, err := d.SnapshotTemplate(s.ID.String(), "two", nil)
	require.NoError(t, err)

	all, err := d.ListTemplates()
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, d.DeleteTemplate(tpl2.ID.String()))
	all, err = d.ListTemplates()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "one", all[0].Name)

	require.Error(t, d.DeleteTemplate(tpl2.ID.String()))
}
