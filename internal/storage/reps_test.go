// ABOUTME: Tests for set and rep CRUD, sequence assignment, and validation gates.
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklog/tracklog/internal/models"
)

func sprintSession(t *testing.T, d *DB) *models.Session {
	t.Helper()
	s := models.NewSession(models.KindSprint, "2026-03-10")
	require.NoError(t, d.CreateSession(s))
	return s
}

func liftSession(t *testing.T, d *DB) *models.Session {
	t.Helper()
	s := models.NewSession(models.KindLift, "2026-03-10")
	require.NoError(t, d.CreateSession(s))
	return s
}

func TestSequenceNumbersNeverReused(t *testing.T) {
	d := testDB(t)
	s := sprintSession(t, d)
	setID := s.SprintSets[0].ID

	r1 := models.NewSprintRep(setID, 30, 4.10)
	r2 := models.NewSprintRep(setID, 30, 4.05)
	r3 := models.NewSprintRep(setID, 30, 4.00)
	require.NoError(t, d.AddSprintRep(r1))
	require.NoError(t, d.AddSprintRep(r2))
	require.NoError(t, d.AddSprintRep(r3))
	assert.Equal(t, []int{1, 2, 3}, []int{r1.Seq, r2.Seq, r3.Seq})

	// Delete the middle rep: the gap stays, and the next insert gets 4.
	require.NoError(t, d.DeleteSprintRep(r2.ID.String()))
	r4 := models.NewSprintRep(setID, 30, 3.95)
	require.NoError(t, d.AddSprintRep(r4))
	assert.Equal(t, 4, r4.Seq)

	// Even after deleting the highest, numbers keep climbing.
	require.NoError(t, d.DeleteSprintRep(r4.ID.String()))
	r5 := models.NewSprintRep(setID, 30, 3.90)
	require.NoError(t, d.AddSprintRep(r5))
	assert.Equal(t, 5, r5.Seq)
}

func TestAddRepToCompletedSessionRejected(t *testing.T) {
	d := testDB(t)
	s := sprintSession(t, d)
	require.NoError(t, d.CompleteSession(s.ID.String()))

	rep := models.NewSprintRep(s.SprintSets[0].ID, 30, 4.05)
	err := d.AddSprintRep(rep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completed")

	var count int
	require.NoError(t, d.db.QueryRow("SELECT COUNT(*) FROM sprint_reps").Scan(&count))
	assert.Zero(t, count)
}

func TestInvalidRepWritesNothing(t *testing.T) {
	d := testDB(t)
	s := sprintSession(t, d)

	rep := models.NewSprintRep(s.SprintSets[0].ID, 30, 0.5) // below minimum time
	require.Error(t, d.AddSprintRep(rep))

	var count int
	require.NoError(t, d.db.QueryRow("SELECT COUNT(*) FROM sprint_reps").Scan(&count))
	assert.Zero(t, count)

	before, err := d.GetSession(s.ID.String())
	require.NoError(t, err)
	assert.Nil(t, before.UpdatedAt, "rejected insert must not touch the session")
}

func TestUpdateSprintRepFlyToNonFlyClearsFlyIn(t *testing.T) {
	d := testDB(t)
	s := sprintSession(t, d)

	rep := models.NewSprintRep(s.SprintSets[0].ID, 30, 3.20).WithFly(20)
	require.NoError(t, d.AddSprintRep(rep))

	isFly := false
	updated, err := d.UpdateSprintRep(rep.ID.String(), models.SprintRepPatch{IsFly: &isFly})
	require.NoError(t, err)
	assert.False(t, updated.IsFly)
	assert.Nil(t, updated.FlyIn)

	stored, err := d.GetSprintRep(rep.ID.String())
	require.NoError(t, err)
	assert.Nil(t, stored.FlyIn, "stale fly-in must not survive in the store")
}

func TestUpdateSprintRepRejectsInvalidResult(t *testing.T) {
	d := testDB(t)
	s := sprintSession(t, d)

	rep := models.NewSprintRep(s.SprintSets[0].ID, 30, 4.05)
	require.NoError(t, d.AddSprintRep(rep))

	bad := 200.0
	_, err := d.UpdateSprintRep(rep.ID.String(), models.SprintRepPatch{TimeSec: &bad})
	require.Error(t, err)

	stored, err := d.GetSprintRep(rep.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4.05, stored.TimeSec)
}

func TestLiftRepVelocityLifecycle(t *testing.T) {
	d := testDB(t)
	s := liftSession(t, d)

	set := models.NewLiftSet(s.ID, "back squat", 140)
	require.NoError(t, d.AddLiftSet(set))

	// Unmeasured rep: nil velocity is a valid, distinct state.
	rep := models.NewLiftRep(set.ID)
	require.NoError(t, d.AddLiftRep(rep))

	v := 0.82
	updated, err := d.UpdateLiftRep(rep.ID.String(), models.LiftRepPatch{PeakVelocity: &v})
	require.NoError(t, err)
	require.NotNil(t, updated.PeakVelocity)
	assert.Equal(t, 0.82, *updated.PeakVelocity)

	cleared, err := d.UpdateLiftRep(rep.ID.String(), models.LiftRepPatch{ClearVelocity: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.PeakVelocity)
}

func TestLiftSetValidation(t *testing.T) {
	d := testDB(t)
	s := liftSession(t, d)

	require.Error(t, d.AddLiftSet(models.NewLiftSet(s.ID, "", 140)))
	require.Error(t, d.AddLiftSet(models.NewLiftSet(s.ID, "back squat", 0)))
	require.NoError(t, d.AddLiftSet(models.NewLiftSet(s.ID, "back squat", 140)))
}

func TestDeleteSetCascadesToReps(t *testing.T) {
	d := testDB(t)
	s := liftSession(t, d)

	set := models.NewLiftSet(s.ID, "power clean", 90)
	require.NoError(t, d.AddLiftSet(set))
	require.NoError(t, d.AddLiftRep(models.NewLiftRep(set.ID).WithVelocity(1.4)))
	require.NoError(t, d.AddLiftRep(models.NewLiftRep(set.ID)))

	require.NoError(t, d.DeleteLiftSet(set.ID.String()))

	var count int
	require.NoError(t, d.db.QueryRow("SELECT COUNT(*) FROM lift_reps").Scan(&count))
	assert.Zero(t, count)
}

func TestSetSequencePerParent(t *testing.T) {
	d := testDB(t)
	s1 := liftSession(t, d)
	s2 := liftSession(t, d)

	a := models.NewLiftSet(s1.ID, "back squat", 140)
	b := models.NewLiftSet(s1.ID, "back squat", 150)
	c := models.NewLiftSet(s2.ID, "bench press", 100)
	require.NoError(t, d.AddLiftSet(a))
	require.NoError(t, d.AddLiftSet(b))
	require.NoError(t, d.AddLiftSet(c))

	assert.Equal(t, 1, a.Seq)
	assert.Equal(t, 2, b.Seq)
	assert.Equal(t, 1, c.Seq, "sequence numbering is scoped to the parent")
}
