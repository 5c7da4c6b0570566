// ABOUTME: Tests for race CRUD and wind-by-venue enforcement, plus aux entries.
package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklog/tracklog/internal/models"
)

func meetSession(t *testing.T, d *DB, venue models.Venue) *models.Session {
	t.Helper()
	m := models.NewMeet("2026-05-01", venue, models.TimingFAT)
	require.NoError(t, d.CreateSession(m))
	return m
}

func TestAddRaceOutdoorWithWind(t *testing.T) {
	d := testDB(t)
	m := meetSession(t, d, models.VenueOutdoor)

	race := models.NewRace(m.ID, 100, models.RoundHeat, 10.92).WithWind(1.8).WithPlace(2)
	require.NoError(t, d.AddRace(race))
	assert.Equal(t, 1, race.Seq)

	got, err := d.GetSessionWithChildren(m.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Races, 1)
	require.NotNil(t, got.Races[0].Wind)
	assert.Equal(t, 1.8, *got.Races[0].Wind)
}

func TestAddRaceIndoorRejectsWind(t *testing.T) {
	d := testDB(t)
	m := meetSession(t, d, models.VenueIndoor)

	withWind := models.NewRace(m.ID, 60, models.RoundFinal, 6.95).WithWind(0.4)
	require.Error(t, d.AddRace(withWind))

	var count int
	require.NoError(t, d.db.QueryRow("SELECT COUNT(*) FROM races").Scan(&count))
	assert.Zero(t, count)

	noWind := models.NewRace(m.ID, 60, models.RoundFinal, 6.95)
	require.NoError(t, d.AddRace(noWind))
}

func TestAddRaceToNonMeetRejected(t *testing.T) {
	d := testDB(t)
	s := models.NewSession(models.KindSprint, "2026-05-01")
	require.NoError(t, d.CreateSession(s))

	race := models.NewRace(s.ID, 100, models.RoundHeat, 10.92)
	err := d.AddRace(race)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a meet")
}

func TestUpdateRaceRevalidatesAgainstVenue(t *testing.T) {
	d := testDB(t)
	m := meetSession(t, d, models.VenueIndoor)

	race := models.NewRace(m.ID, 60, models.RoundHeat, 6.95)
	require.NoError(t, d.AddRace(race))

	wind := 1.2
	_, err := d.UpdateRace(race.ID.String(), models.RacePatch{Wind: &wind})
	require.Error(t, err, "indoor meet must keep rejecting wind on update")

	faster := 6.89
	updated, err := d.UpdateRace(race.ID.String(), models.RacePatch{TimeSec: &faster})
	require.NoError(t, err)
	assert.Equal(t, 6.89, updated.TimeSec)
}

func TestAuxEntryOnAnySessionKind(t *testing.T) {
	d := testDB(t)

	sprint := models.NewSession(models.KindSprint, "2026-03-10")
	require.NoError(t, d.CreateSession(sprint))
	auxDay := models.NewSession(models.KindAuxiliary, "2026-03-11")
	require.NoError(t, d.CreateSession(auxDay))

	e1 := models.NewAuxEntry(sprint.ID, models.AuxPlyometric, "hurdle hops", models.AuxMetricContacts, 40)
	require.NoError(t, d.AddAuxEntry(e1))

	e2 := models.NewAuxEntry(auxDay.ID, models.AuxCore, "plank circuit", models.AuxMetricTime, 300)
	require.NoError(t, d.AddAuxEntry(e2))

	got, err := d.GetSessionWithChildren(sprint.ID.String())
	require.NoError(t, err)
	require.Len(t, got.AuxEntries, 1)
	assert.Equal(t, "hurdle hops", got.AuxEntries[0].Name)
}

func TestAuxEntryValidation(t *testing.T) {
	d := testDB(t)
	s := models.NewSession(models.KindAuxiliary, "2026-03-11")
	require.NoError(t, d.CreateSession(s))

	zero := models.NewAuxEntry(s.ID, models.AuxMedball, "overhead throws", models.AuxMetricReps, 0)
	require.Error(t, d.AddAuxEntry(zero))

	e := models.NewAuxEntry(s.ID, models.AuxMedball, "overhead throws", models.AuxMetricReps, 20)
	require.NoError(t, d.AddAuxEntry(e))

	v := 25.0
	updated, err := d.UpdateAuxEntry(e.ID.String(), models.AuxEntryPatch{MetricValue: &v})
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.MetricValue)

	require.NoError(t, d.DeleteAuxEntry(e.ID.String()))
	var count int
	require.NoError(t, d.db.QueryRow("SELECT COUNT(*) FROM aux_entries").Scan(&count))
	assert.Zero(t, count)
}
