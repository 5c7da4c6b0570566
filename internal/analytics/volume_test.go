// ABOUTME: Tests for the volume aggregator.
package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklog/tracklog/internal/models"
)

type fakeSource struct {
	sprints  []models.SprintRepRecord
	liftSets []models.LiftSetRecord
	liftReps []models.LiftRepRecord
	races    []models.RaceRecord
	prefs    *models.Preferences
}

func (f *fakeSource) SprintRepHistory() ([]models.SprintRepRecord, error) { return f.sprints, nil }
func (f *fakeSource) LiftSetHistory() ([]models.LiftSetRecord, error)    { return f.liftSets, nil }
func (f *fakeSource) LiftRepHistory() ([]models.LiftRepRecord, error)    { return f.liftReps, nil }
func (f *fakeSource) RaceHistory() ([]models.RaceRecord, error)          { return f.races, nil }
func (f *fakeSource) GetPreferences() (*models.Preferences, error) {
	if f.prefs != nil {
		return f.prefs, nil
	}
	return models.DefaultPreferences(), nil
}

// testEngine pins "now" so window math is deterministic.
func testEngine(src *fakeSource, now time.Time) *Engine {
	e := New(src)
	e.now = func() time.Time { return now }
	return e
}

func sprintPoint(sessionID uuid.UUID, date string, distance, timeSec float64, work models.WorkType) models.SprintRepRecord {
	day, _ := time.ParseInLocation(models.DateLayout, date, time.Local)
	return models.SprintRepRecord{
		RepID:     uuid.New(),
		SetID:     uuid.New(),
		SessionID: sessionID,
		Date:      date,
		Distance:  distance,
		TimeSec:   timeSec,
		Timing:    models.TimingHand,
		WorkType:  work,
		CreatedAt: day,
	}
}

func TestSessionVolumeSplitsByWorkType(t *testing.T) {
	sessionID := uuid.New()
	other := uuid.New()
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(sessionID, "2026-03-10", 30, 4.0, models.WorkSprint),
		sprintPoint(sessionID, "2026-03-10", 60, 7.1, models.WorkSprint),
		sprintPoint(sessionID, "2026-03-10", 200, 28.0, models.WorkTempo),
		sprintPoint(other, "2026-03-10", 100, 12.0, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local))

	v, err := e.SessionVolume(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, v.Sprint)
	assert.Equal(t, 200.0, v.Tempo)
	assert.Equal(t, 290.0, v.Total())
}

func TestDayVolumeSumsAcrossSessions(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-03-10", 60, 7.1, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-03-10", 150, 19.0, models.WorkTempo),
		sprintPoint(uuid.New(), "2026-03-11", 60, 7.0, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 11, 18, 0, 0, 0, time.Local))

	v, err := e.DayVolume("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 60.0, v.Sprint)
	assert.Equal(t, 150.0, v.Tempo)
}

func TestWeeklyVolumeChange(t *testing.T) {
	// 2026-03-09 is a Monday; the engine's "now" sits in that week.
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-03-03", 100, 12.0, models.WorkSprint), // previous week
		sprintPoint(uuid.New(), "2026-03-04", 100, 12.1, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-03-10", 100, 11.9, models.WorkSprint), // current week
		sprintPoint(uuid.New(), "2026-03-11", 100, 12.0, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-03-12", 100, 12.0, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 12, 18, 0, 0, 0, time.Local))

	weeks, err := e.WeeklyVolume(2)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, 200.0, weeks[0].Total())
	assert.Equal(t, 300.0, weeks[1].Total())
	assert.InDelta(t, 50.0, weeks[1].ChangePercent, 0.001)
}

func TestWeeklyVolumeChangeZeroWhenPreviousEmpty(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-03-10", 100, 12.0, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 12, 18, 0, 0, 0, time.Local))

	weeks, err := e.WeeklyVolume(2)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Zero(t, weeks[0].Total())
	assert.Equal(t, 100.0, weeks[1].Total())
	assert.Zero(t, weeks[1].ChangePercent, "previous week of 0 must yield 0, not NaN")
}

func TestWeeklyVolumeIncludesEmptyWeeks(t *testing.T) {
	src := &fakeSource{}
	e := testEngine(src, time.Date(2026, 3, 12, 18, 0, 0, 0, time.Local))

	weeks, err := e.WeeklyVolume(4)
	require.NoError(t, err)
	require.Len(t, weeks, 4)
	for _, w := range weeks {
		assert.Zero(t, w.Total())
		assert.Zero(t, w.ChangePercent)
	}
	assert.True(t, weeks[0].Start.Before(weeks[3].Start))
}
