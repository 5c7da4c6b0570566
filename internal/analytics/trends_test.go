// ABOUTME: Tests for trend views: rolling windows, lift velocity, season bests.
package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklog/tracklog/internal/models"
)

func liftSetPoint(date, exercise string, load float64) models.LiftSetRecord {
	day, _ := time.ParseInLocation(models.DateLayout, date, time.Local)
	return models.LiftSetRecord{
		SetID:     uuid.New(),
		SessionID: uuid.New(),
		Date:      date,
		Exercise:  exercise,
		Load:      load,
		CreatedAt: day,
	}
}

func liftRepPoint(date, exercise string, load, velocity float64) models.LiftRepRecord {
	day, _ := time.ParseInLocation(models.DateLayout, date, time.Local)
	return models.LiftRepRecord{
		RepID:        uuid.New(),
		SetID:        uuid.New(),
		SessionID:    uuid.New(),
		Date:         date,
		Exercise:     exercise,
		Load:         load,
		PeakVelocity: velocity,
		CreatedAt:    day,
	}
}

func racePoint(date string, distance, timeSec float64) models.RaceRecord {
	day, _ := time.ParseInLocation(models.DateLayout, date, time.Local)
	return models.RaceRecord{
		RaceID:    uuid.New(),
		MeetID:    uuid.New(),
		Date:      date,
		Distance:  distance,
		Round:     models.RoundFinal,
		TimeSec:   timeSec,
		Venue:     models.VenueOutdoor,
		Timing:    models.TimingFAT,
		CreatedAt: day,
	}
}

func TestSprintDistanceTrendBestAndWindows(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-02-20", 60, 7.30, models.WorkSprint), // previous 7d window
		sprintPoint(uuid.New(), "2026-02-21", 60, 7.20, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-27", 60, 7.10, models.WorkSprint), // current 7d window
		sprintPoint(uuid.New(), "2026-02-28", 60, 7.00, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	trend, err := e.SprintDistanceTrend(60)
	require.NoError(t, err)
	require.NotNil(t, trend.Best)
	assert.Equal(t, 7.00, trend.Best.TimeSec)
	assert.Len(t, trend.Points, 4)
	require.Len(t, trend.Windows, 3)

	w7 := trend.Windows[0]
	assert.Equal(t, 7, w7.Days)
	assert.Equal(t, 2, w7.Count)
	assert.InDelta(t, 7.05, w7.Mean, 0.001)
	assert.InDelta(t, -0.20, w7.Change, 0.001) // vs 7.25 previous-window mean
	assert.Less(t, w7.ChangePercent, 0.0)
}

func TestRollingWindowZeroChangeWithoutOlderData(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-02-27", 60, 7.10, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-28", 60, 7.00, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	trend, err := e.SprintDistanceTrend(60)
	require.NoError(t, err)
	for _, w := range trend.Windows {
		assert.Zero(t, w.Change, "window %dd: no previous data must mean zero change", w.Days)
		assert.Zero(t, w.ChangePercent)
	}
}

func TestLiftExerciseTrend(t *testing.T) {
	src := &fakeSource{
		liftSets: []models.LiftSetRecord{
			liftSetPoint("2026-01-10", "Back Squat", 140),
			liftSetPoint("2026-02-10", "back squat", 150),
			liftSetPoint("2026-02-15", "bench press", 100),
		},
		liftReps: []models.LiftRepRecord{
			liftRepPoint("2026-01-10", "back squat", 140, 0.72),
			liftRepPoint("2026-02-10", "back squat", 140, 0.78),
			liftRepPoint("2026-02-10", "back squat", 150, 0.65),
		},
	}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	trend, err := e.LiftExerciseTrend("BACK SQUAT")
	require.NoError(t, err)
	assert.Equal(t, 150.0, trend.MaxLoad)
	assert.Equal(t, "2026-02-10", trend.MaxLoadDate)
	require.Len(t, trend.VelocityByLoad, 2)
	assert.Equal(t, LoadVelocity{Load: 140, PeakVelocity: 0.78}, trend.VelocityByLoad[0])
	assert.Equal(t, LoadVelocity{Load: 150, PeakVelocity: 0.65}, trend.VelocityByLoad[1])
	assert.Len(t, trend.VelocitySeries, 3)
}

func TestLiftVelocitySeriesKeepsNewestTwenty(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 30; i++ {
		src.liftReps = append(src.liftReps,
			liftRepPoint(fmt.Sprintf("2026-01-%02d", i%28+1), "back squat", 140, 0.5+float64(i)*0.01))
	}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	trend, err := e.LiftExerciseTrend("back squat")
	require.NoError(t, err)
	require.Len(t, trend.VelocitySeries, 20)
	assert.InDelta(t, 0.60, trend.VelocitySeries[0].PeakVelocity, 0.001)
}

func TestMeetDistanceTrendSeasonBest(t *testing.T) {
	src := &fakeSource{races: []models.RaceRecord{
		racePoint("2025-06-15", 100, 10.80), // all-time PR, previous season
		racePoint("2025-09-20", 100, 11.05), // current season (starts Aug 1 2025)
		racePoint("2026-02-10", 100, 10.95), // most recent
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	trend, err := e.MeetDistanceTrend(100)
	require.NoError(t, err)
	require.NotNil(t, trend.PR)
	assert.Equal(t, 10.80, trend.PR.TimeSec)
	require.NotNil(t, trend.SeasonBest)
	assert.Equal(t, 10.95, trend.SeasonBest.TimeSec)
	assert.InDelta(t, 0.15, trend.LastDeltaVsPR, 0.001)
}

func TestSprintSummaryDirection(t *testing.T) {
	var recs []models.SprintRepRecord
	// Oldest three average 7.30, newest three 7.00: > 2% faster = improving.
	for i, tm := range []float64{7.30, 7.30, 7.30, 7.15, 7.00, 7.00, 7.00} {
		recs = append(recs, sprintPoint(uuid.New(), fmt.Sprintf("2026-01-%02d", i+1), 60, tm, models.WorkSprint))
	}
	// 30m is flat: within the dead band.
	for i, tm := range []float64{4.00, 4.01, 3.99, 4.00} {
		recs = append(recs, sprintPoint(uuid.New(), fmt.Sprintf("2026-02-%02d", i+1), 30, tm, models.WorkSprint))
	}
	src := &fakeSource{sprints: recs}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	rows, err := e.SprintSummary()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "30m", rows[0].Key)
	assert.Equal(t, Stable, rows[0].Direction)
	assert.Equal(t, "60m", rows[1].Key)
	assert.Equal(t, Improving, rows[1].Direction)
	assert.Equal(t, 7.00, rows[1].Best)
	assert.Equal(t, 7, rows[1].Count)
}

func TestLiftSummaryDirection(t *testing.T) {
	var recs []models.LiftSetRecord
	for i, load := range []float64{150, 150, 150, 145, 140, 140, 140} {
		recs = append(recs, liftSetPoint(fmt.Sprintf("2026-01-%02d", i+1), "back squat", load))
	}
	src := &fakeSource{liftSets: recs}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	rows, err := e.LiftSummary()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Declining, rows[0].Direction, "dropping loads read as declining")
	assert.Equal(t, 150.0, rows[0].Best)
}
