// ABOUTME: Tests for the insight detector rules and ordering.
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

func findInsight(insights []Insight, category Category, subject string) *Insight {
	for i := range insights {
		if insights[i].Category == category && insights[i].Subject == subject {
			return &insights[i]
		}
	}
	return nil
}

func TestNewPRInsightFires(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-02-01", 100, 10.00, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-20", 100, 9.80, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)

	pr := findInsight(insights, CategoryImprovement, "100m")
	require.NotNil(t, pr, "newest record being the best must produce a PR insight")
	assert.Equal(t, DomainSprint, pr.Domain)
	assert.Equal(t, SeveritySignificant, pr.Severity)
	assert.Equal(t, 9.80, pr.Value)
	assert.Equal(t, 10.00, pr.PreviousValue)
}

func TestNewPRInsightNeedsNewestBest(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-02-01", 100, 9.80, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-20", 100, 10.00, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)
	assert.Nil(t, findInsight(insights, CategoryImprovement, "100m"))
}

func TestNewPRInsightNeedsTwoRecords(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-02-20", 100, 9.80, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)
	assert.Nil(t, findInsight(insights, CategoryImprovement, "100m"))
}

func TestLiftLoadPRInsight(t *testing.T) {
	src := &fakeSource{liftSets: []models.LiftSetRecord{
		liftSetPoint("2026-02-01", "back squat", 140),
		liftSetPoint("2026-02-20", "back squat", 150),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)

	pr := findInsight(insights, CategoryImprovement, "back squat")
	require.NotNil(t, pr)
	assert.Equal(t, DomainLift, pr.Domain)
	assert.Equal(t, 150.0, pr.Value)
	assert.Equal(t, 140.0, pr.PreviousValue)
}

func TestVelocityAtLoadPRIsNotable(t *testing.T) {
	src := &fakeSource{liftReps: []models.LiftRepRecord{
		liftRepPoint("2026-02-01", "back squat", 140, 0.72),
		liftRepPoint("2026-02-20", "back squat", 140, 0.78),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)

	pr := findInsight(insights, CategoryImprovement, "back squat @ 140")
	require.NotNil(t, pr)
	assert.Equal(t, SeverityNotable, pr.Severity, "same-load velocity gains rank below outright PRs")
	assert.Equal(t, 0.78, pr.Value)
}

func TestMilestoneFiresExactlyAtThreshold(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

	tenth := &fakeSource{}
	for i := 0; i < 10; i++ {
		tenth.sprints = append(tenth.sprints,
			sprintPoint(uuid.New(), fmt.Sprintf("2026-01-%02d", i+1), 60, 7.5-float64(i)*0.01, models.WorkSprint))
	}
	insights, err := testEngine(tenth, now).Detect()
	require.NoError(t, err)
	milestone := findInsight(insights, CategoryMilestone, "60m")
	require.NotNil(t, milestone, "the 10th record must produce a milestone")
	assert.Equal(t, SeverityInfo, milestone.Severity)
	assert.Equal(t, 10.0, milestone.Value)

	eleventh := &fakeSource{sprints: append([]models.SprintRepRecord{}, tenth.sprints...)}
	eleventh.sprints = append(eleventh.sprints,
		sprintPoint(uuid.New(), "2026-01-11", 60, 7.39, models.WorkSprint))
	insights, err = testEngine(eleventh, now).Detect()
	require.NoError(t, err)
	assert.Nil(t, findInsight(insights, CategoryMilestone, "60m"), "the 11th record must not re-fire it")
}

func TestMeetMilestoneThresholds(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 5; i++ {
		src.races = append(src.races, racePoint(fmt.Sprintf("2026-01-%02d", i+1), 100, 11.5-float64(i)*0.1))
	}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)
	milestone := findInsight(insights, CategoryMilestone, "100m")
	require.NotNil(t, milestone, "meets hit their first milestone at 5 races")
	assert.Equal(t, DomainMeet, milestone.Domain)
}

func TestStagnationInsight(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-01-05", 60, 7.00, models.WorkSprint), // older best
		sprintPoint(uuid.New(), "2026-02-20", 60, 7.10, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-24", 60, 7.12, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-27", 60, 7.08, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)

	st := findInsight(insights, CategoryStagnation, "60m")
	require.NotNil(t, st, "three flat recent sessions against an older best reads as stagnation")
	assert.Equal(t, SeverityNotable, st.Severity)
	assert.Equal(t, 7.08, st.Value)
	assert.Equal(t, 7.00, st.PreviousValue)
}

func TestNoStagnationWhenImproving(t *testing.T) {
	src := &fakeSource{sprints: []models.SprintRepRecord{
		sprintPoint(uuid.New(), "2026-01-05", 60, 7.20, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-20", 60, 7.10, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-24", 60, 7.05, models.WorkSprint),
		sprintPoint(uuid.New(), "2026-02-27", 60, 7.00, models.WorkSprint),
	}}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)
	assert.Nil(t, findInsight(insights, CategoryStagnation, "60m"))
}

func TestInsightsSortedBySeverityThenRecency(t *testing.T) {
	src := &fakeSource{
		sprints: []models.SprintRepRecord{
			sprintPoint(uuid.New(), "2026-02-01", 100, 10.00, models.WorkSprint),
			sprintPoint(uuid.New(), "2026-02-20", 100, 9.80, models.WorkSprint), // significant PR
		},
		liftReps: []models.LiftRepRecord{
			liftRepPoint("2026-02-01", "back squat", 140, 0.72),
			liftRepPoint("2026-02-25", "back squat", 140, 0.78), // notable, more recent
		},
	}
	e := testEngine(src, time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local))

	insights, err := e.Detect()
	require.NoError(t, err)
	require.Len(t, insights, 2)
	assert.Equal(t, SeveritySignificant, insights[0].Severity, "severity outranks recency")
	assert.Equal(t, SeverityNotable, insights[1].Severity)
}
