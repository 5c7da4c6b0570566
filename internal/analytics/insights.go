// ABOUTME: Rule-based insight detection: PRs, stagnation, milestones,
// ABOUTME: velocity-at-load improvements. Stateless full rescan per call.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Domain tags which slice of training an insight came from.
type Domain string

const (
	DomainSprint Domain = "sprint"
	DomainLift   Domain = "lift"
	DomainMeet   Domain = "meet"
)

// Category classifies what an insight is about.
type Category string

const (
	CategoryStagnation  Category = "stagnation"
	CategoryImprovement Category = "improvement"
	CategoryStreak      Category = "streak"
	CategoryPattern     Category = "pattern"
	CategoryMilestone   Category = "milestone"
)

// Severity orders insights for presentation.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityNotable     Severity = "notable"
	SeveritySignificant Severity = "significant"
)

var severityRank = map[Severity]int{
	SeverityInfo:        0,
	SeverityNotable:     1,
	SeveritySignificant: 2,
}

// Insight is one transient noteworthy event. Nothing here is persisted; the
// detector re-derives the full list from history on every call.
type Insight struct {
	Domain        Domain    `json:"domain"`
	Category      Category  `json:"category"`
	Severity      Severity  `json:"severity"`
	Subject       string    `json:"subject"` // "60m", "back squat", "back squat @ 140"
	Message       string    `json:"message"`
	Value         float64   `json:"value"`
	PreviousValue float64   `json:"previous_value,omitempty"`
	Date          time.Time `json:"date"`
}

// stagnationWindow is the trailing period a stagnation check looks at.
const stagnationWindow = 28 * 24 * time.Hour

var (
	sprintMilestones = []int{10, 25, 50, 100, 250, 500}
	liftMilestones   = []int{10, 25, 50, 100, 250, 500}
	meetMilestones   = []int{5, 10, 25, 50, 100}
)

// point is the shape all insight rules operate on: a dated value with a
// better-than ordering supplied by the rule.
type point struct {
	value float64
	day   time.Time
}

// Detect scans the complete history and returns the current insight list,
// sorted by severity then recency.
func (e *Engine) Detect() ([]Insight, error) {
	var insights []Insight
	now := e.now()

	sprints, err := e.src.SprintRepHistory()
	if err != nil {
		return nil, fmt.Errorf("detect insights: %w", err)
	}
	sprintGroups := make(map[string][]point)
	for _, r := range sprints {
		key := fmt.Sprintf("%gm", r.Distance)
		sprintGroups[key] = append(sprintGroups[key], point{value: r.TimeSec, day: r.Day()})
	}
	for subject, pts := range sprintGroups {
		insights = append(insights, prInsight(DomainSprint, subject, pts, lessIsBetter, SeveritySignificant, "s")...)
		insights = append(insights, stagnationInsight(DomainSprint, subject, pts, lessIsBetter, now)...)
		insights = append(insights, milestoneInsight(DomainSprint, subject, pts, sprintMilestones)...)
	}

	liftSets, err := e.src.LiftSetHistory()
	if err != nil {
		return nil, fmt.Errorf("detect insights: %w", err)
	}
	liftGroups := make(map[string][]point)
	for _, r := range liftSets {
		key := strings.ToLower(r.Exercise)
		liftGroups[key] = append(liftGroups[key], point{value: r.Load, day: r.Day()})
	}
	for subject, pts := range liftGroups {
		insights = append(insights, prInsight(DomainLift, subject, pts, moreIsBetter, SeveritySignificant, "kg")...)
		insights = append(insights, stagnationInsight(DomainLift, subject, pts, moreIsBetter, now)...)
		insights = append(insights, milestoneInsight(DomainLift, subject, pts, liftMilestones)...)
	}

	liftReps, err := e.src.LiftRepHistory()
	if err != nil {
		return nil, fmt.Errorf("detect insights: %w", err)
	}
	velocityGroups := make(map[string][]point)
	for _, r := range liftReps {
		key := fmt.Sprintf("%s @ %g", strings.ToLower(r.Exercise), r.Load)
		velocityGroups[key] = append(velocityGroups[key], point{value: r.PeakVelocity, day: r.Day()})
	}
	for subject, pts := range velocityGroups {
		insights = append(insights, prInsight(DomainLift, subject, pts, moreIsBetter, SeverityNotable, "m/s")...)
	}

	races, err := e.src.RaceHistory()
	if err != nil {
		return nil, fmt.Errorf("detect insights: %w", err)
	}
	raceGroups := make(map[string][]point)
	for _, r := range races {
		key := fmt.Sprintf("%gm", r.Distance)
		raceGroups[key] = append(raceGroups[key], point{value: r.TimeSec, day: r.Day()})
	}
	for subject, pts := range raceGroups {
		insights = append(insights, prInsight(DomainMeet, subject, pts, lessIsBetter, SeveritySignificant, "s")...)
		insights = append(insights, milestoneInsight(DomainMeet, subject, pts, meetMilestones)...)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		if severityRank[insights[i].Severity] != severityRank[insights[j].Severity] {
			return severityRank[insights[i].Severity] > severityRank[insights[j].Severity]
		}
		return insights[i].Date.After(insights[j].Date)
	})
	return insights, nil
}

func lessIsBetter(a, b float64) bool { return a < b }
func moreIsBetter(a, b float64) bool { return a > b }

// prInsight fires when the chronologically newest of ≥2 points is also the
// best, citing the previous best as the beaten value.
func prInsight(domain Domain, subject string, pts []point, better func(a, b float64) bool, severity Severity, unit string) []Insight {
	if len(pts) < 2 {
		return nil
	}
	newest := pts[len(pts)-1]
	prevBest := pts[0].value
	for _, p := range pts[1 : len(pts)-1] {
		if better(p.value, prevBest) {
			prevBest = p.value
		}
	}
	if !better(newest.value, prevBest) {
		return nil
	}
	return []Insight{{
		Domain:        domain,
		Category:      CategoryImprovement,
		Severity:      severity,
		Subject:       subject,
		Message:       fmt.Sprintf("new PR at %s: %g%s (previous %g%s)", subject, newest.value, unit, prevBest, unit),
		Value:         newest.value,
		PreviousValue: prevBest,
		Date:          newest.day,
	}}
}

// stagnationInsight fires when a subject has ≥3 points in the trailing four
// weeks, at least one older point, and the best recent value is no better
// than the best older one.
func stagnationInsight(domain Domain, subject string, pts []point, better func(a, b float64) bool, now time.Time) []Insight {
	cutoff := now.Add(-stagnationWindow)

	var recent, older []point
	for _, p := range pts {
		if p.day.After(cutoff) {
			recent = append(recent, p)
		} else {
			older = append(older, p)
		}
	}
	if len(recent) < 3 || len(older) == 0 {
		return nil
	}

	bestRecent := recent[0].value
	for _, p := range recent[1:] {
		if better(p.value, bestRecent) {
			bestRecent = p.value
		}
	}
	bestOlder := older[0].value
	for _, p := range older[1:] {
		if better(p.value, bestOlder) {
			bestOlder = p.value
		}
	}
	if better(bestRecent, bestOlder) {
		return nil
	}
	return []Insight{{
		Domain:        domain,
		Category:      CategoryStagnation,
		Severity:      SeverityNotable,
		Subject:       subject,
		Message:       fmt.Sprintf("no progress at %s in the last 4 weeks (best %g vs earlier %g)", subject, bestRecent, bestOlder),
		Value:         bestRecent,
		PreviousValue: bestOlder,
		Date:          recent[len(recent)-1].day,
	}}
}

// milestoneInsight fires only while the count sits exactly on a threshold, so
// the 10th record produces it and the 11th silently retires it.
func milestoneInsight(domain Domain, subject string, pts []point, thresholds []int) []Insight {
	for _, threshold := range thresholds {
		if len(pts) == threshold {
			return []Insight{{
				Domain:   domain,
				Category: CategoryMilestone,
				Severity: SeverityInfo,
				Subject:  subject,
				Message:  fmt.Sprintf("%d records logged at %s", threshold, subject),
				Value:    float64(threshold),
				Date:     pts[len(pts)-1].day,
			}}
		}
	}
	return nil
}
