// ABOUTME: Trend views: per-distance sprint/meet trends, per-exercise lift trends,
// ABOUTME: rolling windows, and summary rows with a simple direction classifier.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

// Rolling window lengths in days.
var rollingWindows = []int{7, 14, 30}

// velocitySeriesLen caps the global peak-velocity series per exercise.
const velocitySeriesLen = 20

// RollingWindow is the mean over a trailing window compared against the
// immediately preceding window of equal length.
type RollingWindow struct {
	Days          int     `json:"days"`
	Count         int     `json:"count"`
	Mean          float64 `json:"mean"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// Direction is a coarse trend classification.
type Direction string

const (
	Improving Direction = "improving"
	Declining Direction = "declining"
	Stable    Direction = "stable"
)

// deadBandPercent is the ± band around zero change classified as stable.
const deadBandPercent = 2.0

// SprintTrend is the per-distance sprint trend view.
type SprintTrend struct {
	Distance float64                  `json:"distance"`
	Best     *models.SprintRepRecord  `json:"best,omitempty"`
	Points   []models.SprintRepRecord `json:"points"`
	Windows  []RollingWindow          `json:"windows"`
}

// SprintDistanceTrend computes the trend view for one sprint distance.
func (e *Engine) SprintDistanceTrend(distance float64) (*SprintTrend, error) {
	records, err := e.src.SprintRepHistory()
	if err != nil {
		return nil, fmt.Errorf("sprint trend: %w", err)
	}

	trend := &SprintTrend{Distance: distance}
	for _, r := range records {
		if r.Distance != distance {
			continue
		}
		trend.Points = append(trend.Points, r)
		if trend.Best == nil || r.TimeSec < trend.Best.TimeSec {
			best := r
			trend.Best = &best
		}
	}

	now := e.now()
	for _, days := range rollingWindows {
		trend.Windows = append(trend.Windows, rollingWindow(trend.Points, now, days))
	}
	return trend, nil
}

// rollingWindow compares the mean of the trailing window against the preceding
// window of equal length. When no point falls in the previous window, the
// previous mean is taken equal to the current one, so sparse data reports zero
// change instead of a division artifact.
func rollingWindow(points []models.SprintRepRecord, now time.Time, days int) RollingWindow {
	windowStart := now.AddDate(0, 0, -days)
	prevStart := now.AddDate(0, 0, -2*days)

	var curSum, prevSum float64
	var curN, prevN int
	for _, p := range points {
		day := p.Day()
		switch {
		case day.After(windowStart):
			curSum += p.TimeSec
			curN++
		case day.After(prevStart):
			prevSum += p.TimeSec
			prevN++
		}
	}

	w := RollingWindow{Days: days, Count: curN}
	if curN == 0 {
		return w
	}
	w.Mean = curSum / float64(curN)

	prevMean := w.Mean
	if prevN > 0 {
		prevMean = prevSum / float64(prevN)
	}
	w.Change = w.Mean - prevMean
	if prevMean != 0 {
		w.ChangePercent = w.Change / prevMean * 100
	}
	return w
}

// LoadVelocity is the best recorded bar speed at one load.
type LoadVelocity struct {
	Load         float64 `json:"load"`
	PeakVelocity float64 `json:"peak_velocity"`
}

// LiftTrend is the per-exercise lift trend view.
type LiftTrend struct {
	Exercise       string                 `json:"exercise"`
	MaxLoad        float64                `json:"max_load"`
	MaxLoadDate    string                 `json:"max_load_date,omitempty"`
	VelocityByLoad []LoadVelocity         `json:"velocity_by_load,omitempty"`
	VelocitySeries []models.LiftRepRecord `json:"velocity_series,omitempty"`
}

// LiftExerciseTrend computes the trend view for one exercise. Matching is
// case-insensitive.
func (e *Engine) LiftExerciseTrend(exercise string) (*LiftTrend, error) {
	sets, err := e.src.LiftSetHistory()
	if err != nil {
		return nil, fmt.Errorf("lift trend: %w", err)
	}
	reps, err := e.src.LiftRepHistory()
	if err != nil {
		return nil, fmt.Errorf("lift trend: %w", err)
	}

	trend := &LiftTrend{Exercise: exercise}
	for _, s := range sets {
		if !strings.EqualFold(s.Exercise, exercise) {
			continue
		}
		if s.Load > trend.MaxLoad {
			trend.MaxLoad = s.Load
			trend.MaxLoadDate = s.Date
		}
	}

	bestAtLoad := make(map[float64]float64)
	for _, r := range reps {
		if !strings.EqualFold(r.Exercise, exercise) {
			continue
		}
		if r.PeakVelocity > bestAtLoad[r.Load] {
			bestAtLoad[r.Load] = r.PeakVelocity
		}
		trend.VelocitySeries = append(trend.VelocitySeries, r)
	}

	for load, v := range bestAtLoad {
		trend.VelocityByLoad = append(trend.VelocityByLoad, LoadVelocity{Load: load, PeakVelocity: v})
	}
	sort.Slice(trend.VelocityByLoad, func(i, j int) bool {
		return trend.VelocityByLoad[i].Load < trend.VelocityByLoad[j].Load
	})

	// History is oldest-first; keep only the newest points.
	if len(trend.VelocitySeries) > velocitySeriesLen {
		trend.VelocitySeries = trend.VelocitySeries[len(trend.VelocitySeries)-velocitySeriesLen:]
	}
	return trend, nil
}

// MeetTrend is the per-distance race trend view.
type MeetTrend struct {
	Distance   float64            `json:"distance"`
	PR         *models.RaceRecord `json:"pr,omitempty"`
	SeasonBest *models.RaceRecord `json:"season_best,omitempty"`
	// LastDeltaVsPR is the most recent race's time minus the all-time PR;
	// zero or negative means at or ahead of the lifetime best.
	LastDeltaVsPR float64 `json:"last_delta_vs_pr"`
}

// MeetDistanceTrend computes the race trend for one distance. The season
// boundary comes from preferences (August 1 by default).
func (e *Engine) MeetDistanceTrend(distance float64) (*MeetTrend, error) {
	races, err := e.src.RaceHistory()
	if err != nil {
		return nil, fmt.Errorf("meet trend: %w", err)
	}
	prefs, err := e.src.GetPreferences()
	if err != nil {
		return nil, fmt.Errorf("meet trend: %w", err)
	}
	seasonStart := prefs.SeasonStart(e.now())

	trend := &MeetTrend{Distance: distance}
	var latest *models.RaceRecord
	for i := range races {
		r := races[i]
		if r.Distance != distance {
			continue
		}
		if trend.PR == nil || r.TimeSec < trend.PR.TimeSec {
			pr := r
			trend.PR = &pr
		}
		if !r.Day().Before(seasonStart) && (trend.SeasonBest == nil || r.TimeSec < trend.SeasonBest.TimeSec) {
			sb := r
			trend.SeasonBest = &sb
		}
		last := r
		latest = &last
	}

	if latest != nil && trend.PR != nil {
		trend.LastDeltaVsPR = latest.TimeSec - trend.PR.TimeSec
	}
	return trend, nil
}

// SummaryRow is one distance's or exercise's line in a summary view.
type SummaryRow struct {
	Key       string    `json:"key"` // formatted distance or exercise name
	Count     int       `json:"count"`
	Best      float64   `json:"best"`
	Latest    float64   `json:"latest"`
	Direction Direction `json:"direction"`
}

// SprintSummary returns one row per sprint distance, ordered by distance.
func (e *Engine) SprintSummary() ([]SummaryRow, error) {
	records, err := e.src.SprintRepHistory()
	if err != nil {
		return nil, fmt.Errorf("sprint summary: %w", err)
	}

	byDistance := make(map[float64][]float64)
	var distances []float64
	for _, r := range records {
		if _, seen := byDistance[r.Distance]; !seen {
			distances = append(distances, r.Distance)
		}
		byDistance[r.Distance] = append(byDistance[r.Distance], r.TimeSec)
	}
	sort.Float64s(distances)

	var rows []SummaryRow
	for _, dist := range distances {
		times := byDistance[dist]
		best := times[0]
		for _, t := range times {
			if t < best {
				best = t
			}
		}
		rows = append(rows, SummaryRow{
			Key:       fmt.Sprintf("%gm", dist),
			Count:     len(times),
			Best:      best,
			Latest:    times[len(times)-1],
			Direction: classify(times, true),
		})
	}
	return rows, nil
}

// LiftSummary returns one row per exercise, ordered by name.
func (e *Engine) LiftSummary() ([]SummaryRow, error) {
	records, err := e.src.LiftSetHistory()
	if err != nil {
		return nil, fmt.Errorf("lift summary: %w", err)
	}

	byExercise := make(map[string][]float64)
	var names []string
	for _, r := range records {
		key := strings.ToLower(r.Exercise)
		if _, seen := byExercise[key]; !seen {
			names = append(names, key)
		}
		byExercise[key] = append(byExercise[key], r.Load)
	}
	sort.Strings(names)

	var rows []SummaryRow
	for _, name := range names {
		loads := byExercise[name]
		best := loads[0]
		for _, l := range loads {
			if l > best {
				best = l
			}
		}
		rows = append(rows, SummaryRow{
			Key:       name,
			Count:     len(loads),
			Best:      best,
			Latest:    loads[len(loads)-1],
			Direction: classify(loads, false),
		})
	}
	return rows, nil
}

// classify compares the mean of the 3 newest values against the mean of the 3
// oldest, with a ±2% dead band around stable. Values are chronological, oldest
// first. lowerIsBetter flips the sign for time-based series.
func classify(values []float64, lowerIsBetter bool) Direction {
	if len(values) < 2 {
		return Stable
	}
	n := 3
	if len(values) < n {
		n = len(values)
	}

	var oldSum, newSum float64
	for _, v := range values[:n] {
		oldSum += v
	}
	for _, v := range values[len(values)-n:] {
		newSum += v
	}
	oldMean := oldSum / float64(n)
	newMean := newSum / float64(n)
	if oldMean == 0 {
		return Stable
	}

	percent := (newMean - oldMean) / oldMean * 100
	if lowerIsBetter {
		percent = -percent
	}
	switch {
	case percent > deadBandPercent:
		return Improving
	case percent < -deadBandPercent:
		return Declining
	default:
		return Stable
	}
}
