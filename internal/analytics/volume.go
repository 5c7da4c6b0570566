// ABOUTME: Volume aggregation: distance-equivalent meters split sprint vs tempo,
// ABOUTME: rolled up per session, per calendar day, and per ISO week.
package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklog/tracklog/internal/models"
)

// Volume is summed distance-equivalent training load split by work type.
type Volume struct {
	Sprint float64 `json:"sprint"`
	Tempo  float64 `json:"tempo"`
}

// Total returns the combined volume across work types.
func (v Volume) Total() float64 {
	return v.Sprint + v.Tempo
}

func (v *Volume) add(r models.SprintRepRecord) {
	switch r.WorkType {
	case models.WorkTempo:
		v.Tempo += r.Distance
	default:
		v.Sprint += r.Distance
	}
}

// WeekVolume is one ISO week's volume with week-over-week change.
type WeekVolume struct {
	Year  int       `json:"year"`
	Week  int       `json:"week"`
	Start time.Time `json:"start"` // Monday of the ISO week
	Volume
	// ChangePercent compares against the preceding week's total; 0 when the
	// previous week is missing or empty, never NaN.
	ChangePercent float64 `json:"change_percent"`
}

// SessionVolume sums a single session's sprint rep distances.
func (e *Engine) SessionVolume(sessionID uuid.UUID) (Volume, error) {
	records, err := e.src.SprintRepHistory()
	if err != nil {
		return Volume{}, fmt.Errorf("session volume: %w", err)
	}

	var v Volume
	for _, r := range records {
		if r.SessionID == sessionID {
			v.add(r)
		}
	}
	return v, nil
}

// DayVolume sums every session's volume on one calendar date (YYYY-MM-DD).
func (e *Engine) DayVolume(date string) (Volume, error) {
	records, err := e.src.SprintRepHistory()
	if err != nil {
		return Volume{}, fmt.Errorf("day volume: %w", err)
	}

	var v Volume
	for _, r := range records {
		if r.Date == date {
			v.add(r)
		}
	}
	return v, nil
}

// WeeklyVolume returns the most recent n ISO weeks, oldest first, ending with
// the current week. Weeks with no training appear as zero rows so the
// week-over-week series has no holes.
func (e *Engine) WeeklyVolume(n int) ([]WeekVolume, error) {
	if n <= 0 {
		n = 4
	}
	records, err := e.src.SprintRepHistory()
	if err != nil {
		return nil, fmt.Errorf("weekly volume: %w", err)
	}

	type weekKey struct{ year, week int }
	byWeek := make(map[weekKey]Volume)
	for _, r := range records {
		y, w := r.Day().ISOWeek()
		v := byWeek[weekKey{y, w}]
		v.add(r)
		byWeek[weekKey{y, w}] = v
	}

	// Walk backwards from the current week's Monday.
	monday := isoWeekStart(e.now())
	weeks := make([]WeekVolume, n)
	for i := n - 1; i >= 0; i-- {
		y, w := monday.ISOWeek()
		weeks[i] = WeekVolume{
			Year:   y,
			Week:   w,
			Start:  monday,
			Volume: byWeek[weekKey{y, w}],
		}
		monday = monday.AddDate(0, 0, -7)
	}

	for i := range weeks {
		if i == 0 {
			continue
		}
		prev := weeks[i-1].Total()
		if prev == 0 {
			continue
		}
		weeks[i].ChangePercent = (weeks[i].Total() - prev) / prev * 100
	}
	return weeks, nil
}

// isoWeekStart returns the Monday of t's ISO week at midnight local time.
func isoWeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, 1-weekday)
}
