// ABOUTME: Preferences singleton: defaults, favorites, and feature toggles.
// ABOUTME: Season start (Aug 1 by default) lives here so it stays overridable.
package models

import "time"

// Preferences is the single process-wide preferences record.
type Preferences struct {
	FavoriteDistances []float64       `json:"favorite_distances" yaml:"favorite_distances"`
	FavoriteExercises []string        `json:"favorite_exercises" yaml:"favorite_exercises"`
	DefaultRestSec    int             `json:"default_rest_sec" yaml:"default_rest_sec"`
	DefaultTiming     Timing          `json:"default_timing" yaml:"default_timing"`
	SeasonStartMonth  time.Month      `json:"season_start_month" yaml:"season_start_month"`
	SeasonStartDay    int             `json:"season_start_day" yaml:"season_start_day"`
	Toggles           map[string]bool `json:"toggles" yaml:"toggles"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// DefaultPreferences returns the initial preferences record.
func DefaultPreferences() *Preferences {
	return &Preferences{
		FavoriteDistances: []float64{30, 60, 100, 150, 200},
		FavoriteExercises: []string{"back squat", "power clean", "bench press"},
		DefaultRestSec:    DefaultRestSec,
		DefaultTiming:     TimingHand,
		SeasonStartMonth:  time.August,
		SeasonStartDay:    1,
		Toggles:           map[string]bool{},
	}
}

// SeasonStart returns the start of the most recently started season relative
// to now. With the default August 1 cutoff, a date in July belongs to the
// season that started the previous August.
func (p *Preferences) SeasonStart(now time.Time) time.Time {
	start := time.Date(now.Year(), p.SeasonStartMonth, p.SeasonStartDay, 0, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	return start
}

// PreferencesPatch is a merge patch for preferences. Nil fields are untouched.
type PreferencesPatch struct {
	FavoriteDistances *[]float64
	FavoriteExercises *[]string
	DefaultRestSec    *int
	DefaultTiming     *Timing
	SeasonStartMonth  *time.Month
	SeasonStartDay    *int
	Toggles           map[string]bool
}

// Apply merges the patch into a copy of p and returns it. Toggles merge by
// key rather than replacing the whole map.
func (patch PreferencesPatch) Apply(p Preferences) Preferences {
	if patch.FavoriteDistances != nil {
		p.FavoriteDistances = *patch.FavoriteDistances
	}
	if patch.FavoriteExercises != nil {
		p.FavoriteExercises = *patch.FavoriteExercises
	}
	if patch.DefaultRestSec != nil {
		p.DefaultRestSec = *patch.DefaultRestSec
	}
	if patch.DefaultTiming != nil {
		p.DefaultTiming = *patch.DefaultTiming
	}
	if patch.SeasonStartMonth != nil {
		p.SeasonStartMonth = *patch.SeasonStartMonth
	}
	if patch.SeasonStartDay != nil {
		p.SeasonStartDay = *patch.SeasonStartDay
	}
	if len(patch.Toggles) > 0 {
		merged := make(map[string]bool, len(p.Toggles)+len(patch.Toggles))
		for k, v := range p.Toggles {
			merged[k] = v
		}
		for k, v := range patch.Toggles {
			merged[k] = v
		}
		p.Toggles = merged
	}
	return p
}
