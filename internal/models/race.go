// ABOUTME: Race model, the leaf measurement under a meet session.
// ABOUTME: Wind readings are only meaningful when the parent meet is outdoor.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Round is the competition round of a race.
type Round string

const (
	RoundHeat  Round = "heat"
	RoundSemi  Round = "semi"
	RoundFinal Round = "final"
)

// AllRounds returns all valid rounds.
var AllRounds = []Round{RoundHeat, RoundSemi, RoundFinal}

// IsValidRound checks if a string is a valid round tag.
func IsValidRound(s string) bool {
	for _, r := range AllRounds {
		if string(r) == s {
			return true
		}
	}
	return false
}

// Race is a single race within a meet. Timing precision comes from the parent
// meet and is not stored per race.
type Race struct {
	ID        uuid.UUID  `json:"id" yaml:"id"`
	MeetID    uuid.UUID  `json:"meet_id" yaml:"meet_id"`
	Seq       int        `json:"seq" yaml:"seq"`
	Distance  float64    `json:"distance" yaml:"distance"`
	Round     Round      `json:"round" yaml:"round"`
	TimeSec   float64    `json:"time_sec" yaml:"time_sec"`
	Wind      *float64   `json:"wind,omitempty" yaml:"wind,omitempty"`
	Place     *int       `json:"place,omitempty" yaml:"place,omitempty"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewRace creates a race for a meet. Seq is assigned by storage.
func NewRace(meetID uuid.UUID, distance float64, round Round, timeSec float64) *Race {
	return &Race{
		ID:        uuid.New(),
		MeetID:    meetID,
		Distance:  distance,
		Round:     round,
		TimeSec:   timeSec,
		CreatedAt: time.Now(),
	}
}

// WithWind sets the wind reading in m/s.
func (r *Race) WithWind(w float64) *Race {
	r.Wind = &w
	return r
}

// WithPlace sets the finishing place.
func (r *Race) WithPlace(p int) *Race {
	r.Place = &p
	return r
}

// RacePatch is a merge patch for race fields. ClearWind removes the wind
// reading entirely.
type RacePatch struct {
	Distance  *float64
	Round     *Round
	TimeSec   *float64
	Wind      *float64
	ClearWind bool
	Place     *int
}

// Apply merges the patch into a copy of r and returns it.
func (p RacePatch) Apply(r Race) Race {
	if p.Distance != nil {
		r.Distance = *p.Distance
	}
	if p.Round != nil {
		r.Round = *p.Round
	}
	if p.TimeSec != nil {
		r.TimeSec = *p.TimeSec
	}
	if p.Wind != nil {
		r.Wind = p.Wind
	}
	if p.ClearWind {
		r.Wind = nil
	}
	if p.Place != nil {
		r.Place = p.Place
	}
	return r
}
