// ABOUTME: Flat history records joining leaves with their session context.
// ABOUTME: These feed the analytics, volume, and insight scans.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SprintRepRecord is a sprint rep joined with its set and session context.
type SprintRepRecord struct {
	RepID     uuid.UUID
	SetID     uuid.UUID
	SessionID uuid.UUID
	Date      string // session calendar date, YYYY-MM-DD
	Distance  float64
	TimeSec   float64
	Timing    Timing
	IsFly     bool
	FlyIn     *int
	WorkType  WorkType
	CreatedAt time.Time
}

// Day parses the record's session date. A record with an unparseable date is
// treated as recorded on its creation day.
func (r SprintRepRecord) Day() time.Time {
	d, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
	if err != nil {
		return r.CreatedAt
	}
	return d
}

// LiftSetRecord is a lift set joined with its session context.
type LiftSetRecord struct {
	SetID     uuid.UUID
	SessionID uuid.UUID
	Date      string
	Exercise  string
	Load      float64
	CreatedAt time.Time
}

// Day parses the record's session date, falling back to creation time.
func (r LiftSetRecord) Day() time.Time {
	d, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
	if err != nil {
		return r.CreatedAt
	}
	return d
}

// LiftRepRecord is a measured lift rep joined with its set's exercise and
// load. Unmeasured reps (nil velocity) are excluded from history scans.
type LiftRepRecord struct {
	RepID        uuid.UUID
	SetID        uuid.UUID
	SessionID    uuid.UUID
	Date         string
	Exercise     string
	Load         float64
	PeakVelocity float64
	CreatedAt    time.Time
}

// Day parses the record's session date, falling back to creation time.
func (r LiftRepRecord) Day() time.Time {
	d, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
	if err != nil {
		return r.CreatedAt
	}
	return d
}

// RaceRecord is a race joined with its meet context.
type RaceRecord struct {
	RaceID    uuid.UUID
	MeetID    uuid.UUID
	Date      string
	Distance  float64
	Round     Round
	TimeSec   float64
	Wind      *float64
	Venue     Venue
	Timing    Timing
	CreatedAt time.Time
}

// Day parses the record's meet date, falling back to creation time.
func (r RaceRecord) Day() time.Time {
	d, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
	if err != nil {
		return r.CreatedAt
	}
	return d
}
