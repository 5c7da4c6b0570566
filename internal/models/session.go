// ABOUTME: Session model covering sprint, lift, meet, and auxiliary training days.
// ABOUTME: One struct tagged by SessionKind; repositories dispatch on the tag.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionKind discriminates the four top-level training unit types.
type SessionKind string

const (
	KindSprint    SessionKind = "sprint"
	KindLift      SessionKind = "lift"
	KindMeet      SessionKind = "meet"
	KindAuxiliary SessionKind = "auxiliary"
)

// AllSessionKinds returns all valid session kinds.
var AllSessionKinds = []SessionKind{KindSprint, KindLift, KindMeet, KindAuxiliary}

// IsValidSessionKind checks if a string is a valid session kind.
func IsValidSessionKind(s string) bool {
	for _, k := range AllSessionKinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
)

// Venue is where a meet takes place. Wind readings are only valid outdoors.
type Venue string

const (
	VenueIndoor  Venue = "indoor"
	VenueOutdoor Venue = "outdoor"
)

// IsValidVenue checks if a string is a valid meet venue.
func IsValidVenue(s string) bool {
	return s == string(VenueIndoor) || s == string(VenueOutdoor)
}

// Timing is the timing precision tag: hand/stopwatch or fully-automatic.
type Timing string

const (
	TimingHand Timing = "hand"
	TimingFAT  Timing = "fat"
)

// IsValidTiming checks if a string is a valid timing tag.
func IsValidTiming(s string) bool {
	return s == string(TimingHand) || s == string(TimingFAT)
}

// DateLayout is the calendar-day format used throughout storage.
const DateLayout = "2006-01-02"

// Session is a top-level training unit for one calendar date.
// Venue and Timing are only populated for meets; the timing tag is fixed
// for the whole meet and applies to every child race.
type Session struct {
	ID        uuid.UUID     `json:"id" yaml:"id"`
	Kind      SessionKind   `json:"kind" yaml:"kind"`
	Date      string        `json:"date" yaml:"date"`
	Title     *string       `json:"title,omitempty" yaml:"title,omitempty"`
	Location  *string       `json:"location,omitempty" yaml:"location,omitempty"`
	Notes     *string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status    SessionStatus `json:"status" yaml:"status"`
	Venue     *Venue        `json:"venue,omitempty" yaml:"venue,omitempty"`
	Timing    *Timing       `json:"timing,omitempty" yaml:"timing,omitempty"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	// Children, populated by GetSessionWithChildren.
	SprintSets []SprintSet `json:"sprint_sets,omitempty" yaml:"sprint_sets,omitempty"`
	LiftSets   []LiftSet   `json:"lift_sets,omitempty" yaml:"lift_sets,omitempty"`
	Races      []Race      `json:"races,omitempty" yaml:"races,omitempty"`
	AuxEntries []AuxEntry  `json:"aux_entries,omitempty" yaml:"aux_entries,omitempty"`
}

// NewSession creates a new active session of the given kind for a calendar date.
func NewSession(kind SessionKind, date string) *Session {
	return &Session{
		ID:        uuid.New(),
		Kind:      kind,
		Date:      date,
		Status:    StatusActive,
		CreatedAt: time.Now(),
	}
}

// NewMeet creates a new active meet with its venue and meet-wide timing tag.
func NewMeet(date string, venue Venue, timing Timing) *Session {
	s := NewSession(KindMeet, date)
	s.Venue = &venue
	s.Timing = &timing
	return s
}

// WithTitle sets a free-text title.
func (s *Session) WithTitle(title string) *Session {
	s.Title = &title
	return s
}

// WithLocation sets a free-text location.
func (s *Session) WithLocation(location string) *Session {
	s.Location = &location
	return s
}

// WithNotes sets notes on the session.
func (s *Session) WithNotes(notes string) *Session {
	s.Notes = &notes
	return s
}

// SessionPatch is a merge patch for mutable session fields.
// Nil fields are left untouched.
type SessionPatch struct {
	Date     *string
	Title    *string
	Location *string
	Notes    *string
}
