// ABOUTME: SprintSet and LiftSet models, the sub-groupings within a session.
// ABOUTME: Sequence numbers are 1-based, unique within the parent, never reused.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SprintSet groups sprint reps within a sprint session.
type SprintSet struct {
	ID        uuid.UUID  `json:"id" yaml:"id"`
	SessionID uuid.UUID  `json:"session_id" yaml:"session_id"`
	Seq       int        `json:"seq" yaml:"seq"`
	Name      *string    `json:"name,omitempty" yaml:"name,omitempty"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	Reps []SprintRep `json:"reps,omitempty" yaml:"reps,omitempty"`
}

// NewSprintSet creates a sprint set for a session. Seq is assigned by storage.
func NewSprintSet(sessionID uuid.UUID) *SprintSet {
	return &SprintSet{
		ID:        uuid.New(),
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
}

// WithName sets an optional display name.
func (s *SprintSet) WithName(name string) *SprintSet {
	s.Name = &name
	return s
}

// LiftSet groups lift reps under one exercise at one load.
type LiftSet struct {
	ID        uuid.UUID  `json:"id" yaml:"id"`
	SessionID uuid.UUID  `json:"session_id" yaml:"session_id"`
	Seq       int        `json:"seq" yaml:"seq"`
	Exercise  string     `json:"exercise" yaml:"exercise"`
	Load      float64    `json:"load" yaml:"load"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	Reps []LiftRep `json:"reps,omitempty" yaml:"reps,omitempty"`
}

// NewLiftSet creates a lift set for a session. Seq is assigned by storage.
func NewLiftSet(sessionID uuid.UUID, exercise string, load float64) *LiftSet {
	return &LiftSet{
		ID:        uuid.New(),
		SessionID: sessionID,
		Exercise:  exercise,
		Load:      load,
		CreatedAt: time.Now(),
	}
}

// SprintSetPatch is a merge patch for sprint set fields.
type SprintSetPatch struct {
	Name *string
}

// LiftSetPatch is a merge patch for lift set fields.
type LiftSetPatch struct {
	Exercise *string
	Load     *float64
}
