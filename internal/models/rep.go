// ABOUTME: SprintRep and LiftRep leaf measurement models.
// ABOUTME: LiftRep.PeakVelocity is nullable; nil means "not measured", not zero.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkType splits sprint volume into sprint and tempo work.
type WorkType string

const (
	WorkSprint WorkType = "sprint"
	WorkTempo  WorkType = "tempo"
)

// DefaultRestSec is the default rest-after duration for a sprint rep.
const DefaultRestSec = 180

// FlyInDistances are the only valid fly-in distances for fly reps, in meters.
var FlyInDistances = []int{10, 20, 30}

// IsValidFlyIn reports whether d is a valid fly-in distance.
func IsValidFlyIn(d int) bool {
	for _, v := range FlyInDistances {
		if v == d {
			return true
		}
	}
	return false
}

// SprintRep is a single timed run within a sprint set.
type SprintRep struct {
	ID        uuid.UUID  `json:"id" yaml:"id"`
	SetID     uuid.UUID  `json:"set_id" yaml:"set_id"`
	Seq       int        `json:"seq" yaml:"seq"`
	Distance  float64    `json:"distance" yaml:"distance"`
	TimeSec   float64    `json:"time_sec" yaml:"time_sec"`
	Timing    Timing     `json:"timing" yaml:"timing"`
	RestSec   int        `json:"rest_sec" yaml:"rest_sec"`
	IsFly     bool       `json:"is_fly" yaml:"is_fly"`
	FlyIn     *int       `json:"fly_in,omitempty" yaml:"fly_in,omitempty"`
	Intensity *int       `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	WorkType  WorkType   `json:"work_type" yaml:"work_type"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewSprintRep creates a sprint rep with defaults. Seq is assigned by storage.
func NewSprintRep(setID uuid.UUID, distance, timeSec float64) *SprintRep {
	return &SprintRep{
		ID:        uuid.New(),
		SetID:     setID,
		Distance:  distance,
		TimeSec:   timeSec,
		Timing:    TimingHand,
		RestSec:   DefaultRestSec,
		WorkType:  WorkSprint,
		CreatedAt: time.Now(),
	}
}

// WithTiming sets the timing precision tag.
func (r *SprintRep) WithTiming(t Timing) *SprintRep {
	r.Timing = t
	return r
}

// WithRest sets the rest-after duration in seconds.
func (r *SprintRep) WithRest(sec int) *SprintRep {
	r.RestSec = sec
	return r
}

// WithFly marks the rep as a fly rep with the given fly-in distance.
func (r *SprintRep) WithFly(flyIn int) *SprintRep {
	r.IsFly = true
	r.FlyIn = &flyIn
	return r
}

// WithIntensity sets the intensity percentage.
func (r *SprintRep) WithIntensity(pct int) *SprintRep {
	r.Intensity = &pct
	return r
}

// WithWorkType sets the work type tag.
func (r *SprintRep) WithWorkType(wt WorkType) *SprintRep {
	r.WorkType = wt
	return r
}

// SprintRepPatch is a merge patch for sprint rep fields. Nil fields are left
// untouched. Setting IsFly to false clears FlyIn in the same patch so a stale
// fly-in distance never survives a fly-to-non-fly edit.
type SprintRepPatch struct {
	Distance  *float64
	TimeSec   *float64
	Timing    *Timing
	RestSec   *int
	IsFly     *bool
	FlyIn     *int
	Intensity *int
	WorkType  *WorkType
}

// Apply merges the patch into a copy of r and returns it.
func (p SprintRepPatch) Apply(r SprintRep) SprintRep {
	if p.Distance != nil {
		r.Distance = *p.Distance
	}
	if p.TimeSec != nil {
		r.TimeSec = *p.TimeSec
	}
	if p.Timing != nil {
		r.Timing = *p.Timing
	}
	if p.RestSec != nil {
		r.RestSec = *p.RestSec
	}
	if p.IsFly != nil {
		r.IsFly = *p.IsFly
	}
	if p.FlyIn != nil {
		r.FlyIn = p.FlyIn
	}
	if p.Intensity != nil {
		r.Intensity = p.Intensity
	}
	if p.WorkType != nil {
		r.WorkType = *p.WorkType
	}
	// A fly-to-non-fly edit must not leave the old fly-in distance behind.
	if !r.IsFly {
		r.FlyIn = nil
	}
	return r
}

// LiftRep is a single rep within a lift set. PeakVelocity is measured in m/s
// by a bar-speed device; nil means the rep was not measured.
type LiftRep struct {
	ID           uuid.UUID  `json:"id" yaml:"id"`
	SetID        uuid.UUID  `json:"set_id" yaml:"set_id"`
	Seq          int        `json:"seq" yaml:"seq"`
	PeakVelocity *float64   `json:"peak_velocity" yaml:"peak_velocity"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewLiftRep creates an unmeasured lift rep. Seq is assigned by storage.
func NewLiftRep(setID uuid.UUID) *LiftRep {
	return &LiftRep{
		ID:        uuid.New(),
		SetID:     setID,
		CreatedAt: time.Now(),
	}
}

// WithVelocity sets the measured peak velocity.
func (r *LiftRep) WithVelocity(v float64) *LiftRep {
	r.PeakVelocity = &v
	return r
}

// LiftRepPatch is a merge patch for lift rep fields. ClearVelocity resets
// PeakVelocity to "not measured", which is distinct from any numeric value.
type LiftRepPatch struct {
	PeakVelocity  *float64
	ClearVelocity bool
}

// Apply merges the patch into a copy of r and returns it.
func (p LiftRepPatch) Apply(r LiftRep) LiftRep {
	if p.PeakVelocity != nil {
		r.PeakVelocity = p.PeakVelocity
	}
	if p.ClearVelocity {
		r.PeakVelocity = nil
	}
	return r
}
