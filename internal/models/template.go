// ABOUTME: SessionTemplate models: reusable structural snapshots of sessions.
// ABOUTME: Templates copy structure only; outcome values are never snapshotted.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Template is a named structural snapshot of a completed session. It records
// sets (and, for sprint, rep structure) without outcome values, plus a use
// counter bumped each time it is materialized into a new session.
type Template struct {
	ID          uuid.UUID   `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description *string     `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        SessionKind `json:"kind" yaml:"kind"`
	UseCount    int         `json:"use_count" yaml:"use_count"`
	LastUsedAt  *time.Time  `json:"last_used_at,omitempty" yaml:"last_used_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`

	Sets []TemplateSet `json:"sets,omitempty" yaml:"sets,omitempty"`
}

// NewTemplate creates a template shell. Sets are attached by the snapshotter.
func NewTemplate(name string, kind SessionKind) *Template {
	return &Template{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// WithDescription sets a free-text description.
func (t *Template) WithDescription(desc string) *Template {
	t.Description = &desc
	return t
}

// TemplateSet is the structural copy of one set. For lift templates Exercise,
// Load, and RepCount are populated; for sprint templates Name and child Reps.
type TemplateSet struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	TemplateID uuid.UUID `json:"template_id" yaml:"template_id"`
	Seq        int       `json:"seq" yaml:"seq"`
	Name       *string   `json:"name,omitempty" yaml:"name,omitempty"`
	Exercise   *string   `json:"exercise,omitempty" yaml:"exercise,omitempty"`
	Load       *float64  `json:"load,omitempty" yaml:"load,omitempty"`
	RepCount   int       `json:"rep_count" yaml:"rep_count"`

	Reps []TemplateRep `json:"reps,omitempty" yaml:"reps,omitempty"`
}

// TemplateRep is the structural copy of one sprint rep: distance, timing,
// rest, fly, intensity, and work type, with the time deliberately dropped.
type TemplateRep struct {
	ID            uuid.UUID `json:"id" yaml:"id"`
	TemplateSetID uuid.UUID `json:"template_set_id" yaml:"template_set_id"`
	Seq           int       `json:"seq" yaml:"seq"`
	Distance      float64   `json:"distance" yaml:"distance"`
	Timing        Timing    `json:"timing" yaml:"timing"`
	RestSec       int       `json:"rest_sec" yaml:"rest_sec"`
	IsFly         bool      `json:"is_fly" yaml:"is_fly"`
	FlyIn         *int      `json:"fly_in,omitempty" yaml:"fly_in,omitempty"`
	Intensity     *int      `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	WorkType      WorkType  `json:"work_type" yaml:"work_type"`
}
