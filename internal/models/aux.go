// ABOUTME: AuxEntry model for auxiliary training work (plyos, circuits, etc.).
// ABOUTME: Attaches directly to a session of any kind, not to a set.
package models

import (
	"time"

	"github.com/google/uuid"
)

// AuxCategory is the training-modality tag for auxiliary work.
type AuxCategory string

const (
	AuxPlyometric      AuxCategory = "plyometric"
	AuxMedball         AuxCategory = "medball"
	AuxCircuit         AuxCategory = "circuit"
	AuxHurdleMobility  AuxCategory = "hurdle_mobility"
	AuxCore            AuxCategory = "core"
	AuxGeneralStrength AuxCategory = "general_strength"
)

// AllAuxCategories returns all valid auxiliary categories.
var AllAuxCategories = []AuxCategory{
	AuxPlyometric, AuxMedball, AuxCircuit,
	AuxHurdleMobility, AuxCore, AuxGeneralStrength,
}

// IsValidAuxCategory checks if a string is a valid auxiliary category.
func IsValidAuxCategory(s string) bool {
	for _, c := range AllAuxCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// AuxMetric is the volume metric an auxiliary entry is measured in.
type AuxMetric string

const (
	AuxMetricContacts AuxMetric = "contacts"
	AuxMetricDistance AuxMetric = "distance"
	AuxMetricReps     AuxMetric = "reps"
	AuxMetricTime     AuxMetric = "time"
	AuxMetricSets     AuxMetric = "sets"
)

// AllAuxMetrics returns all valid auxiliary volume metrics.
var AllAuxMetrics = []AuxMetric{
	AuxMetricContacts, AuxMetricDistance, AuxMetricReps,
	AuxMetricTime, AuxMetricSets,
}

// IsValidAuxMetric checks if a string is a valid auxiliary metric.
func IsValidAuxMetric(s string) bool {
	for _, m := range AllAuxMetrics {
		if string(m) == s {
			return true
		}
	}
	return false
}

// AuxEntry is a unit of auxiliary work within a session.
type AuxEntry struct {
	ID          uuid.UUID   `json:"id" yaml:"id"`
	SessionID   uuid.UUID   `json:"session_id" yaml:"session_id"`
	Seq         int         `json:"seq" yaml:"seq"`
	Category    AuxCategory `json:"category" yaml:"category"`
	Name        string      `json:"name" yaml:"name"`
	Metric      AuxMetric   `json:"metric" yaml:"metric"`
	MetricValue float64     `json:"metric_value" yaml:"metric_value"`
	Intensity   *int        `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewAuxEntry creates an auxiliary entry. Seq is assigned by storage.
func NewAuxEntry(sessionID uuid.UUID, category AuxCategory, name string, metric AuxMetric, value float64) *AuxEntry {
	return &AuxEntry{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Category:    category,
		Name:        name,
		Metric:      metric,
		MetricValue: value,
		CreatedAt:   time.Now(),
	}
}

// WithIntensity sets the intensity percentage.
func (e *AuxEntry) WithIntensity(pct int) *AuxEntry {
	e.Intensity = &pct
	return e
}

// AuxEntryPatch is a merge patch for auxiliary entry fields.
type AuxEntryPatch struct {
	Category    *AuxCategory
	Name        *string
	Metric      *AuxMetric
	MetricValue *float64
	Intensity   *int
}

// Apply merges the patch into a copy of e and returns it.
func (p AuxEntryPatch) Apply(e AuxEntry) AuxEntry {
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Metric != nil {
		e.Metric = *p.Metric
	}
	if p.MetricValue != nil {
		e.MetricValue = *p.MetricValue
	}
	if p.Intensity != nil {
		e.Intensity = p.Intensity
	}
	return e
}
