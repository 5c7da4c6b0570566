// ABOUTME: Analytics engine over the training history: volume, trends, insights.
// ABOUTME: Read-only and recomputed per call; personal-scale data needs no cache.
package analytics

import (
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

// Source is the slice of the repository the analytics engine reads from.
// *storage.DB satisfies it.
type Source interface {
	SprintRepHistory() ([]models.SprintRepRecord, error)
	LiftSetHistory() ([]models.LiftSetRecord, error)
	LiftRepHistory() ([]models.LiftRepRecord, error)
	RaceHistory() ([]models.RaceRecord, error)
	GetPreferences() (*models.Preferences, error)
}

// Engine computes analytics views on demand. It holds no state between calls.
type Engine struct {
	src Source
	now func() time.Time
}

// New creates an analytics engine over a history source.
func New(src Source) *Engine {
	return &Engine{src: src, now: time.Now}
}
