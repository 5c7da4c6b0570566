// ABOUTME: Repository interface for the training data store.
// ABOUTME: Defines the contract the CLI, MCP, and analytics layers consume.
package storage

import (
	"github.com/tracklog/tracklog/internal/models"
)

// Repository defines the storage interface for training data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Session operations
	CreateSession(s *models.Session) error
	GetSession(idOrPrefix string) (*models.Session, error)
	GetSessionWithChildren(idOrPrefix string) (*models.Session, error)
	ListSessions(kind *models.SessionKind, limit int) ([]*models.Session, error)
	ListSessionsByStatus(kind models.SessionKind, status models.SessionStatus) ([]*models.Session, error)
	UpdateSession(idOrPrefix string, patch models.SessionPatch) error
	CompleteSession(idOrPrefix string) error
	ReopenSession(idOrPrefix string) error
	DeleteSession(idOrPrefix string) error

	// Set operations
	AddSprintSet(s *models.SprintSet) error
	AddLiftSet(s *models.LiftSet) error
	GetSprintSet(idOrPrefix string) (*models.SprintSet, error)
	GetLiftSet(idOrPrefix string) (*models.LiftSet, error)
	UpdateSprintSet(idOrPrefix string, patch models.SprintSetPatch) (*models.SprintSet, error)
	UpdateLiftSet(idOrPrefix string, patch models.LiftSetPatch) (*models.LiftSet, error)
	DeleteSprintSet(idOrPrefix string) error
	DeleteLiftSet(idOrPrefix string) error

	// Leaf operations
	AddSprintRep(r *models.SprintRep) error
	AddLiftRep(r *models.LiftRep) error
	AddRace(r *models.Race) error
	AddAuxEntry(e *models.AuxEntry) error
	GetSprintRep(idOrPrefix string) (*models.SprintRep, error)
	UpdateSprintRep(idOrPrefix string, patch models.SprintRepPatch) (*models.SprintRep, error)
	UpdateLiftRep(idOrPrefix string, patch models.LiftRepPatch) (*models.LiftRep, error)
	UpdateRace(idOrPrefix string, patch models.RacePatch) (*models.Race, error)
	UpdateAuxEntry(idOrPrefix string, patch models.AuxEntryPatch) (*models.AuxEntry, error)
	DeleteSprintRep(idOrPrefix string) error
	DeleteLiftRep(idOrPrefix string) error
	DeleteRace(idOrPrefix string) error
	DeleteAuxEntry(idOrPrefix string) error

	// Derived reads
	BestSprintRepAtDistance(distance float64) (*models.SprintRepRecord, error)
	BestRaceAtDistance(distance float64) (*models.RaceRecord, error)
	RecentExercises(limit int) ([]string, error)
	LastLoadForExercise(exercise string) (float64, error)

	// Full history scans for analytics and insight detection
	SprintRepHistory() ([]models.SprintRepRecord, error)
	LiftSetHistory() ([]models.LiftSetRecord, error)
	LiftRepHistory() ([]models.LiftRepRecord, error)
	RaceHistory() ([]models.RaceRecord, error)

	// Templates
	SnapshotTemplate(sessionIDOrPrefix, name string, description *string) (*models.Template, error)
	MaterializeTemplate(templateIDOrPrefix string) (*models.Session, error)
	GetTemplate(idOrPrefix string) (*models.Template, error)
	ListTemplates() ([]*models.Template, error)
	DeleteTemplate(idOrPrefix string) error

	// Preferences
	GetPreferences() (*models.Preferences, error)
	UpdatePreferences(patch models.PreferencesPatch) (*models.Preferences, error)

	// Export/Import
	ExportAll() (*Snapshot, error)
	ValidateSnapshot(snap *Snapshot) (problems, warnings []string)
	ImportAll(snap *Snapshot) error

	// Lifecycle
	SchemaVersion() (uint, error)
	Close() error
}
