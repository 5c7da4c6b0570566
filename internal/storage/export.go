// ABOUTME: Full-dataset snapshot export and import.
// ABOUTME: Import clears every table and replaces it with the snapshot in one tx.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tracklog/tracklog/internal/models"
)

// SnapshotFormatVersion is the snapshot envelope version. Bumped only when the
// envelope shape itself changes; table additions ride on SchemaVersion.
const SnapshotFormatVersion = "1.0"

// Snapshot is the complete dataset as flat per-table arrays. Sessions are
// split by kind so a reader can tell meets from training days without
// inspecting each record.
type Snapshot struct {
	FormatVersion string    `json:"format_version" yaml:"format_version"`
	ExportedAt    time.Time `json:"exported_at" yaml:"exported_at"`
	SchemaVersion uint      `json:"schema_version" yaml:"schema_version"`

	SprintSessions []models.Session `json:"sprint_sessions" yaml:"sprint_sessions"`
	LiftSessions   []models.Session `json:"lift_sessions" yaml:"lift_sessions"`
	Meets          []models.Session `json:"meets" yaml:"meets"`
	AuxSessions    []models.Session `json:"aux_sessions" yaml:"aux_sessions"`

	SprintSets []models.SprintSet `json:"sprint_sets" yaml:"sprint_sets"`
	LiftSets   []models.LiftSet   `json:"lift_sets" yaml:"lift_sets"`
	SprintReps []models.SprintRep `json:"sprint_reps" yaml:"sprint_reps"`
	LiftReps   []models.LiftRep   `json:"lift_reps" yaml:"lift_reps"`
	Races      []models.Race      `json:"races" yaml:"races"`
	AuxEntries []models.AuxEntry  `json:"aux_entries" yaml:"aux_entries"`

	Templates    []models.Template    `json:"templates" yaml:"templates"`
	TemplateSets []models.TemplateSet `json:"template_sets" yaml:"template_sets"`
	TemplateReps []models.TemplateRep `json:"template_reps" yaml:"template_reps"`

	Preferences *models.Preferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// ExportAll reads the entire dataset into a snapshot.
func (d *DB) ExportAll() (*Snapshot, error) {
	version, err := d.SchemaVersion()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	snap := &Snapshot{
		FormatVersion: SnapshotFormatVersion,
		ExportedAt:    time.Now(),
		SchemaVersion: version,
	}

	sessions, err := d.ListSessions(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	for _, sess := range sessions {
		flat := *sess
		flat.SprintSets, flat.LiftSets, flat.Races, flat.AuxEntries = nil, nil, nil, nil

		switch sess.Kind {
		case models.KindSprint:
			snap.SprintSessions = append(snap.SprintSessions, flat)
		case models.KindLift:
			snap.LiftSessions = append(snap.LiftSessions, flat)
		case models.KindMeet:
			snap.Meets = append(snap.Meets, flat)
		case models.KindAuxiliary:
			snap.AuxSessions = append(snap.AuxSessions, flat)
		}

		id := sess.ID.String()
		switch sess.Kind {
		case models.KindSprint:
			sets, err := d.listSprintSets(id)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			snap.SprintSets = append(snap.SprintSets, sets...)
			reps, err := d.listSprintRepsForSession(id)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			snap.SprintReps = append(snap.SprintReps, reps...)
		case models.KindLift:
			sets, err := d.listLiftSets(id)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			snap.LiftSets = append(snap.LiftSets, sets...)
			reps, err := d.listLiftRepsForSession(id)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			snap.LiftReps = append(snap.LiftReps, reps...)
		case models.KindMeet:
			races, err := d.listRaces(id)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			snap.Races = append(snap.Races, races...)
		}

		entries, err := d.listAuxEntries(id)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		snap.AuxEntries = append(snap.AuxEntries, entries...)
	}

	templates, err := d.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	for _, t := range templates {
		full, err := d.GetTemplate(t.ID.String())
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		flat := *full
		flat.Sets = nil
		snap.Templates = append(snap.Templates, flat)
		for _, ts := range full.Sets {
			flatSet := ts
			flatSet.Reps = nil
			snap.TemplateSets = append(snap.TemplateSets, flatSet)
			snap.TemplateReps = append(snap.TemplateReps, ts.Reps...)
		}
	}

	prefs, err := d.GetPreferences()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	snap.Preferences = prefs

	return snap, nil
}

// ImportAll replaces the entire dataset with the snapshot's contents. All
// deletes and inserts happen in one transaction, so a failed import leaves the
// existing data untouched.
func (d *DB) ImportAll(snap *Snapshot) error {
	return d.withTx(func(tx *sql.Tx) error {
		// Children go with their parents via CASCADE.
		for _, table := range []string{"sessions", "templates", "preferences"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("import: clear %s: %w", table, err)
			}
		}

		for _, group := range [][]models.Session{snap.SprintSessions, snap.LiftSessions, snap.Meets, snap.AuxSessions} {
			for i := range group {
				if err := insertSession(tx, &group[i]); err != nil {
					return fmt.Errorf("import: %w", err)
				}
			}
		}

		for i := range snap.SprintSets {
			if err := insertSprintSet(tx, &snap.SprintSets[i]); err != nil {
				return fmt.Errorf("import: %w", err)
			}
		}
		for _, s := range snap.LiftSets {
			_, err := tx.Exec(`
				INSERT INTO lift_sets (id, session_id, seq, exercise, load, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`,
				s.ID.String(), s.SessionID.String(), s.Seq, s.Exercise, s.Load,
				s.CreatedAt.Format(time.RFC3339), nullTime(s.UpdatedAt))
			if err != nil {
				return fmt.Errorf("import lift set: %w", err)
			}
		}
		for _, r := range snap.SprintReps {
			_, err := tx.Exec(`
				INSERT INTO sprint_reps (`+sprintRepColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				r.ID.String(), r.SetID.String(), r.Seq,
				r.Distance, r.TimeSec, string(r.Timing), r.RestSec,
				r.IsFly, nullInt(r.FlyIn), nullInt(r.Intensity), string(r.WorkType),
				r.CreatedAt.Format(time.RFC3339), nullTime(r.UpdatedAt))
			if err != nil {
				return fmt.Errorf("import sprint rep: %w", err)
			}
		}
		for _, r := range snap.LiftReps {
			_, err := tx.Exec(`
				INSERT INTO lift_reps (id, set_id, seq, peak_velocity, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`,
				r.ID.String(), r.SetID.String(), r.Seq, nullFloat(r.PeakVelocity),
				r.CreatedAt.Format(time.RFC3339), nullTime(r.UpdatedAt))
			if err != nil {
				return fmt.Errorf("import lift rep: %w", err)
			}
		}
		for _, r := range snap.Races {
			_, err := tx.Exec(`
				INSERT INTO races (`+raceColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				r.ID.String(), r.MeetID.String(), r.Seq,
				r.Distance, string(r.Round), r.TimeSec,
				nullFloat(r.Wind), nullInt(r.Place),
				r.CreatedAt.Format(time.RFC3339), nullTime(r.UpdatedAt))
			if err != nil {
				return fmt.Errorf("import race: %w", err)
			}
		}
		for _, e := range snap.AuxEntries {
			_, err := tx.Exec(`
				INSERT INTO aux_entries (`+auxColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				e.ID.String(), e.SessionID.String(), e.Seq,
				string(e.Category), e.Name, string(e.Metric), e.MetricValue,
				nullInt(e.Intensity),
				e.CreatedAt.Format(time.RFC3339), nullTime(e.UpdatedAt))
			if err != nil {
				return fmt.Errorf("import aux entry: %w", err)
			}
		}

		for _, t := range snap.Templates {
			_, err := tx.Exec(`
				INSERT INTO templates (id, name, description, kind, use_count, last_used_at, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`,
				t.ID.String(), t.Name, nullStr(t.Description), string(t.Kind),
				t.UseCount, nullTime(t.LastUsedAt), t.CreatedAt.Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("import template: %w", err)
			}
		}
		for _, ts := range snap.TemplateSets {
			_, err := tx.Exec(`
				INSERT INTO template_sets (id, template_id, seq, name, exercise, load, rep_count)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`,
				ts.ID.String(), ts.TemplateID.String(), ts.Seq,
				nullStr(ts.Name), nullStr(ts.Exercise), nullFloat(ts.Load), ts.RepCount)
			if err != nil {
				return fmt.Errorf("import template set: %w", err)
			}
		}
		for _, tr := range snap.TemplateReps {
			_, err := tx.Exec(`
				INSERT INTO template_reps (id, template_set_id, seq, distance, timing, rest_sec, is_fly, fly_in, intensity, work_type)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				tr.ID.String(), tr.TemplateSetID.String(), tr.Seq,
				tr.Distance, string(tr.Timing), tr.RestSec, tr.IsFly,
				nullInt(tr.FlyIn), nullInt(tr.Intensity), string(tr.WorkType))
			if err != nil {
				return fmt.Errorf("import template rep: %w", err)
			}
		}

		if snap.Preferences != nil {
			if err := insertPreferences(tx, snap.Preferences); err != nil {
				return fmt.Errorf("import: %w", err)
			}
		}
		return nil
	})
}

// ValidateSnapshot inspects a decoded snapshot against the running schema.
// Problems block an import; warnings flag conditions the caller should
// surface but may proceed past. A snapshot written by a newer schema only
// warns, since fields this build does not know about drop out on decode.
func (d *DB) ValidateSnapshot(snap *Snapshot) (problems, warnings []string) {
	if snap.FormatVersion != SnapshotFormatVersion {
		problems = append(problems, fmt.Sprintf(
			"unsupported format version %q (expected %q)", snap.FormatVersion, SnapshotFormatVersion))
	}
	if current, err := d.SchemaVersion(); err == nil && snap.SchemaVersion > current {
		warnings = append(warnings, fmt.Sprintf(
			"snapshot schema version %d is newer than this build's %d; fields this build does not know will be dropped",
			snap.SchemaVersion, current))
	}

	sessionIDs := make(map[string]models.SessionKind)
	check := func(group []models.Session, want models.SessionKind) {
		for _, s := range group {
			if s.Kind != want {
				problems = append(problems, fmt.Sprintf(
					"session %s listed as %s but tagged %s", s.ID.String()[:8], want, s.Kind))
			}
			if _, dup := sessionIDs[s.ID.String()]; dup {
				problems = append(problems, fmt.Sprintf("duplicate session id %s", s.ID.String()[:8]))
			}
			sessionIDs[s.ID.String()] = s.Kind
			if s.Kind == models.KindMeet && (s.Venue == nil || s.Timing == nil) {
				problems = append(problems, fmt.Sprintf("meet %s missing venue or timing", s.ID.String()[:8]))
			}
			if _, err := time.Parse(models.DateLayout, s.Date); err != nil {
				problems = append(problems, fmt.Sprintf("session %s has bad date %q", s.ID.String()[:8], s.Date))
			}
		}
	}
	check(snap.SprintSessions, models.KindSprint)
	check(snap.LiftSessions, models.KindLift)
	check(snap.Meets, models.KindMeet)
	check(snap.AuxSessions, models.KindAuxiliary)

	sprintSetIDs := make(map[string]bool)
	for _, s := range snap.SprintSets {
		sprintSetIDs[s.ID.String()] = true
		if _, ok := sessionIDs[s.SessionID.String()]; !ok {
			problems = append(problems, fmt.Sprintf("sprint set %s references unknown session", s.ID.String()[:8]))
		}
	}
	liftSetIDs := make(map[string]bool)
	for _, s := range snap.LiftSets {
		liftSetIDs[s.ID.String()] = true
		if _, ok := sessionIDs[s.SessionID.String()]; !ok {
			problems = append(problems, fmt.Sprintf("lift set %s references unknown session", s.ID.String()[:8]))
		}
	}
	for _, r := range snap.SprintReps {
		if !sprintSetIDs[r.SetID.String()] {
			problems = append(problems, fmt.Sprintf("sprint rep %s references unknown set", r.ID.String()[:8]))
		}
	}
	for _, r := range snap.LiftReps {
		if !liftSetIDs[r.SetID.String()] {
			problems = append(problems, fmt.Sprintf("lift rep %s references unknown set", r.ID.String()[:8]))
		}
	}
	for _, r := range snap.Races {
		if kind, ok := sessionIDs[r.MeetID.String()]; !ok || kind != models.KindMeet {
			problems = append(problems, fmt.Sprintf("race %s references unknown meet", r.ID.String()[:8]))
		}
	}
	for _, e := range snap.AuxEntries {
		if _, ok := sessionIDs[e.SessionID.String()]; !ok {
			problems = append(problems, fmt.Sprintf("aux entry %s references unknown session", e.ID.String()[:8]))
		}
	}

	templateIDs := make(map[string]bool)
	for _, t := range snap.Templates {
		templateIDs[t.ID.String()] = true
	}
	templateSetIDs := make(map[string]bool)
	for _, ts := range snap.TemplateSets {
		templateSetIDs[ts.ID.String()] = true
		if !templateIDs[ts.TemplateID.String()] {
			problems = append(problems, fmt.Sprintf("template set %s references unknown template", ts.ID.String()[:8]))
		}
	}
	for _, tr := range snap.TemplateReps {
		if !templateSetIDs[tr.TemplateSetID.String()] {
			problems = append(problems, fmt.Sprintf("template rep %s references unknown template set", tr.ID.String()[:8]))
		}
	}

	return problems, warnings
}

// EncodeJSON renders the snapshot as indented JSON.
func (s *Snapshot) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// EncodeYAML renders the snapshot as YAML.
func (s *Snapshot) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a JSON snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func insertPreferences(tx *sql.Tx, p *models.Preferences) error {
	distancesJSON, err := json.Marshal(p.FavoriteDistances)
	if err != nil {
		return fmt.Errorf("encode favorite distances: %w", err)
	}
	exercisesJSON, err := json.Marshal(p.FavoriteExercises)
	if err != nil {
		return fmt.Errorf("encode favorite exercises: %w", err)
	}
	togglesJSON, err := json.Marshal(p.Toggles)
	if err != nil {
		return fmt.Errorf("encode toggles: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO preferences (id, favorite_distances, favorite_exercises, default_rest_sec,
		                         default_timing, season_start_month, season_start_day, toggles, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		string(distancesJSON), string(exercisesJSON), p.DefaultRestSec,
		string(p.DefaultTiming), int(p.SeasonStartMonth), p.SeasonStartDay,
		string(togglesJSON), nullTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
