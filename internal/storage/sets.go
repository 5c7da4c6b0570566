// ABOUTME: SprintSet and LiftSet CRUD operations for SQLite storage.
// ABOUTME: Sequence assignment and parent touch happen in one transaction.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

// AddSprintSet stores a new sprint set. The parent session must exist; the
// set's sequence number is assigned here, never by the caller.
func (d *DB) AddSprintSet(s *models.SprintSet) error {
	sessionID := s.SessionID.String()
	if _, err := d.GetSession(sessionID); err != nil {
		return fmt.Errorf("add sprint set: session %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		seq, err := nextSeq(tx, "sprint_sets", "session_id", sessionID)
		if err != nil {
			return err
		}
		s.Seq = seq
		if err := insertSprintSet(tx, s); err != nil {
			return err
		}
		return touchSession(tx, sessionID)
	})
}

func insertSprintSet(q querier, s *models.SprintSet) error {
	_, err := q.Exec(`
		INSERT INTO sprint_sets (id, session_id, seq, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		s.ID.String(), s.SessionID.String(), s.Seq, nullStr(s.Name),
		s.CreatedAt.Format(time.RFC3339), nullTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("add sprint set: %w", err)
	}
	return nil
}

// AddLiftSet stores a new lift set after validating exercise and load.
func (d *DB) AddLiftSet(s *models.LiftSet) error {
	if err := models.ValidateLiftSet(s.Exercise, s.Load); err != nil {
		return err
	}
	sessionID := s.SessionID.String()
	if _, err := d.GetSession(sessionID); err != nil {
		return fmt.Errorf("add lift set: session %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		seq, err := nextSeq(tx, "lift_sets", "session_id", sessionID)
		if err != nil {
			return err
		}
		s.Seq = seq
		_, err = tx.Exec(`
			INSERT INTO lift_sets (id, session_id, seq, exercise, load, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			s.ID.String(), sessionID, s.Seq, s.Exercise, s.Load,
			s.CreatedAt.Format(time.RFC3339), nullTime(s.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("add lift set: %w", err)
		}
		return touchSession(tx, sessionID)
	})
}

// GetSprintSet retrieves a sprint set by ID or ID prefix, without reps.
func (d *DB) GetSprintSet(idOrPrefix string) (*models.SprintSet, error) {
	id, err := d.resolveID("sprint_sets", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return scanSprintSet(d.db.QueryRow(
		"SELECT id, session_id, seq, name, created_at, updated_at FROM sprint_sets WHERE id = ?", id))
}

// GetLiftSet retrieves a lift set by ID or ID prefix, without reps.
func (d *DB) GetLiftSet(idOrPrefix string) (*models.LiftSet, error) {
	id, err := d.resolveID("lift_sets", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return scanLiftSet(d.db.QueryRow(
		"SELECT id, session_id, seq, exercise, load, created_at, updated_at FROM lift_sets WHERE id = ?", id))
}

// UpdateSprintSet merge-patches sprint set fields.
func (d *DB) UpdateSprintSet(idOrPrefix string, patch models.SprintSetPatch) (*models.SprintSet, error) {
	s, err := d.GetSprintSet(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update sprint set: %w", err)
	}
	if patch.Name != nil {
		s.Name = patch.Name
	}
	now := time.Now()
	s.UpdatedAt = &now

	err = d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE sprint_sets SET name = ?, updated_at = ? WHERE id = ?",
			nullStr(s.Name), now.Format(time.RFC3339), s.ID.String())
		if err != nil {
			return fmt.Errorf("update sprint set: %w", err)
		}
		return touchSession(tx, s.SessionID.String())
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateLiftSet merge-patches exercise and load, both mutable after creation.
func (d *DB) UpdateLiftSet(idOrPrefix string, patch models.LiftSetPatch) (*models.LiftSet, error) {
	s, err := d.GetLiftSet(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update lift set: %w", err)
	}
	if patch.Exercise != nil {
		s.Exercise = *patch.Exercise
	}
	if patch.Load != nil {
		s.Load = *patch.Load
	}
	if err := models.ValidateLiftSet(s.Exercise, s.Load); err != nil {
		return nil, err
	}
	now := time.Now()
	s.UpdatedAt = &now

	err = d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE lift_sets SET exercise = ?, load = ?, updated_at = ? WHERE id = ?",
			s.Exercise, s.Load, now.Format(time.RFC3339), s.ID.String())
		if err != nil {
			return fmt.Errorf("update lift set: %w", err)
		}
		return touchSession(tx, s.SessionID.String())
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteSprintSet removes a set and all its reps in one transaction, then
// touches the parent session.
func (d *DB) DeleteSprintSet(idOrPrefix string) error {
	s, err := d.GetSprintSet(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete sprint set: %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		// CASCADE removes the reps with the set.
		if _, err := tx.Exec("DELETE FROM sprint_sets WHERE id = ?", s.ID.String()); err != nil {
			return fmt.Errorf("delete sprint set: %w", err)
		}
		return touchSession(tx, s.SessionID.String())
	})
}

// DeleteLiftSet removes a set and all its reps in one transaction, then
// touches the parent session.
func (d *DB) DeleteLiftSet(idOrPrefix string) error {
	s, err := d.GetLiftSet(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete lift set: %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM lift_sets WHERE id = ?", s.ID.String()); err != nil {
			return fmt.Errorf("delete lift set: %w", err)
		}
		return touchSession(tx, s.SessionID.String())
	})
}

// listSprintSets returns all sprint sets for a session ordered by sequence.
func (d *DB) listSprintSets(sessionID string) ([]models.SprintSet, error) {
	rows, err := d.db.Query(
		"SELECT id, session_id, seq, name, created_at, updated_at FROM sprint_sets WHERE session_id = ? ORDER BY seq",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("list sprint sets: %w", err)
	}
	defer rows.Close()

	var sets []models.SprintSet
	for rows.Next() {
		var s models.SprintSet
		var idStr, sessionIDStr, createdAt string
		var name, updatedAt sql.NullString

		if err := rows.Scan(&idStr, &sessionIDStr, &s.Seq, &name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan sprint set: %w", err)
		}
		s.ID = parseUUID(idStr)
		s.SessionID = parseUUID(sessionIDStr)
		s.Name = strPtr(name)
		s.CreatedAt = parseTime(createdAt)
		s.UpdatedAt = timePtr(updatedAt)
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// listLiftSets returns all lift sets for a session ordered by sequence.
func (d *DB) listLiftSets(sessionID string) ([]models.LiftSet, error) {
	rows, err := d.db.Query(
		"SELECT id, session_id, seq, exercise, load, created_at, updated_at FROM lift_sets WHERE session_id = ? ORDER BY seq",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("list lift sets: %w", err)
	}
	defer rows.Close()

	var sets []models.LiftSet
	for rows.Next() {
		var s models.LiftSet
		var idStr, sessionIDStr, createdAt string
		var updatedAt sql.NullString

		if err := rows.Scan(&idStr, &sessionIDStr, &s.Seq, &s.Exercise, &s.Load, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan lift set: %w", err)
		}
		s.ID = parseUUID(idStr)
		s.SessionID = parseUUID(sessionIDStr)
		s.CreatedAt = parseTime(createdAt)
		s.UpdatedAt = timePtr(updatedAt)
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

func scanSprintSet(row *sql.Row) (*models.SprintSet, error) {
	var s models.SprintSet
	var idStr, sessionIDStr, createdAt string
	var name, updatedAt sql.NullString

	err := row.Scan(&idStr, &sessionIDStr, &s.Seq, &name, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan sprint set: %w", err)
	}
	s.ID = parseUUID(idStr)
	s.SessionID = parseUUID(sessionIDStr)
	s.Name = strPtr(name)
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = timePtr(updatedAt)
	return &s, nil
}

func scanLiftSet(row *sql.Row) (*models.LiftSet, error) {
	var s models.LiftSet
	var idStr, sessionIDStr, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(&idStr, &sessionIDStr, &s.Seq, &s.Exercise, &s.Load, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan lift set: %w", err)
	}
	s.ID = parseUUID(idStr)
	s.SessionID = parseUUID(sessionIDStr)
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = timePtr(updatedAt)
	return &s, nil
}
