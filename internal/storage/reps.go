// ABOUTME: SprintRep and LiftRep CRUD operations for SQLite storage.
// ABOUTME: Inserts require an active parent session and validate before writing.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

const sprintRepColumns = "id, set_id, seq, distance, time_sec, timing, rest_sec, is_fly, fly_in, intensity, work_type, created_at, updated_at"

// AddSprintRep stores a new sprint rep. The parent session must be active and
// the rep must pass validation; nothing is written otherwise.
func (d *DB) AddSprintRep(r *models.SprintRep) error {
	if err := models.ValidateSprintRep(r); err != nil {
		return err
	}

	set, err := d.GetSprintSet(r.SetID.String())
	if err != nil {
		return fmt.Errorf("add sprint rep: set %w", err)
	}
	if _, err := d.activeSession(set.SessionID.String()); err != nil {
		return err
	}

	return d.withTx(func(tx *sql.Tx) error {
		seq, err := nextSeq(tx, "sprint_reps", "set_id", set.ID.String())
		if err != nil {
			return err
		}
		r.Seq = seq
		_, err = tx.Exec(`
			INSERT INTO sprint_reps (`+sprintRepColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			r.ID.String(), r.SetID.String(), r.Seq,
			r.Distance, r.TimeSec, string(r.Timing), r.RestSec,
			r.IsFly, nullInt(r.FlyIn), nullInt(r.Intensity), string(r.WorkType),
			r.CreatedAt.Format(time.RFC3339), nullTime(r.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("add sprint rep: %w", err)
		}
		return touchSession(tx, set.SessionID.String())
	})
}

// GetSprintRep retrieves a sprint rep by ID or ID prefix.
func (d *DB) GetSprintRep(idOrPrefix string) (*models.SprintRep, error) {
	id, err := d.resolveID("sprint_reps", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return scanSprintRep(d.db.QueryRow(
		"SELECT "+sprintRepColumns+" FROM sprint_reps WHERE id = ?", id))
}

// UpdateSprintRep merge-patches a sprint rep. The patched result is validated
// as a whole, so an edit can never leave an invalid rep behind.
func (d *DB) UpdateSprintRep(idOrPrefix string, patch models.SprintRepPatch) (*models.SprintRep, error) {
	existing, err := d.GetSprintRep(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update sprint rep: %w", err)
	}

	patched := patch.Apply(*existing)
	if err := models.ValidateSprintRep(&patched); err != nil {
		return nil, err
	}
	now := time.Now()
	patched.UpdatedAt = &now

	set, err := d.GetSprintSet(patched.SetID.String())
	if err != nil {
		return nil, fmt.Errorf("update sprint rep: set %w", err)
	}

	err = d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE sprint_reps
			SET distance = ?, time_sec = ?, timing = ?, rest_sec = ?,
			    is_fly = ?, fly_in = ?, intensity = ?, work_type = ?, updated_at = ?
			WHERE id = ?
		`,
			patched.Distance, patched.TimeSec, string(patched.Timing), patched.RestSec,
			patched.IsFly, nullInt(patched.FlyIn), nullInt(patched.Intensity),
			string(patched.WorkType), now.Format(time.RFC3339), patched.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("update sprint rep: %w", err)
		}
		return touchSession(tx, set.SessionID.String())
	})
	if err != nil {
		return nil, err
	}
	return &patched, nil
}

// DeleteSprintRep removes a rep. Its sequence number is never reassigned.
func (d *DB) DeleteSprintRep(idOrPrefix string) error {
	r, err := d.GetSprintRep(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete sprint rep: %w", err)
	}
	set, err := d.GetSprintSet(r.SetID.String())
	if err != nil {
		return fmt.Errorf("delete sprint rep: set %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM sprint_reps WHERE id = ?", r.ID.String()); err != nil {
			return fmt.Errorf("delete sprint rep: %w", err)
		}
		return touchSession(tx, set.SessionID.String())
	})
}

// AddLiftRep stores a new lift rep. Velocity may be nil (not measured).
func (d *DB) AddLiftRep(r *models.LiftRep) error {
	if err := models.ValidateLiftRep(r); err != nil {
		return err
	}

	set, err := d.GetLiftSet(r.SetID.String())
	if err != nil {
		return fmt.Errorf("add lift rep: set %w", err)
	}
	if _, err := d.activeSession(set.SessionID.String()); err != nil {
		return err
	}

	return d.withTx(func(tx *sql.Tx) error {
		seq, err := nextSeq(tx, "lift_reps", "set_id", set.ID.String())
		if err != nil {
			return err
		}
		r.Seq = seq
		_, err = tx.Exec(`
			INSERT INTO lift_reps (id, set_id, seq, peak_velocity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			r.ID.String(), r.SetID.String(), r.Seq, nullFloat(r.PeakVelocity),
			r.CreatedAt.Format(time.RFC3339), nullTime(r.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("add lift rep: %w", err)
		}
		return touchSession(tx, set.SessionID.String())
	})
}

// UpdateLiftRep merge-patches a lift rep. ClearVelocity resets the rep to
// "not measured".
func (d *DB) UpdateLiftRep(idOrPrefix string, patch models.LiftRepPatch) (*models.LiftRep, error) {
	id, err := d.resolveID("lift_reps", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update lift rep: %w", err)
	}

	existing, err := scanLiftRep(d.db.QueryRow(
		"SELECT id, set_id, seq, peak_velocity, created_at, updated_at FROM lift_reps WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("update lift rep: %w", err)
	}

	patched := patch.Apply(*existing)
	if err := models.ValidateLiftRep(&patched); err != nil {
		return nil, err
	}
	now := time.Now()
	patched.UpdatedAt = &now

	set, err := d.GetLiftSet(patched.SetID.String())
	if err != nil {
		return nil, fmt.Errorf("update lift rep: set %w", err)
	}

	err = d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE lift_reps SET peak_velocity = ?, updated_at = ? WHERE id = ?",
			nullFloat(patched.PeakVelocity), now.Format(time.RFC3339), patched.ID.String())
		if err != nil {
			return fmt.Errorf("update lift rep: %w", err)
		}
		return touchSession(tx, set.SessionID.String())
	})
	if err != nil {
		return nil, err
	}
	return &patched, nil
}

// DeleteLiftRep removes a rep. Its sequence number is never reassigned.
func (d *DB) DeleteLiftRep(idOrPrefix string) error {
	id, err := d.resolveID("lift_reps", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete lift rep: %w", err)
	}

	r, err := scanLiftRep(d.db.QueryRow(
		"SELECT id, set_id, seq, peak_velocity, created_at, updated_at FROM lift_reps WHERE id = ?", id))
	if err != nil {
		return fmt.Errorf("delete lift rep: %w", err)
	}
	set, err := d.GetLiftSet(r.SetID.String())
	if err != nil {
		return fmt.Errorf("delete lift rep: set %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM lift_reps WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete lift rep: %w", err)
		}
		return touchSession(tx, set.SessionID.String())
	})
}

// listSprintRepsForSession returns every sprint rep under a session, across
// all its sets, ordered by set and rep sequence.
func (d *DB) listSprintRepsForSession(sessionID string) ([]models.SprintRep, error) {
	rows, err := d.db.Query(`
		SELECT r.id, r.set_id, r.seq, r.distance, r.time_sec, r.timing, r.rest_sec,
		       r.is_fly, r.fly_in, r.intensity, r.work_type, r.created_at, r.updated_at
		FROM sprint_reps r
		JOIN sprint_sets s ON s.id = r.set_id
		WHERE s.session_id = ?
		ORDER BY s.seq, r.seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list sprint reps: %w", err)
	}
	defer rows.Close()

	var reps []models.SprintRep
	for rows.Next() {
		r, err := scanSprintRepFromRows(rows)
		if err != nil {
			return nil, err
		}
		reps = append(reps, *r)
	}
	return reps, rows.Err()
}

// listLiftRepsForSession returns every lift rep under a session.
func (d *DB) listLiftRepsForSession(sessionID string) ([]models.LiftRep, error) {
	rows, err := d.db.Query(`
		SELECT r.id, r.set_id, r.seq, r.peak_velocity, r.created_at, r.updated_at
		FROM lift_reps r
		JOIN lift_sets s ON s.id = r.set_id
		WHERE s.session_id = ?
		ORDER BY s.seq, r.seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list lift reps: %w", err)
	}
	defer rows.Close()

	var reps []models.LiftRep
	for rows.Next() {
		var r models.LiftRep
		var idStr, setIDStr, createdAt string
		var velocity sql.NullFloat64
		var updatedAt sql.NullString

		if err := rows.Scan(&idStr, &setIDStr, &r.Seq, &velocity, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan lift rep: %w", err)
		}
		r.ID = parseUUID(idStr)
		r.SetID = parseUUID(setIDStr)
		r.PeakVelocity = floatPtr(velocity)
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = timePtr(updatedAt)
		reps = append(reps, r)
	}
	return reps, rows.Err()
}

func scanSprintRep(row *sql.Row) (*models.SprintRep, error) {
	var r models.SprintRep
	var idStr, setIDStr, timing, workType, createdAt string
	var flyIn, intensity sql.NullInt64
	var updatedAt sql.NullString

	err := row.Scan(&idStr, &setIDStr, &r.Seq, &r.Distance, &r.TimeSec, &timing, &r.RestSec,
		&r.IsFly, &flyIn, &intensity, &workType, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan sprint rep: %w", err)
	}

	r.ID = parseUUID(idStr)
	r.SetID = parseUUID(setIDStr)
	r.Timing = models.Timing(timing)
	r.WorkType = models.WorkType(workType)
	r.FlyIn = intPtr(flyIn)
	r.Intensity = intPtr(intensity)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = timePtr(updatedAt)
	return &r, nil
}

func scanSprintRepFromRows(rows *sql.Rows) (*models.SprintRep, error) {
	var r models.SprintRep
	var idStr, setIDStr, timing, workType, createdAt string
	var flyIn, intensity sql.NullInt64
	var updatedAt sql.NullString

	err := rows.Scan(&idStr, &setIDStr, &r.Seq, &r.Distance, &r.TimeSec, &timing, &r.RestSec,
		&r.IsFly, &flyIn, &intensity, &workType, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan sprint rep: %w", err)
	}

	r.ID = parseUUID(idStr)
	r.SetID = parseUUID(setIDStr)
	r.Timing = models.Timing(timing)
	r.WorkType = models.WorkType(workType)
	r.FlyIn = intPtr(flyIn)
	r.Intensity = intPtr(intensity)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = timePtr(updatedAt)
	return &r, nil
}

func scanLiftRep(row *sql.Row) (*models.LiftRep, error) {
	var r models.LiftRep
	var idStr, setIDStr, createdAt string
	var velocity sql.NullFloat64
	var updatedAt sql.NullString

	err := row.Scan(&idStr, &setIDStr, &r.Seq, &velocity, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan lift rep: %w", err)
	}

	r.ID = parseUUID(idStr)
	r.SetID = parseUUID(setIDStr)
	r.PeakVelocity = floatPtr(velocity)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = timePtr(updatedAt)
	return &r, nil
}
