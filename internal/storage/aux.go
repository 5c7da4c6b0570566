// ABOUTME: AuxEntry CRUD operations for SQLite storage.
// ABOUTME: Entries attach to an active session of any kind.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

const auxColumns = "id, session_id, seq, category, name, metric, metric_value, intensity, created_at, updated_at"

// AddAuxEntry stores a new auxiliary entry under an active session.
func (d *DB) AddAuxEntry(e *models.AuxEntry) error {
	if err := models.ValidateAuxEntry(e); err != nil {
		return err
	}
	if _, err := d.activeSession(e.SessionID.String()); err != nil {
		return err
	}

	return d.withTx(func(tx *sql.Tx) error {
		seq, err := nextSeq(tx, "aux_entries", "session_id", e.SessionID.String())
		if err != nil {
			return err
		}
		e.Seq = seq
		_, err = tx.Exec(`
			INSERT INTO aux_entries (`+auxColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.ID.String(), e.SessionID.String(), e.Seq,
			string(e.Category), e.Name, string(e.Metric), e.MetricValue,
			nullInt(e.Intensity),
			e.CreatedAt.Format(time.RFC3339), nullTime(e.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("add aux entry: %w", err)
		}
		return touchSession(tx, e.SessionID.String())
	})
}

// UpdateAuxEntry merge-patches an auxiliary entry.
func (d *DB) UpdateAuxEntry(idOrPrefix string, patch models.AuxEntryPatch) (*models.AuxEntry, error) {
	id, err := d.resolveID("aux_entries", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update aux entry: %w", err)
	}

	existing, err := scanAuxEntry(d.db.QueryRow(
		"SELECT "+auxColumns+" FROM aux_entries WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("update aux entry: %w", err)
	}

	patched := patch.Apply(*existing)
	if err := models.ValidateAuxEntry(&patched); err != nil {
		return nil, err
	}
	now := time.Now()
	patched.UpdatedAt = &now

	err = d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE aux_entries
			SET category = ?, name = ?, metric = ?, metric_value = ?, intensity = ?, updated_at = ?
			WHERE id = ?
		`,
			string(patched.Category), patched.Name, string(patched.Metric),
			patched.MetricValue, nullInt(patched.Intensity),
			now.Format(time.RFC3339), patched.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("update aux entry: %w", err)
		}
		return touchSession(tx, patched.SessionID.String())
	})
	if err != nil {
		return nil, err
	}
	return &patched, nil
}

// DeleteAuxEntry removes an entry. Its sequence number is never reassigned.
func (d *DB) DeleteAuxEntry(idOrPrefix string) error {
	id, err := d.resolveID("aux_entries", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete aux entry: %w", err)
	}

	e, err := scanAuxEntry(d.db.QueryRow(
		"SELECT "+auxColumns+" FROM aux_entries WHERE id = ?", id))
	if err != nil {
		return fmt.Errorf("delete aux entry: %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM aux_entries WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete aux entry: %w", err)
		}
		return touchSession(tx, e.SessionID.String())
	})
}

// listAuxEntries returns all auxiliary entries for a session by sequence.
func (d *DB) listAuxEntries(sessionID string) ([]models.AuxEntry, error) {
	rows, err := d.db.Query(
		"SELECT "+auxColumns+" FROM aux_entries WHERE session_id = ? ORDER BY seq", sessionID)
	if err != nil {
		return nil, fmt.Errorf("list aux entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuxEntry
	for rows.Next() {
		var e models.AuxEntry
		var idStr, sessionIDStr, category, metric, createdAt string
		var intensity sql.NullInt64
		var updatedAt sql.NullString

		if err := rows.Scan(&idStr, &sessionIDStr, &e.Seq, &category, &e.Name, &metric,
			&e.MetricValue, &intensity, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan aux entry: %w", err)
		}
		e.ID = parseUUID(idStr)
		e.SessionID = parseUUID(sessionIDStr)
		e.Category = models.AuxCategory(category)
		e.Metric = models.AuxMetric(metric)
		e.Intensity = intPtr(intensity)
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = timePtr(updatedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanAuxEntry(row *sql.Row) (*models.AuxEntry, error) {
	var e models.AuxEntry
	var idStr, sessionIDStr, category, metric, createdAt string
	var intensity sql.NullInt64
	var updatedAt sql.NullString

	err := row.Scan(&idStr, &sessionIDStr, &e.Seq, &category, &e.Name, &metric,
		&e.MetricValue, &intensity, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan aux entry: %w", err)
	}

	e.ID = parseUUID(idStr)
	e.SessionID = parseUUID(sessionIDStr)
	e.Category = models.AuxCategory(category)
	e.Metric = models.AuxMetric(metric)
	e.Intensity = intPtr(intensity)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = timePtr(updatedAt)
	return &e, nil
}
