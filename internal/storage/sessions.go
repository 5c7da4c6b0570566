// ABOUTME: Session CRUD and lifecycle operations for SQLite storage.
// ABOUTME: Creating a sprint session also creates set #1 in the same transaction.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

const sessionColumns = "id, kind, date, title, location, notes, status, venue, timing, created_at, updated_at"

// CreateSession stores a new session. Sprint sessions get their first set
// atomically so a freshly started session is immediately loggable.
func (d *DB) CreateSession(s *models.Session) error {
	if !models.IsValidSessionKind(string(s.Kind)) {
		return fmt.Errorf("invalid session kind: %q", s.Kind)
	}
	if _, err := time.Parse(models.DateLayout, s.Date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s.Date)
	}
	if s.Kind == models.KindMeet && (s.Venue == nil || s.Timing == nil) {
		return fmt.Errorf("meet requires venue and timing")
	}

	return d.withTx(func(tx *sql.Tx) error {
		if err := insertSession(tx, s); err != nil {
			return err
		}
		if s.Kind == models.KindSprint {
			set := models.NewSprintSet(s.ID)
			set.Seq = 1
			if err := insertSprintSet(tx, set); err != nil {
				return err
			}
			s.SprintSets = append(s.SprintSets, *set)
		}
		return nil
	})
}

func insertSession(q querier, s *models.Session) error {
	var venue, timing *string
	if s.Venue != nil {
		v := string(*s.Venue)
		venue = &v
	}
	if s.Timing != nil {
		t := string(*s.Timing)
		timing = &t
	}

	_, err := q.Exec(`
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID.String(),
		string(s.Kind),
		s.Date,
		nullStr(s.Title),
		nullStr(s.Location),
		nullStr(s.Notes),
		string(s.Status),
		nullStr(venue),
		nullStr(timing),
		s.CreatedAt.Format(time.RFC3339),
		nullTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID or ID prefix, without children.
func (d *DB) GetSession(idOrPrefix string) (*models.Session, error) {
	id, err := d.resolveID("sessions", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return d.scanSessionRow(d.db.QueryRow(
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id))
}

// GetSessionWithChildren retrieves a session with its full child hierarchy.
// Children are grouped by parent id in a single pass per table rather than one
// query per set.
func (d *DB) GetSessionWithChildren(idOrPrefix string) (*models.Session, error) {
	s, err := d.GetSession(idOrPrefix)
	if err != nil {
		return nil, err
	}

	switch s.Kind {
	case models.KindSprint:
		sets, err := d.listSprintSets(s.ID.String())
		if err != nil {
			return nil, err
		}
		reps, err := d.listSprintRepsForSession(s.ID.String())
		if err != nil {
			return nil, err
		}
		repsBySet := make(map[string][]models.SprintRep, len(sets))
		for _, r := range reps {
			key := r.SetID.String()
			repsBySet[key] = append(repsBySet[key], r)
		}
		for i := range sets {
			sets[i].Reps = repsBySet[sets[i].ID.String()]
		}
		s.SprintSets = sets
	case models.KindLift:
		sets, err := d.listLiftSets(s.ID.String())
		if err != nil {
			return nil, err
		}
		reps, err := d.listLiftRepsForSession(s.ID.String())
		if err != nil {
			return nil, err
		}
		repsBySet := make(map[string][]models.LiftRep, len(sets))
		for _, r := range reps {
			key := r.SetID.String()
			repsBySet[key] = append(repsBySet[key], r)
		}
		for i := range sets {
			sets[i].Reps = repsBySet[sets[i].ID.String()]
		}
		s.LiftSets = sets
	case models.KindMeet:
		races, err := d.listRaces(s.ID.String())
		if err != nil {
			return nil, err
		}
		s.Races = races
	}

	// Auxiliary entries can hang off a session of any kind.
	entries, err := d.listAuxEntries(s.ID.String())
	if err != nil {
		return nil, err
	}
	s.AuxEntries = entries

	return s, nil
}

// ListSessions retrieves sessions with optional filtering by kind.
// Results are sorted by date descending, most recent first.
func (d *DB) ListSessions(kind *models.SessionKind, limit int) ([]*models.Session, error) {
	query := "SELECT " + sessionColumns + " FROM sessions"
	var args []any

	if kind != nil {
		query += " WHERE kind = ?"
		args = append(args, string(*kind))
	}
	query += " ORDER BY date DESC, created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	return d.scanSessionRows(rows)
}

// ListSessionsByStatus retrieves sessions of a kind in a lifecycle state.
func (d *DB) ListSessionsByStatus(kind models.SessionKind, status models.SessionStatus) ([]*models.Session, error) {
	rows, err := d.db.Query(
		"SELECT "+sessionColumns+" FROM sessions WHERE kind = ? AND status = ? ORDER BY date DESC, created_at DESC",
		string(kind), string(status))
	if err != nil {
		return nil, fmt.Errorf("list sessions by status: %w", err)
	}
	defer rows.Close()

	return d.scanSessionRows(rows)
}

// UpdateSession merge-patches mutable session fields.
func (d *DB) UpdateSession(idOrPrefix string, patch models.SessionPatch) error {
	id, err := d.resolveID("sessions", idOrPrefix)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	s, err := d.scanSessionRow(d.db.QueryRow(
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id))
	if err != nil {
		return err
	}

	if patch.Date != nil {
		if _, err := time.Parse(models.DateLayout, *patch.Date); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", *patch.Date)
		}
		s.Date = *patch.Date
	}
	if patch.Title != nil {
		s.Title = patch.Title
	}
	if patch.Location != nil {
		s.Location = patch.Location
	}
	if patch.Notes != nil {
		s.Notes = patch.Notes
	}

	_, err = d.db.Exec(`
		UPDATE sessions SET date = ?, title = ?, location = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`,
		s.Date, nullStr(s.Title), nullStr(s.Location), nullStr(s.Notes),
		time.Now().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// CompleteSession flips a session to completed. Reversible with no data loss.
func (d *DB) CompleteSession(idOrPrefix string) error {
	return d.setSessionStatus(idOrPrefix, models.StatusCompleted)
}

// ReopenSession flips a completed session back to active.
func (d *DB) ReopenSession(idOrPrefix string) error {
	return d.setSessionStatus(idOrPrefix, models.StatusActive)
}

func (d *DB) setSessionStatus(idOrPrefix string, status models.SessionStatus) error {
	id, err := d.resolveID("sessions", idOrPrefix)
	if err != nil {
		return fmt.Errorf("set session status: %w", err)
	}

	result, err := d.db.Exec(
		"UPDATE sessions SET status = ?, updated_at = ? WHERE id = ?",
		string(status), time.Now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("set session status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set session status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

// DeleteSession removes a session and every descendant set, rep, race, and
// entry in one transaction. Foreign keys cascade through the hierarchy, so a
// failure anywhere leaves everything in place.
func (d *DB) DeleteSession(idOrPrefix string) error {
	id, err := d.resolveID("sessions", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil
	})
}

// activeSession loads a session and rejects if it is not active. Leaf inserts
// go through this: adding to a completed session is a precondition error.
func (d *DB) activeSession(sessionID string) (*models.Session, error) {
	s, err := d.scanSessionRow(d.db.QueryRow(
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?", sessionID))
	if err != nil {
		return nil, err
	}
	if s.Status != models.StatusActive {
		return nil, fmt.Errorf("session %s is completed; reopen it before adding to it", sessionID[:8])
	}
	return s, nil
}

func (d *DB) scanSessionRow(row *sql.Row) (*models.Session, error) {
	var s models.Session
	var idStr, kind, status, createdAt string
	var title, location, notes, venue, timing, updatedAt sql.NullString

	err := row.Scan(&idStr, &kind, &s.Date, &title, &location, &notes, &status, &venue, &timing, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.ID = parseUUID(idStr)
	s.Kind = models.SessionKind(kind)
	s.Status = models.SessionStatus(status)
	s.Title = strPtr(title)
	s.Location = strPtr(location)
	s.Notes = strPtr(notes)
	if venue.Valid {
		v := models.Venue(venue.String)
		s.Venue = &v
	}
	if timing.Valid {
		t := models.Timing(timing.String)
		s.Timing = &t
	}
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = timePtr(updatedAt)

	return &s, nil
}

func (d *DB) scanSessionRows(rows *sql.Rows) ([]*models.Session, error) {
	var sessions []*models.Session

	for rows.Next() {
		var s models.Session
		var idStr, kind, status, createdAt string
		var title, location, notes, venue, timing, updatedAt sql.NullString

		err := rows.Scan(&idStr, &kind, &s.Date, &title, &location, &notes, &status, &venue, &timing, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		s.ID = parseUUID(idStr)
		s.Kind = models.SessionKind(kind)
		s.Status = models.SessionStatus(status)
		s.Title = strPtr(title)
		s.Location = strPtr(location)
		s.Notes = strPtr(notes)
		if venue.Valid {
			v := models.Venue(venue.String)
			s.Venue = &v
		}
		if timing.Valid {
			t := models.Timing(timing.String)
			s.Timing = &t
		}
		s.CreatedAt = parseTime(createdAt)
		s.UpdatedAt = timePtr(updatedAt)

		sessions = append(sessions, &s)
	}

	return sessions, rows.Err()
}
