// ABOUTME: Race CRUD operations for SQLite storage.
// ABOUTME: Races validate against the parent meet's venue before insertion.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

const raceColumns = "id, meet_id, seq, distance, round, time_sec, wind, place, created_at, updated_at"

// AddRace stores a new race. The parent must be an active meet; wind is
// checked against the meet's venue before anything is written.
func (d *DB) AddRace(r *models.Race) error {
	meet, err := d.activeSession(r.MeetID.String())
	if err != nil {
		return err
	}
	if meet.Kind != models.KindMeet {
		return fmt.Errorf("session %s is not a meet", r.MeetID.String()[:8])
	}
	if err := models.ValidateRace(r, *meet.Venue); err != nil {
		return err
	}

	return d.withTx(func(tx *sql.Tx) error {
		seq, err := nextSeq(tx, "races", "meet_id", r.MeetID.String())
		if err != nil {
			return err
		}
		r.Seq = seq
		_, err = tx.Exec(`
			INSERT INTO races (`+raceColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			r.ID.String(), r.MeetID.String(), r.Seq,
			r.Distance, string(r.Round), r.TimeSec,
			nullFloat(r.Wind), nullInt(r.Place),
			r.CreatedAt.Format(time.RFC3339), nullTime(r.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("add race: %w", err)
		}
		return touchSession(tx, r.MeetID.String())
	})
}

// UpdateRace merge-patches a race, re-validating against the meet's venue.
func (d *DB) UpdateRace(idOrPrefix string, patch models.RacePatch) (*models.Race, error) {
	id, err := d.resolveID("races", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update race: %w", err)
	}

	existing, err := scanRace(d.db.QueryRow(
		"SELECT "+raceColumns+" FROM races WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("update race: %w", err)
	}

	meet, err := d.GetSession(existing.MeetID.String())
	if err != nil {
		return nil, fmt.Errorf("update race: meet %w", err)
	}

	patched := patch.Apply(*existing)
	if err := models.ValidateRace(&patched, *meet.Venue); err != nil {
		return nil, err
	}
	now := time.Now()
	patched.UpdatedAt = &now

	err = d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			UPDATE races
			SET distance = ?, round = ?, time_sec = ?, wind = ?, place = ?, updated_at = ?
			WHERE id = ?
		`,
			patched.Distance, string(patched.Round), patched.TimeSec,
			nullFloat(patched.Wind), nullInt(patched.Place),
			now.Format(time.RFC3339), patched.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("update race: %w", err)
		}
		return touchSession(tx, patched.MeetID.String())
	})
	if err != nil {
		return nil, err
	}
	return &patched, nil
}

// DeleteRace removes a race. Its sequence number is never reassigned.
func (d *DB) DeleteRace(idOrPrefix string) error {
	id, err := d.resolveID("races", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete race: %w", err)
	}

	r, err := scanRace(d.db.QueryRow(
		"SELECT "+raceColumns+" FROM races WHERE id = ?", id))
	if err != nil {
		return fmt.Errorf("delete race: %w", err)
	}

	return d.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM races WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete race: %w", err)
		}
		return touchSession(tx, r.MeetID.String())
	})
}

// listRaces returns all races for a meet ordered by sequence.
func (d *DB) listRaces(meetID string) ([]models.Race, error) {
	rows, err := d.db.Query(
		"SELECT "+raceColumns+" FROM races WHERE meet_id = ? ORDER BY seq", meetID)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	defer rows.Close()

	var races []models.Race
	for rows.Next() {
		var r models.Race
		var idStr, meetIDStr, round, createdAt string
		var wind sql.NullFloat64
		var place sql.NullInt64
		var updatedAt sql.NullString

		if err := rows.Scan(&idStr, &meetIDStr, &r.Seq, &r.Distance, &round, &r.TimeSec,
			&wind, &place, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan race: %w", err)
		}
		r.ID = parseUUID(idStr)
		r.MeetID = parseUUID(meetIDStr)
		r.Round = models.Round(round)
		r.Wind = floatPtr(wind)
		r.Place = intPtr(place)
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = timePtr(updatedAt)
		races = append(races, r)
	}
	return races, rows.Err()
}

func scanRace(row *sql.Row) (*models.Race, error) {
	var r models.Race
	var idStr, meetIDStr, round, createdAt string
	var wind sql.NullFloat64
	var place sql.NullInt64
	var updatedAt sql.NullString

	err := row.Scan(&idStr, &meetIDStr, &r.Seq, &r.Distance, &round, &r.TimeSec,
		&wind, &place, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan race: %w", err)
	}

	r.ID = parseUUID(idStr)
	r.MeetID = parseUUID(meetIDStr)
	r.Round = models.Round(round)
	r.Wind = floatPtr(wind)
	r.Place = intPtr(place)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = timePtr(updatedAt)
	return &r, nil
}
