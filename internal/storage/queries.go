// ABOUTME: Full-history scans and derived read helpers.
// ABOUTME: These feed the analytics engine, volume aggregator, and insights.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/tracklog/tracklog/internal/models"
)

// SprintRepHistory returns every sprint rep joined with its session context,
// ordered oldest first.
func (d *DB) SprintRepHistory() ([]models.SprintRepRecord, error) {
	rows, err := d.db.Query(`
		SELECT r.id, r.set_id, sess.id, sess.date,
		       r.distance, r.time_sec, r.timing, r.is_fly, r.fly_in, r.work_type, r.created_at
		FROM sprint_reps r
		JOIN sprint_sets s ON s.id = r.set_id
		JOIN sessions sess ON sess.id = s.session_id
		ORDER BY sess.date, r.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("sprint rep history: %w", err)
	}
	defer rows.Close()

	var records []models.SprintRepRecord
	for rows.Next() {
		var r models.SprintRepRecord
		var repID, setID, sessionID, timing, workType, createdAt string
		var flyIn sql.NullInt64

		if err := rows.Scan(&repID, &setID, &sessionID, &r.Date,
			&r.Distance, &r.TimeSec, &timing, &r.IsFly, &flyIn, &workType, &createdAt); err != nil {
			return nil, fmt.Errorf("scan sprint rep record: %w", err)
		}
		r.RepID = parseUUID(repID)
		r.SetID = parseUUID(setID)
		r.SessionID = parseUUID(sessionID)
		r.Timing = models.Timing(timing)
		r.FlyIn = intPtr(flyIn)
		r.WorkType = models.WorkType(workType)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// LiftSetHistory returns every lift set joined with its session context,
// ordered oldest first.
func (d *DB) LiftSetHistory() ([]models.LiftSetRecord, error) {
	rows, err := d.db.Query(`
		SELECT s.id, sess.id, sess.date, s.exercise, s.load, s.created_at
		FROM lift_sets s
		JOIN sessions sess ON sess.id = s.session_id
		ORDER BY sess.date, s.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("lift set history: %w", err)
	}
	defer rows.Close()

	var records []models.LiftSetRecord
	for rows.Next() {
		var r models.LiftSetRecord
		var setID, sessionID, createdAt string

		if err := rows.Scan(&setID, &sessionID, &r.Date, &r.Exercise, &r.Load, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lift set record: %w", err)
		}
		r.SetID = parseUUID(setID)
		r.SessionID = parseUUID(sessionID)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// LiftRepHistory returns every measured lift rep joined with its set's
// exercise and load. Unmeasured reps are excluded.
func (d *DB) LiftRepHistory() ([]models.LiftRepRecord, error) {
	rows, err := d.db.Query(`
		SELECT r.id, r.set_id, sess.id, sess.date, s.exercise, s.load, r.peak_velocity, r.created_at
		FROM lift_reps r
		JOIN lift_sets s ON s.id = r.set_id
		JOIN sessions sess ON sess.id = s.session_id
		WHERE r.peak_velocity IS NOT NULL
		ORDER BY sess.date, r.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("lift rep history: %w", err)
	}
	defer rows.Close()

	var records []models.LiftRepRecord
	for rows.Next() {
		var r models.LiftRepRecord
		var repID, setID, sessionID, createdAt string

		if err := rows.Scan(&repID, &setID, &sessionID, &r.Date, &r.Exercise, &r.Load,
			&r.PeakVelocity, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lift rep record: %w", err)
		}
		r.RepID = parseUUID(repID)
		r.SetID = parseUUID(setID)
		r.SessionID = parseUUID(sessionID)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// RaceHistory returns every race joined with its meet context, oldest first.
func (d *DB) RaceHistory() ([]models.RaceRecord, error) {
	rows, err := d.db.Query(`
		SELECT r.id, m.id, m.date, r.distance, r.round, r.time_sec, r.wind,
		       m.venue, m.timing, r.created_at
		FROM races r
		JOIN sessions m ON m.id = r.meet_id
		ORDER BY m.date, r.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("race history: %w", err)
	}
	defer rows.Close()

	var records []models.RaceRecord
	for rows.Next() {
		var r models.RaceRecord
		var raceID, meetID, round, venue, timing, createdAt string
		var wind sql.NullFloat64

		if err := rows.Scan(&raceID, &meetID, &r.Date, &r.Distance, &round, &r.TimeSec,
			&wind, &venue, &timing, &createdAt); err != nil {
			return nil, fmt.Errorf("scan race record: %w", err)
		}
		r.RaceID = parseUUID(raceID)
		r.MeetID = parseUUID(meetID)
		r.Round = models.Round(round)
		r.Wind = floatPtr(wind)
		r.Venue = models.Venue(venue)
		r.Timing = models.Timing(timing)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// BestSprintRepAtDistance returns the fastest rep ever recorded at a distance,
// or nil when none exists.
func (d *DB) BestSprintRepAtDistance(distance float64) (*models.SprintRepRecord, error) {
	records, err := d.SprintRepHistory()
	if err != nil {
		return nil, err
	}

	var best *models.SprintRepRecord
	for i := range records {
		r := &records[i]
		if r.Distance != distance {
			continue
		}
		if best == nil || r.TimeSec < best.TimeSec {
			best = r
		}
	}
	return best, nil
}

// BestRaceAtDistance returns the fastest race ever run at a distance, or nil
// when none exists.
func (d *DB) BestRaceAtDistance(distance float64) (*models.RaceRecord, error) {
	records, err := d.RaceHistory()
	if err != nil {
		return nil, err
	}

	var best *models.RaceRecord
	for i := range records {
		r := &records[i]
		if r.Distance != distance {
			continue
		}
		if best == nil || r.TimeSec < best.TimeSec {
			best = r
		}
	}
	return best, nil
}

// RecentExercises returns distinct exercise names by most recent use.
func (d *DB) RecentExercises(limit int) ([]string, error) {
	query := `
		SELECT exercise FROM lift_sets
		GROUP BY exercise
		ORDER BY MAX(created_at) DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent exercises: %w", err)
	}
	defer rows.Close()

	var exercises []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// LastLoadForExercise returns the most recently used load for an exercise.
func (d *DB) LastLoadForExercise(exercise string) (float64, error) {
	var load float64
	err := d.db.QueryRow(
		"SELECT load FROM lift_sets WHERE LOWER(exercise) = LOWER(?) ORDER BY created_at DESC LIMIT 1",
		exercise,
	).Scan(&load)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("no sets recorded for %s", exercise)
		}
		return 0, fmt.Errorf("last load: %w", err)
	}
	return load, nil
}
