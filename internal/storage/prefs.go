// ABOUTME: Preferences singleton storage: get-or-initialize plus merge-patch update.
// ABOUTME: List and toggle fields are stored as JSON text in single columns.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tracklog/tracklog/internal/models"
)

// GetPreferences returns the singleton preferences row, inserting the defaults
// on first access.
func (d *DB) GetPreferences() (*models.Preferences, error) {
	p, err := d.readPreferences()
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	defaults := models.DefaultPreferences()
	if err := d.writePreferences(defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// UpdatePreferences merge-patches the singleton and returns the result.
func (d *DB) UpdatePreferences(patch models.PreferencesPatch) (*models.Preferences, error) {
	current, err := d.GetPreferences()
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*current)
	now := time.Now()
	updated.UpdatedAt = &now

	if err := d.writePreferences(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (d *DB) readPreferences() (*models.Preferences, error) {
	var p models.Preferences
	var distancesJSON, exercisesJSON, timing, togglesJSON string
	var month int
	var updatedAt sql.NullString

	err := d.db.QueryRow(`
		SELECT favorite_distances, favorite_exercises, default_rest_sec, default_timing,
		       season_start_month, season_start_day, toggles, updated_at
		FROM preferences WHERE id = 1
	`).Scan(&distancesJSON, &exercisesJSON, &p.DefaultRestSec, &timing,
		&month, &p.SeasonStartDay, &togglesJSON, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(distancesJSON), &p.FavoriteDistances); err != nil {
		return nil, fmt.Errorf("decode favorite distances: %w", err)
	}
	if err := json.Unmarshal([]byte(exercisesJSON), &p.FavoriteExercises); err != nil {
		return nil, fmt.Errorf("decode favorite exercises: %w", err)
	}
	if err := json.Unmarshal([]byte(togglesJSON), &p.Toggles); err != nil {
		return nil, fmt.Errorf("decode toggles: %w", err)
	}
	p.DefaultTiming = models.Timing(timing)
	p.SeasonStartMonth = time.Month(month)
	p.UpdatedAt = timePtr(updatedAt)
	return &p, nil
}

func (d *DB) writePreferences(p *models.Preferences) error {
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

	_, err = d.db.Exec(`
		INSERT INTO preferences (id, favorite_distances, favorite_exercises, default_rest_sec,
		                         default_timing, season_start_month, season_start_day, toggles, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			favorite_distances = excluded.favorite_distances,
			favorite_exercises = excluded.favorite_exercises,
			default_rest_sec = excluded.default_rest_sec,
			default_timing = excluded.default_timing,
			season_start_month = excluded.season_start_month,
			season_start_day = excluded.season_start_day,
			toggles = excluded.toggles,
			updated_at = excluded.updated_at
	`,
		string(distancesJSON), string(exercisesJSON), p.DefaultRestSec,
		string(p.DefaultTiming), int(p.SeasonStartMonth), p.SeasonStartDay,
		string(togglesJSON), nullTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
