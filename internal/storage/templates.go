// ABOUTME: Template snapshot and materialization.
// ABOUTME: Snapshots copy structure only; materializing builds a fresh active session.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracklog/tracklog/internal/models"
)

// SnapshotTemplate copies a session's structure into a new named template.
// Outcome values (rep times, peak velocities) are dropped. A session with no
// sets still snapshots fine, producing an empty template.
func (d *DB) SnapshotTemplate(sessionIDOrPrefix, name string, description *string) (*models.Template, error) {
	sess, err := d.GetSessionWithChildren(sessionIDOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("snapshot template: %w", err)
	}
	if sess.Kind != models.KindSprint && sess.Kind != models.KindLift {
		return nil, fmt.Errorf("snapshot template: %s sessions cannot be templated", sess.Kind)
	}
	if name == "" {
		return nil, fmt.Errorf("template name is required")
	}

	t := models.NewTemplate(name, sess.Kind)
	t.Description = description

	switch sess.Kind {
	case models.KindSprint:
		for _, set := range sess.SprintSets {
			ts := models.TemplateSet{
				ID:         uuid.New(),
				TemplateID: t.ID,
				Seq:        set.Seq,
				Name:       set.Name,
				RepCount:   len(set.Reps),
			}
			for _, rep := range set.Reps {
				ts.Reps = append(ts.Reps, models.TemplateRep{
					ID:            uuid.New(),
					TemplateSetID: ts.ID,
					Seq:           rep.Seq,
					Distance:      rep.Distance,
					Timing:        rep.Timing,
					RestSec:       rep.RestSec,
					IsFly:         rep.IsFly,
					FlyIn:         rep.FlyIn,
					Intensity:     rep.Intensity,
					WorkType:      rep.WorkType,
				})
			}
			t.Sets = append(t.Sets, ts)
		}
	case models.KindLift:
		for _, set := range sess.LiftSets {
			exercise := set.Exercise
			load := set.Load
			t.Sets = append(t.Sets, models.TemplateSet{
				ID:         uuid.New(),
				TemplateID: t.ID,
				Seq:        set.Seq,
				Exercise:   &exercise,
				Load:       &load,
				RepCount:   len(set.Reps),
			})
		}
	}

	err = d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO templates (id, name, description, kind, use_count, last_used_at, created_at)
			VALUES (?, ?, ?, ?, 0, NULL, ?)
		`,
			t.ID.String(), t.Name, nullStr(t.Description), string(t.Kind),
			t.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("snapshot template: %w", err)
		}
		for _, ts := range t.Sets {
			_, err := tx.Exec(`
				INSERT INTO template_sets (id, template_id, seq, name, exercise, load, rep_count)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`,
				ts.ID.String(), t.ID.String(), ts.Seq,
				nullStr(ts.Name), nullStr(ts.Exercise), nullFloat(ts.Load), ts.RepCount,
			)
			if err != nil {
				return fmt.Errorf("snapshot template set: %w", err)
			}
			for _, tr := range ts.Reps {
				_, err := tx.Exec(`
					INSERT INTO template_reps (id, template_set_id, seq, distance, timing, rest_sec, is_fly, fly_in, intensity, work_type)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				`,
					tr.ID.String(), ts.ID.String(), tr.Seq,
					tr.Distance, string(tr.Timing), tr.RestSec, tr.IsFly,
					nullInt(tr.FlyIn), nullInt(tr.Intensity), string(tr.WorkType),
				)
				if err != nil {
					return fmt.Errorf("snapshot template rep: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// MaterializeTemplate builds a new active session from a template: the session
// and its sets are created, the template's use counter and last-used timestamp
// are bumped, all in one transaction. Sprint reps are deliberately not
// pre-created; they get logged during the live session. Templates are
// independent of their source session, which may be long gone.
func (d *DB) MaterializeTemplate(idOrPrefix string) (*models.Session, error) {
	t, err := d.GetTemplate(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("materialize template: %w", err)
	}

	today := time.Now().Format(models.DateLayout)
	sess := models.NewSession(t.Kind, today).WithTitle(t.Name)

	err = d.withTx(func(tx *sql.Tx) error {
		if err := insertSession(tx, sess); err != nil {
			return err
		}
		for _, ts := range t.Sets {
			switch t.Kind {
			case models.KindSprint:
				set := models.NewSprintSet(sess.ID)
				set.Seq = ts.Seq
				set.Name = ts.Name
				if err := insertSprintSet(tx, set); err != nil {
					return err
				}
				sess.SprintSets = append(sess.SprintSets, *set)
			case models.KindLift:
				if ts.Exercise == nil || ts.Load == nil {
					return fmt.Errorf("materialize template: lift set %d missing exercise or load", ts.Seq)
				}
				set := models.NewLiftSet(sess.ID, *ts.Exercise, *ts.Load)
				set.Seq = ts.Seq
				_, err := tx.Exec(`
					INSERT INTO lift_sets (id, session_id, seq, exercise, load, created_at, updated_at)
					VALUES (?, ?, ?, ?, ?, ?, ?)
				`,
					set.ID.String(), sess.ID.String(), set.Seq, set.Exercise, set.Load,
					set.CreatedAt.Format(time.RFC3339), nullTime(set.UpdatedAt),
				)
				if err != nil {
					return fmt.Errorf("materialize template: %w", err)
				}
				sess.LiftSets = append(sess.LiftSets, *set)
			}
		}
		now := time.Now()
		_, err := tx.Exec(
			"UPDATE templates SET use_count = use_count + 1, last_used_at = ? WHERE id = ?",
			now.Format(time.RFC3339), t.ID.String())
		if err != nil {
			return fmt.Errorf("materialize template: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetTemplate retrieves a template with its sets and rep structure.
func (d *DB) GetTemplate(idOrPrefix string) (*models.Template, error) {
	id, err := d.resolveID("templates", idOrPrefix)
	if err != nil {
		return nil, err
	}

	t, err := scanTemplate(d.db.QueryRow(
		"SELECT id, name, description, kind, use_count, last_used_at, created_at FROM templates WHERE id = ?", id))
	if err != nil {
		return nil, err
	}

	sets, err := d.listTemplateSets(id)
	if err != nil {
		return nil, err
	}
	t.Sets = sets
	return t, nil
}

// ListTemplates returns all templates, most recently created first, without
// their set structure.
func (d *DB) ListTemplates() ([]*models.Template, error) {
	rows, err := d.db.Query(
		"SELECT id, name, description, kind, use_count, last_used_at, created_at FROM templates ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.Template
	for rows.Next() {
		var t models.Template
		var idStr, kind, createdAt string
		var description, lastUsedAt sql.NullString

		if err := rows.Scan(&idStr, &t.Name, &description, &kind, &t.UseCount, &lastUsedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.ID = parseUUID(idStr)
		t.Description = strPtr(description)
		t.Kind = models.SessionKind(kind)
		t.LastUsedAt = timePtr(lastUsedAt)
		t.CreatedAt = parseTime(createdAt)
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}

// DeleteTemplate removes a template and its structural rows. Sessions created
// from it are untouched.
func (d *DB) DeleteTemplate(idOrPrefix string) error {
	id, err := d.resolveID("templates", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return d.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM templates WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return fmt.Errorf("not found: %s", idOrPrefix)
		}
		return nil
	})
}

func (d *DB) listTemplateSets(templateID string) ([]models.TemplateSet, error) {
	rows, err := d.db.Query(
		"SELECT id, template_id, seq, name, exercise, load, rep_count FROM template_sets WHERE template_id = ? ORDER BY seq",
		templateID)
	if err != nil {
		return nil, fmt.Errorf("list template sets: %w", err)
	}
	defer rows.Close()

	var sets []models.TemplateSet
	for rows.Next() {
		var ts models.TemplateSet
		var idStr, tidStr string
		var name, exercise sql.NullString
		var load sql.NullFloat64

		if err := rows.Scan(&idStr, &tidStr, &ts.Seq, &name, &exercise, &load, &ts.RepCount); err != nil {
			return nil, fmt.Errorf("scan template set: %w", err)
		}
		ts.ID = parseUUID(idStr)
		ts.TemplateID = parseUUID(tidStr)
		ts.Name = strPtr(name)
		ts.Exercise = strPtr(exercise)
		ts.Load = floatPtr(load)
		sets = append(sets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sets {
		reps, err := d.listTemplateReps(sets[i].ID.String())
		if err != nil {
			return nil, err
		}
		sets[i].Reps = reps
	}
	return sets, nil
}

func (d *DB) listTemplateReps(templateSetID string) ([]models.TemplateRep, error) {
	rows, err := d.db.Query(`
		SELECT id, template_set_id, seq, distance, timing, rest_sec, is_fly, fly_in, intensity, work_type
		FROM template_reps WHERE template_set_id = ? ORDER BY seq
	`, templateSetID)
	if err != nil {
		return nil, fmt.Errorf("list template reps: %w", err)
	}
	defer rows.Close()

	var reps []models.TemplateRep
	for rows.Next() {
		var tr models.TemplateRep
		var idStr, tsidStr, timing, workType string
		var flyIn, intensity sql.NullInt64

		if err := rows.Scan(&idStr, &tsidStr, &tr.Seq, &tr.Distance, &timing, &tr.RestSec,
			&tr.IsFly, &flyIn, &intensity, &workType); err != nil {
			return nil, fmt.Errorf("scan template rep: %w", err)
		}
		tr.ID = parseUUID(idStr)
		tr.TemplateSetID = parseUUID(tsidStr)
		tr.Timing = models.Timing(timing)
		tr.FlyIn = intPtr(flyIn)
		tr.Intensity = intPtr(intensity)
		tr.WorkType = models.WorkType(workType)
		reps = append(reps, tr)
	}
	return reps, rows.Err()
}

func scanTemplate(row *sql.Row) (*models.Template, error) {
	var t models.Template
	var idStr, kind, createdAt string
	var description, lastUsedAt sql.NullString

	err := row.Scan(&idStr, &t.Name, &description, &kind, &t.UseCount, &lastUsedAt, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}
	t.ID = parseUUID(idStr)
	t.Description = strPtr(description)
	t.Kind = models.SessionKind(kind)
	t.LastUsedAt = timePtr(lastUsedAt)
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}
