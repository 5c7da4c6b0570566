// ABOUTME: Tests for the preferences singleton.
package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklog/tracklog/internal/models"
)

func TestGetPreferencesInitializesDefaults(t *testing.T) {
	d := testDB(t)

	p, err := d.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRestSec, p.DefaultRestSec)
	assert.Equal(t, models.TimingHand, p.DefaultTiming)
	assert.Equal(t, time.August, p.SeasonStartMonth)
	assert.Equal(t, 1, p.SeasonStartDay)
	assert.NotEmpty(t, p.FavoriteDistances)

	// Second read comes from the stored row, not a fresh default.
	again, err := d.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, p.FavoriteDistances, again.FavoriteDistances)
}

func TestUpdatePreferencesMergePatch(t *testing.T) {
	d := testDB(t)

	rest := 240
	distances := []float64{60, 150}
	updated, err := d.UpdatePreferences(models.PreferencesPatch{
		DefaultRestSec:    &rest,
		FavoriteDistances: &distances,
	})
	require.NoError(t, err)
	assert.Equal(t, 240, updated.DefaultRestSec)
	assert.Equal(t, []float64{60, 150}, updated.FavoriteDistances)
	assert.Equal(t, models.TimingHand, updated.DefaultTiming, "untouched fields keep their values")

	stored, err := d.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, 240, stored.DefaultRestSec)
	assert.NotNil(t, stored.UpdatedAt)
}

func TestUpdatePreferencesTogglesMergeByKey(t *testing.T) {
	d := testDB(t)

	_, err := d.UpdatePreferences(models.PreferencesPatch{
		Toggles: map[string]bool{"show_wind": true, "metric_units": true},
	})
	require.NoError(t, err)

	updated, err := d.UpdatePreferences(models.PreferencesPatch{
		Toggles: map[string]bool{"show_wind": false},
	})
	require.NoError(t, err)
	assert.False(t, updated.Toggles["show_wind"])
	assert.True(t, updated.Toggles["metric_units"], "unmentioned toggles survive the patch")
}
