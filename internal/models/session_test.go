// ABOUTME: Tests for session kind, venue, and timing tag validation.
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidVenue(t *testing.T) {
	assert.True(t, IsValidVenue("indoor"))
	assert.True(t, IsValidVenue("outdoor"))
	assert.False(t, IsValidVenue(""))
	assert.False(t, IsValidVenue("Indoor"))
	assert.False(t, IsValidVenue("track"))
}

func TestIsValidTiming(t *testing.T) {
	assert.True(t, IsValidTiming("hand"))
	assert.True(t, IsValidTiming("fat"))
	assert.False(t, IsValidTiming(""))
	assert.False(t, IsValidTiming("FAT"))
	assert.False(t, IsValidTiming("laser"))
}

func TestNewMeetCarriesVenueAndTiming(t *testing.T) {
	m := NewMeet("2026-05-01", VenueOutdoor, TimingFAT)
	assert.Equal(t, KindMeet, m.Kind)
	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, VenueOutdoor, *m.Venue)
	assert.Equal(t, TimingFAT, *m.Timing)
}
