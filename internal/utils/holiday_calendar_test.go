package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsUSFedHoliday(t *testing.T) {
	assert.True(t, IsUSFedHoliday(time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsUSFedHoliday(time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsUSFedHoliday(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))

	// Thanksgiving floats: fourth Thursday of November.
	assert.True(t, IsUSFedHoliday(time.Date(2026, time.November, 26, 0, 0, 0, 0, time.UTC)))

	assert.False(t, IsUSFedHoliday(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsUSFedHoliday(time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC)))
}

func TestDistanceKm(t *testing.T) {
	// Huntsville to Madison, AL is roughly 17 km.
	d := DistanceKm(34.7304, -86.5861, 34.6993, -86.7483)
	assert.InDelta(t, 15.2, d, 2.0)

	assert.Zero(t, DistanceKm(34.73, -86.58, 34.73, -86.58))
}
