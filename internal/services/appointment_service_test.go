package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
)

// Huntsville, AL. Resolves to America/Chicago.
const (
	testLat = 34.7369
	testLng = -86.5756
)

func testProperty() *models.Property {
	return &models.Property{
		Latitude:  testLat,
		Longitude: testLng,
		Status:    models.PropertyStatusPublished,
	}
}

func TestSlotGridLayout(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// A regular Tuesday.
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, loc)
	slots := slotGrid(day, loc)

	// 09:00 through 17:30 inclusive, every 30 minutes.
	require.Len(t, slots, 18)

	first := slots[0]
	assert.Equal(t, 9, first.Hour())
	assert.Equal(t, 0, first.Minute())

	last := slots[len(slots)-1]
	assert.Equal(t, 17, last.Hour())
	assert.Equal(t, 30, last.Minute())

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestSlotOnGrid(t *testing.T) {
	svc := &appointmentService{}
	p := testProperty()

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	onGrid := time.Date(2026, time.March, 10, 10, 30, 0, 0, loc)
	assert.True(t, svc.slotOnGrid(p, onGrid.UTC()))

	offGridMinute := time.Date(2026, time.March, 10, 10, 45, 0, 0, loc)
	assert.False(t, svc.slotOnGrid(p, offGridMinute.UTC()))

	beforeOpen := time.Date(2026, time.March, 10, 8, 30, 0, 0, loc)
	assert.False(t, svc.slotOnGrid(p, beforeOpen.UTC()))

	afterClose := time.Date(2026, time.March, 10, 18, 0, 0, 0, loc)
	assert.False(t, svc.slotOnGrid(p, afterClose.UTC()))

	sunday := time.Date(2026, time.March, 8, 10, 30, 0, 0, loc)
	assert.False(t, svc.slotOnGrid(p, sunday.UTC()))

	independenceDay := time.Date(2026, time.July, 4, 10, 30, 0, 0, loc)
	assert.False(t, svc.slotOnGrid(p, independenceDay.UTC()))
}

func TestSlotOnGridUsesPropertyTimezone(t *testing.T) {
	svc := &appointmentService{}
	p := testProperty()

	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 09:00 in New York is 08:00 in Chicago, before the workday opens.
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	nyMorning := time.Date(2026, time.March, 10, 9, 0, 0, 0, newYork)
	assert.False(t, svc.slotOnGrid(p, nyMorning.UTC()))

	chicagoMorning := time.Date(2026, time.March, 10, 9, 0, 0, 0, chicago)
	assert.True(t, svc.slotOnGrid(p, chicagoMorning.UTC()))
}

func TestPropertyLocationFallsBackToUTC(t *testing.T) {
	// Middle of the Atlantic; no IANA zone.
	p := &models.Property{Latitude: 0, Longitude: -30}
	loc, name := propertyLocation(p)
	assert.Equal(t, "UTC", name)
	assert.Equal(t, time.UTC, loc)
}
