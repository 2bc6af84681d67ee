package constants

import "time"

// Catalog search paging.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Map browsing.
const (
	MapMaxPins        = 200
	NearbyMaxRadiusKm = 50.0
	NearbyDefaultKm   = 5.0
)

// AI search. Parses below the confidence floor fall back to plain
// keyword search instead of guessing at filters.
const AISearchMinConfidence = 0.6

// Visit scheduling. Slots are a fixed 30-minute grid inside working
// hours, computed in the property's local timezone.
const (
	SlotDuration     = 30 * time.Minute
	WorkdayStartHour = 9
	WorkdayEndHour   = 18

	// Bookings and cancellations both need this much notice.
	MinLeadTime = 2 * time.Hour

	// How far ahead the slot grid is offered.
	BookingHorizonDays = 14

	// Reminder window for confirmed visits.
	ReminderWindow = 24 * time.Hour
)

// Auth token lifetimes.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour
)
