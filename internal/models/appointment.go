package models

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatusType string

const (
	AppointmentStatusPending   AppointmentStatusType = "PENDING"
	AppointmentStatusConfirmed AppointmentStatusType = "CONFIRMED"
	AppointmentStatusCanceled  AppointmentStatusType = "CANCELED"
	AppointmentStatusCompleted AppointmentStatusType = "COMPLETED"
)

// Appointment is a property visit slot. StartsAt is stored in UTC; the
// slot grid is computed in the property's local timezone.
type Appointment struct {
	Versioned

	ID         uuid.UUID             `json:"id"`
	PropertyID uuid.UUID             `json:"property_id"`
	BuyerID    uuid.UUID             `json:"buyer_id"`
	AgentID    uuid.UUID             `json:"agent_id"`
	StartsAt   time.Time             `json:"starts_at"`
	Status     AppointmentStatusType `json:"status"`
	Note       *string               `json:"note,omitempty"`

	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
	CanceledBy     *uuid.UUID `json:"canceled_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) GetID() string {
	return a.ID.String()
}

// IsLive reports whether the appointment still occupies its slot.
func (a *Appointment) IsLive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}
