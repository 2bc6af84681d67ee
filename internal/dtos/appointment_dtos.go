package dtos

import (
	"time"

	"github.com/juanqui-art/inmo-app-sub002/internal/models"
)

// ----------------------
// Requests
// ----------------------

type BookAppointmentRequest struct {
	PropertyID string    `json:"property_id" validate:"required,uuid4"`
	StartsAt   time.Time `json:"starts_at" validate:"required"`
	Note       *string   `json:"note" validate:"omitempty,max=500"`
}

// ----------------------
// Responses
// ----------------------

type Appointment struct {
	ID         string                       `json:"id"`
	PropertyID string                       `json:"property_id"`
	BuyerID    string                       `json:"buyer_id"`
	AgentID    string                       `json:"agent_id"`
	StartsAt   time.Time                    `json:"starts_at"`
	Status     models.AppointmentStatusType `json:"status"`
	Note       *string                      `json:"note,omitempty"`
	CreatedAt  time.Time                    `json:"created_at"`
}

type AppointmentList struct {
	Appointments []Appointment `json:"appointments"`
}

// SlotList carries the bookable slot starts for one property and day,
// expressed in UTC.
type SlotList struct {
	PropertyID string      `json:"property_id"`
	Date       string      `json:"date"`
	Timezone   string      `json:"timezone"`
	Slots      []time.Time `json:"slots"`
}

// NewAppointmentFromModel creates an Appointment DTO from a models.Appointment.
func NewAppointmentFromModel(a *models.Appointment) Appointment {
	return Appointment{
		ID:         a.ID.String(),
		PropertyID: a.PropertyID.String(),
		BuyerID:    a.BuyerID.String(),
		AgentID:    a.AgentID.String(),
		StartsAt:   a.StartsAt,
		Status:     a.Status,
		Note:       a.Note,
		CreatedAt:  a.CreatedAt,
	}
}
