package services

import (
	"context"
	"time"

	"github.com/bradfitz/latlong"
	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// AppointmentService owns visit scheduling: slot computation, booking,
// confirmation and cancellation. All persisted times are UTC; the slot
// grid is laid out in the property's local timezone.
type AppointmentService interface {
	AvailableSlots(ctx context.Context, propertyID uuid.UUID, date string) (*dtos.SlotList, error)
	Book(ctx context.Context, buyerID uuid.UUID, req dtos.BookAppointmentRequest) (*models.Appointment, error)
	Get(ctx context.Context, userID, appointmentID uuid.UUID) (*models.Appointment, error)
	Confirm(ctx context.Context, agentID, appointmentID uuid.UUID) (*models.Appointment, error)
	Cancel(ctx context.Context, userID, appointmentID uuid.UUID) (*models.Appointment, error)
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*models.Appointment, error)
	ListForAgent(ctx context.Context, agentID uuid.UUID) ([]*models.Appointment, error)
}

type appointmentService struct {
	apptRepo     repositories.AppointmentRepository
	propRepo     repositories.PropertyRepository
	notification NotificationService
}

func NewAppointmentService(
	apptRepo repositories.AppointmentRepository,
	propRepo repositories.PropertyRepository,
	notification NotificationService,
) AppointmentService {
	return &appointmentService{
		apptRepo:     apptRepo,
		propRepo:     propRepo,
		notification: notification,
	}
}

// AvailableSlots computes the open 30-minute slot starts for one
// property and calendar day (YYYY-MM-DD, interpreted in the property's
// timezone). Sundays and federal holidays have no slots, and anything
// inside the minimum lead time is dropped.
func (s *appointmentService) AvailableSlots(ctx context.Context, propertyID uuid.UUID, date string) (*dtos.SlotList, error) {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsLive() {
		return nil, utils.ErrNotFound
	}

	loc, tzName := propertyLocation(p)

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, utils.ErrSlotUnavailable
	}

	now := time.Now()
	horizon := now.AddDate(0, 0, constants.BookingHorizonDays)
	if day.Before(now.AddDate(0, 0, -1)) || day.After(horizon) {
		return nil, utils.ErrSlotUnavailable
	}

	out := &dtos.SlotList{
		PropertyID: propertyID.String(),
		Date:       date,
		Timezone:   tzName,
		Slots:      []time.Time{},
	}

	if day.Weekday() == time.Sunday || utils.IsUSFedHoliday(day) {
		return out, nil
	}

	dayStart := day
	dayEnd := day.Add(24 * time.Hour)
	booked, err := s.apptRepo.ListLiveByAgentBetween(ctx, p.AgentID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, err
	}
	taken := make(map[int64]struct{}, len(booked))
	for _, a := range booked {
		taken[a.StartsAt.Unix()] = struct{}{}
	}

	earliest := now.Add(constants.MinLeadTime)
	for _, slot := range slotGrid(day, loc) {
		if slot.Before(earliest) {
			continue
		}
		if _, ok := taken[slot.Unix()]; ok {
			continue
		}
		out.Slots = append(out.Slots, slot.UTC())
	}
	return out, nil
}

func (s *appointmentService) Book(ctx context.Context, buyerID uuid.UUID, req dtos.BookAppointmentRequest) (*models.Appointment, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, utils.ErrNotFound
	}

	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	if !p.IsLive() {
		return nil, utils.ErrPropertyNotLive
	}
	if p.AgentID == buyerID {
		return nil, utils.ErrOwnProperty
	}

	startsAt := req.StartsAt.UTC()
	if !s.slotOnGrid(p, startsAt) {
		return nil, utils.ErrSlotUnavailable
	}
	if time.Until(startsAt) < constants.MinLeadTime {
		return nil, utils.ErrSlotUnavailable
	}

	// Re-check right before insert; two buyers racing for the same slot
	// still produce at most one live appointment per party.
	exists, err := s.apptRepo.ExistsLiveAt(ctx, p.AgentID, buyerID, startsAt)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.ErrSlotTaken
	}

	appt := &models.Appointment{
		ID:         uuid.New(),
		PropertyID: propertyID,
		BuyerID:    buyerID,
		AgentID:    p.AgentID,
		StartsAt:   startsAt,
		Status:     models.AppointmentStatusPending,
		Note:       req.Note,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.notification.NotifyAppointmentBooked(ctx, appt, p)
	return appt, nil
}

func (s *appointmentService) Confirm(ctx context.Context, agentID, appointmentID uuid.UUID) (*models.Appointment, error) {
	err := s.apptRepo.UpdateWithRetry(ctx, appointmentID, func(a *models.Appointment) error {
		if a.AgentID != agentID {
			return utils.ErrOwnershipMismatch
		}
		if a.Status != models.AppointmentStatusPending {
			return utils.ErrBadStatusChange
		}
		a.Status = models.AppointmentStatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err == nil && appt != nil {
		if p, pErr := s.propRepo.GetByID(ctx, appt.PropertyID); pErr == nil && p != nil {
			s.notification.NotifyAppointmentConfirmed(ctx, appt, p)
		}
	}
	return appt, err
}

func (s *appointmentService) Cancel(ctx context.Context, userID, appointmentID uuid.UUID) (*models.Appointment, error) {
	err := s.apptRepo.UpdateWithRetry(ctx, appointmentID, func(a *models.Appointment) error {
		if a.BuyerID != userID && a.AgentID != userID {
			return utils.ErrOwnershipMismatch
		}
		if !a.IsLive() {
			return utils.ErrBadStatusChange
		}
		if time.Until(a.StartsAt) < constants.MinLeadTime {
			return utils.ErrCancelTooLate
		}
		a.Status = models.AppointmentStatusCanceled
		a.CanceledBy = &userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err == nil && appt != nil {
		if p, pErr := s.propRepo.GetByID(ctx, appt.PropertyID); pErr == nil && p != nil {
			s.notification.NotifyAppointmentCanceled(ctx, appt, p, userID)
		}
	}
	return appt, err
}

// Get returns one appointment, visible only to its buyer or agent.
func (s *appointmentService) Get(ctx context.Context, userID, appointmentID uuid.UUID) (*models.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, utils.ErrNotFound
	}
	if appt.BuyerID != userID && appt.AgentID != userID {
		return nil, utils.ErrOwnershipMismatch
	}
	return appt, nil
}

func (s *appointmentService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]*models.Appointment, error) {
	return s.apptRepo.ListByBuyerID(ctx, buyerID)
}

func (s *appointmentService) ListForAgent(ctx context.Context, agentID uuid.UUID) ([]*models.Appointment, error) {
	return s.apptRepo.ListByAgentID(ctx, agentID)
}

// slotOnGrid verifies the requested start lies exactly on the working
// grid of the property's local day.
func (s *appointmentService) slotOnGrid(p *models.Property, startsAt time.Time) bool {
	loc, _ := propertyLocation(p)
	local := startsAt.In(loc)

	if local.Weekday() == time.Sunday || utils.IsUSFedHoliday(local) {
		return false
	}

	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	for _, slot := range slotGrid(day, loc) {
		if slot.Equal(startsAt) {
			return true
		}
	}
	return false
}

// slotGrid lays out the slot starts for one local day.
func slotGrid(day time.Time, loc *time.Location) []time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), constants.WorkdayStartHour, 0, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), constants.WorkdayEndHour, 0, 0, 0, loc)

	var slots []time.Time
	for t := start; t.Before(end); t = t.Add(constants.SlotDuration) {
		slots = append(slots, t)
	}
	return slots
}

func propertyLocation(p *models.Property) (*time.Location, string) {
	tzName := latlong.LookupZoneName(p.Latitude, p.Longitude)
	if tzName == "" {
		tzName = "UTC"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.UTC, "UTC"
	}
	return loc, tzName
}
