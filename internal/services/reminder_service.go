package services

import (
	"context"
	"time"

	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// ReminderService sends one reminder for each confirmed visit starting
// inside the reminder window. MarkReminderSent keeps the job idempotent
// across runs.
type ReminderService interface {
	DispatchDue(ctx context.Context) error
}

type reminderService struct {
	apptRepo     repositories.AppointmentRepository
	propRepo     repositories.PropertyRepository
	notification NotificationService
}

func NewReminderService(
	apptRepo repositories.AppointmentRepository,
	propRepo repositories.PropertyRepository,
	notification NotificationService,
) ReminderService {
	return &reminderService{
		apptRepo:     apptRepo,
		propRepo:     propRepo,
		notification: notification,
	}
}

func (s *reminderService) DispatchDue(ctx context.Context) error {
	due, err := s.apptRepo.ListConfirmedStartingWithin(ctx, time.Now().UTC(), constants.ReminderWindow)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to list appointments due for reminders")
		return err
	}

	for _, a := range due {
		p, pErr := s.propRepo.GetByID(ctx, a.PropertyID)
		if pErr != nil || p == nil {
			utils.Logger.WithError(pErr).Errorf("Skipping reminder for appointment %s: property lookup failed", a.ID)
			continue
		}

		s.notification.NotifyAppointmentReminder(ctx, a, p)

		if mErr := s.apptRepo.MarkReminderSent(ctx, a.ID, time.Now().UTC()); mErr != nil {
			utils.Logger.WithError(mErr).Errorf("Failed to mark reminder sent for appointment %s", a.ID)
		}
	}
	return nil
}
