package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// NotificationService fans appointment events out over email and SMS.
// Delivery failures are logged, never surfaced to the caller; a visit
// booking must not fail because SendGrid hiccuped.
type NotificationService interface {
	NotifyAppointmentBooked(ctx context.Context, a *models.Appointment, p *models.Property)
	NotifyAppointmentConfirmed(ctx context.Context, a *models.Appointment, p *models.Property)
	NotifyAppointmentCanceled(ctx context.Context, a *models.Appointment, p *models.Property, canceledBy uuid.UUID)
	NotifyAppointmentReminder(ctx context.Context, a *models.Appointment, p *models.Property)
}

type notificationService struct {
	userRepo       repositories.UserRepository
	sendgridClient *sendgrid.Client
	twilioClient   *twilio.RestClient
	cfg            *config.Config
}

func NewNotificationService(
	userRepo repositories.UserRepository,
	sendgridClient *sendgrid.Client,
	twilioClient *twilio.RestClient,
	cfg *config.Config,
) NotificationService {
	return &notificationService{
		userRepo:       userRepo,
		sendgridClient: sendgridClient,
		twilioClient:   twilioClient,
		cfg:            cfg,
	}
}

func (s *notificationService) NotifyAppointmentBooked(ctx context.Context, a *models.Appointment, p *models.Property) {
	when := a.StartsAt.Format(time.RFC1123)

	s.emailUser(ctx, a.AgentID,
		"New visit request",
		fmt.Sprintf("A buyer requested a visit to %q.", p.Title),
		when,
		"Confirm or decline it from your dashboard.")

	s.emailUser(ctx, a.BuyerID,
		"Visit requested",
		fmt.Sprintf("Your visit request for %q was received.", p.Title),
		when,
		"You will get a confirmation once the agent accepts.")

	s.smsUser(ctx, a.AgentID, fmt.Sprintf("New visit request for %q at %s", p.Title, when))
}

func (s *notificationService) NotifyAppointmentConfirmed(ctx context.Context, a *models.Appointment, p *models.Property) {
	when := a.StartsAt.Format(time.RFC1123)

	s.emailUser(ctx, a.BuyerID,
		"Visit confirmed",
		fmt.Sprintf("Your visit to %q is confirmed.", p.Title),
		when,
		fmt.Sprintf("Address: %s, %s.", p.Address, p.City))

	s.smsUser(ctx, a.BuyerID, fmt.Sprintf("Visit to %q confirmed for %s", p.Title, when))
}

func (s *notificationService) NotifyAppointmentCanceled(ctx context.Context, a *models.Appointment, p *models.Property, canceledBy uuid.UUID) {
	when := a.StartsAt.Format(time.RFC1123)

	// Tell the party that did not cancel.
	other := a.BuyerID
	if canceledBy == a.BuyerID {
		other = a.AgentID
	}

	s.emailUser(ctx, other,
		"Visit canceled",
		fmt.Sprintf("The visit to %q was canceled.", p.Title),
		when,
		"The slot is open again.")
}

func (s *notificationService) NotifyAppointmentReminder(ctx context.Context, a *models.Appointment, p *models.Property) {
	when := a.StartsAt.Format(time.RFC1123)

	s.emailUser(ctx, a.BuyerID,
		"Visit reminder",
		fmt.Sprintf("Reminder: your visit to %q is coming up.", p.Title),
		when,
		fmt.Sprintf("Address: %s, %s.", p.Address, p.City))

	s.smsUser(ctx, a.BuyerID, fmt.Sprintf("Reminder: visit to %q at %s", p.Title, when))
}

func (s *notificationService) emailUser(ctx context.Context, userID uuid.UUID, subject, intro, highlight, outro string) {
	if s.sendgridClient == nil {
		return
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		utils.Logger.WithError(err).Errorf("Failed to load user %s for email notification", userID)
		return
	}

	from := mail.NewEmail(s.cfg.OrganizationName, s.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail(u.FirstName+" "+u.LastName, u.Email)
	plainTextContent := fmt.Sprintf("%s %s %s", intro, highlight, outro)
	htmlContent := fmt.Sprintf(appointmentEmailHTML, subject, intro, highlight, outro, time.Now().Year())
	message := mail.NewSingleEmail(from, s.cfg.OrganizationName+" - "+subject, to, plainTextContent, htmlContent)

	if s.cfg.LDFlag_SendgridSandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	if _, sendErr := s.sendgridClient.Send(message); sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send %q email to %s via SendGrid", subject, u.Email)
	}
}

func (s *notificationService) smsUser(ctx context.Context, userID uuid.UUID, body string) {
	if s.twilioClient == nil || s.cfg.LDFlag_TwilioFromPhone == "" {
		return
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil || u.PhoneNumber == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(u.PhoneNumber)
	params.SetFrom(s.cfg.LDFlag_TwilioFromPhone)
	params.SetBody(body)

	if _, sendErr := s.twilioClient.Api.CreateMessage(params); sendErr != nil {
		utils.Logger.WithError(sendErr).Errorf("Failed to send SMS to %s via Twilio", u.PhoneNumber)
	}
}
