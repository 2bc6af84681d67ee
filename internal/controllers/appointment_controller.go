package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/services"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

type AppointmentController struct {
	appointmentService services.AppointmentService
}

func NewAppointmentController(appointmentService services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointmentService: appointmentService}
}

var appointmentValidate = validator.New()

func (c *AppointmentController) BookHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := appointmentValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid booking data", nil, err,
		)
		return
	}

	buyerID := getUserIDFromContext(r)
	appt, err := c.appointmentService.Book(r.Context(), buyerID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewAppointmentFromModel(appt))
}

// ListHandler returns the caller's own appointments. Buyers see the
// visits they booked, agents the visits booked against their listings.
func (c *AppointmentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)

	role, _ := middlewareRole(r)
	var (
		appts []*models.Appointment
		err   error
	)
	if role == models.UserRoleAgent {
		appts, err = c.appointmentService.ListForAgent(r.Context(), userID)
	} else {
		appts, err = c.appointmentService.ListForBuyer(r.Context(), userID)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, appointmentListDTO(appts))
}

func (c *AppointmentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	appt, err := c.appointmentService.Get(r.Context(), userID, appointmentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewAppointmentFromModel(appt))
}

func (c *AppointmentController) ConfirmHandler(w http.ResponseWriter, r *http.Request) {
	agentID := getUserIDFromContext(r)
	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	appt, err := c.appointmentService.Confirm(r.Context(), agentID, appointmentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewAppointmentFromModel(appt))
}

func (c *AppointmentController) CancelHandler(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	appt, err := c.appointmentService.Cancel(r.Context(), userID, appointmentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewAppointmentFromModel(appt))
}

func appointmentListDTO(appts []*models.Appointment) dtos.AppointmentList {
	out := dtos.AppointmentList{Appointments: make([]dtos.Appointment, 0, len(appts))}
	for _, a := range appts {
		out.Appointments = append(out.Appointments, dtos.NewAppointmentFromModel(a))
	}
	return out
}
