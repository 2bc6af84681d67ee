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

// AgentPropertyController serves the agent dashboard: listing CRUD,
// the status lifecycle, image management and the visit schedule. Every
// handler assumes the role middleware already verified AGENT.
type AgentPropertyController struct {
	propertyService    services.PropertyService
	appointmentService services.AppointmentService
}

func NewAgentPropertyController(
	propertyService services.PropertyService,
	appointmentService services.AppointmentService,
) *AgentPropertyController {
	return &AgentPropertyController{
		propertyService:    propertyService,
		appointmentService: appointmentService,
	}
}

var agentPropertyValidate = validator.New()

func (c *AgentPropertyController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := agentPropertyValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid listing data", nil, err,
		)
		return
	}

	agentID := getUserIDFromContext(r)
	p, err := c.propertyService.Create(r.Context(), agentID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewPropertyFromModel(p))
}

// InventoryHandler lists every listing the agent owns, drafts included.
func (c *AgentPropertyController) InventoryHandler(w http.ResponseWriter, r *http.Request) {
	agentID := getUserIDFromContext(r)

	props, err := c.propertyService.ListInventory(r.Context(), agentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyList{
		Properties: propertiesToDTOs(props),
		Total:      len(props),
		Page:       1,
		Size:       len(props),
	})
}

func (c *AgentPropertyController) GetHandler(w http.ResponseWriter, r *http.Request) {
	agentID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	p, err := c.propertyService.GetOwned(r.Context(), agentID, propertyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dto := dtos.NewPropertyFromModel(p)
	images, iErr := c.propertyService.ListImages(r.Context(), p.ID)
	if iErr != nil {
		utils.Logger.WithError(iErr).Errorf("Failed to load images for property %s", p.ID)
	} else {
		dto.Images = imagesToDTOs(images)
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

func (c *AgentPropertyController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := agentPropertyValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid listing data", nil, err,
		)
		return
	}

	agentID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	p, err := c.propertyService.Update(r.Context(), agentID, propertyID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewPropertyFromModel(p))
}

func (c *AgentPropertyController) ChangeStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ChangePropertyStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := agentPropertyValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid status", nil, err,
		)
		return
	}

	agentID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	p, err := c.propertyService.ChangeStatus(
		r.Context(), agentID, propertyID, models.PropertyStatusType(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewPropertyFromModel(p))
}

// DeleteHandler removes a listing. When favorites or appointments still
// reference it the listing is archived instead, and the response says so.
func (c *AgentPropertyController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	agentID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	archived, err := c.propertyService.Delete(r.Context(), agentID, propertyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if archived {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{
			"result": "archived",
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AgentPropertyController) AddImageHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AddPropertyImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := agentPropertyValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid image data", nil, err,
		)
		return
	}

	agentID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	img, err := c.propertyService.AddImage(r.Context(), agentID, propertyID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.PropertyImage{
		ID:        img.ID.String(),
		URL:       img.URL,
		AltText:   img.AltText,
		SortOrder: img.SortOrder,
		IsCover:   img.IsCover,
	})
}

func (c *AgentPropertyController) RemoveImageHandler(w http.ResponseWriter, r *http.Request) {
	agentID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}
	imageID, err := pathUUID(r, "imageId")
	if err != nil {
		respondNotFound(w)
		return
	}

	if err := c.propertyService.RemoveImage(r.Context(), agentID, propertyID, imageID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AgentPropertyController) SetCoverHandler(w http.ResponseWriter, r *http.Request) {
	agentID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}
	imageID, err := pathUUID(r, "imageId")
	if err != nil {
		respondNotFound(w)
		return
	}

	if err := c.propertyService.SetCoverImage(r.Context(), agentID, propertyID, imageID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AppointmentsHandler lists the visits booked against the agent's
// listings.
func (c *AgentPropertyController) AppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	agentID := getUserIDFromContext(r)

	appts, err := c.appointmentService.ListForAgent(r.Context(), agentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, appointmentListDTO(appts))
}
