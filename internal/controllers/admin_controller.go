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

// AdminController serves the moderation panel. The role middleware
// guarantees every caller is an ADMIN.
type AdminController struct {
	adminService services.AdminService
}

func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

var adminValidate = validator.New()

func (c *AdminController) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 50)

	users, total, err := c.adminService.ListUsers(r.Context(), page, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	out := dtos.UserList{
		Users: make([]dtos.User, 0, len(users)),
		Total: total,
		Page:  page,
		Size:  size,
	}
	for _, u := range users {
		out.Users = append(out.Users, dtos.NewUserFromModel(u))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

func (c *AdminController) BanUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.BanUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := adminValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "A ban reason is required", nil, err,
		)
		return
	}

	userID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	user, err := c.adminService.BanUser(r.Context(), userID, req.Reason)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserFromModel(user))
}

func (c *AdminController) UnbanUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	user, err := c.adminService.UnbanUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserFromModel(user))
}

// ListPropertiesHandler searches every listing regardless of status.
func (c *AdminController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	if v := r.URL.Query().Get("status"); v != "" {
		st := models.PropertyStatusType(v)
		f.Status = &st
	}

	props, total, err := c.adminService.ListProperties(r.Context(), f)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyList{
		Properties: propertiesToDTOs(props),
		Total:      total,
		Page:       f.Page,
		Size:       f.Size,
	})
}

func (c *AdminController) ForceStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ChangePropertyStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := adminValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid status", nil, err,
		)
		return
	}

	propertyID, err := pathUUID(r, "id")
	if err != nil {
		respondNotFound(w)
		return
	}

	p, err := c.adminService.ForceStatus(
		r.Context(), propertyID, models.PropertyStatusType(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewPropertyFromModel(p))
}

func (c *AdminController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := c.adminService.Stats(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}
