package controllers

import (
	"net/http"

	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/services"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

type FavoriteController struct {
	favoriteService services.FavoriteService
}

func NewFavoriteController(favoriteService services.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// SaveHandler is idempotent: favoriting an already-favorited listing
// succeeds quietly.
func (c *FavoriteController) SaveHandler(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "propertyId")
	if err != nil {
		respondNotFound(w)
		return
	}

	if err := c.favoriteService.Save(r.Context(), userID, propertyID); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FavoriteStatus{
		PropertyID: propertyID.String(),
		Favorited:  true,
	})
}

func (c *FavoriteController) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	propertyID, err := pathUUID(r, "propertyId")
	if err != nil {
		respondNotFound(w)
		return
	}

	if err := c.favoriteService.Remove(r.Context(), userID, propertyID); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FavoriteStatus{
		PropertyID: propertyID.String(),
		Favorited:  false,
	})
}

func (c *FavoriteController) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)

	props, err := c.favoriteService.ListProperties(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.FavoriteList{Properties: propertiesToDTOs(props)})
}
