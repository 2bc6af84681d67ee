package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/services"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

type AISearchController struct {
	aiSearchService services.AISearchService
	searchService   services.SearchService
	rateLimiter     services.RateLimiterService
	cfg             *config.Config
}

func NewAISearchController(
	aiSearchService services.AISearchService,
	searchService services.SearchService,
	rateLimiter services.RateLimiterService,
	cfg *config.Config,
) *AISearchController {
	return &AISearchController{
		aiSearchService: aiSearchService,
		searchService:   searchService,
		rateLimiter:     rateLimiter,
		cfg:             cfg,
	}
}

var aiSearchValidate = validator.New()

func (c *AISearchController) SearchHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.AISearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := aiSearchValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid search query", nil, err,
		)
		return
	}

	ip := utils.GetClientIdentifier(r, utils.PlatformWeb).Value
	if err := c.rateLimiter.CheckAISearchRateLimits(r.Context(), ip); err != nil {
		handleServiceError(w, err)
		return
	}

	// Kill switch. When the flag is off, serve plain keyword search so
	// the endpoint keeps answering.
	if !c.cfg.LDFlag_AISearchEnabled {
		c.keywordSearch(w, r, req.Query)
		return
	}

	resp, err := c.aiSearchService.Search(r.Context(), req.Query)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *AISearchController) keywordSearch(w http.ResponseWriter, r *http.Request, query string) {
	f := repositories.PropertyFilter{Keyword: &query}
	props, total, err := c.searchService.Search(r.Context(), f)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.AISearchResponse{
		Properties:     propertiesToDTOs(props),
		Total:          total,
		AIParseApplied: false,
	})
}
