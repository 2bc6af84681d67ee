package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/routes"
	"github.com/juanqui-art/inmo-app-sub002/internal/services"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

type AuthController struct {
	authService services.AuthService
	cfg         *config.Config
}

func NewAuthController(authService services.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, cfg: cfg}
}

var authValidate = validator.New()

func (c *AuthController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid registration data", nil, err,
		)
		return
	}

	ip := utils.GetClientIdentifier(r, utils.PlatformWeb).Value

	user, err := c.authService.Register(r.Context(), req, ip)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.RegisterResponse{User: dtos.NewUserFromModel(user)})
}

func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid login data", nil, err,
		)
		return
	}

	platform := utils.GetClientPlatform(r)
	clientID := utils.GetClientIdentifier(r, platform)

	user, accessToken, refreshToken, err := c.authService.Login(r.Context(), req, clientID)
	if err != nil {
		if err.Error() == "invalid credentials" {
			utils.RespondErrorWithCode(
				w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid credentials", nil,
			)
			return
		}
		handleServiceError(w, err)
		return
	}

	resp := dtos.LoginResponse{User: dtos.NewUserFromModel(user)}
	if platform == utils.PlatformWeb {
		utils.SetAuthCookies(
			w, accessToken, refreshToken,
			constants.AccessTokenTTL, constants.RefreshTokenTTL,
			routes.AuthRefresh, c.cfg.LDFlag_CORSHighSecurity,
		)
	} else {
		resp.AccessToken = accessToken
		resp.RefreshToken = refreshToken
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *AuthController) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	platform := utils.GetClientPlatform(r)
	clientID := utils.GetClientIdentifier(r, platform)

	refreshToken := c.extractRefreshToken(r, platform)
	if refreshToken == "" {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing refresh token", nil,
		)
		return
	}

	newAccess, newRefresh, err := c.authService.RefreshToken(r.Context(), refreshToken, clientID)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid refresh token", nil, err,
		)
		return
	}

	resp := dtos.RefreshTokenResponse{}
	if platform == utils.PlatformWeb {
		utils.SetAuthCookies(
			w, newAccess, newRefresh,
			constants.AccessTokenTTL, constants.RefreshTokenTTL,
			routes.AuthRefresh, c.cfg.LDFlag_CORSHighSecurity,
		)
	} else {
		resp.AccessToken = newAccess
		resp.RefreshToken = newRefresh
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (c *AuthController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	platform := utils.GetClientPlatform(r)

	refreshToken := c.extractRefreshToken(r, platform)
	if refreshToken != "" {
		if err := c.authService.Logout(r.Context(), refreshToken); err != nil {
			utils.Logger.WithError(err).Error("Logout failed")
		}
	}

	if platform == utils.PlatformWeb {
		utils.ClearAuthCookies(w, routes.AuthRefresh, c.cfg.LDFlag_CORSHighSecurity)
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.LogoutResponse{Message: "Logged out"})
}

func (c *AuthController) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	user, err := c.authService.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		respondNotFound(w)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewUserFromModel(user))
}

// extractRefreshToken reads the refresh cookie for web, or the JSON body
// for mobile.
func (c *AuthController) extractRefreshToken(r *http.Request, platform utils.PlatformType) string {
	if platform == utils.PlatformWeb {
		cookie, err := r.Cookie(utils.RefreshTokenCookieName)
		if err != nil {
			return ""
		}
		return cookie.Value
	}

	var req dtos.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}
