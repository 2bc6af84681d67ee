package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/juanqui-art/inmo-app-sub002/internal/config"
	"github.com/juanqui-art/inmo-app-sub002/internal/constants"
	"github.com/juanqui-art/inmo-app-sub002/internal/dtos"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/repositories"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// AuthService owns registration, credential checks and the token
// lifecycle for every role.
type AuthService interface {
	Register(ctx context.Context, req dtos.RegisterRequest, ip string) (*models.User, error)
	Login(
		ctx context.Context,
		req dtos.LoginRequest,
		clientIdentifier utils.ClientIdentifier,
	) (*models.User, string, string, error)
	RefreshToken(
		ctx context.Context,
		refreshTokenString string,
		clientIdentifier utils.ClientIdentifier,
	) (string, string, error)
	Logout(ctx context.Context, refreshTokenString string) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	jwtService  JWTService
	rateLimiter RateLimiterService
	cfg         *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	jwtService JWTService,
	rateLimiter RateLimiterService,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		rateLimiter: rateLimiter,
		cfg:         cfg,
	}
}

func (s *authService) Register(ctx context.Context, req dtos.RegisterRequest, ip string) (*models.User, error) {
	if err := s.rateLimiter.CheckRegisterRateLimits(ctx, ip); err != nil {
		return nil, err
	}

	role := models.UserRoleType(req.Role)
	if role != models.UserRoleBuyer && role != models.UserRoleAgent {
		return nil, utils.ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to check for existing user on register")
		return nil, errors.New("internal server error")
	}
	if existing != nil {
		return nil, utils.ErrEmailExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to hash password on register")
		return nil, errors.New("internal server error")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		AgencyName:   req.AgencyName,
		LicenseID:    req.LicenseID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		utils.Logger.WithError(err).Error("Failed to create user on register")
		return nil, errors.New("internal server error")
	}
	return user, nil
}

func (s *authService) Login(
	ctx context.Context,
	req dtos.LoginRequest,
	clientIdentifier utils.ClientIdentifier,
) (*models.User, string, string, error) {

	if clientIdentifier.Type == utils.ClientIDTypeIP {
		if err := s.rateLimiter.CheckLoginRateLimits(ctx, clientIdentifier.Value); err != nil {
			return nil, "", "", err
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, "", "", errors.New("invalid credentials")
	}

	if user.IsBanned {
		return nil, "", "", utils.ErrAccountBanned
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", "", errors.New("invalid credentials")
	}

	// Admin accounts require a second factor.
	if user.Role == models.UserRoleAdmin {
		if user.TOTPSecret == "" || !utils.ValidateTOTPCode(user.TOTPSecret, req.TOTPCode) {
			return nil, "", "", errors.New("invalid credentials")
		}
	}

	accessToken, aErr := s.jwtService.GenerateAccessToken(
		user.ID, user.Role, clientIdentifier, constants.AccessTokenTTL)
	if aErr != nil {
		utils.Logger.WithError(aErr).Error("Failed to generate access token")
		return nil, "", "", errors.New("token generation failed")
	}

	refreshToken, rErr := s.jwtService.GenerateRefreshToken(
		ctx, user.ID, clientIdentifier, constants.RefreshTokenTTL)
	if rErr != nil {
		utils.Logger.WithError(rErr).Error("Failed to generate refresh token")
		return nil, "", "", errors.New("token generation failed")
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) RefreshToken(
	ctx context.Context,
	refreshTokenString string,
	clientIdentifier utils.ClientIdentifier,
) (string, string, error) {

	subjectID, err := s.jwtService.SubjectOf(ctx, refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, subjectID)
	if err != nil || user == nil {
		return "", "", errors.New("invalid refresh token")
	}
	if user.IsBanned {
		return "", "", utils.ErrAccountBanned
	}

	return s.jwtService.RefreshToken(
		ctx,
		refreshTokenString,
		user.Role,
		clientIdentifier,
		constants.AccessTokenTTL,
		constants.RefreshTokenTTL,
	)
}

func (s *authService) Logout(ctx context.Context, refreshTokenString string) error {
	return s.jwtService.Logout(ctx, refreshTokenString)
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
