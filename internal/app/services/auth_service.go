package services

import (
	"context"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/auth"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// UserStore is the persistence surface for accounts.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService implements login and session lookup.
type AuthService struct {
	userStore  UserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userStore UserStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userStore:  userStore,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues an access token. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to generate access token")
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		User:        mapUserToProfile(user),
	}, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserProfileResponse, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := mapUserToProfile(user)
	return &profile, nil
}

func mapUserToProfile(user *models.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.RoleType),
		Department: user.Department,
		Subclass:   user.Subclass,
	}
}
