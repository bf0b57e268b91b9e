package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/auth"
)

type mockUserStore struct {
	getUserByEmail func(ctx context.Context, email string) (*models.User, error)
	getUserByID    func(ctx context.Context, id int64) (*models.User, error)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getUserByEmail(ctx, email)
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getUserByID(ctx, id)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "campusplus-test",
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	user := &models.User{
		ID:         7,
		Email:      "asha@example.edu",
		Password:   hash,
		Name:       "Asha",
		RoleType:   models.RoleStudent,
		Department: "CSE",
		Subclass:   "CS-A",
	}
	store := &mockUserStore{
		getUserByEmail: func(_ context.Context, email string) (*models.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, apperrors.ErrUserNotFound
		},
	}
	svc := NewAuthService(store, testJWTService())

	t.Run("valid credentials issue a token carrying the session", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.Equal(t, "CS-A", resp.User.Subclass)

		claims, err := testJWTService().ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		session := claims.Session()
		assert.Equal(t, int64(7), session.UserID)
		assert.Equal(t, models.RoleStudent, session.Role)
		assert.Equal(t, "CS-A", session.Subclass)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.edu", Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestMe(t *testing.T) {
	store := &mockUserStore{
		getUserByID: func(_ context.Context, id int64) (*models.User, error) {
			if id != 7 {
				return nil, apperrors.ErrUserNotFound
			}
			return &models.User{ID: 7, Email: "asha@example.edu", Name: "Asha", RoleType: models.RoleStudent}, nil
		},
	}
	svc := NewAuthService(store, testJWTService())

	profile, err := svc.Me(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.edu", profile.Email)

	_, err = svc.Me(context.Background(), 8)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
