package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/repositories"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/auth"
	"github.com/campuscompanion/campusplus/internal/pkg/dberrors"
)

// CreateDefaultData seeds a starter set of accounts and subjects so a fresh
// install is usable immediately. Re-runs are no-ops; existing rows are left
// alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (users/subjects)...")
	var finalErr error

	defaultUsers := []struct {
		email    string
		password string
		name     string
		role     models.RoleType
	}{
		{"admin@campusplus.app", "admin123", "Administrator", models.RoleAdmin},
		{"cr@campusplus.app", "cr123456", "Class Representative", models.RoleCR},
		{"student@campusplus.app", "student123", "Demo Student", models.RoleStudent},
	}

	for _, u := range defaultUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			lgr.Error().Err(err).Str("email", u.email).Msg("Error hashing default password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		_, err = userRepo.CreateUser(ctx, &models.User{
			Email:      u.email,
			Password:   hash,
			Name:       u.name,
			RoleType:   u.role,
			Department: "CSE",
			Subclass:   "CS-A",
			CreatedAt:  time.Now(),
		})
		if err != nil && !errors.Is(err, apperrors.ErrConflict) {
			lgr.Error().Err(err).Str("email", u.email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	defaultSubjects := []struct {
		code       string
		name       string
		department string
		year       int
		semester   int
		credits    int
		isShared   bool
		sharedWith []string
	}{
		{"CS101", "Programming Fundamentals", "CSE", 1, 1, 4, false, nil},
		{"CS301", "Operating Systems", "CSE", 3, 1, 4, false, nil},
		{"CS302", "Database Systems", "CSE", 3, 2, 4, false, nil},
		{"MA201", "Discrete Mathematics", "MATH", 2, 1, 3, true, []string{"CSE", "ECE"}},
		{"HS101", "Communication Skills", "HUM", 1, 1, 2, true, []string{"CSE", "ECE", "MECH"}},
	}

	for _, subj := range defaultSubjects {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO subjects (code, name, department, year, semester, credits, is_shared, shared_with)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (code) DO NOTHING`,
			subj.code, subj.name, subj.department, subj.year, subj.semester, subj.credits, subj.isShared, subj.sharedWith)
		if err != nil && !dberrors.IsUniqueViolation(err) {
			lgr.Error().Err(err).Str("code", subj.code).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data is in place.")
	}
	return finalErr
}
