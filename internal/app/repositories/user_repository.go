package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/dberrors"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) selectUsersQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id",
		"email",
		"password",
		"name",
		"role_type",
		"COALESCE(department, '')",
		"COALESCE(subclass, '')",
		"created_at",
	).From("users").
		PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Name,
		&user.RoleType, &user.Department, &user.Subclass, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlStr, args, err := r.selectUsersQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetUserByID retrieves a user by ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := r.selectUsersQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// CreateUser inserts a new user and returns its assigned ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sqlStr, args, err := squirrel.Insert("users").
		Columns("email", "password", "name", "role_type", "department", "subclass", "created_at").
		Values(user.Email, user.Password, user.Name, user.RoleType, user.Department, user.Subclass, user.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrConflict
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, err
	}

	return id, nil
}
