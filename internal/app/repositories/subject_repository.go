package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// SubjectRepository handles database operations for Subject.
type SubjectRepository struct {
	DB *pgxpool.Pool
}

// NewSubjectRepository creates a new instance of SubjectRepository.
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) selectSubjectsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id",
		"code",
		"name",
		"COALESCE(department, '')",
		"COALESCE(year, 0)",
		"COALESCE(semester, 0)",
		"COALESCE(credits, 0)",
		"COALESCE(is_shared, FALSE)",
		"COALESCE(shared_with, '{}')",
		"COALESCE(description, '')",
	).From("subjects").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *SubjectRepository) querySubjects(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Subject, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building subjects SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing subjects query")
		return nil, err
	}
	defer rows.Close()

	subjects := make([]*models.Subject, 0)
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(
			&s.ID, &s.Code, &s.Name, &s.Department, &s.Year, &s.Semester,
			&s.Credits, &s.IsShared, &s.SharedWith, &s.Description,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning subject row")
			return nil, err
		}
		subjects = append(subjects, &s)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through subject rows")
		return nil, err
	}

	return subjects, nil
}

// GetByDepartment retrieves the subjects owned by a department.
func (r *SubjectRepository) GetByDepartment(ctx context.Context, department string) ([]*models.Subject, error) {
	return r.querySubjects(ctx, r.selectSubjectsQuery().Where(squirrel.Eq{"department": department}))
}

// GetSharedWith retrieves cross-department subjects opened to the given
// department.
func (r *SubjectRepository) GetSharedWith(ctx context.Context, department string) ([]*models.Subject, error) {
	return r.querySubjects(ctx, r.selectSubjectsQuery().
		Where(squirrel.Eq{"is_shared": true}).
		Where("? = ANY(shared_with)", department))
}

// GetAll retrieves every subject in the catalog.
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	return r.querySubjects(ctx, r.selectSubjectsQuery())
}
