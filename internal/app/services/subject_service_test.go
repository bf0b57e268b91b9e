package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
)

type mockSubjectStore struct {
	getByDepartment func(ctx context.Context, department string) ([]*models.Subject, error)
	getSharedWith   func(ctx context.Context, department string) ([]*models.Subject, error)
	getAll          func(ctx context.Context) ([]*models.Subject, error)
}

func (m *mockSubjectStore) GetByDepartment(ctx context.Context, department string) ([]*models.Subject, error) {
	return m.getByDepartment(ctx, department)
}

func (m *mockSubjectStore) GetSharedWith(ctx context.Context, department string) ([]*models.Subject, error) {
	return m.getSharedWith(ctx, department)
}

func (m *mockSubjectStore) GetAll(ctx context.Context) ([]*models.Subject, error) {
	return m.getAll(ctx)
}

func subjectFixture(code, name string, year, semester int) *models.Subject {
	return &models.Subject{Code: code, Name: name, Department: "CSE", Year: year, Semester: semester}
}

func TestListForDepartmentUnionsAndSorts(t *testing.T) {
	store := &mockSubjectStore{
		getByDepartment: func(_ context.Context, department string) ([]*models.Subject, error) {
			assert.Equal(t, "CSE", department)
			return []*models.Subject{
				subjectFixture("CS301", "Operating Systems", 3, 1),
				subjectFixture("CS101", "Programming", 1, 1),
			}, nil
		},
		getSharedWith: func(_ context.Context, _ string) ([]*models.Subject, error) {
			return []*models.Subject{
				subjectFixture("MA201", "Discrete Math", 2, 1),
				// duplicate code from another department's copy
				subjectFixture("CS101", "Programming (shared)", 1, 1),
			}, nil
		},
	}
	svc := NewSubjectService(store)

	resp, err := svc.ListForDepartment(context.Background(), "CSE")
	require.NoError(t, err)

	codes := make([]string, 0, len(resp.Subjects))
	for _, s := range resp.Subjects {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{"CS101", "MA201", "CS301"}, codes, "year/semester/name order, duplicates dropped")
	assert.Equal(t, "Programming", resp.Subjects[0].Name, "the department's own entry wins the dedupe")
}

func TestListForDepartmentEmptyDepartmentReturnsCatalog(t *testing.T) {
	store := &mockSubjectStore{
		getAll: func(_ context.Context) ([]*models.Subject, error) {
			return []*models.Subject{subjectFixture("CS101", "Programming", 1, 1)}, nil
		},
	}
	svc := NewSubjectService(store)

	resp, err := svc.ListForDepartment(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, resp.Subjects, 1)
}

func TestListForDepartmentStoreFailure(t *testing.T) {
	store := &mockSubjectStore{
		getByDepartment: func(_ context.Context, _ string) ([]*models.Subject, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewSubjectService(store)

	_, err := svc.ListForDepartment(context.Background(), "CSE")
	assert.ErrorIs(t, err, apperrors.ErrSubjectsUnavailable)
}

func TestUnionSubjectsKeepsFirstOccurrence(t *testing.T) {
	a := subjectFixture("CS101", "first", 1, 1)
	b := subjectFixture("CS101", "second", 1, 1)
	got := UnionSubjects([]*models.Subject{a}, []*models.Subject{b})
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Name)
}
