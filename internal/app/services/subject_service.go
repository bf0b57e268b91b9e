package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// SubjectStore is the persistence surface for the subject catalog.
type SubjectStore interface {
	GetByDepartment(ctx context.Context, department string) ([]*models.Subject, error)
	GetSharedWith(ctx context.Context, department string) ([]*models.Subject, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
}

// SubjectService serves the subject picker used to label notes.
type SubjectService struct {
	subjectStore SubjectStore
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectStore SubjectStore) *SubjectService {
	return &SubjectService{subjectStore: subjectStore}
}

// ListForDepartment returns the department's own subjects unioned with
// cross-department subjects shared into it, deduplicated by code and sorted
// by year, semester, then name. An empty department returns the whole
// catalog.
func (s *SubjectService) ListForDepartment(ctx context.Context, department string) (*dto.SubjectListResponse, error) {
	var (
		subjects []*models.Subject
		err      error
	)

	if department == "" {
		subjects, err = s.subjectStore.GetAll(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load subject catalog")
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSubjectsUnavailable, err)
		}
	} else {
		own, err := s.subjectStore.GetByDepartment(ctx, department)
		if err != nil {
			logger.Error().Err(err).Str("department", department).Msg("Failed to load department subjects")
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSubjectsUnavailable, err)
		}
		shared, err := s.subjectStore.GetSharedWith(ctx, department)
		if err != nil {
			logger.Error().Err(err).Str("department", department).Msg("Failed to load shared subjects")
			return nil, fmt.Errorf("%w: %v", apperrors.ErrSubjectsUnavailable, err)
		}
		subjects = UnionSubjects(own, shared)
	}

	SortSubjects(subjects)

	out := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subj := range subjects {
		out = append(out, dto.SubjectResponse{
			Code:        subj.Code,
			Name:        subj.Name,
			Department:  subj.Department,
			Year:        subj.Year,
			Semester:    subj.Semester,
			Credits:     subj.Credits,
			IsShared:    subj.IsShared,
			SharedWith:  subj.SharedWith,
			Description: subj.Description,
		})
	}

	return &dto.SubjectListResponse{Subjects: out}, nil
}

// UnionSubjects merges two subject lists, deduplicating by code. The first
// list wins on conflicts.
func UnionSubjects(primary, secondary []*models.Subject) []*models.Subject {
	seen := make(map[string]bool, len(primary)+len(secondary))
	out := make([]*models.Subject, 0, len(primary)+len(secondary))
	for _, list := range [][]*models.Subject{primary, secondary} {
		for _, subj := range list {
			if seen[subj.Code] {
				continue
			}
			seen[subj.Code] = true
			out = append(out, subj)
		}
	}
	return out
}

// SortSubjects orders the picker by year, then semester, then name.
func SortSubjects(subjects []*models.Subject) {
	sort.SliceStable(subjects, func(i, j int) bool {
		if subjects[i].Year != subjects[j].Year {
			return subjects[i].Year < subjects[j].Year
		}
		if subjects[i].Semester != subjects[j].Semester {
			return subjects[i].Semester < subjects[j].Semester
		}
		return subjects[i].Name < subjects[j].Name
	})
}
