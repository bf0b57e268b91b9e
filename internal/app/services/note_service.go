package services

import (
	"context"
	"fmt"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/filestorage"
	"github.com/campuscompanion/campusplus/internal/pkg/helpers"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// NoteStore is the persistence surface the notes pipeline depends on.
type NoteStore interface {
	GetAllNotes(ctx context.Context, cap int) ([]*models.Note, error)
	GetNoteByID(ctx context.Context, id int64) (*models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) (int64, error)
	IncrementDownloads(ctx context.Context, id int64) (int64, error)
	SetApproval(ctx context.Context, id int64, approved bool) error
}

// NoteService implements the notes listing, access and approval operations.
type NoteService struct {
	noteStore NoteStore
	resultCap int
}

// NewNoteService creates a new NoteService. resultCap bounds the candidate
// set fetched per list request.
func NewNoteService(noteStore NoteStore, resultCap int) *NoteService {
	return &NoteService{
		noteStore: noteStore,
		resultCap: resultCap,
	}
}

// ListNotes returns the notes visible to the session, filtered, sorted and
// paginated. Visibility and the approval gate are resolved before any
// user-supplied filter runs, so filters can only narrow the visible set.
func (s *NoteService) ListNotes(ctx context.Context, session models.Session, filter dto.NoteFilterRequest) (*dto.NoteListResponse, error) {
	if filter.Pending && !session.Role.IsModerator() {
		return nil, apperrors.NewForbiddenError("only class representatives and admins may view the pending queue")
	}

	all, err := s.noteStore.GetAllNotes(ctx, s.resultCap)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load notes from store")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNotesUnavailable, err)
	}

	visible := make([]*models.Note, 0, len(all))
	for _, note := range all {
		if !VisibleTo(note, session) {
			continue
		}
		if !PassesApprovalGate(note, session, filter.Pending) {
			continue
		}
		visible = append(visible, note)
	}

	filtered := FilterNotes(visible, filter)
	SortNotes(filtered, filter.SortBy)

	total := len(filtered)
	start, end := helpers.CalculateSliceIndices(filter.Page, filter.Size, total)

	notes := make([]dto.NoteResponse, 0, end-start)
	for _, note := range filtered[start:end] {
		notes = append(notes, mapNoteToResponse(note))
	}

	return &dto.NoteListResponse{
		Notes:      notes,
		Pagination: helpers.NewPaginationInfo(int64(total), filter.Page, filter.Size),
	}, nil
}

// RecordAccess resolves the view/download URLs for a note and bumps its
// download counter. Notes outside the session's visibility behave as if they
// did not exist. Moderators may open unapproved notes so the pending queue
// lets them preview a file before ruling on it.
func (s *NoteService) RecordAccess(ctx context.Context, session models.Session, noteID int64) (*dto.AccessResponse, error) {
	note, err := s.noteStore.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	canModerate := !note.Approved && session.Role.IsModerator()
	if !VisibleTo(note, session) || (!PassesApprovalGate(note, session, false) && !canModerate) {
		return nil, apperrors.ErrNoteNotFound
	}

	viewURL, downloadURL := resolveFileURLs(note)
	if viewURL == "" && downloadURL == "" {
		return nil, apperrors.NewResourceNotFoundError("note has no file attached")
	}

	downloads, err := s.noteStore.IncrementDownloads(ctx, noteID)
	if err != nil {
		// Counting is best-effort; the user still gets their file.
		logger.Warn().Err(err).Int64("noteId", noteID).Msg("Failed to increment download counter")
		downloads = note.Downloads
	}

	return &dto.AccessResponse{
		ViewURL:     viewURL,
		DownloadURL: downloadURL,
		FileName:    note.FileName,
		Downloads:   downloads,
	}, nil
}

// SetApproval flips the approval gate on a note. Only moderators may call it;
// the route also enforces this, the check here keeps the rule with the rest
// of the pipeline.
func (s *NoteService) SetApproval(ctx context.Context, session models.Session, noteID int64, approved bool) (*dto.NoteResponse, error) {
	if !session.Role.IsModerator() {
		return nil, apperrors.NewForbiddenError("only class representatives and admins may approve notes")
	}

	if err := s.noteStore.SetApproval(ctx, noteID, approved); err != nil {
		return nil, err
	}

	note, err := s.noteStore.GetNoteByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("noteId", noteID).Bool("approved", approved).Int64("byUser", session.UserID).Msg("Note approval updated")

	resp := mapNoteToResponse(note)
	return &resp, nil
}

// resolveFileURLs picks the pair of URLs for an access action depending on
// which file reference shape the note carries.
func resolveFileURLs(note *models.Note) (viewURL, downloadURL string) {
	if note.IsDriveBacked() {
		viewURL = note.ViewURL
		if viewURL == "" {
			viewURL = filestorage.DriveViewURL(note.DriveFileID)
		}
		downloadURL = note.DownloadURL
		if downloadURL == "" {
			downloadURL = filestorage.DriveDownloadURL(note.DriveFileID)
		}
		return viewURL, downloadURL
	}
	// Legacy direct link serves both actions.
	return note.FileURL, note.FileURL
}

func mapNoteToResponse(note *models.Note) dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.NoteResponse{
		ID:           note.ID,
		Title:        note.Title,
		Description:  note.Description,
		SubjectCode:  note.SubjectCode,
		FileURL:      note.FileURL,
		DriveFileID:  note.DriveFileID,
		ViewURL:      note.ViewURL,
		DownloadURL:  note.DownloadURL,
		FileName:     note.FileName,
		FileSize:     note.FileSize,
		UploadedBy:   note.UploadedBy,
		UploaderName: note.UploaderName,
		SubclassID:   note.SubclassID,
		IsShared:     note.IsShared,
		Tags:         tags,
		Downloads:    note.Downloads,
		Approved:     note.Approved,
		CreatedAt:    note.CreatedAt,
	}
}
