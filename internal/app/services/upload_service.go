package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/filestorage"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// DefaultAcceptedExtensions lists the document types a note may carry.
var DefaultAcceptedExtensions = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt"}

// UploadService handles the two-step note submission: first the file goes to
// the storage backend, then the metadata is submitted referencing the upload.
type UploadService struct {
	backend      filestorage.Backend
	noteStore    NoteStore
	maxBytes     int64
	acceptedExts map[string]bool
}

// NewUploadService creates a new UploadService. maxBytes is the upload size
// ceiling; extensions are matched case-insensitively.
func NewUploadService(backend filestorage.Backend, noteStore NoteStore, maxBytes int64, acceptedExts []string) *UploadService {
	if len(acceptedExts) == 0 {
		acceptedExts = DefaultAcceptedExtensions
	}
	extSet := make(map[string]bool, len(acceptedExts))
	for _, ext := range acceptedExts {
		extSet[strings.ToLower(ext)] = true
	}
	return &UploadService{
		backend:      backend,
		noteStore:    noteStore,
		maxBytes:     maxBytes,
		acceptedExts: extSet,
	}
}

// ValidateFile checks the extension whitelist and the size ceiling. It runs
// before any bytes travel to the backend, so rejected files cost nothing.
func (s *UploadService) ValidateFile(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.ErrUploadRequired
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !s.acceptedExts[ext] {
		return &apperrors.CustomError{
			Err:     apperrors.ErrFileTypeUnsupported,
			Message: fmt.Sprintf("file type %q is not supported", ext),
			Details: map[string]interface{}{"field": "file"},
		}
	}

	if s.maxBytes > 0 && fileHeader.Size > s.maxBytes {
		return &apperrors.CustomError{
			Err:     apperrors.ErrFileTooLarge,
			Message: fmt.Sprintf("file exceeds the %d MB limit", s.maxBytes/(1024*1024)),
			Details: map[string]interface{}{"field": "file"},
		}
	}

	return nil
}

// Upload validates the file, hands it to the storage backend and returns the
// normalized reference the client echoes back on submit. SuggestedTitle is
// the original filename without its extension, used to prefill the form.
func (s *UploadService) Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*dto.UploadResponse, error) {
	if err := s.ValidateFile(fileHeader); err != nil {
		return nil, err
	}

	raw, err := s.backend.Upload(ctx, fileHeader, folder)
	if err != nil {
		return nil, err
	}

	res, err := filestorage.Normalize(raw)
	if err != nil {
		logger.Error().Err(err).Str("backend", s.backend.Name()).Msg("Backend returned unusable upload result")
		return nil, err
	}

	return &dto.UploadResponse{
		Backend:        res.Backend,
		ID:             res.ID,
		URL:            res.URL,
		Name:           res.Name,
		SizeBytes:      res.SizeBytes,
		ViewURL:        res.ViewURL,
		DownloadURL:    res.DownloadURL,
		SuggestedTitle: SuggestedTitle(fileHeader.Filename),
	}, nil
}

// Submit persists the note metadata referencing a completed upload. All
// preconditions are checked before anything is written, so a failed submit
// leaves no partial record. Notes from moderators are approved on creation;
// everyone else's wait in the pending queue.
func (s *UploadService) Submit(ctx context.Context, session models.Session, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(req.SubjectCode) == "" {
		return nil, apperrors.NewValidationError("subjectCode", "subject is required")
	}
	if req.Upload.ID == "" || req.Upload.URL == "" {
		return nil, apperrors.NewValidationError("upload", "a completed upload reference is required")
	}

	fileName := req.Upload.Name
	if fileName == "" {
		fileName = models.UnknownFileName
	}
	sizeBytes := req.Upload.SizeBytes
	if sizeBytes < 0 {
		sizeBytes = 0
	}

	note := &models.Note{
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		SubjectCode:  strings.TrimSpace(req.SubjectCode),
		FileName:     fileName,
		FileSize:     sizeBytes,
		UploadedBy:   session.UserID,
		UploaderName: session.Name,
		SubclassID:   session.Subclass,
		IsShared:     req.IsShared,
		Tags:         SplitTags(req.Tags),
		Downloads:    0,
		Approved:     session.Role.IsModerator(),
		CreatedAt:    time.Now(),
	}

	if req.Upload.Backend == filestorage.BackendDrive {
		note.DriveFileID = req.Upload.ID
		note.ViewURL = req.Upload.ViewURL
		note.DownloadURL = req.Upload.DownloadURL
		if note.ViewURL == "" {
			note.ViewURL = filestorage.DriveViewURL(note.DriveFileID)
		}
		if note.DownloadURL == "" {
			note.DownloadURL = filestorage.DriveDownloadURL(note.DriveFileID)
		}
	} else {
		note.FileURL = req.Upload.URL
	}

	id, err := s.noteStore.CreateNote(ctx, note)
	if err != nil {
		logger.Error().Err(err).Str("title", title).Msg("Failed to persist note")
		return nil, err
	}
	note.ID = id

	logger.Info().Int64("noteId", id).Str("subject", note.SubjectCode).Bool("approved", note.Approved).Msg("Note submitted")

	resp := mapNoteToResponse(note)
	return &resp, nil
}

// SuggestedTitle derives a form-prefill title from an uploaded filename by
// stripping the extension.
func SuggestedTitle(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
