package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/filestorage"
)

type mockBackend struct {
	name   string
	upload func(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*filestorage.UploadResult, error)
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*filestorage.UploadResult, error) {
	return m.upload(ctx, fileHeader, folder)
}

func fileHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

const maxUploadBytes = 25 * 1024 * 1024

func TestValidateFile(t *testing.T) {
	svc := NewUploadService(&mockBackend{name: "local"}, nil, maxUploadBytes, nil)

	t.Run("accepted document types pass", func(t *testing.T) {
		for _, name := range []string{"a.pdf", "b.DOCX", "c.ppt", "d.txt"} {
			assert.NoError(t, svc.ValidateFile(fileHeader(name, 1024)), name)
		}
	})

	t.Run("unsupported extension is rejected", func(t *testing.T) {
		err := svc.ValidateFile(fileHeader("malware.exe", 1024))
		assert.ErrorIs(t, err, apperrors.ErrFileTypeUnsupported)
	})

	t.Run("oversize file is rejected", func(t *testing.T) {
		err := svc.ValidateFile(fileHeader("big.pdf", maxUploadBytes+1))
		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ValidateFile(nil), apperrors.ErrUploadRequired)
	})
}

func TestUploadRejectsBeforeTouchingBackend(t *testing.T) {
	backendCalled := false
	backend := &mockBackend{
		name: "drive",
		upload: func(_ context.Context, _ *multipart.FileHeader, _ string) (*filestorage.UploadResult, error) {
			backendCalled = true
			return nil, nil
		},
	}
	svc := NewUploadService(backend, nil, maxUploadBytes, nil)

	_, err := svc.Upload(context.Background(), fileHeader("huge.pdf", maxUploadBytes+1), "notes")
	require.Error(t, err)
	assert.False(t, backendCalled, "validation must run before any bytes move")
}

func TestUploadNormalizesAndSuggestsTitle(t *testing.T) {
	backend := &mockBackend{
		name: "drive",
		upload: func(_ context.Context, fh *multipart.FileHeader, folder string) (*filestorage.UploadResult, error) {
			assert.Equal(t, "notes", folder)
			return &filestorage.UploadResult{
				Backend: filestorage.BackendDrive,
				ID:      "file-1",
				URL:     "https://drive.google.com/open?id=file-1",
				// backend omitted the name; normalization substitutes it
				SizeBytes: fh.Size,
			}, nil
		},
	}
	svc := NewUploadService(backend, nil, maxUploadBytes, nil)

	resp, err := svc.Upload(context.Background(), fileHeader("OS Unit 3.pdf", 2048), "notes")
	require.NoError(t, err)

	assert.Equal(t, "file-1", resp.ID)
	assert.Equal(t, "Unknown", resp.Name)
	assert.Equal(t, "OS Unit 3", resp.SuggestedTitle)
}

func TestUploadNormalizationFailure(t *testing.T) {
	backend := &mockBackend{
		name: "drive",
		upload: func(_ context.Context, _ *multipart.FileHeader, _ string) (*filestorage.UploadResult, error) {
			return &filestorage.UploadResult{Backend: filestorage.BackendDrive, URL: "https://x"}, nil
		},
	}
	svc := NewUploadService(backend, nil, maxUploadBytes, nil)

	_, err := svc.Upload(context.Background(), fileHeader("a.pdf", 10), "notes")
	assert.ErrorIs(t, err, apperrors.ErrNormalization)
}

func validCreateRequest() dto.CreateNoteRequest {
	return dto.CreateNoteRequest{
		Title:       "OS Unit 3",
		Description: "Scheduling",
		SubjectCode: "CS301",
		Tags:        "os, unit-3",
		Upload: dto.UploadRef{
			Backend:   filestorage.BackendMinio,
			ID:        "notes/abc.pdf",
			URL:       "http://minio.local/notes/abc.pdf",
			Name:      "os-unit3.pdf",
			SizeBytes: 2048,
		},
	}
}

func TestSubmitFailsFastWithoutWriting(t *testing.T) {
	writes := 0
	store := &mockNoteStore{
		createNote: func(_ context.Context, _ *models.Note) (int64, error) {
			writes++
			return 1, nil
		},
	}
	svc := NewUploadService(&mockBackend{name: "minio"}, store, maxUploadBytes, nil)

	cases := []struct {
		name   string
		mutate func(*dto.CreateNoteRequest)
	}{
		{"blank title", func(r *dto.CreateNoteRequest) { r.Title = "   " }},
		{"missing subject", func(r *dto.CreateNoteRequest) { r.SubjectCode = "" }},
		{"missing upload ref", func(r *dto.CreateNoteRequest) { r.Upload = dto.UploadRef{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.Submit(context.Background(), studentSession("CS-A"), req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
	assert.Zero(t, writes, "no precondition failure may leave a record behind")
}

func TestSubmitStudentNoteAwaitsApproval(t *testing.T) {
	var stored *models.Note
	store := &mockNoteStore{
		createNote: func(_ context.Context, note *models.Note) (int64, error) {
			stored = note
			return 42, nil
		},
	}
	svc := NewUploadService(&mockBackend{name: "minio"}, store, maxUploadBytes, nil)

	resp, err := svc.Submit(context.Background(), studentSession("CS-A"), validCreateRequest())
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.False(t, stored.Approved, "student uploads start in the pending queue")
	assert.Equal(t, "CS-A", stored.SubclassID)
	assert.Equal(t, []string{"os", "unit-3"}, stored.Tags)
	assert.Equal(t, int64(0), stored.Downloads)
	assert.Equal(t, "http://minio.local/notes/abc.pdf", stored.FileURL)
	assert.Empty(t, stored.DriveFileID)
	assert.Equal(t, int64(42), resp.ID)
}

func TestSubmitModeratorNoteIsApprovedImmediately(t *testing.T) {
	var stored *models.Note
	store := &mockNoteStore{
		createNote: func(_ context.Context, note *models.Note) (int64, error) {
			stored = note
			return 43, nil
		},
	}
	svc := NewUploadService(&mockBackend{name: "minio"}, store, maxUploadBytes, nil)

	cr := models.Session{UserID: 2, Name: "Ravi", Role: models.RoleCR, Subclass: "CS-A"}
	_, err := svc.Submit(context.Background(), cr, validCreateRequest())
	require.NoError(t, err)
	assert.True(t, stored.Approved)
}

func TestSubmitDriveBackedNote(t *testing.T) {
	var stored *models.Note
	store := &mockNoteStore{
		createNote: func(_ context.Context, note *models.Note) (int64, error) {
			stored = note
			return 44, nil
		},
	}
	svc := NewUploadService(&mockBackend{name: "drive"}, store, maxUploadBytes, nil)

	req := validCreateRequest()
	req.Upload = dto.UploadRef{
		Backend: filestorage.BackendDrive,
		ID:      "drive-id-7",
		URL:     "https://drive.google.com/open?id=drive-id-7",
		Name:    "os-unit3.pdf",
	}

	_, err := svc.Submit(context.Background(), studentSession("CS-A"), req)
	require.NoError(t, err)

	assert.Equal(t, "drive-id-7", stored.DriveFileID)
	assert.Empty(t, stored.FileURL, "drive-backed notes carry no direct link")
	assert.Equal(t, "https://drive.google.com/file/d/drive-id-7/preview", stored.ViewURL)
	assert.Equal(t, "https://drive.google.com/uc?export=download&id=drive-id-7", stored.DownloadURL)
}

func TestSuggestedTitle(t *testing.T) {
	assert.Equal(t, "OS Unit 3", SuggestedTitle("OS Unit 3.pdf"))
	assert.Equal(t, "notes.tar", SuggestedTitle("notes.tar.gz"))
	assert.Equal(t, "README", SuggestedTitle("README"))
}
