package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
)

// Backend names, as persisted in upload references.
const (
	BackendDrive = "drive"
	BackendMinio = "minio"
	BackendLocal = "local"
)

// UploadResult is the canonical shape every storage backend is adapted to.
// ViewURL/DownloadURL are only populated by the drive backend; direct-URL
// backends leave them empty and consumers fall back to URL.
type UploadResult struct {
	Backend     string
	ID          string
	URL         string
	Name        string
	SizeBytes   int64
	ViewURL     string
	DownloadURL string
}

// Backend is the pluggable storage strategy behind note uploads.
type Backend interface {
	// Name returns the backend identifier stored with upload references.
	Name() string

	// Upload stores the file under the given folder and returns the raw
	// backend result. Callers normalize it before use.
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*UploadResult, error)
}

// Normalize validates and defaults a backend result into the canonical
// shape. The identifier and URL are required downstream; a missing filename
// or size is substituted rather than failed.
func Normalize(res *UploadResult) (*UploadResult, error) {
	if res == nil {
		return nil, apperrors.ErrNormalization
	}
	if res.ID == "" {
		return nil, fmt.Errorf("%w: missing file identifier", apperrors.ErrNormalization)
	}
	if res.URL == "" {
		return nil, fmt.Errorf("%w: missing file URL", apperrors.ErrNormalization)
	}

	out := *res
	if out.Name == "" {
		out.Name = "Unknown"
	}
	if out.SizeBytes < 0 {
		out.SizeBytes = 0
	}
	return &out, nil
}
