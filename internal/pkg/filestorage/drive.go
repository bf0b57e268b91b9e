package filestorage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// DriveViewURL builds the embeddable preview URL for a drive file.
func DriveViewURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", fileID)
}

// DriveDownloadURL builds the direct-download URL for a drive file.
func DriveDownloadURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s", fileID)
}

// driveUploadResponse mirrors the upload proxy's response body.
type driveUploadResponse struct {
	FileID         string `json:"fileId"`
	FileName       string `json:"fileName"`
	MimeType       string `json:"mimeType"`
	FileSize       int64  `json:"fileSize"`
	WebViewLink    string `json:"webViewLink"`
	WebContentLink string `json:"webContentLink"`
	EmbedLink      string `json:"embedLink"`
}

// DriveStorage uploads files through the Google Drive proxy service.
type DriveStorage struct {
	baseURL string
	client  *http.Client
}

// NewDriveStorage creates a DriveStorage talking to the proxy at baseURL
// (e.g. http://localhost:3001/api).
func NewDriveStorage(baseURL string, timeout time.Duration) *DriveStorage {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &DriveStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the backend identifier.
func (d *DriveStorage) Name() string {
	return BackendDrive
}

// Upload sends the file to the drive proxy as multipart form data.
func (d *DriveStorage) Upload(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (*UploadResult, error) {
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileHeader.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file into request body: %w", err)
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return nil, fmt.Errorf("failed to write folder field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("Drive proxy unreachable")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logger.Error().Int("status", resp.StatusCode).Msg("Drive proxy rejected upload")
		return nil, fmt.Errorf("%w: drive proxy returned status %d", apperrors.ErrStorageUnavailable, resp.StatusCode)
	}

	var out driveUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode drive proxy response: %w", err)
	}

	viewURL := out.EmbedLink
	if viewURL == "" && out.FileID != "" {
		viewURL = DriveViewURL(out.FileID)
	}
	downloadURL := out.WebContentLink
	if downloadURL == "" && out.FileID != "" {
		downloadURL = DriveDownloadURL(out.FileID)
	}

	return &UploadResult{
		Backend:     BackendDrive,
		ID:          out.FileID,
		URL:         out.WebViewLink,
		Name:        out.FileName,
		SizeBytes:   out.FileSize,
		ViewURL:     viewURL,
		DownloadURL: downloadURL,
	}, nil
}
