package dto

import "time"

// --- Request DTOs ---

// NoteFilterRequest carries the search term, filters and sort order for the
// notes list. All fields are optional; zero values are no-ops.
type NoteFilterRequest struct {
	Term        string `form:"term"`
	SubjectCode string `form:"subjectCode"`
	Sharing     string `form:"sharing"` // all | shared | private
	Tags        string `form:"tags"`
	SortBy      string `form:"sortBy"` // newest | oldest | downloads | title
	Pending     bool   `form:"pending"`
	Page        int    `form:"page"`
	Size        int    `form:"size"`
}

// CreateNoteRequest represents the data needed to submit a new note.
// The file reference fields come from a prior upload call.
type CreateNoteRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	SubjectCode string    `json:"subjectCode" binding:"required"`
	IsShared    bool      `json:"isShared"`
	Tags        string    `json:"tags"` // comma separated, as typed in the form
	Upload      UploadRef `json:"upload" binding:"required"`
}

// UploadRef is the client's handle on a completed upload, echoed back from
// the upload endpoint.
type UploadRef struct {
	Backend     string `json:"backend"` // drive | minio | local
	ID          string `json:"id" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Name        string `json:"name"`
	SizeBytes   int64  `json:"sizeBytes"`
	ViewURL     string `json:"viewUrl,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// ApprovalRequest patches the approval gate on a note.
type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// --- Response DTOs ---

// NoteResponse represents the data returned for a single note.
type NoteResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SubjectCode  string    `json:"subjectCode"`
	FileURL      string    `json:"fileUrl,omitempty"`
	DriveFileID  string    `json:"driveFileId,omitempty"`
	ViewURL      string    `json:"viewUrl,omitempty"`
	DownloadURL  string    `json:"downloadUrl,omitempty"`
	FileName     string    `json:"fileName"`
	FileSize     int64     `json:"fileSize"`
	UploadedBy   int64     `json:"uploadedBy"`
	UploaderName string    `json:"uploaderName"`
	SubclassID   string    `json:"subclassId"`
	IsShared     bool      `json:"isShared"`
	Tags         []string  `json:"tags"`
	Downloads    int64     `json:"downloads"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NoteListResponse represents the filtered notes list with pagination metadata.
type NoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	Pagination PaginationInfo `json:"pagination"`
}

// UploadResponse is returned by the upload endpoint once the storage backend
// has accepted the file.
type UploadResponse struct {
	Backend        string `json:"backend"`
	ID             string `json:"id"`
	URL            string `json:"url"`
	Name           string `json:"name"`
	SizeBytes      int64  `json:"sizeBytes"`
	ViewURL        string `json:"viewUrl,omitempty"`
	DownloadURL    string `json:"downloadUrl,omitempty"`
	SuggestedTitle string `json:"suggestedTitle,omitempty"`
}

// AccessResponse carries the resolved URLs for a view/download action.
type AccessResponse struct {
	ViewURL     string `json:"viewUrl"`
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
	Downloads   int64  `json:"downloads"`
}
