package models

import (
	"time"
)

// UnknownFileName is substituted when a stored note record carries no
// original filename (tolerates partially-written legacy records).
const UnknownFileName = "Unknown"

// Note defines the note model based on the 'notes' table.
//
// Exactly one of the two file reference shapes is populated per record:
// either the legacy direct link (FileURL) or the drive-backed triple
// (DriveFileID, ViewURL, DownloadURL). Consumers branch on DriveFileID.
type Note struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	SubjectCode  string    `json:"subjectCode" db:"subject_code"`
	FileURL      string    `json:"fileUrl" db:"file_url"`
	DriveFileID  string    `json:"driveFileId,omitempty" db:"drive_file_id"`
	ViewURL      string    `json:"viewUrl,omitempty" db:"view_url"`
	DownloadURL  string    `json:"downloadUrl,omitempty" db:"download_url"`
	FileName     string    `json:"fileName" db:"file_name"`
	FileSize     int64     `json:"fileSize" db:"file_size"`
	UploadedBy   int64     `json:"uploadedBy" db:"uploaded_by"`
	UploaderName string    `json:"uploaderName" db:"uploader_name"`
	SubclassID   string    `json:"subclassId" db:"subclass_id"`
	IsShared     bool      `json:"isShared" db:"is_shared"`
	Tags         []string  `json:"tags" db:"tags"`
	Downloads    int64     `json:"downloads" db:"downloads"`
	Approved     bool      `json:"approved" db:"approved"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IsDriveBacked reports whether the note's file lives behind the drive
// backend rather than a direct URL.
func (n *Note) IsDriveBacked() bool {
	return n.DriveFileID != ""
}
