package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
	"github.com/campuscompanion/campusplus/internal/pkg/logger"
)

// NoteRepository handles database operations for Note.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

// selectNotesQuery builds the common select. Nullable columns are defaulted
// in SQL so legacy, partially-written records scan into the full Note shape
// (missing filename becomes "Unknown", missing size 0, and so on).
func (r *NoteRepository) selectNotesQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id",
		"COALESCE(title, 'Untitled')",
		"COALESCE(description, '')",
		"COALESCE(subject_code, '')",
		"COALESCE(file_url, '')",
		"COALESCE(drive_file_id, '')",
		"COALESCE(view_url, '')",
		"COALESCE(download_url, '')",
		"COALESCE(file_name, 'Unknown')",
		"COALESCE(file_size, 0)",
		"COALESCE(uploaded_by, 0)",
		"COALESCE(uploader_name, '')",
		"COALESCE(subclass_id, '')",
		"COALESCE(is_shared, FALSE)",
		"COALESCE(tags, '{}')",
		"COALESCE(downloads, 0)",
		"COALESCE(approved, TRUE)",
		"created_at",
	).From("notes").
		PlaceholderFormat(squirrel.Dollar)
}

// scanNote scans a row into a Note struct.
func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID, &note.Title, &note.Description, &note.SubjectCode,
		&note.FileURL, &note.DriveFileID, &note.ViewURL, &note.DownloadURL,
		&note.FileName, &note.FileSize, &note.UploadedBy, &note.UploaderName,
		&note.SubclassID, &note.IsShared, &note.Tags, &note.Downloads,
		&note.Approved, &note.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// GetAllNotes retrieves the newest notes up to the given cap. The cap bounds
// the candidate set fetched per request; visibility is resolved in memory by
// the service layer.
func (r *NoteRepository) GetAllNotes(ctx context.Context, cap int) ([]*models.Note, error) {
	builder := r.selectNotesQuery().OrderBy("created_at DESC")
	if cap > 0 {
		builder = builder.Limit(uint64(cap))
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all notes SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			// A single malformed record must not abort the whole fetch.
			logger.Error().Err(err).Msg("Error scanning one note during get all")
			continue
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through note rows")
		return nil, err
	}

	return notes, nil
}

// GetNoteByID retrieves a single note by its ID.
func (r *NoteRepository) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	sqlStr, args, err := r.selectNotesQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	return scanNote(r.DB.QueryRow(ctx, sqlStr, args...))
}

// CreateNote inserts a new note and returns its assigned ID.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	sqlStr, args, err := squirrel.Insert("notes").
		Columns(
			"title", "description", "subject_code",
			"file_url", "drive_file_id", "view_url", "download_url",
			"file_name", "file_size", "uploaded_by", "uploader_name",
			"subclass_id", "is_shared", "tags", "downloads", "approved", "created_at",
		).
		Values(
			note.Title, note.Description, note.SubjectCode,
			note.FileURL, note.DriveFileID, note.ViewURL, note.DownloadURL,
			note.FileName, note.FileSize, note.UploadedBy, note.UploaderName,
			note.SubclassID, note.IsShared, note.Tags, note.Downloads, note.Approved, note.CreatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return 0, err
	}

	return id, nil
}

// IncrementDownloads bumps the download counter by one and returns the new
// value. The increment happens in the store so concurrent accesses to the
// same note cannot lose updates.
func (r *NoteRepository) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	var downloads int64
	err := r.DB.QueryRow(ctx,
		`UPDATE notes SET downloads = downloads + 1 WHERE id = $1 RETURNING downloads`,
		id,
	).Scan(&downloads)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Int64("noteId", id).Msg("Error incrementing downloads")
		return 0, err
	}
	return downloads, nil
}

// SetApproval patches the approval gate on a single note.
func (r *NoteRepository) SetApproval(ctx context.Context, id int64, approved bool) error {
	sqlStr, args, err := squirrel.Update("notes").
		Set("approved", approved).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set approval SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("noteId", id).Msg("Error executing set approval query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}
