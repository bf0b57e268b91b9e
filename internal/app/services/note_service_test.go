package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
	"github.com/campuscompanion/campusplus/internal/pkg/apperrors"
)

type mockNoteStore struct {
	getAllNotes        func(ctx context.Context, cap int) ([]*models.Note, error)
	getNoteByID        func(ctx context.Context, id int64) (*models.Note, error)
	createNote         func(ctx context.Context, note *models.Note) (int64, error)
	incrementDownloads func(ctx context.Context, id int64) (int64, error)
	setApproval        func(ctx context.Context, id int64, approved bool) error
}

func (m *mockNoteStore) GetAllNotes(ctx context.Context, cap int) ([]*models.Note, error) {
	return m.getAllNotes(ctx, cap)
}

func (m *mockNoteStore) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	return m.getNoteByID(ctx, id)
}

func (m *mockNoteStore) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	return m.createNote(ctx, note)
}

func (m *mockNoteStore) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	return m.incrementDownloads(ctx, id)
}

func (m *mockNoteStore) SetApproval(ctx context.Context, id int64, approved bool) error {
	return m.setApproval(ctx, id, approved)
}

func TestListNotesResolvesVisibilityBeforeFilters(t *testing.T) {
	store := &mockNoteStore{
		getAllNotes: func(_ context.Context, _ int) ([]*models.Note, error) {
			return []*models.Note{
				noteFixture(func(n *models.Note) { n.ID = 1; n.SubclassID = "CS-A" }),
				noteFixture(func(n *models.Note) { n.ID = 2; n.SubclassID = "CS-B" }),
				noteFixture(func(n *models.Note) { n.ID = 3; n.SubclassID = "CS-B"; n.IsShared = true }),
				noteFixture(func(n *models.Note) { n.ID = 4; n.SubclassID = "CS-A"; n.Approved = false }),
			}, nil
		},
	}
	svc := NewNoteService(store, 500)

	resp, err := svc.ListNotes(context.Background(), studentSession("CS-A"), dto.NoteFilterRequest{})
	require.NoError(t, err)

	ids := make([]int64, 0, len(resp.Notes))
	for _, n := range resp.Notes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []int64{1, 3}, ids, "foreign-subclass and unapproved notes must be gone")
	assert.Equal(t, int64(2), resp.Pagination.TotalItems)
}

func TestListNotesAdminSeesUnapproved(t *testing.T) {
	store := &mockNoteStore{
		getAllNotes: func(_ context.Context, _ int) ([]*models.Note, error) {
			return []*models.Note{
				noteFixture(func(n *models.Note) { n.ID = 1; n.Approved = false }),
				noteFixture(func(n *models.Note) { n.ID = 2 }),
				noteFixture(func(n *models.Note) { n.ID = 3; n.SubclassID = "CS-B"; n.Approved = false }),
			}, nil
		},
	}
	svc := NewNoteService(store, 500)

	admin := models.Session{UserID: 1, Role: models.RoleAdmin}
	resp, err := svc.ListNotes(context.Background(), admin, dto.NoteFilterRequest{})
	require.NoError(t, err)

	ids := make([]int64, 0, len(resp.Notes))
	for _, n := range resp.Notes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids, "an admin listing imposes no approval restriction")

	// The same list hides the unapproved notes from a student.
	resp, err = svc.ListNotes(context.Background(), studentSession("CS-A"), dto.NoteFilterRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, int64(2), resp.Notes[0].ID)
}

func TestListNotesPendingQueue(t *testing.T) {
	store := &mockNoteStore{
		getAllNotes: func(_ context.Context, _ int) ([]*models.Note, error) {
			return []*models.Note{
				noteFixture(func(n *models.Note) { n.ID = 1 }),
				noteFixture(func(n *models.Note) { n.ID = 2; n.Approved = false }),
			}, nil
		},
	}
	svc := NewNoteService(store, 500)

	t.Run("students may not open the pending queue", func(t *testing.T) {
		_, err := svc.ListNotes(context.Background(), studentSession("CS-A"), dto.NoteFilterRequest{Pending: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("moderators see only unapproved notes", func(t *testing.T) {
		cr := models.Session{UserID: 2, Role: models.RoleCR, Subclass: "CS-A"}
		resp, err := svc.ListNotes(context.Background(), cr, dto.NoteFilterRequest{Pending: true})
		require.NoError(t, err)
		require.Len(t, resp.Notes, 1)
		assert.Equal(t, int64(2), resp.Notes[0].ID)
	})
}

func TestListNotesStoreFailure(t *testing.T) {
	store := &mockNoteStore{
		getAllNotes: func(_ context.Context, _ int) ([]*models.Note, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewNoteService(store, 500)

	_, err := svc.ListNotes(context.Background(), studentSession("CS-A"), dto.NoteFilterRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNotesUnavailable)
}

func TestListNotesPagination(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	all := make([]*models.Note, 0, 25)
	for i := 0; i < 25; i++ {
		i := i
		all = append(all, noteFixture(func(n *models.Note) {
			n.ID = int64(i + 1)
			n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		}))
	}
	store := &mockNoteStore{
		getAllNotes: func(_ context.Context, _ int) ([]*models.Note, error) { return all, nil },
	}
	svc := NewNoteService(store, 500)

	resp, err := svc.ListNotes(context.Background(), studentSession("CS-A"), dto.NoteFilterRequest{Page: 2, Size: 10})
	require.NoError(t, err)

	assert.Len(t, resp.Notes, 10)
	assert.Equal(t, int64(25), resp.Pagination.TotalItems)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	// Newest first: page 2 starts at the 11th newest, ID 15.
	assert.Equal(t, int64(15), resp.Notes[0].ID)
}

func TestRecordAccessDriveBacked(t *testing.T) {
	increments := 0
	store := &mockNoteStore{
		getNoteByID: func(_ context.Context, id int64) (*models.Note, error) {
			return noteFixture(func(n *models.Note) {
				n.ID = id
				n.FileURL = ""
				n.DriveFileID = "abc123"
				n.ViewURL = ""
				n.DownloadURL = ""
				n.Downloads = 4
			}), nil
		},
		incrementDownloads: func(_ context.Context, _ int64) (int64, error) {
			increments++
			return 5, nil
		},
	}
	svc := NewNoteService(store, 500)

	resp, err := svc.RecordAccess(context.Background(), studentSession("CS-A"), 1)
	require.NoError(t, err)

	assert.Equal(t, "https://drive.google.com/file/d/abc123/preview", resp.ViewURL)
	assert.Equal(t, "https://drive.google.com/uc?export=download&id=abc123", resp.DownloadURL)
	assert.Equal(t, int64(5), resp.Downloads)
	assert.Equal(t, 1, increments)
}

func TestRecordAccessLegacyURL(t *testing.T) {
	store := &mockNoteStore{
		getNoteByID: func(_ context.Context, id int64) (*models.Note, error) {
			return noteFixture(func(n *models.Note) { n.ID = id }), nil
		},
		incrementDownloads: func(_ context.Context, _ int64) (int64, error) { return 1, nil },
	}
	svc := NewNoteService(store, 500)

	resp, err := svc.RecordAccess(context.Background(), studentSession("CS-A"), 1)
	require.NoError(t, err)

	assert.Equal(t, "https://files.example.com/os-unit3.pdf", resp.ViewURL)
	assert.Equal(t, resp.ViewURL, resp.DownloadURL, "legacy link serves both actions")
}

func TestRecordAccessInvisibleNoteLooksMissing(t *testing.T) {
	store := &mockNoteStore{
		getNoteByID: func(_ context.Context, id int64) (*models.Note, error) {
			return noteFixture(func(n *models.Note) { n.ID = id; n.SubclassID = "CS-B" }), nil
		},
	}
	svc := NewNoteService(store, 500)

	_, err := svc.RecordAccess(context.Background(), studentSession("CS-A"), 1)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestRecordAccessUnapprovedNote(t *testing.T) {
	store := &mockNoteStore{
		getNoteByID: func(_ context.Context, id int64) (*models.Note, error) {
			return noteFixture(func(n *models.Note) { n.ID = id; n.Approved = false }), nil
		},
		incrementDownloads: func(_ context.Context, _ int64) (int64, error) { return 1, nil },
	}
	svc := NewNoteService(store, 500)

	t.Run("students cannot open unapproved notes", func(t *testing.T) {
		_, err := svc.RecordAccess(context.Background(), studentSession("CS-A"), 1)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	})

	t.Run("admins can preview a pending file before ruling on it", func(t *testing.T) {
		admin := models.Session{UserID: 1, Role: models.RoleAdmin}
		resp, err := svc.RecordAccess(context.Background(), admin, 1)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ViewURL)
	})

	t.Run("class representatives get the same preview within their visibility", func(t *testing.T) {
		cr := models.Session{UserID: 2, Role: models.RoleCR, Subclass: "CS-A"}
		_, err := svc.RecordAccess(context.Background(), cr, 1)
		require.NoError(t, err)

		// but not across subclass boundaries
		crOther := models.Session{UserID: 3, Role: models.RoleCR, Subclass: "CS-B"}
		_, err = svc.RecordAccess(context.Background(), crOther, 1)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	})
}

func TestRecordAccessCounterFailureIsBestEffort(t *testing.T) {
	store := &mockNoteStore{
		getNoteByID: func(_ context.Context, id int64) (*models.Note, error) {
			return noteFixture(func(n *models.Note) { n.ID = id; n.Downloads = 7 }), nil
		},
		incrementDownloads: func(_ context.Context, _ int64) (int64, error) {
			return 0, errors.New("write failed")
		},
	}
	svc := NewNoteService(store, 500)

	resp, err := svc.RecordAccess(context.Background(), studentSession("CS-A"), 1)
	require.NoError(t, err, "a failed counter update must not block access")
	assert.Equal(t, int64(7), resp.Downloads)
}

func TestSetApproval(t *testing.T) {
	t.Run("students are rejected", func(t *testing.T) {
		svc := NewNoteService(&mockNoteStore{}, 500)
		_, err := svc.SetApproval(context.Background(), studentSession("CS-A"), 1, true)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("moderators flip the gate", func(t *testing.T) {
		var gotID int64
		var gotApproved bool
		store := &mockNoteStore{
			setApproval: func(_ context.Context, id int64, approved bool) error {
				gotID, gotApproved = id, approved
				return nil
			},
			getNoteByID: func(_ context.Context, id int64) (*models.Note, error) {
				return noteFixture(func(n *models.Note) { n.ID = id; n.Approved = true }), nil
			},
		}
		svc := NewNoteService(store, 500)

		cr := models.Session{UserID: 2, Role: models.RoleCR, Subclass: "CS-A"}
		resp, err := svc.SetApproval(context.Background(), cr, 9, true)
		require.NoError(t, err)
		assert.Equal(t, int64(9), gotID)
		assert.True(t, gotApproved)
		assert.True(t, resp.Approved)
	})

	t.Run("missing note surfaces not found", func(t *testing.T) {
		store := &mockNoteStore{
			setApproval: func(_ context.Context, _ int64, _ bool) error {
				return apperrors.ErrNoteNotFound
			},
		}
		svc := NewNoteService(store, 500)

		admin := models.Session{UserID: 1, Role: models.RoleAdmin}
		_, err := svc.SetApproval(context.Background(), admin, 404, false)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
	})
}
