package services

import (
	"sort"
	"strings"

	"github.com/campuscompanion/campusplus/internal/app/models"
	"github.com/campuscompanion/campusplus/internal/app/models/dto"
)

// Sharing filter values.
const (
	SharingAll     = "all"
	SharingShared  = "shared"
	SharingPrivate = "private"
)

// Sort order values.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortDownloads = "downloads"
	SortTitle     = "title"
)

// VisibleTo reports whether the session may see the note at all. Admins see
// everything; everyone else sees notes from their own subclass plus notes
// explicitly shared across subclasses.
func VisibleTo(note *models.Note, session models.Session) bool {
	if session.Role == models.RoleAdmin {
		return true
	}
	return note.SubclassID == session.Subclass || note.IsShared
}

// PassesApprovalGate reports whether the note clears the approval gate for
// this session. The normal view shows approved notes only, except for
// admins, who are never subject to the approval predicate; moderators may
// flip to the pending queue, which shows exclusively the unapproved ones.
func PassesApprovalGate(note *models.Note, session models.Session, pending bool) bool {
	if pending && session.Role.IsModerator() {
		return !note.Approved
	}
	if session.Role == models.RoleAdmin {
		return true
	}
	return note.Approved
}

// matchesTerm checks the free-text search term against title, description,
// subject code and tags, case-insensitively.
func matchesTerm(note *models.Note, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(note.Title), term) ||
		strings.Contains(strings.ToLower(note.Description), term) ||
		strings.Contains(strings.ToLower(note.SubjectCode), term) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// matchesSharing checks the sharing facet. Unknown values behave like "all".
func matchesSharing(note *models.Note, sharing string) bool {
	switch sharing {
	case SharingShared:
		return note.IsShared
	case SharingPrivate:
		return !note.IsShared
	default:
		return true
	}
}

// matchesTags checks the requested tags (comma separated) against the note's
// tags. Every requested tag must find a case-insensitive substring match.
func matchesTags(note *models.Note, tags string) bool {
	for _, want := range SplitTags(tags) {
		want = strings.ToLower(want)
		found := false
		for _, have := range note.Tags {
			if strings.Contains(strings.ToLower(have), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SplitTags parses a comma-separated tag string as typed in the form,
// trimming whitespace and dropping empties.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FilterNotes applies the search term and facet filters to an already
// visibility-resolved list. All predicates are ANDed; zero-value fields are
// no-ops, so an empty filter returns the input unchanged (minus nothing).
func FilterNotes(notes []*models.Note, filter dto.NoteFilterRequest) []*models.Note {
	out := make([]*models.Note, 0, len(notes))
	for _, note := range notes {
		if !matchesTerm(note, strings.TrimSpace(filter.Term)) {
			continue
		}
		if filter.SubjectCode != "" && note.SubjectCode != filter.SubjectCode {
			continue
		}
		if !matchesSharing(note, filter.Sharing) {
			continue
		}
		if !matchesTags(note, filter.Tags) {
			continue
		}
		out = append(out, note)
	}
	return out
}

// SortNotes orders the list in place. Unknown values fall back to newest
// first. Ties keep their prior relative order so repeated applications are
// stable.
func SortNotes(notes []*models.Note, sortBy string) {
	switch sortBy {
	case SortOldest:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CreatedAt.Before(notes[j].CreatedAt)
		})
	case SortDownloads:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].Downloads > notes[j].Downloads
		})
	case SortTitle:
		sort.SliceStable(notes, func(i, j int) bool {
			return strings.ToLower(notes[i].Title) < strings.ToLower(notes[j].Title)
		})
	default:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		})
	}
}
