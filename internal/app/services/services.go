package services

import (
	"github.com/campuscompanion/campusplus/internal/app/repositories"
	"github.com/campuscompanion/campusplus/internal/pkg/auth"
	"github.com/campuscompanion/campusplus/internal/pkg/filestorage"
)

// Services is the container for all business logic services.
type Services struct {
	AuthService    *AuthService
	NoteService    *NoteService
	SubjectService *SubjectService
	UploadService  *UploadService
}

// Options carries the tunables services need beyond their stores.
type Options struct {
	NoteResultCap      int
	MaxUploadBytes     int64
	AcceptedExtensions []string
}

// NewServices wires all services to their repositories and shared helpers.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, backend filestorage.Backend, opts Options) *Services {
	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, jwtService),
		NoteService:    NewNoteService(repos.NoteRepository, opts.NoteResultCap),
		SubjectService: NewSubjectService(repos.SubjectRepository),
		UploadService:  NewUploadService(backend, repos.NoteRepository, opts.MaxUploadBytes, opts.AcceptedExtensions),
	}
}
