package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all data access objects.
type Repositories struct {
	NoteRepository    *NoteRepository
	SubjectRepository *SubjectRepository
	UserRepository    *UserRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		NoteRepository:    NewNoteRepository(db),
		SubjectRepository: NewSubjectRepository(db),
		UserRepository:    NewUserRepository(db),
	}
}
