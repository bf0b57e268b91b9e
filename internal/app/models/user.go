package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	Password   string    `json:"-" db:"password"`
	Name       string    `json:"name" db:"name"`
	RoleType   RoleType  `json:"role" db:"role_type"`
	Department string    `json:"department,omitempty" db:"department"`
	Subclass   string    `json:"subclass,omitempty" db:"subclass"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Session is the per-request user context consumed by the notes pipeline.
// It carries everything visibility resolution needs and nothing more.
type Session struct {
	UserID     int64
	Name       string
	Role       RoleType
	Department string
	Subclass   string
}

// SessionFromUser builds a session context from a stored user.
func SessionFromUser(u *User) Session {
	return Session{
		UserID:     u.ID,
		Name:       u.Name,
		Role:       u.RoleType,
		Department: u.Department,
		Subclass:   u.Subclass,
	}
}
