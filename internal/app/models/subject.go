package models

// Subject defines the subject model based on the 'subjects' table.
// Read-only reference data used to label and group notes; never mutated
// by the notes pipeline.
type Subject struct {
	ID          int64    `json:"id" db:"id"`
	Code        string   `json:"code" db:"code"`
	Name        string   `json:"name" db:"name"`
	Department  string   `json:"department" db:"department"`
	Year        int      `json:"year" db:"year"`
	Semester    int      `json:"semester" db:"semester"`
	Credits     int      `json:"credits" db:"credits"`
	IsShared    bool     `json:"isShared" db:"is_shared"`
	SharedWith  []string `json:"sharedWith,omitempty" db:"shared_with"`
	Description string   `json:"description,omitempty" db:"description"`
}
