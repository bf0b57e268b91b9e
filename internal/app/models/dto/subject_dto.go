package dto

// SubjectResponse represents a subject entry in the subject picker.
type SubjectResponse struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Department  string   `json:"department"`
	Year        int      `json:"year"`
	Semester    int      `json:"semester"`
	Credits     int      `json:"credits"`
	IsShared    bool     `json:"isShared"`
	SharedWith  []string `json:"sharedWith,omitempty"`
	Description string   `json:"description,omitempty"`
}

// SubjectListResponse wraps the subject list.
type SubjectListResponse struct {
	Subjects []SubjectResponse `json:"subjects"`
}
