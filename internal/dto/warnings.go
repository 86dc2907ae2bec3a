package dto

// ProfessorWarning flags a subject assignment scheduled beyond its contracted
// hours.
type ProfessorWarning struct {
	SubjectAssignmentID int64           `json:"subject_assignment_id"`
	ProfessorID         int64           `json:"professor_id"`
	ProfessorName       string          `json:"professor_name"`
	SubjectID           int64           `json:"subject_id"`
	SubjectName         string          `json:"subject_name"`
	ScheduledHours      float64         `json:"scheduled_hours"`
	AllowedHours        float64         `json:"allowed_hours"`
	ExcessHours         float64         `json:"excess_hours"`
	Lessons             []OccurrenceRef `json:"lessons"`
}

// SubjectWarning flags a subject scheduled beyond its allocated hours.
type SubjectWarning struct {
	SubjectID      int64           `json:"subject_id"`
	SubjectName    string          `json:"subject_name"`
	SubjectCode    string          `json:"subject_code"`
	ScheduledHours float64         `json:"scheduled_hours"`
	AllocatedHours float64         `json:"allocated_hours"`
	ExcessHours    float64         `json:"excess_hours"`
	Lessons        []OccurrenceRef `json:"lessons"`
}

// CombinedWarnings is the payload of the combined warnings endpoint.
type CombinedWarnings struct {
	ProfessorWarnings      []ProfessorWarning `json:"professor_warnings"`
	SubjectWarnings        []SubjectWarning   `json:"subject_warnings"`
	TotalProfessorWarnings int                `json:"total_professor_warnings"`
	TotalSubjectWarnings   int                `json:"total_subject_warnings"`
	TotalWarnings          int                `json:"total_warnings"`
	Issues                 []QueryIssue       `json:"issues,omitempty"`
}
