package models

// SubjectAssignment links a subject to a professor's semester workload with
// the number of contracted hours for that subject.
type SubjectAssignment struct {
	ID              int64   `db:"id" json:"id"`
	WorkloadID      int64   `db:"workload_id" json:"workload_id"`
	SubjectID       int64   `db:"subject_id" json:"subject_id"`
	SubjectName     string  `db:"subject_name" json:"subject_name"`
	ProfessorID     int64   `db:"professor_id" json:"professor_id"`
	ProfessorName   string  `db:"professor_name" json:"professor_name"`
	HoursPerSubject float64 `db:"hours_per_subject" json:"hours_per_subject"`
}

// SubjectAllocation carries the total hours allocated to a subject for the
// semester, independent of per-professor contracts.
type SubjectAllocation struct {
	ID             int64   `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Code           string  `db:"code" json:"code"`
	AllocatedHours float64 `db:"allocated_hours" json:"allocated_hours"`
}
