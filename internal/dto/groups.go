package dto

// GroupRef is a student group taking part in a schedule.
type GroupRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ScheduleGroups is the payload of the schedule groups endpoint.
type ScheduleGroups struct {
	Groups []GroupRef `json:"groups"`
}
