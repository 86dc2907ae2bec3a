package models

// Room is a bookable classroom.
type Room struct {
	ID       int64  `db:"id" json:"id"`
	Number   string `db:"number" json:"number"`
	Capacity int    `db:"capacity" json:"capacity"`
}

// Group is a student group attending lessons.
type Group struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
