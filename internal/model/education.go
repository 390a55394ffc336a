package model

import "time"

type Education struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"userId"`
	School       string     `db:"school" json:"school"`
	Degree       string     `db:"degree" json:"degree"`
	FieldOfStudy string     `db:"field_of_study" json:"fieldOfStudy"`
	Description  string     `db:"description" json:"description"`
	IsCurrent    bool       `db:"is_current" json:"isCurrent"`
	StartDate    time.Time  `db:"start_date" json:"startDate"`
	EndDate      *time.Time `db:"end_date" json:"endDate"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}
