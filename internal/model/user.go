package model

import "time"

// User is the single owner of all content. Exactly one row exists.
type User struct {
	ID           string    `db:"id" json:"id"`
	UserName     string    `db:"user_name" json:"userName"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Title        string    `db:"title" json:"title"`
	AboutMe      string    `db:"about_me" json:"aboutMe"`
	CVURL        *string   `db:"cv_url" json:"cvUrl"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ExtendedUser is the visitor-facing profile: the user plus every owned
// collection, ordered collections sorted by their order column.
type ExtendedUser struct {
	User
	UserImages     []*UserImage     `json:"userImages"`
	Contacts       []*Contact       `json:"contacts"`
	Skills         []*Skill         `json:"skills"`
	Experiences    []*Experience    `json:"experiences"`
	Educations     []*Education     `json:"educations"`
	PortfolioItems []*PortfolioItem `json:"portfolioItems"`
}
