package model

import "time"

// User image places. One image per (user, place) slot.
const (
	UserImagePlaceLandingPage = "landing_page"
	UserImagePlaceResumePage  = "resume_page"
)

func IsValidUserImagePlace(place string) bool {
	return place == UserImagePlaceLandingPage || place == UserImagePlaceResumePage
}

type UserImage struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Place     string    `db:"place" json:"place"`
	URL       string    `db:"url" json:"url"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
