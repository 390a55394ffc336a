package model

import "time"

// Contact labels. A non-custom label forces the display name to the label itself.
const (
	ContactLabelEmail    = "email"
	ContactLabelPhone    = "phone"
	ContactLabelLinkedIn = "linkedin"
	ContactLabelGitHub   = "github"
	ContactLabelCustom   = "custom"
)

func IsValidContactLabel(label string) bool {
	switch label {
	case ContactLabelEmail, ContactLabelPhone, ContactLabelLinkedIn, ContactLabelGitHub, ContactLabelCustom:
		return true
	}
	return false
}

type Contact struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Label     string    `db:"label" json:"label"`
	Name      string    `db:"name" json:"name"`
	Value     string    `db:"value" json:"value"`
	Order     int       `db:"order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
