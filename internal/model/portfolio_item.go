package model

import (
	"encoding/json"
	"time"
)

const (
	PortfolioItemTitleCharLimit       = 100
	PortfolioItemDescriptionCharLimit = 500
)

type PortfolioItem struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	Title         string          `db:"title" json:"title"`
	Description   string          `db:"description" json:"description"`
	Content       json.RawMessage `db:"content" json:"content"`
	CoverImageURL *string         `db:"cover_image_url" json:"coverImageUrl"`
	Order         int             `db:"order" json:"order"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// ExtendedPortfolioItem carries the skills linked through portfolio_item_skills.
type ExtendedPortfolioItem struct {
	PortfolioItem
	Skills []*Skill `json:"skills"`
}
