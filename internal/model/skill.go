package model

import (
	"encoding/json"
	"time"
)

type Skill struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"userId"`
	Name      string          `db:"name" json:"name"`
	Content   json.RawMessage `db:"content" json:"content"`
	Order     int             `db:"order" json:"order"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// ExtendedSkill carries the portfolio items linked through portfolio_item_skills.
type ExtendedSkill struct {
	Skill
	PortfolioItems []*PortfolioItem `json:"portfolioItems"`
}
