package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foliolab/folio/internal/model"
)

const portfolioItemsTable = "portfolio_items"

var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

type PortfolioItemRepository interface {
	// Create inserts the item at the head of the owner's collection,
	// shifting every existing row's order by +1 in the same transaction.
	Create(item *model.PortfolioItem) error
	ByID(id string) (*model.PortfolioItem, error)
	ExtendedByID(id string) (*model.ExtendedPortfolioItem, error)
	All(userID string) ([]*model.PortfolioItem, error)
	AllExtended(userID string) ([]*model.ExtendedPortfolioItem, error)
	TitleExists(userID, title, excludeID string) (bool, error)
	Update(item *model.PortfolioItem) error
	UpdateCoverImageURL(id string, url *string) error
	// Delete removes the item and compacts the orders behind it.
	Delete(id string) error
	// Reorder applies order = index for the submitted permutation.
	Reorder(userID string, orderedIDs []string) error
	AttachSkill(itemID, skillID string) error
	DetachSkill(itemID, skillID string) error
}

type portfolioItemRepository struct {
	db *sqlx.DB
}

func NewPortfolioItemRepository(db *sqlx.DB) PortfolioItemRepository {
	return &portfolioItemRepository{db: db}
}

func (r *portfolioItemRepository) Create(item *model.PortfolioItem) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		err := shiftOrdersUp(tx, portfolioItemsTable, item.UserID)
		if err != nil {
			return err
		}

		item.Order = 0
		query := `INSERT INTO portfolio_items (id, user_id, title, description, content, cover_image_url, "order", created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		_, err = tx.Exec(query,
			item.ID,
			item.UserID,
			item.Title,
			item.Description,
			item.Content,
			item.CoverImageURL,
			item.Order,
			item.CreatedAt,
			item.UpdatedAt,
		)
		return err
	})
}

func (r *portfolioItemRepository) ByID(id string) (*model.PortfolioItem, error) {
	item := &model.PortfolioItem{}
	query := `SELECT * FROM portfolio_items WHERE id = $1`

	err := r.db.Get(item, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrPortfolioItemNotFound
	}

	return item, err
}

func (r *portfolioItemRepository) ExtendedByID(id string) (*model.ExtendedPortfolioItem, error) {
	item, err := r.ByID(id)
	if err != nil {
		return nil, err
	}

	skills, err := r.skillsForItem(id)
	if err != nil {
		return nil, err
	}

	return &model.ExtendedPortfolioItem{PortfolioItem: *item, Skills: skills}, nil
}

func (r *portfolioItemRepository) All(userID string) ([]*model.PortfolioItem, error) {
	var items []*model.PortfolioItem
	query := `SELECT * FROM portfolio_items WHERE user_id = $1 ORDER BY "order" ASC`

	err := r.db.Select(&items, query, userID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *portfolioItemRepository) AllExtended(userID string) ([]*model.ExtendedPortfolioItem, error) {
	items, err := r.All(userID)
	if err != nil {
		return nil, err
	}

	extended := make([]*model.ExtendedPortfolioItem, 0, len(items))
	for _, item := range items {
		skills, err := r.skillsForItem(item.ID)
		if err != nil {
			return nil, err
		}
		extended = append(extended, &model.ExtendedPortfolioItem{PortfolioItem: *item, Skills: skills})
	}

	return extended, nil
}

func (r *portfolioItemRepository) skillsForItem(itemID string) ([]*model.Skill, error) {
	var skills []*model.Skill
	query := `SELECT s.* FROM skills s
	          JOIN portfolio_item_skills ps ON ps.skill_id = s.id
	          WHERE ps.portfolio_item_id = $1
	          ORDER BY s."order" ASC`

	err := r.db.Select(&skills, query, itemID)
	if err != nil {
		return nil, err
	}

	return skills, nil
}

func (r *portfolioItemRepository) TitleExists(userID, title, excludeID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM portfolio_items WHERE user_id = $1 AND title = $2 AND id != $3`

	err := r.db.QueryRow(query, userID, title, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *portfolioItemRepository) Update(item *model.PortfolioItem) error {
	query := `UPDATE portfolio_items
	          SET title = $1, description = $2, content = $3, cover_image_url = $4, updated_at = $5
	          WHERE id = $6`

	result, err := r.db.Exec(query,
		item.Title,
		item.Description,
		item.Content,
		item.CoverImageURL,
		time.Now(),
		item.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPortfolioItemNotFound
	}

	return nil
}

func (r *portfolioItemRepository) UpdateCoverImageURL(id string, url *string) error {
	query := `UPDATE portfolio_items SET cover_image_url = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, url, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPortfolioItemNotFound
	}

	return nil
}

func (r *portfolioItemRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		item := &model.PortfolioItem{}
		err := tx.Get(item, `SELECT * FROM portfolio_items WHERE id = $1`, id)
		if err == sql.ErrNoRows {
			return ErrPortfolioItemNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(`DELETE FROM portfolio_items WHERE id = $1`, id)
		if err != nil {
			return err
		}

		return compactOrdersAfter(tx, portfolioItemsTable, item.UserID, item.Order)
	})
}

func (r *portfolioItemRepository) Reorder(userID string, orderedIDs []string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		return reorderScope(tx, portfolioItemsTable, userID, orderedIDs)
	})
}

func (r *portfolioItemRepository) AttachSkill(itemID, skillID string) error {
	// No-op when the link already exists.
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM portfolio_item_skills WHERE portfolio_item_id = $1 AND skill_id = $2`,
		itemID, skillID,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = r.db.Exec(
		`INSERT INTO portfolio_item_skills (portfolio_item_id, skill_id) VALUES ($1, $2)`,
		itemID, skillID,
	)
	return err
}

func (r *portfolioItemRepository) DetachSkill(itemID, skillID string) error {
	_, err := r.db.Exec(
		`DELETE FROM portfolio_item_skills WHERE portfolio_item_id = $1 AND skill_id = $2`,
		itemID, skillID,
	)
	return err
}
