package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foliolab/folio/internal/model"
)

const skillsTable = "skills"

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	// Create inserts the skill at the head of the owner's collection,
	// shifting every existing row's order by +1 in the same transaction.
	Create(skill *model.Skill) error
	ByID(id string) (*model.Skill, error)
	ExtendedByID(id string) (*model.ExtendedSkill, error)
	All(userID string) ([]*model.Skill, error)
	Update(skill *model.Skill) error
	// Delete removes the skill and compacts the orders behind it.
	Delete(id string) error
	// Reorder applies order = index for the submitted permutation.
	Reorder(userID string, orderedIDs []string) error
}

type skillRepository struct {
	db *sqlx.DB
}

func NewSkillRepository(db *sqlx.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(skill *model.Skill) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		err := shiftOrdersUp(tx, skillsTable, skill.UserID)
		if err != nil {
			return err
		}

		skill.Order = 0
		query := `INSERT INTO skills (id, user_id, name, content, "order", created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7)`

		_, err = tx.Exec(query,
			skill.ID,
			skill.UserID,
			skill.Name,
			skill.Content,
			skill.Order,
			skill.CreatedAt,
			skill.UpdatedAt,
		)
		return err
	})
}

func (r *skillRepository) ByID(id string) (*model.Skill, error) {
	skill := &model.Skill{}
	query := `SELECT * FROM skills WHERE id = $1`

	err := r.db.Get(skill, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrSkillNotFound
	}

	return skill, err
}

func (r *skillRepository) ExtendedByID(id string) (*model.ExtendedSkill, error) {
	skill, err := r.ByID(id)
	if err != nil {
		return nil, err
	}

	var items []*model.PortfolioItem
	query := `SELECT p.* FROM portfolio_items p
	          JOIN portfolio_item_skills ps ON ps.portfolio_item_id = p.id
	          WHERE ps.skill_id = $1
	          ORDER BY p."order" ASC`

	err = r.db.Select(&items, query, id)
	if err != nil {
		return nil, err
	}

	return &model.ExtendedSkill{Skill: *skill, PortfolioItems: items}, nil
}

func (r *skillRepository) All(userID string) ([]*model.Skill, error) {
	var skills []*model.Skill
	query := `SELECT * FROM skills WHERE user_id = $1 ORDER BY "order" ASC`

	err := r.db.Select(&skills, query, userID)
	if err != nil {
		return nil, err
	}

	return skills, nil
}

func (r *skillRepository) Update(skill *model.Skill) error {
	query := `UPDATE skills SET name = $1, content = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(query,
		skill.Name,
		skill.Content,
		time.Now(),
		skill.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSkillNotFound
	}

	return nil
}

func (r *skillRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		skill := &model.Skill{}
		err := tx.Get(skill, `SELECT * FROM skills WHERE id = $1`, id)
		if err == sql.ErrNoRows {
			return ErrSkillNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(`DELETE FROM skills WHERE id = $1`, id)
		if err != nil {
			return err
		}

		return compactOrdersAfter(tx, skillsTable, skill.UserID, skill.Order)
	})
}

func (r *skillRepository) Reorder(userID string, orderedIDs []string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		return reorderScope(tx, skillsTable, userID, orderedIDs)
	})
}
