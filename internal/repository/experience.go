package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foliolab/folio/internal/model"
)

var ErrExperienceNotFound = errors.New("experience not found")

type ExperienceRepository interface {
	Create(experience *model.Experience) error
	ByID(id string) (*model.Experience, error)
	All(userID string) ([]*model.Experience, error)
	Update(experience *model.Experience) error
	Delete(id string) error
}

type experienceRepository struct {
	db *sqlx.DB
}

func NewExperienceRepository(db *sqlx.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

func (r *experienceRepository) Create(experience *model.Experience) error {
	query := `INSERT INTO experiences (id, user_id, title, company, description, is_current, start_date, end_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		experience.ID,
		experience.UserID,
		experience.Title,
		experience.Company,
		experience.Description,
		experience.IsCurrent,
		experience.StartDate,
		experience.EndDate,
		experience.CreatedAt,
		experience.UpdatedAt,
	)

	return err
}

func (r *experienceRepository) ByID(id string) (*model.Experience, error) {
	experience := &model.Experience{}
	query := `SELECT * FROM experiences WHERE id = $1`

	err := r.db.Get(experience, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrExperienceNotFound
	}

	return experience, err
}

func (r *experienceRepository) All(userID string) ([]*model.Experience, error) {
	var experiences []*model.Experience
	query := `SELECT * FROM experiences WHERE user_id = $1 ORDER BY is_current DESC, start_date DESC`

	err := r.db.Select(&experiences, query, userID)
	if err != nil {
		return nil, err
	}

	return experiences, nil
}

func (r *experienceRepository) Update(experience *model.Experience) error {
	query := `UPDATE experiences
	          SET title = $1, company = $2, description = $3, is_current = $4, start_date = $5, end_date = $6, updated_at = $7
	          WHERE id = $8`

	result, err := r.db.Exec(query,
		experience.Title,
		experience.Company,
		experience.Description,
		experience.IsCurrent,
		experience.StartDate,
		experience.EndDate,
		time.Now(),
		experience.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExperienceNotFound
	}

	return nil
}

func (r *experienceRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExperienceNotFound
	}

	return nil
}
