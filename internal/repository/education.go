package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foliolab/folio/internal/model"
)

var ErrEducationNotFound = errors.New("education not found")

type EducationRepository interface {
	Create(education *model.Education) error
	ByID(id string) (*model.Education, error)
	All(userID string) ([]*model.Education, error)
	Update(education *model.Education) error
	Delete(id string) error
}

type educationRepository struct {
	db *sqlx.DB
}

func NewEducationRepository(db *sqlx.DB) EducationRepository {
	return &educationRepository{db: db}
}

func (r *educationRepository) Create(education *model.Education) error {
	query := `INSERT INTO educations (id, user_id, school, degree, field_of_study, description, is_current, start_date, end_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		education.ID,
		education.UserID,
		education.School,
		education.Degree,
		education.FieldOfStudy,
		education.Description,
		education.IsCurrent,
		education.StartDate,
		education.EndDate,
		education.CreatedAt,
		education.UpdatedAt,
	)

	return err
}

func (r *educationRepository) ByID(id string) (*model.Education, error) {
	education := &model.Education{}
	query := `SELECT * FROM educations WHERE id = $1`

	err := r.db.Get(education, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrEducationNotFound
	}

	return education, err
}

func (r *educationRepository) All(userID string) ([]*model.Education, error) {
	var educations []*model.Education
	query := `SELECT * FROM educations WHERE user_id = $1 ORDER BY is_current DESC, start_date DESC`

	err := r.db.Select(&educations, query, userID)
	if err != nil {
		return nil, err
	}

	return educations, nil
}

func (r *educationRepository) Update(education *model.Education) error {
	query := `UPDATE educations
	          SET school = $1, degree = $2, field_of_study = $3, description = $4, is_current = $5, start_date = $6, end_date = $7, updated_at = $8
	          WHERE id = $9`

	result, err := r.db.Exec(query,
		education.School,
		education.Degree,
		education.FieldOfStudy,
		education.Description,
		education.IsCurrent,
		education.StartDate,
		education.EndDate,
		time.Now(),
		education.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEducationNotFound
	}

	return nil
}

func (r *educationRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM educations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEducationNotFound
	}

	return nil
}
