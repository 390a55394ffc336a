package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/foliolab/folio/internal/model"
)

var ErrUserImageNotFound = errors.New("user image not found")

type UserImageRepository interface {
	ByUserAndPlace(userID, place string) (*model.UserImage, error)
	AllByUser(userID string) ([]*model.UserImage, error)
	Upsert(userID, place, url string) error
	Delete(userID, place string) error
}

type userImageRepository struct {
	db *sqlx.DB
}

func NewUserImageRepository(db *sqlx.DB) UserImageRepository {
	return &userImageRepository{db: db}
}

func (r *userImageRepository) ByUserAndPlace(userID, place string) (*model.UserImage, error) {
	image := &model.UserImage{}
	query := `SELECT * FROM user_images WHERE user_id = $1 AND place = $2`

	err := r.db.Get(image, query, userID, place)
	if err == sql.ErrNoRows {
		return nil, ErrUserImageNotFound
	}

	return image, err
}

func (r *userImageRepository) AllByUser(userID string) ([]*model.UserImage, error) {
	var images []*model.UserImage
	query := `SELECT * FROM user_images WHERE user_id = $1 ORDER BY place ASC`

	err := r.db.Select(&images, query, userID)
	if err != nil {
		return nil, err
	}

	return images, nil
}

func (r *userImageRepository) Upsert(userID, place, url string) error {
	now := time.Now()

	result, err := r.db.Exec(
		`UPDATE user_images SET url = $1, updated_at = $2 WHERE user_id = $3 AND place = $4`,
		url, now, userID, place,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	_, err = r.db.Exec(
		`INSERT INTO user_images (id, user_id, place, url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), userID, place, url, now, now,
	)

	return err
}

func (r *userImageRepository) Delete(userID, place string) error {
	result, err := r.db.Exec(`DELETE FROM user_images WHERE user_id = $1 AND place = $2`, userID, place)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserImageNotFound
	}

	return nil
}
