package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foliolab/folio/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByUserName(userName string) (*model.User, error)
	Count() (int, error)
	Update(user *model.User) error
	UpdateCVURL(id string, cvURL *string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, user_name, password_hash, name, title, about_me, cv_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		user.ID,
		user.UserName,
		user.PasswordHash,
		user.Name,
		user.Title,
		user.AboutMe,
		user.CVURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByUserName(userName string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE user_name = $1`

	err := r.db.Get(user, query, userName)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users
	          SET user_name = $1, password_hash = $2, name = $3, title = $4, about_me = $5, updated_at = $6
	          WHERE id = $7`

	result, err := r.db.Exec(query,
		user.UserName,
		user.PasswordHash,
		user.Name,
		user.Title,
		user.AboutMe,
		time.Now(),
		user.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdateCVURL(id string, cvURL *string) error {
	query := `UPDATE users SET cv_url = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, cvURL, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
