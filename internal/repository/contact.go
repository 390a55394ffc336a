package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/foliolab/folio/internal/model"
)

const contactsTable = "contacts"

var (
	ErrContactNotFound     = errors.New("contact not found")
	ErrContactLimitReached = errors.New("contact limit reached")
)

type ContactRepository interface {
	// Create appends the contact at the tail of the owner's collection.
	// Fails with ErrContactLimitReached when the scope already holds max
	// rows; the count check and insert share one transaction.
	Create(contact *model.Contact, max int) error
	ByID(id string) (*model.Contact, error)
	All(userID string) ([]*model.Contact, error)
	Update(contact *model.Contact) error
	// Delete removes the contact and compacts the orders behind it.
	Delete(id string) error
	// Reorder applies order = index for the submitted permutation.
	Reorder(userID string, orderedIDs []string) error
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact, max int) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		count, err := countInScope(tx, contactsTable, contact.UserID)
		if err != nil {
			return err
		}

		if count >= max {
			return ErrContactLimitReached
		}

		contact.Order = count
		query := `INSERT INTO contacts (id, user_id, label, name, value, "order", created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		_, err = tx.Exec(query,
			contact.ID,
			contact.UserID,
			contact.Label,
			contact.Name,
			contact.Value,
			contact.Order,
			contact.CreatedAt,
			contact.UpdatedAt,
		)
		return err
	})
}

func (r *contactRepository) ByID(id string) (*model.Contact, error) {
	contact := &model.Contact{}
	query := `SELECT * FROM contacts WHERE id = $1`

	err := r.db.Get(contact, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}

	return contact, err
}

func (r *contactRepository) All(userID string) ([]*model.Contact, error) {
	var contacts []*model.Contact
	query := `SELECT * FROM contacts WHERE user_id = $1 ORDER BY "order" ASC`

	err := r.db.Select(&contacts, query, userID)
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func (r *contactRepository) Update(contact *model.Contact) error {
	query := `UPDATE contacts SET label = $1, name = $2, value = $3, updated_at = $4 WHERE id = $5`

	result, err := r.db.Exec(query,
		contact.Label,
		contact.Name,
		contact.Value,
		time.Now(),
		contact.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContactNotFound
	}

	return nil
}

func (r *contactRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		contact := &model.Contact{}
		err := tx.Get(contact, `SELECT * FROM contacts WHERE id = $1`, id)
		if err == sql.ErrNoRows {
			return ErrContactNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(`DELETE FROM contacts WHERE id = $1`, id)
		if err != nil {
			return err
		}

		return compactOrdersAfter(tx, contactsTable, contact.UserID, contact.Order)
	})
}

func (r *contactRepository) Reorder(userID string, orderedIDs []string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		return reorderScope(tx, contactsTable, userID, orderedIDs)
	})
}
