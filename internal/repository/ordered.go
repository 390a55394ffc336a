package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Ordered collections (contacts, skills, portfolio items) keep a dense,
// zero-based "order" value per owner: after any committed mutation the
// orders in scope are exactly {0..N-1}. The helpers below are shared by
// every ordered repository and must run inside one transaction alongside
// the insert or delete they accompany.

// ErrOrderedSetMismatch is returned by reorderScope when the submitted id
// list is not exactly the scope's current id set. The whole transaction
// rolls back; a partial reorder is never applied.
var ErrOrderedSetMismatch = errors.New("submitted ids do not match the collection")

// shiftOrdersUp makes room at the head of the scope by incrementing every
// row's order. The caller inserts the new row at order 0 in the same tx.
func shiftOrdersUp(tx *sqlx.Tx, table, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET "order" = "order" + 1 WHERE user_id = $1`, table)
	_, err := tx.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("failed to shift orders in %s: %w", table, err)
	}
	return nil
}

// compactOrdersAfter closes the gap left by a deleted row: every row whose
// order was strictly greater than the deleted row's order moves down one.
func compactOrdersAfter(tx *sqlx.Tx, table, userID string, deletedOrder int) error {
	query := fmt.Sprintf(`UPDATE %s SET "order" = "order" - 1 WHERE user_id = $1 AND "order" > $2`, table)
	_, err := tx.Exec(query, userID, deletedOrder)
	if err != nil {
		return fmt.Errorf("failed to compact orders in %s: %w", table, err)
	}
	return nil
}

// countInScope returns the number of rows the owner holds in the table.
func countInScope(tx *sqlx.Tx, table, userID string) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, table)
	err := tx.QueryRow(query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

// reorderScope assigns order = index for each submitted id. The id list
// must be a full permutation of the scope's current ids: no omissions, no
// duplicates, no foreign ids. Anything else fails the transaction whole.
func reorderScope(tx *sqlx.Tx, table, userID string, orderedIDs []string) error {
	var currentIDs []string
	query := fmt.Sprintf(`SELECT id FROM %s WHERE user_id = $1`, table)
	err := tx.Select(&currentIDs, query, userID)
	if err != nil {
		return fmt.Errorf("failed to read ids in %s: %w", table, err)
	}

	if len(orderedIDs) != len(currentIDs) {
		return ErrOrderedSetMismatch
	}

	current := make(map[string]bool, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = true
	}

	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] || seen[id] {
			return ErrOrderedSetMismatch
		}
		seen[id] = true
	}

	update := fmt.Sprintf(`UPDATE %s SET "order" = $1, updated_at = $2 WHERE id = $3`, table)
	now := time.Now()
	for index, id := range orderedIDs {
		_, err = tx.Exec(update, index, now, id)
		if err != nil {
			return fmt.Errorf("failed to reorder %s: %w", table, err)
		}
	}

	return nil
}
