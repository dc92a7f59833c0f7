package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/entities"
	"finance-tracker/internal/models"
)

// TransactionRepository defines the interface for transaction database operations.
// Update and Delete address a record by id alone; callers decide whether to
// check ownership.
type TransactionRepository interface {
	Create(ctx context.Context, userID string, in models.TransactionInput) (*entities.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Transaction, error)
	Update(ctx context.Context, id string, in models.TransactionInput) (*entities.Transaction, error)
	// Delete returns the owner of the removed record, or apperrors.ErrNotFound
	Delete(ctx context.Context, id string) (string, error)
}

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts a new transaction; the date defaults to now on the database side
func (r *transactionRepository) Create(ctx context.Context, userID string, in models.TransactionInput) (*entities.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, amount, category, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, amount, category, type, date
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, userID, in.Amount, in.Category, string(in.Type)))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// ListByUser retrieves all transactions of a user, oldest first
func (r *transactionRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	query := `
		SELECT id, user_id, amount, category, type, date
		FROM transactions
		WHERE user_id = $1
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*entities.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// Update replaces amount, category and type of a transaction
func (r *transactionRepository) Update(ctx context.Context, id string, in models.TransactionInput) (*entities.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = $1, category = $2, type = $3
		WHERE id = $4
		RETURNING id, user_id, amount, category, type, date
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, in.Amount, in.Category, string(in.Type), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return tx, nil
}

// Delete removes a transaction and reports who owned it
func (r *transactionRepository) Delete(ctx context.Context, id string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `DELETE FROM transactions WHERE id = $1 RETURNING user_id`, id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to delete transaction: %w", err)
	}

	return userID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*entities.Transaction, error) {
	var tx entities.Transaction
	var txType string
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Amount,
		&tx.Category,
		&txType,
		&tx.Date,
	)
	if err != nil {
		return nil, err
	}
	tx.Type = entities.TransactionType(txType)
	return &tx, nil
}
