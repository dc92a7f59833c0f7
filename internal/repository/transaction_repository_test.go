package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/entities"
	"finance-tracker/internal/models"
)

func newTxRepoWithMock(t *testing.T) (TransactionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactionRepository(db), mock
}

var txColumns = []string{"id", "user_id", "amount", "category", "type", "date"}

func rentInput() models.TransactionInput {
	return models.TransactionInput{
		Amount:   decimal.RequireFromString("-50"),
		Category: "rent",
		Type:     entities.Expense,
	}
}

func TestTransactionCreate(t *testing.T) {
	repo, mock := newTxRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+transactions\s*\(user_id,\s*amount,\s*category,\s*type\)`).
		WithArgs("u-1", "-50", "rent", "expense").
		WillReturnRows(sqlmock.NewRows(txColumns).AddRow("t-1", "u-1", "-50", "rent", "expense", now))

	got, err := repo.Create(context.Background(), "u-1", rentInput())
	require.NoError(t, err)
	assert.Equal(t, "t-1", got.ID)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(-50)))
	assert.Equal(t, entities.Expense, got.Type)
	assert.True(t, got.Date.Equal(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCreate_DBError(t *testing.T) {
	repo, mock := newTxRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+transactions`).WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), "u-1", rentInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create transaction")
}

func TestTransactionListByUser(t *testing.T) {
	repo, mock := newTxRepoWithMock(t)
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	mock.ExpectQuery(`(?s)FROM\s+transactions\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+date\s+ASC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow("t-1", "u-1", "100", "salary", "income", t1).
			AddRow("t-2", "u-1", "-12.5", "food", "expense", t2))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t-1", got[0].ID)
	assert.Equal(t, "-12.5", got[1].Amount.String())
}

func TestTransactionListByUser_Empty(t *testing.T) {
	repo, mock := newTxRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+transactions`).WithArgs("u-2").WillReturnRows(sqlmock.NewRows(txColumns))

	got, err := repo.ListByUser(context.Background(), "u-2")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTransactionListByUser_RowError(t *testing.T) {
	repo, mock := newTxRepoWithMock(t)

	rows := sqlmock.NewRows(txColumns).
		AddRow("t-1", "u-1", "100", "salary", "income", time.Now()).
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery(`FROM\s+transactions`).WithArgs("u-1").WillReturnRows(rows)

	_, err := repo.ListByUser(context.Background(), "u-1")
	require.Error(t, err)
}

func TestTransactionUpdate(t *testing.T) {
	q := `(?s)UPDATE\s+transactions\s+SET\s+amount\s*=\s*\$1,\s*category\s*=\s*\$2,\s*type\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4\s+RETURNING`

	t.Run("updated", func(t *testing.T) {
		repo, mock := newTxRepoWithMock(t)
		mock.ExpectQuery(q).
			WithArgs("-50", "rent", "expense", "t-1").
			WillReturnRows(sqlmock.NewRows(txColumns).AddRow("t-1", "u-1", "-50", "rent", "expense", time.Now()))

		got, err := repo.Update(context.Background(), "t-1", rentInput())
		require.NoError(t, err)
		assert.Equal(t, "rent", got.Category)
		assert.Equal(t, "u-1", got.UserID)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTxRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("-50", "rent", "expense", "t-9").WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), "t-9", rentInput())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestTransactionDelete(t *testing.T) {
	q := `(?s)DELETE\s+FROM\s+transactions\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+user_id`

	t.Run("deleted", func(t *testing.T) {
		repo, mock := newTxRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("t-1").WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u-1"))

		owner, err := repo.Delete(context.Background(), "t-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", owner)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTxRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("t-1").WillReturnError(sql.ErrNoRows)

		_, err := repo.Delete(context.Background(), "t-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newTxRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("t-1").WillReturnError(errors.New("timeout"))

		_, err := repo.Delete(context.Background(), "t-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}
