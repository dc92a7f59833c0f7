package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType is either income or expense
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction represents a single income or expense record owned by one user
type Transaction struct {
	ID       string          `json:"id"`     // UUID
	UserID   string          `json:"userId"` // owner, UUID
	Amount   decimal.Decimal `json:"amount"` // signed
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Date     time.Time       `json:"date"`
}
