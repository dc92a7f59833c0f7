package models

import (
	"encoding/json"

	"finance-tracker/internal/entities"

	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of POST /transactions and PUT /transactions/:id.
// Field order is the order violations are reported in.
type TransactionRequest struct {
	Amount   json.RawMessage `json:"amount" binding:"required,decimal"` // number or numeric string
	Category *string         `json:"category" binding:"required,min=1"`
	Type     *string         `json:"type" binding:"required,min=1,oneof=income expense"`
}

// TransactionInput is a validated TransactionRequest
type TransactionInput struct {
	Amount   decimal.Decimal
	Category string
	Type     entities.TransactionType
}
