package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/entities"
	"finance-tracker/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

var errNotANumber = errors.New("not a number")

// ParseAmount reads a JSON number, or a string holding one, as a decimal.
func ParseAmount(raw []byte) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Decimal{}, errNotANumber
	}

	if s[0] == '"' {
		var str string
		if err := json.Unmarshal([]byte(s), &str); err != nil {
			return decimal.Decimal{}, errNotANumber
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return decimal.Decimal{}, errNotANumber
		}
	} else if s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return decimal.Decimal{}, errNotANumber
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errNotANumber
	}
	return d, nil
}

// transactionKeys are the keys a transaction body may carry. They are
// matched case-sensitively, unlike encoding/json's struct field matching.
var transactionKeys = map[string]bool{
	"amount":   true,
	"category": true,
	"type":     true,
}

var errTrailingData = errors.New("trailing data after JSON value")

// DecodeTransaction reads and validates a transaction payload. The body must
// be a single JSON object without unknown keys. Validation failures are
// *apperrors.ValidationError.
func DecodeTransaction(r io.Reader) (*models.TransactionInput, error) {
	Register()

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := decodeSingle(body, &fields); err != nil || fields == nil {
		return nil, apperrors.NewValidationError(notAnObjectMessage)
	}
	if key, ok := firstUnknownKey(fields); ok {
		return nil, apperrors.NewValidationError(strconv.Quote(key) + " is not allowed")
	}

	var req models.TransactionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, apperrors.NewValidationError(FirstMessage(err))
	}

	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return nil, apperrors.NewValidationError(FirstMessage(err))
	}

	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, apperrors.NewValidationError(`"amount" must be a number`)
	}

	return &models.TransactionInput{
		Amount:   amount,
		Category: *req.Category,
		Type:     entities.TransactionType(*req.Type),
	}, nil
}

// decodeSingle decodes exactly one JSON value from body into v
func decodeSingle(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}

// firstUnknownKey reports the alphabetically first key outside transactionKeys
func firstUnknownKey(fields map[string]json.RawMessage) (string, bool) {
	var unknown []string
	for k := range fields {
		if !transactionKeys[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return "", false
	}
	sort.Strings(unknown)
	return unknown[0], true
}
