package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/models"
	"finance-tracker/internal/service"
	"finance-tracker/internal/validation"
)

type TransactionController struct {
	txService service.TransactionService
	log       logging.Logger
}

func NewTransactionController(txService service.TransactionService, log logging.Logger) *TransactionController {
	return &TransactionController{
		txService: txService,
		log:       log,
	}
}

// CreateTransaction handles POST /api/transactions
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: apperrors.ErrUnauthenticated.Error()})
		return
	}

	in, err := validation.DecodeTransaction(c.Request.Body)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	tx, err := tc.txService.Create(c.Request.Context(), userID, in)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// ListTransactions handles GET /api/transactions
func (tc *TransactionController) ListTransactions(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: apperrors.ErrUnauthenticated.Error()})
		return
	}

	txs, err := tc.txService.List(c.Request.Context(), userID)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txs)
}

// UpdateTransaction handles PUT /api/transactions/:id.
// An unknown id answers 200 with a null body.
func (tc *TransactionController) UpdateTransaction(c *gin.Context) {
	in, err := validation.DecodeTransaction(c.Request.Body)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	tx, err := tc.txService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		tc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	if err := tc.txService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		tc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Transaction deleted"})
}

func (tc *TransactionController) respondError(c *gin.Context, err error) {
	if apperrors.IsValidation(err) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	internalError(c, tc.log, err)
}
