package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/models"
	"finance-tracker/internal/service"
	"finance-tracker/internal/validation"
)

type AuthController struct {
	authService service.AuthService
	log         logging.Logger
}

func NewAuthController(authService service.AuthService, log logging.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		log:         log,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validation.FirstMessage(err)})
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserExists):
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		case apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		default:
			internalError(c, ac.log, err)
		}
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validation.FirstMessage(err)})
		return
	}

	token, err := ac.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
			return
		}
		internalError(c, ac.log, err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}

// internalError logs err and answers with a body that carries no detail
func internalError(c *gin.Context, log logging.Logger, err error) {
	log.Error(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
}
