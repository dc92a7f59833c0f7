// Package server wires controllers and middleware into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/controllers"
	"finance-tracker/internal/jwt"
	"finance-tracker/internal/logging"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/validation"
)

type Dependencies struct {
	AuthController        *controllers.AuthController
	TransactionController *controllers.TransactionController
	JWTService            *jwt.JWTService
	Logger                logging.Logger
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(deps Dependencies) *gin.Engine {
	validation.Register()

	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.AuthController.Register)
			auth.POST("/login", deps.AuthController.Login)
		}

		// Protected routes - require JWT authentication
		transactions := api.Group("/transactions")
		transactions.Use(middleware.AuthMiddleware(deps.JWTService))
		{
			transactions.POST("", deps.TransactionController.CreateTransaction)
			transactions.GET("", deps.TransactionController.ListTransactions)
			transactions.PUT("/:id", deps.TransactionController.UpdateTransaction)
			transactions.DELETE("/:id", deps.TransactionController.DeleteTransaction)
		}
	}

	return router
}
