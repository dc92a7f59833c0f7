package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finance-tracker/internal/apperrors"
	"finance-tracker/internal/jwt"
	"finance-tracker/internal/models"
)

// UserIDKey is the gin context key holding the authenticated user id
const UserIDKey = "user_id"

type userIDCtxKey struct{}

// AuthMiddleware verifies the token in the Authorization header, either raw
// or with a "Bearer " prefix. A missing header is answered with 401 and an
// unverifiable token with 400.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, apperrors.ErrUnauthenticated)
			return
		}

		tokenString := authHeader
		if scheme, rest, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenString = strings.TrimSpace(rest)
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			// ValidateToken wraps every failure in ErrInvalidToken
			abortWithError(c, http.StatusBadRequest, apperrors.ErrInvalidToken)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// abortWithError answers with the sentinel's text, never the wrapped detail
func abortWithError(c *gin.Context, status int, sentinel error) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: sentinel.Error()})
}

// UserID returns the user id set by AuthMiddleware
func UserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// WithUserID returns a copy of ctx carrying userID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// UserIDFromContext returns the user id stored by WithUserID. Handlers read
// the caller from here so services and logs see the same value.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDCtxKey{}).(string)
	return id, ok && id != ""
}
