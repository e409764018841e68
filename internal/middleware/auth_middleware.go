package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-complaintdesk/internal/domain"
	"go-complaintdesk/internal/shared/apperror"
	"go-complaintdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCookieName is the HTTP-only cookie the browser client carries.
const TokenCookieName = "token"

// Identity is what the auth layer resolves a token into. The role comes from
// the database row, not the token, so demotions take effect immediately.
type Identity struct {
	UserID         string
	EmployeeNumber int64
	Name           string
	Role           domain.Role
	IsWorker       bool
}

// IdentityLoader resolves a user id from token claims into a live identity.
type IdentityLoader interface {
	FindIdentity(ctx context.Context, userID string) (Identity, error)
}

// AuthMiddleware validates the bearer token (header or cookie), loads the
// referenced user, and attaches the identity to both gin and the request
// context. Tokens referencing a deleted user fail with 404 per the session
// contract.
func AuthMiddleware(secret []byte, users IdentityLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(TokenCookieName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User ID not found in token", nil)
			c.Abort()
			return
		}

		identity, err := users.FindIdentity(c.Request.Context(), userID)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set("user_id", identity.UserID)
		c.Set("employee_number", identity.EmployeeNumber)
		c.Set("name", identity.Name)
		c.Set("role", identity.Role.String())
		c.Set("is_worker", identity.IsWorker)

		c.Next()
	}
}

// RoleMiddleware gates a route to the given roles. Role strings outside the
// closed enum are rejected rather than silently denied a match.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := domain.ParseRole(c.GetString("role"))
		if err != nil {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
		c.Abort()
	}
}
