package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/market-api/internal/config"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/identity"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// AuthMiddleware resolves the bearer token into the request identity.
// Claims are fixed at issue time: a role change in the database only
// shows up after the user logs in again.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Falta el encabezado de autorización.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Encabezado de autorización inválido.")
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
			c.Abort()
			return
		}

		userID, ok1 := claims["sub"].(float64)
		email, _ := claims["email"].(string)
		roleStr, _ := claims["role"].(string)

		role, ok2 := identity.ParseRole(roleStr)
		if !ok1 || !ok2 {
			httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole gates a route group by minimum role. BUSINESS passes a
// CLIENT gate; CLIENT does not pass a BUSINESS gate.
func RequireRole(min identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			httperr.Unauthorized(c, "user_not_in_context", "No autenticado.")
			c.Abort()
			return
		}

		role := roleVal.(identity.Role)
		if !role.Satisfies(min) {
			httperr.Forbidden(c, "insufficient_role", "Rol insuficiente para esta operación.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentIdentity reads the identity placed in the context by
// AuthMiddleware. Only valid on routes behind it.
func CurrentIdentity(c *gin.Context) identity.Identity {
	return identity.Identity{
		UserID: c.MustGet(ContextUserID).(uint),
		Email:  c.MustGet(ContextUserEmail).(string),
		Role:   c.MustGet(ContextUserRole).(identity.Role),
	}
}
