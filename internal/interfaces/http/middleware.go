package http

import (
	"net/http"
	"strings"

	"github.com/awahyudi/facility-portal/internal/application/service"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID   = "auth.uid"
	ctxUserRole = "auth.role"
)

// RequireAuth validates the bearer token and stores the session identity on
// the request context. Pending accounts hold a valid token but are not yet
// allowed past the gate.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "missing bearer token",
			})
			return
		}

		claims := &service.SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "invalid or expired token",
			})
			return
		}

		if claims.Status != entity.UserStatusApproved {
			c.AbortWithStatusJSON(http.StatusForbidden, Response{
				Success: false,
				Error:   "account pending activation",
			})
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows only the listed roles past. Admin passes everywhere.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles)+1)
	allowed[entity.RoleAdmin] = true
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(ctxUserRole)
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, Response{
				Success: false,
				Error:   "insufficient role",
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Websocket clients cannot set headers from the browser, so the token
	// may arrive as a query parameter instead.
	return c.Query("token")
}

// sessionUID returns the authenticated user's UID.
func sessionUID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// sessionRole returns the authenticated user's role.
func sessionRole(c *gin.Context) string {
	return c.GetString(ctxUserRole)
}
