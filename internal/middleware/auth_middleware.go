package middleware

import (
	"net/http"
	"strings"

	"github.com/coverpoint/clubhouse/internal/guard"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/utils"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthMiddleware resolves the session token (Authorization header or
// the "token" cookie) and stores the claims for downstream guards.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortWithState(c, guard.StateUnauthenticated)
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			abortWithState(c, guard.StateUnauthenticated)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("user_role", claims.Role)
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// RequireRole admits only subjects whose role satisfies the guard.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := guard.Evaluate(subjectFrom(c), guard.Requirement{Role: role})
		if state != guard.StateAuthorized {
			abortWithState(c, state)
			return
		}
		c.Next()
	}
}

// RequireOwner admits only the account named by the route parameter
// (admins pass regardless).
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := guard.Evaluate(subjectFrom(c), guard.Requirement{Username: c.Param(param)})
		if state != guard.StateAuthorized {
			abortWithState(c, state)
			return
		}
		c.Next()
	}
}

// Claims returns the validated session claims, or nil when the route
// is reachable without authentication.
func Claims(c *gin.Context) *utils.Claims {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}

func subjectFrom(c *gin.Context) *guard.Subject {
	claims := Claims(c)
	if claims == nil {
		return nil
	}
	return &guard.Subject{Username: claims.Username, Role: claims.Role}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return token
		}
		return ""
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

// abortWithState maps a terminal guard state to its response. No state
// is retried; a failed check ends the request.
func abortWithState(c *gin.Context, state guard.State) {
	status := http.StatusUnauthorized
	message := "authentication required"

	switch state {
	case guard.StateWrongIdentity:
		status = http.StatusForbidden
		message = "you can only modify your own profile"
	case guard.StateInsufficientRole:
		status = http.StatusForbidden
		message = "admin access required"
	}

	c.JSON(status, gin.H{"message": message})
	c.Abort()
}
