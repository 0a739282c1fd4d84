package v1

import (
	"net/http"
	"strings"

	"github.com/jtsigarra/xferdx/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Context keys set by the Authentication middleware.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// Authentication validates the bearer token and puts the caller's identity
// into the gin context. Missing or invalid tokens abort with 401.
func Authentication(tokenManager users.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "missing bearer token"})
			return
		}

		claims, err := tokenManager.Verify(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid or expired token"})
			return
		}

		ctx.Set(ContextUserID, claims.UserID)
		ctx.Set(ContextUsername, claims.Username)
		ctx.Set(ContextRole, claims.Role)
		ctx.Next()
	}
}

// RequireRole allows only callers whose role is one of roles. Runs after
// Authentication.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "you do not have permission to access this resource"})
	}
}
