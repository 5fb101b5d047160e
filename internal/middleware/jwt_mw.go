package middleware

import (
	"net/http"
	"strings"

	"vehicle_rental/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey  = "authUser"
	AuthRoleKey  = "authRole"
	AuthEmailKey = "authEmail"
	AuthNameKey  = "authName"
)

// JWTAuthMiddleware creates a middleware for JWT authentication. A missing
// token is a 400 (the client never signed in); a bad or expired one is a 401.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusBadRequest, "Please Signin First.", nil)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.AbortError(c, http.StatusBadRequest, "Please Signin First.", nil)
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Unauthorized Token!", nil)
			return
		}

		// Set user information in context
		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Set(AuthEmailKey, claims.Email)
		c.Set(AuthNameKey, claims.Name)

		c.Next()
	}
}
