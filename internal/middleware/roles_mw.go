package middleware

import (
	"net/http"

	"vehicle_rental/internal/model"
	"vehicle_rental/internal/utils"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware that only lets the listed roles through.
// A failed check aborts the chain before the handler runs.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			utils.AbortError(c, http.StatusForbidden, "Role not found in token, ensure JWT middleware runs first", nil)
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			utils.AbortError(c, http.StatusForbidden, "Invalid role type in token", nil)
			return
		}

		for _, allowed := range allowedRoles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		utils.AbortError(c, http.StatusForbidden, "You do not have permission!", nil)
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// CustomerMiddleware checks if the user is a customer
func CustomerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleCustomer)
}
