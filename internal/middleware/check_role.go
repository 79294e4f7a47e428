package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

// CheckRole will protect endpoint from user that is not a specific roles
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
			return
		}

		if !utilities.Contains(roles, user.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.Fail(
				"User doesn't have permission to access",
			))
		}
	}
}
