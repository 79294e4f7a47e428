// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/subodhkangale07/JobPortal/internal/auth"
	"github.com/subodhkangale07/JobPortal/internal/database"
	"github.com/subodhkangale07/JobPortal/internal/model"
	"github.com/subodhkangale07/JobPortal/internal/utilities"
)

// RequireAuth validates the access token of a request, looked up from the
// token cookie, a form field, or the Authorization header, and attaches the
// matching user to the context for downstream handlers.
func RequireAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail(
				"User not authorized. No token provided or invalid token format.",
			))
			return
		}

		token, err := auth.ValidatedToken(tokenString)

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Access token expired"))
				return
			}

			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail(
				fmt.Sprintf("Failed to validate token: %s", err.Error()),
			))
			return
		}

		if !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Invalid access token"))
			return
		}

		claims := token.Claims.(*jwt.RegisteredClaims)

		if claims.Issuer != auth.JwtIssuer {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("Invalid token issuer"))
			return
		}

		userID := claims.Subject

		var foundUser model.User

		if err := db.Where("id = ?", userID).First(&foundUser).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.Fail("User not exist"))
				return
			}

			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			))
			return
		}

		ctx.Set("user", foundUser)
		ctx.Next()
	}
}
