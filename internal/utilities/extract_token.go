package utilities

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// ExtractToken locates the access token of a request. Lookup order is the
// `token` cookie, then a `token` form field, then the Authorization bearer
// header. JSON bodies are never consumed here, only form-encoded ones.
func ExtractToken(c *gin.Context) (string, error) {

	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie, nil
	}

	if field := c.PostForm("token"); field != "" {
		return field, nil
	}

	const BearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(BearerSchema) {
		return "", fmt.Errorf("No token provided")
	}

	return authHeader[len(BearerSchema):], nil
}
