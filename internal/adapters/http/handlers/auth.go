package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "bearer "

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is missing or uses another scheme.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
