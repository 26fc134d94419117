package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mdev98/fast-food-api/internal/interfaces/http/dto"
)

// RequireJSON rejects POST/PUT/PATCH requests with a body whose content
// type is not application/json. Multipart uploads are exempt.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		contentType := c.ContentType()
		if contentType == "application/json" ||
			strings.HasPrefix(contentType, "multipart/form-data") {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, dto.NewErrorResponse(
			dto.ErrCodeUnsupportedMedia,
			"Content-Type must be application/json",
		))
	}
}
