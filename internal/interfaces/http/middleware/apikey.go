package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mdev98/fast-food-api/internal/interfaces/http/dto"
)

// APIKeyHeader is the header carrying the admin API key.
const APIKeyHeader = "X-API-Key"

// APIKey guards mutating routes with a shared admin key. Comparison is
// constant time to keep the key unguessable through timing.
func APIKey(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(APIKeyHeader)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Missing API key",
			))
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Invalid API key",
			))
			return
		}

		c.Next()
	}
}
