package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticate resolves the bearer access token into an auth.Identity stored
// on the gin context.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "authorization header required"})
			return
		}

		id, err := auth.ParseToken(strings.TrimPrefix(header, common.BearerPrefix), secret)
		if err != nil {
			code, msg := statusFor(err)
			c.AbortWithStatusJSON(code, errorResponse{Error: msg})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func identity(c *gin.Context) auth.Identity {
	id, _ := c.MustGet(identityKey).(auth.Identity)
	return id
}

// limitBody caps the request body so oversized uploads are cut off before
// they are buffered.
func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Debug(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
