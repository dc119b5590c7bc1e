package middlewares

import (
	"chatkeywords/pkg/logger"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type Middlewares struct {
	log logger.Logger
}

func New(log logger.Logger) *Middlewares {
	return &Middlewares{log: log}
}

// Auth protects the admin routes with basic auth as user "admin". An empty
// token disables them.
func (m *Middlewares) Auth(token string) gin.HandlerFunc {
	if token == "" {
		return func(c *gin.Context) {
			c.AbortWithStatus(http.StatusNotFound)
		}
	}
	return gin.BasicAuth(gin.Accounts{"admin": token})
}

func (m *Middlewares) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.log.Debug("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
