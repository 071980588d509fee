package tracking

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware records a page view for every GET request passing through it.
func Middleware(recorder *Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			recorder.Record(c.Request.URL.Path, c.ClientIP())
		}
		c.Next()
	}
}
