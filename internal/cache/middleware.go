package cache

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Emmir-1/sell-swap-hint/internal/auth"
)

type bufferingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// KeyFunc derives the cache key for a request.
type KeyFunc func(c *gin.Context) string

// PathKey keys on the request URI alone. Safe only for responses that do
// not vary by caller.
func PathKey(c *gin.Context) string {
	return c.Request.URL.RequestURI()
}

// UserKey scopes the entry to the acting user, so one user's rendered
// listing is never replayed to another. Requests without an identity share
// an anonymous bucket.
func UserKey(c *gin.Context) string {
	if identity, ok := auth.FromContext(c); ok {
		return identity.UserID + ":" + c.Request.URL.RequestURI()
	}
	return "anon:" + c.Request.URL.RequestURI()
}

// Page caches successful GET responses for the configured TTL, keyed by the
// given KeyFunc. Cache trouble degrades to serving uncached responses.
func Page(store Store, ttl time.Duration, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		k := key(c)
		if data, found, err := store.GetBytes(c.Request.Context(), k); err != nil {
			log.Printf("[cache] read failed for %s: %v", k, err)
		} else if found {
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			c.Abort()
			return
		}

		writer := &bufferingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		if err := store.SetBytes(c.Request.Context(), k, writer.body.Bytes(), ttl); err != nil {
			log.Printf("[cache] write failed for %s: %v", k, err)
		}
	}
}
