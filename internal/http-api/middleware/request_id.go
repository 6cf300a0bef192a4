package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"regexp"
	"time"

	"bookshelf/internal/logger"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

var ridRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// RequestID tags the request with an id, taken from the client when it is
// well formed, and stores a logger carrying it in the request context.
func RequestID(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !ridRe.MatchString(rid) {
			rid = genRID()
		}

		c.Set(ContextRequestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		ctx := logger.WithContext(c.Request.Context(), base.With("request_id", rid))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func genRID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	// timestamp prefix helps with log sorting
	ts := time.Now().UTC().Format("20060102T150405Z")
	return ts + "-" + hex.EncodeToString(b[:])
}
