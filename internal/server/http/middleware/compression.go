package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxInflatedBody caps a decompressed request body.
const maxInflatedBody = 1 << 20

// DecompressRequest inflates gzip request bodies for JSON binding.
// Inflated bodies above maxInflatedBody fail to read.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(strings.TrimSpace(c.GetHeader("Content-Encoding")), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		defer compressed.Close()
		inflated, err := gzip.NewReader(compressed)
		if err != nil {
			abort(c, http.StatusBadRequest, err)
			return
		}
		defer inflated.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, inflated, maxInflatedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
