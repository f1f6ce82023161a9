package middleware

import (
	"net/http"

	"connector-hub/pkg/apperror"
	"connector-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultAPIBodyBytes covers every JSON request the management API accepts.
	DefaultAPIBodyBytes int64 = 64 << 10
	// DefaultWebhookBodyBytes leaves room for Shopify order payloads with
	// many line items, the largest events any provider sends.
	DefaultWebhookBodyBytes int64 = 2 << 20
)

// BodyLimit caps the request body at maxBytes. A declared Content-Length
// over the cap is refused with 413 before the handler runs. A chunked body
// that overruns fails on read with *http.MaxBytesError.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.AbortError(c, apperror.ErrPayloadTooLarge(maxBytes))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
