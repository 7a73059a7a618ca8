package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ctxKeyRequestID is where the per-request id is stashed on the gin context.
const ctxKeyRequestID = "request_id"

// RequestID assigns every request an id that is echoed in the response
// envelope metadata and the X-Request-ID header. A caller-supplied
// X-Request-ID is honored only when it parses as a UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
