package ctxmanage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDKey = "trace_id"

// GetTraceIdOfRequest returns the trace id stored on the gin context,
// generating and storing one on first access.
func GetTraceIdOfRequest(c *gin.Context) string {
	if v, ok := c.Get(traceIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	id := uuid.NewString()
	c.Set(traceIDKey, id)
	return id
}
