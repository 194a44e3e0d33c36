package middlewares

import (
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CorrelationIdHeader = "X-Correlation-Id"

// CorrelationMiddleware attaches a correlation id to every request. An id
// supplied by the caller is trusted; otherwise a new one is minted. The id is
// echoed back on the response and flows through the context into logs and
// published events.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.Request.Header.Get(CorrelationIdHeader)
		if correlationId == "" {
			correlationId = uuid.NewString()
		}

		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(CorrelationIdHeader, correlationId)
		c.Next()
	}
}
