package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CATyPH67/shop-api/internal/requestdata"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			rd = &requestdata.RequestData{}
		}
		rd.RequestID = id
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
