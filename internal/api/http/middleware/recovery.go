package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery traps panics raised while handling a request and substitutes a
// fallback payload carrying the error's string form and a reload action.
// It never attempts retry-in-place; the client's recovery path is a reload.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err := fmt.Sprintf("%v", recovered)
		log.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.String("error", err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":  err,
			"reload": true,
		})
	})
}
