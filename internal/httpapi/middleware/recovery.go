package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cumbersomeamir/lumina-spaces/internal/common"
)

// Recovery turns panics into the standard error envelope instead of a bare
// 500 page.
func Recovery(log *zap.SugaredLogger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("panic recovered",
					"path", c.Request.URL.Path,
					"panic", r,
				)
				common.Fail(c, http.StatusInternalServerError, 50000, "internal error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
