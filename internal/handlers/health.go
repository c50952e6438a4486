package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/scribehq/scribe/pkg/errors"
	"github.com/scribehq/scribe/pkg/response"
)

// Health returns a status payload useful for readiness checks. When a database
// handle is supplied the check pings it with a short deadline.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				response.Error(c, errors.Wrap(err, "database unavailable"))
				return
			}

			ctx, cancel := contextWithTimeout(c, 2*time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				response.Error(c, errors.Wrap(err, "database unavailable"))
				return
			}
		}

		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
