package handler

import (
	"context"
	"net/http"
	"time"

	"tienda/internal/store"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response.
// Checks store connectivity; never exposes credentials or internals.
func Health(kv store.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		if kv.Ping(ctx) != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"store": storeStatus,
		})
	}
}
