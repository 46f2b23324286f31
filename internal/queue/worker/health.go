package worker

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the worker's liveness and readiness probes plus a
// small stats payload from the atomic job counters.
func (w *Worker) HealthHandler() http.Handler {
	r := gin.New()

	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.GET("/readyz", func(c *gin.Context) {
		w.readyMu.RLock()
		ready := w.ready
		w.readyMu.RUnlock()

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/statsz", func(c *gin.Context) {
		if w.metrics == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		s := w.metrics.Snapshot()

		c.JSON(http.StatusOK, gin.H{
			"claimed":        s.Claimed,
			"done":           s.Done,
			"failed":         s.Failed,
			"retried":        s.Retried,
			"dead_lettered":  s.DeadLettered,
			"avg_duration":   s.AverageDuration.String(),
			"max_duration":   s.MaxDuration.String(),
			"duration_count": s.DurationCount,
		})
	})

	return r
}
