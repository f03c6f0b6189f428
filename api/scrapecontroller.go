package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"trendscout/orchestrator"
)

// RegisterScrapeRoutes registers run control and status endpoints.
func RegisterScrapeRoutes(r *gin.Engine, runner *orchestrator.Runner) {
	g := r.Group("/api/scrape")
	g.POST("/run", handleScrapeRun(runner))
	g.GET("/status", handleScrapeStatus(runner))
}

// handleScrapeRun kicks off a scrape run. The run executes asynchronously;
// the response is 202 Accepted and progress is served by /api/scrape/status.
// A second run while one is in progress gets 409 Conflict.
func handleScrapeRun(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		if runner.Tracker().Running() {
			c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
			return
		}

		go func() {
			if err := runner.RunOnce(context.Background()); err != nil {
				log.Printf("Scrape run failed: %v", err)
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"status": "run started"})
	}
}

func handleScrapeStatus(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, runner.Tracker().GetStatus())
	}
}
