package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trendscout/orchestrator"
	"trendscout/types"
)

// RegisterVideoRoutes registers read access to the latest run's videos.
func RegisterVideoRoutes(r *gin.Engine, runner *orchestrator.Runner) {
	g := r.Group("/api/videos")
	g.GET("/latest", handleLatestVideos(runner))
}

func handleLatestVideos(runner *orchestrator.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		videos := runner.Tracker().LatestVideos()
		if videos == nil {
			videos = []*types.Video{}
		}
		c.JSON(http.StatusOK, gin.H{
			"count":  len(videos),
			"videos": videos,
		})
	}
}
