package api

import (
	"github.com/gin-gonic/gin"

	"trendscout/orchestrator"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(runner *orchestrator.Runner) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterHealthRoutes(r)
	RegisterScrapeRoutes(r, runner)
	RegisterVideoRoutes(r, runner)
	return r
}
