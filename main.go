package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"trendscout/api"
	"trendscout/config"
	"trendscout/orchestrator"
	"trendscout/state"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	cfg := config.Load()
	runner, err := orchestrator.NewRunner(context.Background(), cfg, state.NewTracker())
	if err != nil {
		log.Fatalf("failed to initialize runner: %v", err)
	}

	r := api.NewRouter(runner)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/scrape/run")
	log.Println("  GET  /api/scrape/status")
	log.Println("  GET  /api/videos/latest")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
