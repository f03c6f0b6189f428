package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"trendscout/config"
	"trendscout/orchestrator"
	"trendscout/state"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	keywords := flag.String("keywords", "", "comma-separated keywords or a preset name (overrides KEYWORDS)")
	flag.Parse()

	cfg := config.Load()
	if strings.TrimSpace(*keywords) != "" {
		cfg.Keywords = config.ResolveKeywords(*keywords)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Interrupted, finishing up...")
		cancel()
	}()

	runner, err := orchestrator.NewRunner(ctx, cfg, state.NewTracker())
	if err != nil {
		log.Fatalf("failed to initialize runner: %v", err)
	}

	if err := runner.RunOnce(ctx); err != nil {
		log.Fatalf("scrape run failed: %v", err)
	}
}
