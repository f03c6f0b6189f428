package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trendscout/config"
	"trendscout/orchestrator"
	"trendscout/scheduler"
	"trendscout/state"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	runNow := flag.Bool("run-now", false, "run one scrape immediately, then keep the schedule")
	flag.Parse()

	cfg := config.Load()

	spec := cfg.ScheduleSpec
	if mode := os.Getenv("SCHEDULE_MODE"); mode != "" {
		s, err := scheduler.SpecFor(mode, os.Getenv("SCHEDULE_TIME"))
		if err != nil {
			log.Fatalf("invalid schedule: %v", err)
		}
		spec = s
	}

	runner, err := orchestrator.NewRunner(context.Background(), cfg, state.NewTracker())
	if err != nil {
		log.Fatalf("failed to initialize runner: %v", err)
	}

	sched, err := scheduler.New(spec, runner.RunOnce)
	if err != nil {
		log.Fatalf("failed to initialize scheduler: %v", err)
	}

	if *runNow {
		go sched.RunNow()
	}
	sched.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	sched.Stop()
}
