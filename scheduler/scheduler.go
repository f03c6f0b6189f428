// Package scheduler runs scrape jobs on a cron schedule. Overlapping
// firings are skipped rather than queued; a scrape run can outlast its
// interval and queuing them would only pile up gateway traffic.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Job is the work executed on each firing.
type Job func(ctx context.Context) error

// Scheduler wraps a single cron entry around a Job.
type Scheduler struct {
	cron    *cron.Cron
	job     Job
	spec    string
	running atomic.Bool
}

// New validates spec and registers the job. The scheduler does not fire
// until Start is called.
func New(spec string, job Job) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		job:  job,
		spec: spec,
	}
	if _, err := s.cron.AddFunc(spec, s.invoke); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing on schedule. It returns immediately.
func (s *Scheduler) Start() {
	log.Printf("Scheduler started with spec %q", s.spec)
	s.cron.Start()
}

// Stop stops future firings and waits for an in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

// RunNow fires the job immediately, subject to the same overlap guard as
// scheduled firings.
func (s *Scheduler) RunNow() {
	s.invoke()
}

func (s *Scheduler) invoke() {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("Warning: previous run still in progress, skipping this firing")
		return
	}
	defer s.running.Store(false)

	if err := s.job(context.Background()); err != nil {
		log.Printf("Scheduled run failed: %v", err)
	}
}

// SpecFor translates the friendly schedule settings into a cron spec.
// Modes: "daily" fires at the given HH:MM, "hourly" fires on the hour, and
// "custom" passes value through as a raw five-field cron spec.
func SpecFor(mode, value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "daily":
		hour, minute := 3, 0
		if value != "" {
			if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
				return "", fmt.Errorf("invalid daily time %q (want HH:MM): %w", value, err)
			}
			if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
				return "", fmt.Errorf("invalid daily time %q", value)
			}
		}
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case "hourly":
		return "0 * * * *", nil
	case "custom":
		if strings.TrimSpace(value) == "" {
			return "", fmt.Errorf("custom schedule requires a cron spec")
		}
		return value, nil
	default:
		return "", fmt.Errorf("unknown schedule mode %q", mode)
	}
}
