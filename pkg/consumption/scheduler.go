package consumption

import (
	"context"
	"time"

	"Pantry-Tracker/internal/utils/clock"

	"github.com/gofiber/fiber/v2/log"
)

// Scheduler asks the gate to run on start and then on every interval. The
// gate decides whether a new day has begun, so a short interval is safe.
type Scheduler struct {
	gate     Gate
	clock    clock.Clock
	interval time.Duration
}

func NewScheduler(gate Gate, c clock.Clock, interval time.Duration) *Scheduler {
	return &Scheduler{
		gate:     gate,
		clock:    c,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	res, err := s.gate.Trigger(ctx)
	if err != nil {
		log.Errorw("scheduled automatic consumption failed", "error", err)
		return
	}
	if res.Ran {
		log.Infow("scheduled automatic consumption ran", "day", res.Day, "run_id", res.Report.RunID)
	}
}
