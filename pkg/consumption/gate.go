package consumption

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils/clock"

	"github.com/gofiber/fiber/v2/log"
)

type (
	// Gate runs the engine at most once per calendar day of its location.
	Gate interface {
		Trigger(ctx context.Context) (domain.TriggerResult, error)
		Status(ctx context.Context) (domain.TriggerStatusResponse, error)
	}

	// PostRunHook runs after a successful pass once the marker is written.
	PostRunHook func(ctx context.Context, report domain.ConsumptionReport) error

	gate struct {
		mu      sync.Mutex
		engine  Engine
		markers MarkerStore
		clock   clock.Clock
		loc     *time.Location
		hooks   []PostRunHook
	}
)

func NewGate(engine Engine, markers MarkerStore, c clock.Clock, loc *time.Location, hooks ...PostRunHook) Gate {
	return &gate{
		engine:  engine,
		markers: markers,
		clock:   c,
		loc:     loc,
		hooks:   hooks,
	}
}

func (g *gate) Trigger(ctx context.Context) (domain.TriggerResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := clock.DayKey(g.clock.Now(), g.loc)
	last, err := g.markers.LastDay(ctx, domain.AutoConsumptionMarkerKey)
	if err != nil {
		return domain.TriggerResult{}, fmt.Errorf("read consumption marker: %w", err)
	}
	if last == day {
		return domain.TriggerResult{Ran: false, Day: day}, nil
	}

	report, err := g.engine.ProcessAutomaticConsumption(ctx)
	if err != nil {
		return domain.TriggerResult{}, err
	}

	if err := g.markers.SetLastDay(ctx, domain.AutoConsumptionMarkerKey, day); err != nil {
		// the pass is committed; without the marker the next trigger repeats it
		log.Errorw("consumption marker not saved", "run_id", report.RunID, "day", day, "error", err)
		return domain.TriggerResult{}, fmt.Errorf("write consumption marker: %w", err)
	}

	for _, hook := range g.hooks {
		if err := hook(ctx, report); err != nil {
			log.Warnw("post run hook failed", "run_id", report.RunID, "error", err)
		}
	}
	return domain.TriggerResult{Ran: true, Day: day, Report: &report}, nil
}

func (g *gate) Status(ctx context.Context) (domain.TriggerStatusResponse, error) {
	today := clock.DayKey(g.clock.Now(), g.loc)
	last, err := g.markers.LastDay(ctx, domain.AutoConsumptionMarkerKey)
	if err != nil {
		return domain.TriggerStatusResponse{}, fmt.Errorf("read consumption marker: %w", err)
	}
	return domain.TriggerStatusResponse{
		Today:            today,
		LastProcessedDay: last,
		ProcessedToday:   last == today,
	}, nil
}
