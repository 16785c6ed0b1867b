package consumption

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/cascade"
	"Pantry-Tracker/pkg/food"
	"Pantry-Tracker/pkg/store"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var ErrUnknownPolicy = errors.New("unknown auto consumption policy")

type (
	// Engine performs one automatic consumption pass. It keeps no record of
	// earlier passes; calling it twice consumes twice.
	Engine interface {
		ProcessAutomaticConsumption(ctx context.Context) (domain.ConsumptionReport, error)
	}

	engine struct {
		repo       store.Repository
		dispatcher cascade.Dispatcher
		clock      clock.Clock
		policy     string
	}
)

func NewEngine(repo store.Repository, dispatcher cascade.Dispatcher, c clock.Clock, policy string) (Engine, error) {
	if policy == "" {
		policy = domain.PolicyHeadOnly
	}
	if policy != domain.PolicyHeadOnly && policy != domain.PolicyCarryOver {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
	return &engine{
		repo:       repo,
		dispatcher: dispatcher,
		clock:      c,
		policy:     policy,
	}, nil
}

// ProcessAutomaticConsumption runs the whole pass in one transaction.
// Eligible items are grouped by exact name, groups are visited in order of
// their lowest id, and each group is drawn down earliest expiration first.
func (e *engine) ProcessAutomaticConsumption(ctx context.Context) (domain.ConsumptionReport, error) {
	now := e.clock.Now()
	report := domain.ConsumptionReport{
		RunID:        uuid.NewString(),
		Policy:       e.policy,
		Consumptions: []domain.Consumption{},
		ProcessedAt:  now,
	}

	var created []entities.Notification
	err := e.repo.WithTx(ctx, func(tx store.Repository) error {
		items, err := tx.ListFoodItems(ctx)
		if err != nil {
			return err
		}

		groups := groupByName(items)
		report.Groups = len(groups)
		for _, group := range groups {
			events, err := e.consumeGroup(ctx, tx, group, &report)
			if err != nil {
				return err
			}
			notes, err := e.dispatcher.Dispatch(ctx, tx, events)
			if err != nil {
				return err
			}
			created = append(created, notes...)
		}
		return nil
	})
	if err != nil {
		log.Errorw("automatic consumption failed", "run_id", report.RunID, "error", err)
		return domain.ConsumptionReport{}, err
	}

	e.dispatcher.Publish(ctx, created)
	log.Infow("automatic consumption processed",
		"run_id", report.RunID,
		"policy", report.Policy,
		"groups", report.Groups,
		"consumptions", len(report.Consumptions),
	)
	return report, nil
}

func (e *engine) consumeGroup(ctx context.Context, tx store.Repository, group []entities.FoodItem, report *domain.ConsumptionReport) ([]domain.Event, error) {
	var (
		events    []domain.Event
		remaining int
		started   bool
	)
	for _, item := range group {
		if item.Quantity <= 0 {
			continue
		}

		want := item.DailyConsumptionAmount
		if started {
			want = remaining
		}
		amount := min(item.Quantity, want)

		updated, consumeEvents, err := food.Consume(ctx, tx, item.ID, amount, report.ProcessedAt)
		if errors.Is(err, domain.ErrFoodItemNotFound) {
			report.Skipped = append(report.Skipped, item.ID)
			continue
		}
		if err != nil {
			return nil, err
		}

		events = append(events, consumeEvents...)
		events = append(events, domain.Event{
			Type:       domain.EventAutoConsumed,
			FoodItemID: updated.ID,
			Name:       updated.Name,
			Unit:       updated.DailyConsumptionUnit,
			Amount:     amount,
		})
		report.Consumptions = append(report.Consumptions, domain.Consumption{
			FoodItemID: updated.ID,
			Name:       updated.Name,
			Amount:     amount,
			Unit:       updated.DailyConsumptionUnit,
			Depleted:   len(consumeEvents) > 0,
		})

		if !started {
			started = true
			remaining = want
		}
		remaining -= amount
		if e.policy == domain.PolicyHeadOnly || remaining <= 0 {
			break
		}
	}
	return events, nil
}

// groupByName keeps eligible items, grouped by exact name in order of first
// appearance, each group stably sorted by expiration date.
func groupByName(items []entities.FoodItem) [][]entities.FoodItem {
	index := map[string]int{}
	var groups [][]entities.FoodItem
	for _, item := range items {
		if !item.Eligible() {
			continue
		}
		i, ok := index[item.Name]
		if !ok {
			i = len(groups)
			index[item.Name] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], item)
	}

	for _, group := range groups {
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].ExpirationDate.Before(group[b].ExpirationDate)
		})
	}
	return groups
}
