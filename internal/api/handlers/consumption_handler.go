package handlers

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/api/presenters"
	"Pantry-Tracker/pkg/consumption"

	"github.com/gofiber/fiber/v2"
)

type (
	ConsumptionHandler interface {
		ProcessAutoConsumption(c *fiber.Ctx) error
		TriggerAutoConsumption(c *fiber.Ctx) error
		GetTriggerStatus(c *fiber.Ctx) error
	}

	consumptionHandler struct {
		engine consumption.Engine
		gate   consumption.Gate
	}
)

func NewConsumptionHandler(engine consumption.Engine, gate consumption.Gate) ConsumptionHandler {
	return &consumptionHandler{
		engine: engine,
		gate:   gate,
	}
}

// ProcessAutoConsumption runs the engine unconditionally. Callers that need
// the once per day guarantee use TriggerAutoConsumption.
func (h *consumptionHandler) ProcessAutoConsumption(c *fiber.Ctx) error {
	report, err := h.engine.ProcessAutomaticConsumption(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedProcessAutoConsumption, err)
	}

	return presenters.SuccessResponse(c, report, fiber.StatusOK, domain.MessageSuccessProcessAutoConsumption)
}

func (h *consumptionHandler) TriggerAutoConsumption(c *fiber.Ctx) error {
	res, err := h.gate.Trigger(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedProcessAutoConsumption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessTriggerAutoConsumption)
}

func (h *consumptionHandler) GetTriggerStatus(c *fiber.Ctx) error {
	status, err := h.gate.Status(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFor(err), domain.MessageFailedGetTriggerStatus, err)
	}

	return presenters.SuccessResponse(c, status, fiber.StatusOK, domain.MessageSuccessGetTriggerStatus)
}
