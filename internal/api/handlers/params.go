package handlers

import (
	"strconv"

	"Pantry-Tracker/domain"

	"github.com/gofiber/fiber/v2"
)

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return uint(id), nil
}
