package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Andrew-O39/moviweb-app/internal/datamanager"
	"github.com/Andrew-O39/moviweb-app/internal/services"
)

// currentUserID reads the authenticated user's id set by the auth
// middleware.
func currentUserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals("user_id").(uint)
	if !ok {
		return 0, errors.New("no authenticated user in context")
	}
	return id, nil
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// respondError maps service and data-manager errors onto HTTP statuses.
// Anything unrecognized is a storage-level failure and becomes a 500.
func respondError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You can only manage your own entries",
		})
	case errors.Is(err, services.ErrLookupMiss):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Movie not found in OMDb or an error occurred",
		})
	case errors.Is(err, datamanager.ErrDuplicateEmail),
		errors.Is(err, datamanager.ErrDuplicateMovie):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, datamanager.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	default:
		log.Printf("Error %s: %v", action, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not " + action,
		})
	}
}
