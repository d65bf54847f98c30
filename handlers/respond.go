package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

var validate = validator.New()

// respondError maps a store error onto the HTTP boundary. Internal errors
// are logged and never leak their detail to the client.
func respondError(c *fiber.Ctx, err error) error {
	status := apperr.Status(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		message = "Internal Server Error"
	}
	return c.Status(status).JSON(models.ErrorResponse(message, nil))
}

func respondData(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(models.SuccessResponse(message, data))
}

// parseBody decodes and validates a JSON payload in one step.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return apperr.Validation("%v", err)
	}
	return nil
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid %s", name)
	}
	return uint(id), nil
}
