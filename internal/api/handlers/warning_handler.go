package handlers

import (
	"errors"

	"generosity-backend/domain"
	"generosity-backend/internal/api/presenters"
	"generosity-backend/pkg/warning"

	"github.com/gofiber/fiber/v2"
)

type (
	WarningHandler interface {
		GetWarnings(c *fiber.Ctx) error
		DismissWarning(c *fiber.Ctx) error
	}

	warningHandler struct {
		warningService warning.WarningService
	}
)

func NewWarningHandler(warningService warning.WarningService) WarningHandler {
	return &warningHandler{warningService: warningService}
}

func (h *warningHandler) GetWarnings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	warnings, err := h.warningService.GetUserWarnings(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetWarnings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"warnings": warnings,
	}, fiber.StatusOK, domain.MessageSuccessGetWarnings)
}

func (h *warningHandler) DismissWarning(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	warningID := c.Params("id")

	if err := h.warningService.DismissWarning(c.Context(), warningID, userID); err != nil {
		if errors.Is(err, domain.ErrWarningNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDismissWarning, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDismissWarning, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDismissWarning)
}
