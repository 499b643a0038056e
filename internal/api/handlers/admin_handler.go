package handlers

import (
	"errors"
	"strconv"

	"generosity-backend/domain"
	"generosity-backend/internal/api/presenters"
	"generosity-backend/pkg/admin"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetBadDonors(c *fiber.Ctx) error
		ApplyDonorAction(c *fiber.Ctx) error
		GetDonorWarnings(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
		validator    *validator.Validate
	}
)

func NewAdminHandler(adminService admin.AdminService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		adminService: adminService,
		validator:    validator,
	}
}

func (h *adminHandler) GetBadDonors(c *fiber.Ctx) error {
	req := domain.BadDonorsRequest{
		SortBy: c.Query("sort_by", "rating"),
		Search: c.Query("search"),
	}
	req.Page, _ = strconv.Atoi(c.Query("page", "1"))
	req.PageSize, _ = strconv.Atoi(c.Query("page_size", "20"))
	req.MinFeedback, _ = strconv.Atoi(c.Query("min_feedback", "3"))
	req.MaxAvgRating, _ = strconv.ParseFloat(c.Query("max_avg_rating", "2.5"), 64)

	result, err := h.adminService.GetBadDonors(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetBadDonors, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetBadDonors)
}

func (h *adminHandler) ApplyDonorAction(c *fiber.Ctx) error {
	donorID := c.Params("id")

	action, err := domain.ParseDonorAction(c.Params("action"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDonorAction, err)
	}

	req := new(domain.WarnDonorRequest)
	if action == domain.DonorActionWarn {
		// Body is optional; a missing message falls back to the default.
		_ = c.BodyParser(req)
		if err := h.validator.Struct(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDonorAction, err)
		}
	}

	if err := h.adminService.ApplyDonorAction(c.Context(), donorID, action, req.Message); err != nil {
		if errors.Is(err, domain.ErrDonorNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDonorAction, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDonorAction, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"action": action,
	}, fiber.StatusOK, domain.MessageSuccessDonorAction)
}

func (h *adminHandler) GetDonorWarnings(c *fiber.Ctx) error {
	donorID := c.Params("id")

	warnings, err := h.adminService.GetDonorWarnings(c.Context(), donorID)
	if err != nil {
		if errors.Is(err, domain.ErrDonorNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetWarnings, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetWarnings, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"warnings": warnings,
	}, fiber.StatusOK, domain.MessageSuccessGetWarnings)
}
