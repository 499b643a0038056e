package handlers

import (
	"errors"
	"strconv"

	"generosity-backend/domain"
	"generosity-backend/internal/api/presenters"
	"generosity-backend/pkg/crisisalert"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CrisisAlertHandler interface {
		GetActiveAlerts(c *fiber.Ctx) error
		DismissAlert(c *fiber.Ctx) error
		SendAlert(c *fiber.Ctx) error
		GetAlerts(c *fiber.Ctx) error
		UpdateAlert(c *fiber.Ctx) error
		DeleteAlert(c *fiber.Ctx) error
		RefreshSystemAlerts(c *fiber.Ctx) error
	}

	crisisAlertHandler struct {
		alertService crisisalert.CrisisAlertService
		validator    *validator.Validate
	}
)

func NewCrisisAlertHandler(alertService crisisalert.CrisisAlertService, validator *validator.Validate) CrisisAlertHandler {
	return &crisisAlertHandler{
		alertService: alertService,
		validator:    validator,
	}
}

func (h *crisisAlertHandler) GetActiveAlerts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	alerts, err := h.alertService.GetAlertsForUser(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAlerts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"alerts": alerts,
	}, fiber.StatusOK, domain.MessageSuccessGetAlerts)
}

func (h *crisisAlertHandler) DismissAlert(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	alertID := c.Params("id")

	if err := h.alertService.DismissAlert(c.Context(), alertID, userID); err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDismissAlert, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDismissAlert, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDismissAlert)
}

func (h *crisisAlertHandler) SendAlert(c *fiber.Ctx) error {
	req := new(domain.CrisisAlertRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendAlert, err)
	}

	result, err := h.alertService.SendAlert(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendAlert, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessSendAlert)
}

func (h *crisisAlertHandler) GetAlerts(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	alerts, count, err := h.alertService.GetAlerts(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAlerts, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"alerts": alerts,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": count,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetAlerts)
}

func (h *crisisAlertHandler) UpdateAlert(c *fiber.Ctx) error {
	alertID := c.Params("id")

	req := new(domain.UpdateCrisisAlertRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateAlert, err)
	}

	result, err := h.alertService.UpdateAlert(c.Context(), alertID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateAlert, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateAlert, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateAlert)
}

func (h *crisisAlertHandler) DeleteAlert(c *fiber.Ctx) error {
	alertID := c.Params("id")

	if err := h.alertService.DeleteAlert(c.Context(), alertID); err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteAlert, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteAlert, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAlert)
}

func (h *crisisAlertHandler) RefreshSystemAlerts(c *fiber.Ctx) error {
	force := c.QueryBool("force", false)

	result, err := h.alertService.RefreshSystemAlerts(c.Context(), force)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRefreshSystem, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessRefreshSystem)
}
