package handlers

import (
	"errors"

	"generosity-backend/domain"
	"generosity-backend/internal/api/presenters"
	"generosity-backend/pkg/feedback"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FeedbackHandler interface {
		CreateFeedback(c *fiber.Ctx) error
		GetMyFeedbacks(c *fiber.Ctx) error
	}

	feedbackHandler struct {
		feedbackService feedback.FeedbackService
		validator       *validator.Validate
	}
)

func NewFeedbackHandler(feedbackService feedback.FeedbackService, validator *validator.Validate) FeedbackHandler {
	return &feedbackHandler{
		feedbackService: feedbackService,
		validator:       validator,
	}
}

func (h *feedbackHandler) CreateFeedback(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)

	req := new(domain.FeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFeedback, err)
	}

	result, err := h.feedbackService.CreateFeedback(c.Context(), *req, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDonationNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCreateFeedback, err)
		case errors.Is(err, domain.ErrOnlyRecipientsRate):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCreateFeedback, err)
		case errors.Is(err, domain.ErrFeedbackAlreadyExists):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFeedback, err)
		case errors.Is(err, domain.ErrRatingOutOfRange):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFeedback, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateFeedback, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessCreateFeedback)
}

// GetMyFeedbacks returns feedback left on the calling donor's donations.
func (h *feedbackHandler) GetMyFeedbacks(c *fiber.Ctx) error {
	donorID := c.Locals("user_id").(string)

	feedbacks, err := h.feedbackService.GetDonorFeedbacks(c.Context(), donorID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetFeedbacks, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"feedbacks": feedbacks,
	}, fiber.StatusOK, domain.MessageSuccessGetFeedbacks)
}
