package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"generosity-backend/domain"
	"generosity-backend/internal/api/presenters"
	"generosity-backend/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		GetDonations(c *fiber.Ctx) error
		GetPublicDonations(c *fiber.Ctx) error
		CreateDonation(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		ClaimDonation(c *fiber.Ctx) error
		CancelDonation(c *fiber.Ctx) error
		GetClaimedDonations(c *fiber.Ctx) error
		CollectClaim(c *fiber.Ctx) error
		CancelClaim(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	return page, limit
}

func claimErrorStatus(err error) int {
	var insufficient *domain.InsufficientQuantityError
	switch {
	case errors.Is(err, domain.ErrDonationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrOnlyRecipientsClaim):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrDonationNotAvailable),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.As(err, &insufficient):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *donationHandler) GetDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	page, limit := pagination(c)

	donations, count, err := h.donationService.GetDonations(c.Context(), userID, role, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": count,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetPublicDonations(c *fiber.Ctx) error {
	page, limit := pagination(c)

	donations, count, err := h.donationService.GetPublicDonations(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": count,
		},
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.DonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// Location arrives as a JSON string in multipart form bodies.
	if raw := c.FormValue("location"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Location); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}
	req.Image, _ = c.FormFile("image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	result, err := h.donationService.CreateDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	result, err := h.donationService.GetDonationByID(c.Context(), donationID, userID, role)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetDonations, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) ClaimDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	req := new(domain.ClaimRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClaimDonation, err)
	}

	result, err := h.donationService.ClaimDonation(c.Context(), donationID, userID, role, *req)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedClaimDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessClaimDonation)
}

func (h *donationHandler) CancelDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	if err := h.donationService.CancelDonation(c.Context(), donationID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrDonationNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCancelDonation, err)
		case errors.Is(err, domain.ErrNotDonationOwner):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCancelDonation, err)
		case errors.Is(err, domain.ErrCancelNotAllowed):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelDonation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCancelDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelDonation)
}

func (h *donationHandler) GetClaimedDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)

	donations, err := h.donationService.GetClaimedDonations(c.Context(), userID, role)
	if err != nil {
		if errors.Is(err, domain.ErrOnlyRecipientsView) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedGetDonations, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
	}, fiber.StatusOK, domain.MessageSuccessGetClaimed)
}

func claimUpdateStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrClaimNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotClaimOwner):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrClaimNotPending):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *donationHandler) CollectClaim(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	claimID := c.Params("id")

	result, err := h.donationService.CollectClaim(c.Context(), claimID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, claimUpdateStatus(err), domain.MessageFailedCollectClaim, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessCollectClaim)
}

func (h *donationHandler) CancelClaim(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	claimID := c.Params("id")

	result, err := h.donationService.CancelClaim(c.Context(), claimID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, claimUpdateStatus(err), domain.MessageFailedCancelClaim, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessCancelClaim)
}
