package domain

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateDonation = "donation created successfully"
	MessageSuccessGetDonations   = "donations retrieved successfully"
	MessageSuccessClaimDonation  = "donation claimed successfully"
	MessageSuccessCancelDonation = "donation cancelled successfully"
	MessageSuccessCollectClaim   = "claim marked as collected"
	MessageSuccessCancelClaim    = "claim cancelled successfully"
	MessageSuccessGetClaimed     = "claimed donations retrieved successfully"

	MessageFailedCreateDonation = "failed to create donation"
	MessageFailedGetDonations   = "failed to retrieve donations"
	MessageFailedClaimDonation  = "failed to claim donation"
	MessageFailedCancelDonation = "failed to cancel donation"
	MessageFailedCollectClaim   = "failed to mark claim as collected"
	MessageFailedCancelClaim    = "failed to cancel claim"

	ErrDonationNotFound     = errors.New("donation not found")
	ErrDonationNotAvailable = errors.New("this donation is not available for claiming")
	ErrAlreadyClaimed       = errors.New("you have already claimed this donation")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrNotDonationOwner     = errors.New("not authorized")
	ErrCancelNotAllowed     = errors.New("can only cancel available donations")
	ErrOnlyRecipientsClaim  = errors.New("only recipients can claim donations")
	ErrOnlyRecipientsView   = errors.New("only recipients can view claimed donations")
	ErrClaimNotFound        = errors.New("claim not found")
	ErrClaimNotPending      = errors.New("claim is no longer pending")
	ErrNotClaimOwner        = errors.New("not authorized to modify this claim")
)

// InsufficientQuantityError carries the remaining count for the client.
type InsufficientQuantityError struct {
	Remaining int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("Only %d items are available", e.Remaining)
}

type (
	DonationRequest struct {
		Title       string                `json:"title" form:"title" validate:"required,max=200"`
		Description string                `json:"description" form:"description" validate:"omitempty"`
		Quantity    int                   `json:"quantity" form:"quantity" validate:"required,min=1"`
		ExpiryDate  string                `json:"expiry_date" form:"expiry_date" validate:"required"`
		Category    string                `json:"category" form:"category" validate:"omitempty,oneof=cooked packaged raw other"`
		Location    map[string]any        `json:"location" form:"-" validate:"omitempty"`
		Image       *multipart.FileHeader `json:"-" form:"-"`
	}

	ClaimRequest struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}

	Donation struct {
		ID                string         `json:"id"`
		Donor             *User          `json:"donor,omitempty"`
		Title             string         `json:"title"`
		Description       string         `json:"description"`
		Quantity          int            `json:"quantity"`
		QuantityTaken     int            `json:"quantity_taken"`
		RemainingQuantity int            `json:"remaining_quantity"`
		ExpiryDate        time.Time      `json:"expiry_date"`
		Category          string         `json:"category"`
		Location          map[string]any `json:"location,omitempty"`
		ImageURL          string         `json:"image_url,omitempty"`
		Status            string         `json:"status"`
		StatusDisplay     string         `json:"status_display"`
		IsAvailable       bool           `json:"is_available"`
		Claims            []*Claim       `json:"claims,omitempty"`
		CreatedAt         time.Time      `json:"created_at"`
	}

	Claim struct {
		ID            string    `json:"id"`
		DonationID    string    `json:"donation_id"`
		Recipient     *User     `json:"recipient,omitempty"`
		Quantity      int       `json:"quantity"`
		Status        string    `json:"status"`
		StatusDisplay string    `json:"status_display"`
		CreatedAt     time.Time `json:"created_at"`
	}

	ClaimResponse struct {
		Status            string `json:"status"`
		RemainingQuantity int    `json:"remaining_quantity"`
		Claim             *Claim `json:"claim"`
	}
)
