package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateFeedback = "feedback submitted successfully"
	MessageSuccessGetFeedbacks   = "feedbacks retrieved successfully"

	MessageFailedCreateFeedback = "failed to submit feedback"
	MessageFailedGetFeedbacks   = "failed to retrieve feedbacks"

	ErrFeedbackAlreadyExists = errors.New("feedback already submitted for this donation")
	ErrRatingOutOfRange      = errors.New("rating must be between 1 and 5")
	ErrOnlyRecipientsRate    = errors.New("only recipients can submit feedback")
)

type (
	FeedbackRequest struct {
		DonationID string `json:"donation" validate:"required,uuid"`
		Rating     int    `json:"rating" validate:"required,min=1,max=5"`
		Comment    string `json:"comment" validate:"omitempty"`
	}

	Feedback struct {
		ID            string    `json:"id"`
		DonationID    string    `json:"donation_id"`
		RecipientName string    `json:"recipient_name"`
		Rating        int       `json:"rating"`
		Comment       string    `json:"comment"`
		CreatedAt     time.Time `json:"created_at"`
	}
)
