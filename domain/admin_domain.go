package domain

import (
	"errors"
	"fmt"
)

var (
	MessageSuccessGetBadDonors = "underperforming donors retrieved successfully"
	MessageSuccessDonorAction  = "donor action applied successfully"

	MessageFailedGetBadDonors = "failed to retrieve underperforming donors"
	MessageFailedDonorAction  = "failed to apply donor action"

	ErrDonorNotFound = errors.New("donor not found")
)

// DonorAction is a closed set; ParseDonorAction is the only constructor.
type DonorAction string

const (
	DonorActionWarn  DonorAction = "warn"
	DonorActionBan   DonorAction = "ban"
	DonorActionUnban DonorAction = "unban"
)

func ParseDonorAction(s string) (DonorAction, error) {
	switch DonorAction(s) {
	case DonorActionWarn, DonorActionBan, DonorActionUnban:
		return DonorAction(s), nil
	default:
		return "", fmt.Errorf("invalid donor action %q", s)
	}
}

type (
	BadDonorsRequest struct {
		Page         int     `json:"page"`
		PageSize     int     `json:"page_size"`
		MinFeedback  int     `json:"min_feedback"`
		MaxAvgRating float64 `json:"max_avg_rating"`
		SortBy       string  `json:"sort_by"` // rating or feedback
		Search       string  `json:"search"`
	}

	BadDonor struct {
		ID            string  `json:"id"`
		Username      string  `json:"username"`
		FirstName     string  `json:"first_name"`
		LastName      string  `json:"last_name"`
		Email         string  `json:"email"`
		DonationCount int     `json:"donation_count"`
		AverageRating float64 `json:"average_rating"`
		FeedbackCount int     `json:"feedback_count"`
		WarningCount  int     `json:"warning_count"`
		PenaltyScore  float64 `json:"penalty_score"`
		IsBanned      bool    `json:"is_banned"`
	}

	BadDonorsResponse struct {
		Count   int64       `json:"count"`
		Results []*BadDonor `json:"results"`
	}

	WarnDonorRequest struct {
		Message string `json:"message" validate:"omitempty,max=500"`
	}
)
