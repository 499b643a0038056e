package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetWarnings    = "warnings retrieved successfully"
	MessageSuccessDismissWarning = "warning dismissed successfully"

	MessageFailedGetWarnings    = "failed to retrieve warnings"
	MessageFailedDismissWarning = "failed to dismiss warning"

	ErrWarningNotFound = errors.New("warning not found")
)

type Warning struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"timestamp"`
}
