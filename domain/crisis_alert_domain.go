package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetAlerts     = "crisis alerts retrieved successfully"
	MessageSuccessSendAlert     = "crisis alert sent successfully"
	MessageSuccessUpdateAlert   = "crisis alert updated successfully"
	MessageSuccessDeleteAlert   = "crisis alert deleted successfully"
	MessageSuccessDismissAlert  = "crisis alert dismissed successfully"
	MessageSuccessRefreshSystem = "system alerts refreshed successfully"

	MessageFailedGetAlerts     = "failed to retrieve crisis alerts"
	MessageFailedSendAlert     = "failed to send crisis alert"
	MessageFailedUpdateAlert   = "failed to update crisis alert"
	MessageFailedDeleteAlert   = "failed to delete crisis alert"
	MessageFailedDismissAlert  = "failed to dismiss crisis alert"
	MessageFailedRefreshSystem = "failed to refresh system alerts"

	ErrAlertNotFound      = errors.New("crisis alert not found")
	ErrAlertTitleRequired = errors.New("title and message are required")
)

type (
	CrisisAlertRequest struct {
		Title     string         `json:"title" validate:"required,max=200"`
		Message   string         `json:"message" validate:"required"`
		AlertType string         `json:"alert_type" validate:"omitempty,oneof=natural_disaster weather_alert health_crisis emergency other"`
		Severity  string         `json:"severity" validate:"omitempty,oneof=low medium high critical"`
		Location  map[string]any `json:"location" validate:"omitempty"`
		ExpiresAt string         `json:"expires_at" validate:"omitempty"`
	}

	UpdateCrisisAlertRequest struct {
		Title    string `json:"title" validate:"omitempty,max=200"`
		Message  string `json:"message" validate:"omitempty"`
		Severity string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
		IsActive *bool  `json:"is_active" validate:"omitempty"`
	}

	CrisisAlert struct {
		ID                string         `json:"id"`
		Title             string         `json:"title"`
		Message           string         `json:"message"`
		AlertType         string         `json:"alert_type"`
		Severity          string         `json:"severity"`
		Location          map[string]any `json:"location,omitempty"`
		SourceURL         string         `json:"source_url,omitempty"`
		IsActive          bool           `json:"is_active"`
		IsSystemGenerated bool           `json:"is_system_generated"`
		ExpiresAt         time.Time      `json:"expires_at"`
		CreatedAt         time.Time      `json:"created_at"`
	}

	RefreshSystemResponse struct {
		CreatedCount int      `json:"created_count"`
		Titles       []string `json:"titles,omitempty"`
		Suppressed   bool     `json:"suppressed,omitempty"`
	}
)
