package crisisalert

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// DedupWindow suppresses a system alert when one with the same title
	// was created within it.
	DedupWindow = 24 * time.Hour

	// SystemAlertTTL is how long system-generated alerts stay before
	// auto-expiry.
	SystemAlertTTL = 7 * 24 * time.Hour

	// RefreshGuardWindow suppresses a refresh run when a system alert was
	// created within it, unless forced.
	RefreshGuardWindow = time.Hour
)

type (
	CrisisAlertService interface {
		GetAlertsForUser(ctx context.Context, userID string) ([]*domain.CrisisAlert, error)
		DismissAlert(ctx context.Context, alertID, userID string) error
		SendAlert(ctx context.Context, req domain.CrisisAlertRequest) (*domain.CrisisAlert, error)
		GetAlerts(ctx context.Context, page, limit int) ([]*domain.CrisisAlert, int64, error)
		UpdateAlert(ctx context.Context, alertID string, req domain.UpdateCrisisAlertRequest) (*domain.CrisisAlert, error)
		DeleteAlert(ctx context.Context, alertID string) error
		RefreshSystemAlerts(ctx context.Context, force bool) (*domain.RefreshSystemResponse, error)
	}

	crisisAlertService struct {
		alertRepository CrisisAlertRepository
		fetcher         DisasterFetcher
	}
)

func NewCrisisAlertService(alertRepository CrisisAlertRepository, fetcher DisasterFetcher) CrisisAlertService {
	return &crisisAlertService{
		alertRepository: alertRepository,
		fetcher:         fetcher,
	}
}

func jsonToMap(data datatypes.JSON) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func mapToJSON(m map[string]any) datatypes.JSON {
	if m == nil {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return raw
}

func toDomainAlert(a *entities.CrisisAlert) *domain.CrisisAlert {
	return &domain.CrisisAlert{
		ID:                a.ID.String(),
		Title:             a.Title,
		Message:           a.Message,
		AlertType:         a.AlertType,
		Severity:          a.Severity,
		Location:          jsonToMap(a.Location),
		SourceURL:         a.SourceURL,
		IsActive:          a.IsActive,
		IsSystemGenerated: a.IsSystemGenerated,
		ExpiresAt:         a.ExpiresAt,
		CreatedAt:         a.CreatedAt,
	}
}

func (s *crisisAlertService) GetAlertsForUser(ctx context.Context, userID string) ([]*domain.CrisisAlert, error) {
	alerts, err := s.alertRepository.GetActiveAlertsForUser(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CrisisAlert, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, toDomainAlert(a))
	}
	return result, nil
}

func (s *crisisAlertService) DismissAlert(ctx context.Context, alertID, userID string) error {
	alert, err := s.alertRepository.GetAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAlertNotFound
		}
		return err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.alertRepository.DismissAlertForUser(ctx, userUUID, alert.ID)
}

func (s *crisisAlertService) SendAlert(ctx context.Context, req domain.CrisisAlertRequest) (*domain.CrisisAlert, error) {
	if req.Title == "" || req.Message == "" {
		return nil, domain.ErrAlertTitleRequired
	}

	alertType := req.AlertType
	if alertType == "" {
		alertType = "other"
	}
	severity := req.Severity
	if severity == "" {
		severity = entities.AlertSeverityMedium
	}

	expiresAt := time.Now().Add(SystemAlertTTL)
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, err
		}
		expiresAt = parsed
	}

	alert := &entities.CrisisAlert{
		ID:        uuid.New(),
		Title:     req.Title,
		Message:   req.Message,
		AlertType: alertType,
		Severity:  severity,
		Location:  mapToJSON(req.Location),
		IsActive:  true,
		ExpiresAt: expiresAt,
	}

	if err := s.alertRepository.CreateAlert(ctx, alert); err != nil {
		return nil, err
	}

	return toDomainAlert(alert), nil
}

func (s *crisisAlertService) GetAlerts(ctx context.Context, page, limit int) ([]*domain.CrisisAlert, int64, error) {
	alerts, count, err := s.alertRepository.GetAlerts(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.CrisisAlert, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, toDomainAlert(a))
	}
	return result, count, nil
}

func (s *crisisAlertService) UpdateAlert(ctx context.Context, alertID string, req domain.UpdateCrisisAlertRequest) (*domain.CrisisAlert, error) {
	alert, err := s.alertRepository.GetAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		alert.Title = req.Title
	}
	if req.Message != "" {
		alert.Message = req.Message
	}
	if req.Severity != "" {
		alert.Severity = req.Severity
	}
	if req.IsActive != nil {
		alert.IsActive = *req.IsActive
	}

	if err := s.alertRepository.UpdateAlert(ctx, alert); err != nil {
		return nil, err
	}

	return toDomainAlert(alert), nil
}

func (s *crisisAlertService) DeleteAlert(ctx context.Context, alertID string) error {
	if _, err := s.alertRepository.GetAlertByID(ctx, alertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAlertNotFound
		}
		return err
	}
	return s.alertRepository.DeleteAlert(ctx, alertID)
}

// RefreshSystemAlerts fetches external disaster data and persists alerts
// that are new within the dedup window. Idempotent per run: rerunning
// within the window creates nothing.
func (s *crisisAlertService) RefreshSystemAlerts(ctx context.Context, force bool) (*domain.RefreshSystemResponse, error) {
	now := time.Now()

	if !force {
		recent, err := s.alertRepository.CountSystemAlertsSince(ctx, now.Add(-RefreshGuardWindow))
		if err != nil {
			return nil, err
		}
		if recent > 0 {
			return &domain.RefreshSystemResponse{Suppressed: true}, nil
		}
	}

	var created []string
	for _, data := range s.fetcher.FetchAll(ctx) {
		exists, err := s.alertRepository.HasAlertWithTitleSince(ctx, data.Title, now.Add(-DedupWindow))
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		alert := &entities.CrisisAlert{
			ID:                uuid.New(),
			Title:             data.Title,
			Message:           data.Message,
			AlertType:         data.AlertType,
			Severity:          data.Severity,
			Location:          mapToJSON(data.Location),
			SourceURL:         data.SourceURL,
			IsActive:          true,
			IsSystemGenerated: true,
			ExpiresAt:         now.Add(SystemAlertTTL),
		}
		if err := s.alertRepository.CreateAlert(ctx, alert); err != nil {
			return nil, err
		}
		created = append(created, alert.Title)
		log.Printf("created system alert: %s", alert.Title)
	}

	return &domain.RefreshSystemResponse{
		CreatedCount: len(created),
		Titles:       created,
	}, nil
}
