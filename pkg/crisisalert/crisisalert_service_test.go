package crisisalert

import (
	"context"
	"testing"
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAlertRepository struct {
	alerts     []*entities.CrisisAlert
	dismissals map[string]map[string]bool // userID -> alertID
}

func newFakeAlertRepository() *fakeAlertRepository {
	return &fakeAlertRepository{dismissals: map[string]map[string]bool{}}
}

func (f *fakeAlertRepository) CreateAlert(ctx context.Context, alert *entities.CrisisAlert) error {
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAlertRepository) GetAlertByID(ctx context.Context, id string) (*entities.CrisisAlert, error) {
	for _, a := range f.alerts {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAlertRepository) GetAlerts(ctx context.Context, page, limit int) ([]*entities.CrisisAlert, int64, error) {
	return f.alerts, int64(len(f.alerts)), nil
}

func (f *fakeAlertRepository) GetActiveAlertsForUser(ctx context.Context, userID string, now time.Time) ([]*entities.CrisisAlert, error) {
	var result []*entities.CrisisAlert
	for _, a := range f.alerts {
		if !a.IsActive || !a.ExpiresAt.After(now) {
			continue
		}
		if f.dismissals[userID][a.ID.String()] {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAlertRepository) UpdateAlert(ctx context.Context, alert *entities.CrisisAlert) error {
	return nil
}

func (f *fakeAlertRepository) DeleteAlert(ctx context.Context, id string) error {
	return nil
}

func (f *fakeAlertRepository) DismissAlertForUser(ctx context.Context, userID, alertID uuid.UUID) error {
	if f.dismissals[userID.String()] == nil {
		f.dismissals[userID.String()] = map[string]bool{}
	}
	f.dismissals[userID.String()][alertID.String()] = true
	return nil
}

func (f *fakeAlertRepository) HasAlertWithTitleSince(ctx context.Context, title string, since time.Time) (bool, error) {
	for _, a := range f.alerts {
		if a.Title == title && !a.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAlertRepository) CountSystemAlertsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	for _, a := range f.alerts {
		if a.IsSystemGenerated && !a.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type staticFetcher struct {
	data []AlertData
}

func (s *staticFetcher) FetchAll(ctx context.Context) []AlertData {
	return s.data
}

func TestRefreshSystemAlerts(t *testing.T) {
	data := []AlertData{
		{Title: "Earthquake Alert - Magnitude 5.2", Message: "m", AlertType: "natural_disaster", Severity: "medium"},
		{Title: "Severe Weather Warning", Message: "m", AlertType: "weather_alert", Severity: "high"},
	}

	t.Run("creates system alerts", func(t *testing.T) {
		repo := newFakeAlertRepository()
		service := NewCrisisAlertService(repo, &staticFetcher{data: data})

		result, err := service.RefreshSystemAlerts(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, 2, result.CreatedCount)
		assert.False(t, result.Suppressed)
		require.Len(t, repo.alerts, 2)
		for _, a := range repo.alerts {
			assert.True(t, a.IsSystemGenerated)
			assert.True(t, a.IsActive)
			assert.WithinDuration(t, time.Now().Add(SystemAlertTTL), a.ExpiresAt, time.Minute)
		}
	})

	t.Run("rerun within guard window is suppressed", func(t *testing.T) {
		repo := newFakeAlertRepository()
		service := NewCrisisAlertService(repo, &staticFetcher{data: data})

		_, err := service.RefreshSystemAlerts(context.Background(), false)
		require.NoError(t, err)

		result, err := service.RefreshSystemAlerts(context.Background(), false)
		require.NoError(t, err)
		assert.True(t, result.Suppressed)
		assert.Len(t, repo.alerts, 2)
	})

	t.Run("force bypasses the guard but not dedup", func(t *testing.T) {
		repo := newFakeAlertRepository()
		service := NewCrisisAlertService(repo, &staticFetcher{data: data})

		_, err := service.RefreshSystemAlerts(context.Background(), false)
		require.NoError(t, err)

		// Same titles within the dedup window create nothing new.
		result, err := service.RefreshSystemAlerts(context.Background(), true)
		require.NoError(t, err)
		assert.False(t, result.Suppressed)
		assert.Equal(t, 0, result.CreatedCount)
		assert.Len(t, repo.alerts, 2)
	})

	t.Run("stale duplicate titles are recreated", func(t *testing.T) {
		repo := newFakeAlertRepository()
		repo.alerts = append(repo.alerts, &entities.CrisisAlert{
			ID:                uuid.New(),
			Title:             "Severe Weather Warning",
			IsSystemGenerated: true,
			Timestamp:         entities.Timestamp{CreatedAt: time.Now().Add(-2 * DedupWindow)},
		})
		service := NewCrisisAlertService(repo, &staticFetcher{data: data})

		result, err := service.RefreshSystemAlerts(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, 2, result.CreatedCount)
	})
}

func TestDismissAlert(t *testing.T) {
	repo := newFakeAlertRepository()
	alert := &entities.CrisisAlert{
		ID:        uuid.New(),
		Title:     "Flood Warning",
		IsActive:  true,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repo.CreateAlert(context.Background(), alert))
	service := NewCrisisAlertService(repo, &staticFetcher{})

	userID := uuid.NewString()
	otherID := uuid.NewString()

	require.NoError(t, service.DismissAlert(context.Background(), alert.ID.String(), userID))

	// Dismissal only hides the alert from the dismissing user.
	mine, err := service.GetAlertsForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := service.GetAlertsForUser(context.Background(), otherID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	// Dismissing twice is a no-op.
	assert.NoError(t, service.DismissAlert(context.Background(), alert.ID.String(), userID))

	t.Run("unknown alert", func(t *testing.T) {
		err := service.DismissAlert(context.Background(), uuid.NewString(), userID)
		assert.ErrorIs(t, err, domain.ErrAlertNotFound)
	})
}

func TestSendAlert(t *testing.T) {
	repo := newFakeAlertRepository()
	service := NewCrisisAlertService(repo, &staticFetcher{})

	t.Run("defaults", func(t *testing.T) {
		result, err := service.SendAlert(context.Background(), domain.CrisisAlertRequest{
			Title:   "Evacuation Notice",
			Message: "Evacuate the riverside district",
		})
		require.NoError(t, err)

		assert.Equal(t, "other", result.AlertType)
		assert.Equal(t, entities.AlertSeverityMedium, result.Severity)
		assert.True(t, result.IsActive)
		assert.False(t, result.IsSystemGenerated)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := service.SendAlert(context.Background(), domain.CrisisAlertRequest{Message: "m"})
		assert.ErrorIs(t, err, domain.ErrAlertTitleRequired)
	})
}
