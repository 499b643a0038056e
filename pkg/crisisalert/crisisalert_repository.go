package crisisalert

import (
	"context"
	"time"

	"generosity-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CrisisAlertRepository interface {
		CreateAlert(ctx context.Context, alert *entities.CrisisAlert) error
		GetAlertByID(ctx context.Context, id string) (*entities.CrisisAlert, error)
		GetAlerts(ctx context.Context, page, limit int) ([]*entities.CrisisAlert, int64, error)
		GetActiveAlertsForUser(ctx context.Context, userID string, now time.Time) ([]*entities.CrisisAlert, error)
		UpdateAlert(ctx context.Context, alert *entities.CrisisAlert) error
		DeleteAlert(ctx context.Context, id string) error

		DismissAlertForUser(ctx context.Context, userID, alertID uuid.UUID) error
		HasAlertWithTitleSince(ctx context.Context, title string, since time.Time) (bool, error)
		CountSystemAlertsSince(ctx context.Context, since time.Time) (int64, error)
	}

	crisisAlertRepository struct {
		db *gorm.DB
	}
)

func NewCrisisAlertRepository(db *gorm.DB) CrisisAlertRepository {
	return &crisisAlertRepository{db: db}
}

func (r *crisisAlertRepository) CreateAlert(ctx context.Context, alert *entities.CrisisAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *crisisAlertRepository) GetAlertByID(ctx context.Context, id string) (*entities.CrisisAlert, error) {
	var alert entities.CrisisAlert
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *crisisAlertRepository) GetAlerts(ctx context.Context, page, limit int) ([]*entities.CrisisAlert, int64, error) {
	var alerts []*entities.CrisisAlert
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.CrisisAlert{}).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, count, nil
}

// GetActiveAlertsForUser excludes alerts the user dismissed; dismissal is a
// per-user suppression, never a global state change.
func (r *crisisAlertRepository) GetActiveAlertsForUser(ctx context.Context, userID string, now time.Time) ([]*entities.CrisisAlert, error) {
	var alerts []*entities.CrisisAlert
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND expires_at > ?", true, now).
		Where("id NOT IN (?)",
			r.db.WithContext(ctx).Model(&entities.UserAlertDismiss{}).
				Select("alert_id").
				Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *crisisAlertRepository) UpdateAlert(ctx context.Context, alert *entities.CrisisAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *crisisAlertRepository) DeleteAlert(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.CrisisAlert{}).Error
}

// DismissAlertForUser is idempotent: the (user, alert) pair is unique, and a
// repeat dismiss resolves to ON CONFLICT DO NOTHING instead of an error.
func (r *crisisAlertRepository) DismissAlertForUser(ctx context.Context, userID, alertID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.UserAlertDismiss{
			ID:      uuid.New(),
			UserID:  userID,
			AlertID: alertID,
		}).Error
}

func (r *crisisAlertRepository) HasAlertWithTitleSince(ctx context.Context, title string, since time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.CrisisAlert{}).
		Where("title = ? AND created_at >= ?", title, since).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *crisisAlertRepository) CountSystemAlertsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.CrisisAlert{}).
		Where("is_system_generated = ? AND created_at >= ?", true, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
