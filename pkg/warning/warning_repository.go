package warning

import (
	"context"

	"generosity-backend/entities"

	"gorm.io/gorm"
)

type (
	WarningRepository interface {
		CreateWarning(ctx context.Context, warning *entities.Warning) error
		GetUserWarnings(ctx context.Context, userID string) ([]*entities.Warning, error)
		GetWarningByID(ctx context.Context, id string) (*entities.Warning, error)
		MarkWarningRead(ctx context.Context, id string) error
	}

	warningRepository struct {
		db *gorm.DB
	}
)

func NewWarningRepository(db *gorm.DB) WarningRepository {
	return &warningRepository{db: db}
}

func (r *warningRepository) CreateWarning(ctx context.Context, warning *entities.Warning) error {
	return r.db.WithContext(ctx).Create(warning).Error
}

func (r *warningRepository) GetUserWarnings(ctx context.Context, userID string) ([]*entities.Warning, error) {
	var warnings []*entities.Warning
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&warnings).Error; err != nil {
		return nil, err
	}
	return warnings, nil
}

func (r *warningRepository) GetWarningByID(ctx context.Context, id string) (*entities.Warning, error) {
	var warning entities.Warning
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&warning).Error; err != nil {
		return nil, err
	}
	return &warning, nil
}

func (r *warningRepository) MarkWarningRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Warning{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
