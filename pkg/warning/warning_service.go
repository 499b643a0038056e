package warning

import (
	"context"
	"errors"

	"generosity-backend/domain"
	"generosity-backend/entities"

	"gorm.io/gorm"
)

type (
	WarningService interface {
		GetUserWarnings(ctx context.Context, userID string) ([]*domain.Warning, error)
		DismissWarning(ctx context.Context, warningID, userID string) error
	}

	warningService struct {
		warningRepository WarningRepository
	}
)

func NewWarningService(warningRepository WarningRepository) WarningService {
	return &warningService{warningRepository: warningRepository}
}

func toDomainWarning(w *entities.Warning) *domain.Warning {
	return &domain.Warning{
		ID:        w.ID.String(),
		Message:   w.Message,
		IsRead:    w.IsRead,
		CreatedAt: w.CreatedAt,
	}
}

func (s *warningService) GetUserWarnings(ctx context.Context, userID string) ([]*domain.Warning, error) {
	warnings, err := s.warningRepository.GetUserWarnings(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Warning, 0, len(warnings))
	for _, w := range warnings {
		result = append(result, toDomainWarning(w))
	}
	return result, nil
}

// DismissWarning flips the read flag false to true. The flip is one-way and
// dismissing an already-read warning is a no-op.
func (s *warningService) DismissWarning(ctx context.Context, warningID, userID string) error {
	warning, err := s.warningRepository.GetWarningByID(ctx, warningID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWarningNotFound
		}
		return err
	}

	// A user can only dismiss their own warnings; others look nonexistent.
	if warning.UserID.String() != userID {
		return domain.ErrWarningNotFound
	}
	if warning.IsRead {
		return nil
	}

	return s.warningRepository.MarkWarningRead(ctx, warningID)
}
