package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"
	"generosity-backend/internal/utils/mailing"
	"generosity-backend/pkg/feedback"
	"generosity-backend/pkg/warning"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultWarningMessage = "Your recent donations have received poor feedback. Please review the quality of your listings."

type (
	AdminService interface {
		GetBadDonors(ctx context.Context, req domain.BadDonorsRequest) (*domain.BadDonorsResponse, error)
		ApplyDonorAction(ctx context.Context, donorID string, action domain.DonorAction, message string) error
		GetDonorWarnings(ctx context.Context, donorID string) ([]*domain.Warning, error)
	}

	adminService struct {
		adminRepository   AdminRepository
		warningRepository warning.WarningRepository
	}
)

func NewAdminService(adminRepository AdminRepository, warningRepository warning.WarningRepository) AdminService {
	return &adminService{
		adminRepository:   adminRepository,
		warningRepository: warningRepository,
	}
}

func (s *adminService) GetBadDonors(ctx context.Context, req domain.BadDonorsRequest) (*domain.BadDonorsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}
	if req.MinFeedback < 1 {
		req.MinFeedback = 3
	}
	if req.MaxAvgRating <= 0 {
		req.MaxAvgRating = 2.5
	}
	if req.SortBy != "feedback" {
		req.SortBy = "rating"
	}

	rows, count, err := s.adminRepository.GetBadDonors(ctx, req, feedback.PenaltyWindowDays*24*time.Hour)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.BadDonor, 0, len(rows))
	for _, row := range rows {
		results = append(results, &domain.BadDonor{
			ID:            row.ID,
			Username:      row.Username,
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			Email:         row.Email,
			DonationCount: row.DonationCount,
			AverageRating: row.AverageRating,
			FeedbackCount: row.FeedbackCount,
			WarningCount:  row.WarningCount,
			PenaltyScore:  row.PenaltyScore,
			IsBanned:      row.IsBanned,
		})
	}

	return &domain.BadDonorsResponse{Count: count, Results: results}, nil
}

func (s *adminService) ApplyDonorAction(ctx context.Context, donorID string, action domain.DonorAction, message string) error {
	donor, err := s.adminRepository.GetDonorByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonorNotFound
		}
		return err
	}

	switch action {
	case domain.DonorActionWarn:
		return s.warnDonor(ctx, donor, message)
	case domain.DonorActionBan:
		return s.adminRepository.SetDonorBanned(ctx, donor.ID.String(), true)
	case domain.DonorActionUnban:
		return s.adminRepository.SetDonorBanned(ctx, donor.ID.String(), false)
	default:
		_, err := domain.ParseDonorAction(string(action))
		return err
	}
}

func (s *adminService) warnDonor(ctx context.Context, donor *entities.User, message string) error {
	if message == "" {
		message = defaultWarningMessage
	}

	if err := s.warningRepository.CreateWarning(ctx, &entities.Warning{
		ID:      uuid.New(),
		UserID:  donor.ID,
		Message: message,
	}); err != nil {
		return err
	}

	if err := s.adminRepository.IncrementWarningCount(ctx, donor.ID.String()); err != nil {
		return err
	}

	// Email delivery is best effort; the warning record is the source of truth.
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>You have received a warning from the moderation team:</p><p>%s</p>",
		donor.FullName(), message,
	)
	if err := mailing.SendMail(donor.Email, "Account Warning", body); err != nil {
		log.Printf("error sending warning email to %s: %v", donor.Email, err)
	}

	return nil
}

func (s *adminService) GetDonorWarnings(ctx context.Context, donorID string) ([]*domain.Warning, error) {
	if _, err := s.adminRepository.GetDonorByID(ctx, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonorNotFound
		}
		return nil, err
	}

	warnings, err := s.warningRepository.GetUserWarnings(ctx, donorID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Warning, 0, len(warnings))
	for _, w := range warnings {
		result = append(result, &domain.Warning{
			ID:        w.ID.String(),
			Message:   w.Message,
			IsRead:    w.IsRead,
			CreatedAt: w.CreatedAt,
		})
	}
	return result, nil
}
