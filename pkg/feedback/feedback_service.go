package feedback

import (
	"context"
	"errors"
	"log"
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"
	donationpkg "generosity-backend/pkg/donation"
	"generosity-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FeedbackService interface {
		CreateFeedback(ctx context.Context, req domain.FeedbackRequest, userID, role string) (*domain.Feedback, error)
		GetDonorFeedbacks(ctx context.Context, donorID string) ([]*domain.Feedback, error)
	}

	feedbackService struct {
		feedbackRepository FeedbackRepository
		donationRepository donationpkg.DonationRepository
		userRepository     user.UserRepository
	}
)

func NewFeedbackService(
	feedbackRepository FeedbackRepository,
	donationRepository donationpkg.DonationRepository,
	userRepository user.UserRepository,
) FeedbackService {
	return &feedbackService{
		feedbackRepository: feedbackRepository,
		donationRepository: donationRepository,
		userRepository:     userRepository,
	}
}

func toDomainFeedback(f *entities.DonationFeedback) *domain.Feedback {
	result := &domain.Feedback{
		ID:         f.ID.String(),
		DonationID: f.DonationID.String(),
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  f.CreatedAt,
	}
	if f.Recipient != nil {
		result.RecipientName = f.Recipient.FullName()
	}
	return result
}

func (s *feedbackService) CreateFeedback(ctx context.Context, req domain.FeedbackRequest, userID, role string) (*domain.Feedback, error) {
	if role != domain.RoleRecipient {
		return nil, domain.ErrOnlyRecipientsRate
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.ErrRatingOutOfRange
	}

	donation, err := s.donationRepository.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if _, err := s.feedbackRepository.GetFeedback(ctx, req.DonationID, userID); err == nil {
		return nil, domain.ErrFeedbackAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	recipientUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	feedback := &entities.DonationFeedback{
		ID:          uuid.New(),
		DonationID:  donation.ID,
		RecipientID: recipientUUID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	}

	if err := s.feedbackRepository.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	// Penalty recomputation is deliberately outside the insert transaction.
	// A failure here leaves a stale-but-valid score and never rolls back
	// the feedback itself.
	if err := s.recomputeDonorPenalty(ctx, donation.DonorID.String()); err != nil {
		log.Printf("failed to recompute penalty for donor %s: %v", donation.DonorID, err)
	}

	return toDomainFeedback(feedback), nil
}

// recomputeDonorPenalty re-derives the donor's penalty score from all
// feedback on their donations within the trailing window. An empty window
// skips the write, retaining the previous score.
func (s *feedbackService) recomputeDonorPenalty(ctx context.Context, donorID string) error {
	since := time.Now().AddDate(0, 0, -PenaltyWindowDays)
	avg, count, err := s.feedbackRepository.GetDonorAverageRatingSince(ctx, donorID, since)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	return s.userRepository.UpdatePenaltyScore(ctx, donorID, PenaltyFromAverage(avg))
}

func (s *feedbackService) GetDonorFeedbacks(ctx context.Context, donorID string) ([]*domain.Feedback, error) {
	feedbacks, err := s.feedbackRepository.GetDonorFeedbacks(ctx, donorID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Feedback, 0, len(feedbacks))
	for _, f := range feedbacks {
		result = append(result, toDomainFeedback(f))
	}
	return result, nil
}
