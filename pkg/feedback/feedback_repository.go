package feedback

import (
	"context"
	"time"

	"generosity-backend/entities"

	"gorm.io/gorm"
)

type (
	FeedbackRepository interface {
		CreateFeedback(ctx context.Context, feedback *entities.DonationFeedback) error
		GetFeedback(ctx context.Context, donationID, recipientID string) (*entities.DonationFeedback, error)
		GetDonorFeedbacks(ctx context.Context, donorID string) ([]*entities.DonationFeedback, error)
		GetDonorAverageRatingSince(ctx context.Context, donorID string, since time.Time) (float64, int64, error)
	}

	feedbackRepository struct {
		db *gorm.DB
	}
)

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) CreateFeedback(ctx context.Context, feedback *entities.DonationFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) GetFeedback(ctx context.Context, donationID, recipientID string) (*entities.DonationFeedback, error) {
	var feedback entities.DonationFeedback
	if err := r.db.WithContext(ctx).
		Where("donation_id = ? AND recipient_id = ?", donationID, recipientID).
		First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) GetDonorFeedbacks(ctx context.Context, donorID string) ([]*entities.DonationFeedback, error) {
	var feedbacks []*entities.DonationFeedback
	if err := r.db.WithContext(ctx).
		Preload("Recipient").
		Joins("JOIN donations ON donations.id = donation_feedbacks.donation_id").
		Where("donations.donor_id = ?", donorID).
		Order("donation_feedbacks.created_at DESC").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// GetDonorAverageRatingSince aggregates feedback on any donation owned by
// the donor created at or after the cutoff. The count is returned so the
// caller can skip recomputation on an empty window.
func (r *feedbackRepository) GetDonorAverageRatingSince(ctx context.Context, donorID string, since time.Time) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.DonationFeedback{}).
		Select("COALESCE(AVG(donation_feedbacks.rating), 0) as avg, COUNT(*) as count").
		Joins("JOIN donations ON donations.id = donation_feedbacks.donation_id").
		Where("donations.donor_id = ? AND donation_feedbacks.created_at >= ?", donorID, since).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}
