package admin

import (
	"context"
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		GetBadDonors(ctx context.Context, req domain.BadDonorsRequest, window time.Duration) ([]*badDonorRow, int64, error)
		GetDonorByID(ctx context.Context, id string) (*entities.User, error)
		SetDonorBanned(ctx context.Context, id string, banned bool) error
		IncrementWarningCount(ctx context.Context, id string) error
	}

	adminRepository struct {
		db *gorm.DB
	}

	badDonorRow struct {
		ID            string
		Username      string
		FirstName     string
		LastName      string
		Email         string
		DonationCount int
		AverageRating float64
		FeedbackCount int
		WarningCount  int
		PenaltyScore  float64
		IsBanned      bool
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

const badDonorsBaseQuery = `
	SELECT users.id,
	       users.username,
	       users.first_name,
	       users.last_name,
	       users.email,
	       users.warning_count,
	       users.penalty_score,
	       users.is_banned,
	       COUNT(DISTINCT donations.id)         AS donation_count,
	       COUNT(donation_feedbacks.id)         AS feedback_count,
	       COALESCE(AVG(donation_feedbacks.rating), 0) AS average_rating
	FROM users
	JOIN donations ON donations.donor_id = users.id
	JOIN donation_feedbacks ON donation_feedbacks.donation_id = donations.id
	WHERE users.role = 'donor'
	  AND donation_feedbacks.created_at >= ?
	  AND (? = '' OR users.username ILIKE ? OR users.email ILIKE ? OR
	       users.first_name ILIKE ? OR users.last_name ILIKE ?)
	GROUP BY users.id, users.username, users.first_name, users.last_name,
	         users.email, users.warning_count, users.penalty_score, users.is_banned
	HAVING COUNT(donation_feedbacks.id) >= ?
	   AND COALESCE(AVG(donation_feedbacks.rating), 0) <= ?
`

// GetBadDonors aggregates feedback over the trailing window, matching the
// penalty-score evaluation scope.
func (r *adminRepository) GetBadDonors(ctx context.Context, req domain.BadDonorsRequest, window time.Duration) ([]*badDonorRow, int64, error) {
	since := time.Now().Add(-window)
	pattern := "%" + req.Search + "%"
	args := []interface{}{
		since,
		req.Search, pattern, pattern, pattern, pattern,
		req.MinFeedback, req.MaxAvgRating,
	}

	var count int64
	countQuery := "SELECT COUNT(*) FROM (" + badDonorsBaseQuery + ") AS bad_donors"
	if err := r.db.WithContext(ctx).Raw(countQuery, args...).Scan(&count).Error; err != nil {
		return nil, 0, err
	}

	order := "average_rating ASC"
	if req.SortBy == "feedback" {
		order = "feedback_count DESC"
	}

	offset := (req.Page - 1) * req.PageSize
	query := badDonorsBaseQuery + " ORDER BY " + order + " LIMIT ? OFFSET ?"
	args = append(args, req.PageSize, offset)

	var rows []*badDonorRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, count, nil
}

func (r *adminRepository) GetDonorByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, domain.RoleDonor).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminRepository) SetDonorBanned(ctx context.Context, id string, banned bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("is_banned", banned).Error
}

func (r *adminRepository) IncrementWarningCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("warning_count", gorm.Expr("warning_count + 1")).Error
}
