package donation

import (
	"context"
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		GetDonorDonations(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error)
		GetAvailableDonations(ctx context.Context, page, limit int) ([]*entities.Donation, int64, error)
		UpdateDonationStatus(ctx context.Context, id string, status string) error

		ClaimDonation(ctx context.Context, donationID, recipientID uuid.UUID, quantity int) (*entities.Donation, *entities.DonationClaim, error)
		GetClaimByID(ctx context.Context, id string) (*entities.DonationClaim, error)
		GetRecipientClaims(ctx context.Context, recipientID string) ([]*entities.DonationClaim, error)
		CollectClaim(ctx context.Context, claimID uuid.UUID) error
		CancelClaim(ctx context.Context, claimID uuid.UUID) (*entities.Donation, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Claims").
		Preload("Claims.Recipient").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetDonorDonations(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ?", donorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Claims").
		Preload("Claims.Recipient").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) GetAvailableDonations(ctx context.Context, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit
	now := time.Now()

	base := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("status = ? AND quantity_taken < quantity AND expiry_date > ?", entities.DonationStatusAvailable, now)

	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("status = ? AND quantity_taken < quantity AND expiry_date > ?", entities.DonationStatusAvailable, now).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) UpdateDonationStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ClaimDonation runs the whole read-check-write sequence inside one
// transaction holding a row lock on the donation, so two concurrent claims
// against the same donation are serialized and the second sees the first's
// updated quantity_taken.
func (r *donationRepository) ClaimDonation(ctx context.Context, donationID, recipientID uuid.UUID, quantity int) (*entities.Donation, *entities.DonationClaim, error) {
	var donation entities.Donation
	var claim *entities.DonationClaim

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", donationID).
			First(&donation).Error; err != nil {
			return err
		}

		var pending int64
		if err := tx.
			Model(&entities.DonationClaim{}).
			Where("donation_id = ? AND recipient_id = ? AND status = ?",
				donationID, recipientID, entities.ClaimStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}

		if err := ValidateClaim(&donation, pending > 0, quantity, time.Now()); err != nil {
			return err
		}

		claim = &entities.DonationClaim{
			ID:          uuid.New(),
			DonationID:  donationID,
			RecipientID: recipientID,
			Quantity:    quantity,
			Status:      entities.ClaimStatusPending,
		}
		if err := tx.Create(claim).Error; err != nil {
			return err
		}

		ApplyClaim(&donation, quantity)
		return tx.
			Model(&entities.Donation{}).
			Where("id = ?", donation.ID).
			Updates(map[string]interface{}{
				"quantity_taken": donation.QuantityTaken,
				"status":         donation.Status,
			}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &donation, claim, nil
}

func (r *donationRepository) GetClaimByID(ctx context.Context, id string) (*entities.DonationClaim, error) {
	var claim entities.DonationClaim
	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Recipient").
		Where("id = ?", id).
		First(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *donationRepository) GetRecipientClaims(ctx context.Context, recipientID string) ([]*entities.DonationClaim, error) {
	var claims []*entities.DonationClaim
	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Donation.Donor").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

// CollectClaim transitions pending -> collected. The status predicate makes
// the transition atomic: a claim that already left pending is not collected
// twice, whatever the caller read earlier.
func (r *donationRepository) CollectClaim(ctx context.Context, claimID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entities.DonationClaim{}).
		Where("id = ? AND status = ?", claimID, entities.ClaimStatusPending).
		Update("status", entities.ClaimStatusCollected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrClaimNotPending
	}
	return nil
}

// CancelClaim releases the claimed quantity back to the donation under the
// same donation row lock the claim path takes.
func (r *donationRepository) CancelClaim(ctx context.Context, claimID uuid.UUID) (*entities.Donation, error) {
	var donation entities.Donation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var claim entities.DonationClaim
		if err := tx.Where("id = ?", claimID).First(&claim).Error; err != nil {
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", claim.DonationID).
			First(&donation).Error; err != nil {
			return err
		}

		// Re-verify pending under the donation lock. A concurrent cancel
		// or collect that won the race must not release quantity twice.
		res := tx.
			Model(&entities.DonationClaim{}).
			Where("id = ? AND status = ?", claimID, entities.ClaimStatusPending).
			Update("status", entities.ClaimStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrClaimNotPending
		}

		ReleaseClaim(&donation, claim.Quantity, time.Now())
		return tx.
			Model(&entities.Donation{}).
			Where("id = ?", donation.ID).
			Updates(map[string]interface{}{
				"quantity_taken": donation.QuantityTaken,
				"status":         donation.Status,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &donation, nil
}
