package donation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"generosity-backend/domain"
	"generosity-backend/entities"
	"generosity-backend/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.DonationRequest, donorID string) (*domain.Donation, error)
		GetDonations(ctx context.Context, userID, role string, page, limit int) ([]*domain.Donation, int64, error)
		GetPublicDonations(ctx context.Context, page, limit int) ([]*domain.Donation, int64, error)
		GetDonationByID(ctx context.Context, id, userID, role string) (*domain.Donation, error)
		ClaimDonation(ctx context.Context, donationID, userID, role string, req domain.ClaimRequest) (*domain.ClaimResponse, error)
		CancelDonation(ctx context.Context, donationID, userID string) error
		GetClaimedDonations(ctx context.Context, userID, role string) ([]*domain.Donation, error)
		CollectClaim(ctx context.Context, claimID, userID string) (*domain.Claim, error)
		CancelClaim(ctx context.Context, claimID, userID string) (*domain.Claim, error)
	}

	donationService struct {
		donationRepository DonationRepository
		s3                 storage.AwsS3
	}
)

func NewDonationService(donationRepository DonationRepository, s3 storage.AwsS3) DonationService {
	return &donationService{
		donationRepository: donationRepository,
		s3:                 s3,
	}
}

var statusDisplay = map[string]string{
	entities.DonationStatusAvailable: "Available",
	entities.DonationStatusClaimed:   "Claimed",
	entities.DonationStatusExpired:   "Fully Claimed",
	entities.DonationStatusCancelled: "Cancelled",

	entities.ClaimStatusPending:   "Pending",
	entities.ClaimStatusCollected: "Collected",
}

func displayStatus(status string) string {
	if d, ok := statusDisplay[status]; ok {
		return d
	}
	return status
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

func toDomainClaim(c *entities.DonationClaim) *domain.Claim {
	claim := &domain.Claim{
		ID:            c.ID.String(),
		DonationID:    c.DonationID.String(),
		Quantity:      c.Quantity,
		Status:        c.Status,
		StatusDisplay: displayStatus(c.Status),
		CreatedAt:     c.CreatedAt,
	}
	if c.Recipient != nil {
		claim.Recipient = &domain.User{
			ID:        c.Recipient.ID.String(),
			Username:  c.Recipient.Username,
			FirstName: c.Recipient.FirstName,
			LastName:  c.Recipient.LastName,
			Role:      c.Recipient.Role,
		}
	}
	return claim
}

func toDomainDonation(d *entities.Donation, now time.Time) *domain.Donation {
	result := &domain.Donation{
		ID:                d.ID.String(),
		Title:             d.Title,
		Description:       d.Description,
		Quantity:          d.Quantity,
		QuantityTaken:     d.QuantityTaken,
		RemainingQuantity: d.RemainingQuantity(),
		ExpiryDate:        d.ExpiryDate,
		Category:          d.Category,
		Location:          jsonToMap(d.Location),
		ImageURL:          d.ImageURL,
		Status:            d.Status,
		StatusDisplay:     displayStatus(d.Status),
		IsAvailable:       d.IsAvailable(now),
		CreatedAt:         d.CreatedAt,
	}
	if d.Donor != nil {
		result.Donor = &domain.User{
			ID:           d.Donor.ID.String(),
			Username:     d.Donor.Username,
			FirstName:    d.Donor.FirstName,
			LastName:     d.Donor.LastName,
			Role:         d.Donor.Role,
			PenaltyScore: d.Donor.PenaltyScore,
		}
	}
	for _, c := range d.Claims {
		result.Claims = append(result.Claims, toDomainClaim(c))
	}
	return result
}

func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.DonationRequest, donorID string) (*domain.Donation, error) {
	donorUUID, err := uuid.Parse(donorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = "other"
	}

	var location datatypes.JSON
	if req.Location != nil {
		raw, err := json.Marshal(req.Location)
		if err != nil {
			return nil, err
		}
		location = raw
	}

	donationID := uuid.New()

	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("donation-%s", donationID.String()),
			req.Image,
			"donations",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	donation := &entities.Donation{
		ID:          donationID,
		DonorID:     donorUUID,
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		ExpiryDate:  expiry,
		Category:    category,
		Location:    location,
		ImageURL:    imageURL,
		Status:      entities.DonationStatusAvailable,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	return toDomainDonation(donation, time.Now()), nil
}

func (s *donationService) GetDonations(ctx context.Context, userID, role string, page, limit int) ([]*domain.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	var err error

	if role == domain.RoleDonor {
		donations, count, err = s.donationRepository.GetDonorDonations(ctx, userID, page, limit)
	} else {
		donations, count, err = s.donationRepository.GetAvailableDonations(ctx, page, limit)
	}
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, toDomainDonation(d, now))
	}
	return result, count, nil
}

func (s *donationService) GetPublicDonations(ctx context.Context, page, limit int) ([]*domain.Donation, int64, error) {
	donations, count, err := s.donationRepository.GetAvailableDonations(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, toDomainDonation(d, now))
	}
	return result, count, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id, userID, role string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	now := time.Now()
	// Non-owners only see donations that are currently claimable.
	if donation.DonorID.String() != userID && role != domain.RoleAdmin && !donation.IsAvailable(now) {
		return nil, domain.ErrDonationNotFound
	}

	return toDomainDonation(donation, now), nil
}

func (s *donationService) ClaimDonation(ctx context.Context, donationID, userID, role string, req domain.ClaimRequest) (*domain.ClaimResponse, error) {
	if role != domain.RoleRecipient {
		return nil, domain.ErrOnlyRecipientsClaim
	}

	donationUUID, err := uuid.Parse(donationID)
	if err != nil {
		return nil, domain.ErrDonationNotFound
	}
	recipientUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	donation, claim, err := s.donationRepository.ClaimDonation(ctx, donationUUID, recipientUUID, req.Quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	return &domain.ClaimResponse{
		Status:            "claimed",
		RemainingQuantity: donation.RemainingQuantity(),
		Claim:             toDomainClaim(claim),
	}, nil
}

func (s *donationService) CancelDonation(ctx context.Context, donationID, userID string) error {
	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}

	if donation.DonorID.String() != userID {
		return domain.ErrNotDonationOwner
	}
	if donation.Status != entities.DonationStatusAvailable {
		return domain.ErrCancelNotAllowed
	}

	return s.donationRepository.UpdateDonationStatus(ctx, donationID, entities.DonationStatusCancelled)
}

func (s *donationService) GetClaimedDonations(ctx context.Context, userID, role string) ([]*domain.Donation, error) {
	if role != domain.RoleRecipient {
		return nil, domain.ErrOnlyRecipientsView
	}

	claims, err := s.donationRepository.GetRecipientClaims(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make([]*domain.Donation, 0, len(claims))
	for _, c := range claims {
		if c.Donation == nil {
			continue
		}
		result = append(result, toDomainDonation(c.Donation, now))
	}
	return result, nil
}

func (s *donationService) CollectClaim(ctx context.Context, claimID, userID string) (*domain.Claim, error) {
	claim, err := s.donationRepository.GetClaimByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}

	if claim.Donation == nil || claim.Donation.DonorID.String() != userID {
		return nil, domain.ErrNotClaimOwner
	}
	if claim.Status != entities.ClaimStatusPending {
		return nil, domain.ErrClaimNotPending
	}

	if err := s.donationRepository.CollectClaim(ctx, claim.ID); err != nil {
		return nil, err
	}

	claim.Status = entities.ClaimStatusCollected
	return toDomainClaim(claim), nil
}

func (s *donationService) CancelClaim(ctx context.Context, claimID, userID string) (*domain.Claim, error) {
	claim, err := s.donationRepository.GetClaimByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}

	if claim.RecipientID.String() != userID {
		return nil, domain.ErrNotClaimOwner
	}
	if claim.Status != entities.ClaimStatusPending {
		return nil, domain.ErrClaimNotPending
	}

	if _, err := s.donationRepository.CancelClaim(ctx, claim.ID); err != nil {
		return nil, err
	}

	claim.Status = entities.ClaimStatusCancelled
	return toDomainClaim(claim), nil
}
