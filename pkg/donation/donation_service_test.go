package donation

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

type fakeDonationRepository struct {
	getDonationByID func(ctx context.Context, id string) (*entities.Donation, error)
	claimDonation   func(ctx context.Context, donationID, recipientID uuid.UUID, quantity int) (*entities.Donation, *entities.DonationClaim, error)
	getClaimByID    func(ctx context.Context, id string) (*entities.DonationClaim, error)
	updateStatus    func(ctx context.Context, id, status string) error
	collectClaim    func(ctx context.Context, claimID uuid.UUID) error
	cancelClaim     func(ctx context.Context, claimID uuid.UUID) (*entities.Donation, error)
}

func (f *fakeDonationRepository) CreateDonation(ctx context.Context, d *entities.Donation) error {
	return nil
}

func (f *fakeDonationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	return f.getDonationByID(ctx, id)
}

func (f *fakeDonationRepository) GetDonorDonations(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error) {
	return nil, 0, nil
}

func (f *fakeDonationRepository) GetAvailableDonations(ctx context.Context, page, limit int) ([]*entities.Donation, int64, error) {
	return nil, 0, nil
}

func (f *fakeDonationRepository) UpdateDonationStatus(ctx context.Context, id, status string) error {
	return f.updateStatus(ctx, id, status)
}

func (f *fakeDonationRepository) ClaimDonation(ctx context.Context, donationID, recipientID uuid.UUID, quantity int) (*entities.Donation, *entities.DonationClaim, error) {
	return f.claimDonation(ctx, donationID, recipientID, quantity)
}

func (f *fakeDonationRepository) GetClaimByID(ctx context.Context, id string) (*entities.DonationClaim, error) {
	return f.getClaimByID(ctx, id)
}

func (f *fakeDonationRepository) GetRecipientClaims(ctx context.Context, recipientID string) ([]*entities.DonationClaim, error) {
	return nil, nil
}

func (f *fakeDonationRepository) CollectClaim(ctx context.Context, claimID uuid.UUID) error {
	return f.collectClaim(ctx, claimID)
}

func (f *fakeDonationRepository) CancelClaim(ctx context.Context, claimID uuid.UUID) (*entities.Donation, error) {
	return f.cancelClaim(ctx, claimID)
}

func TestClaimDonationRoleGate(t *testing.T) {
	service := NewDonationService(&fakeDonationRepository{}, nil)

	_, err := service.ClaimDonation(context.Background(),
		uuid.NewString(), uuid.NewString(), domain.RoleDonor, domain.ClaimRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrOnlyRecipientsClaim)
}

func TestClaimDonationSuccess(t *testing.T) {
	donationID := uuid.New()
	recipientID := uuid.New()

	repo := &fakeDonationRepository{
		claimDonation: func(ctx context.Context, dID, rID uuid.UUID, quantity int) (*entities.Donation, *entities.DonationClaim, error) {
			assert.Equal(t, donationID, dID)
			assert.Equal(t, recipientID, rID)
			d := &entities.Donation{
				ID:            donationID,
				Quantity:      10,
				QuantityTaken: quantity,
				ExpiryDate:    time.Now().Add(time.Hour),
				Status:        entities.DonationStatusAvailable,
			}
			claim := &entities.DonationClaim{
				ID:          uuid.New(),
				DonationID:  donationID,
				RecipientID: recipientID,
				Quantity:    quantity,
				Status:      entities.ClaimStatusPending,
			}
			return d, claim, nil
		},
	}
	service := NewDonationService(repo, nil)

	result, err := service.ClaimDonation(context.Background(),
		donationID.String(), recipientID.String(), domain.RoleRecipient, domain.ClaimRequest{Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, "claimed", result.Status)
	assert.Equal(t, 7, result.RemainingQuantity)
	assert.Equal(t, "pending", result.Claim.Status)
	assert.Equal(t, "Pending", result.Claim.StatusDisplay)
}

func TestClaimDonationNotFound(t *testing.T) {
	repo := &fakeDonationRepository{
		claimDonation: func(ctx context.Context, dID, rID uuid.UUID, quantity int) (*entities.Donation, *entities.DonationClaim, error) {
			return nil, nil, gorm.ErrRecordNotFound
		},
	}
	service := NewDonationService(repo, nil)

	_, err := service.ClaimDonation(context.Background(),
		uuid.NewString(), uuid.NewString(), domain.RoleRecipient, domain.ClaimRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestGetDonationByIDVisibility(t *testing.T) {
	donorID := uuid.New()
	d := &entities.Donation{
		ID:         uuid.New(),
		DonorID:    donorID,
		Quantity:   5,
		ExpiryDate: time.Now().Add(-time.Hour), // no longer claimable
		Status:     entities.DonationStatusAvailable,
	}
	repo := &fakeDonationRepository{
		getDonationByID: func(ctx context.Context, id string) (*entities.Donation, error) {
			return d, nil
		},
	}
	service := NewDonationService(repo, nil)

	// The owner still sees it.
	owned, err := service.GetDonationByID(context.Background(), d.ID.String(), donorID.String(), domain.RoleDonor)
	require.NoError(t, err)
	assert.False(t, owned.IsAvailable)

	// Admins see everything.
	_, err = service.GetDonationByID(context.Background(), d.ID.String(), uuid.NewString(), domain.RoleAdmin)
	assert.NoError(t, err)

	// Everyone else gets a not-found, not a forbidden.
	_, err = service.GetDonationByID(context.Background(), d.ID.String(), uuid.NewString(), domain.RoleRecipient)
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestCancelDonation(t *testing.T) {
	donorID := uuid.New()
	d := &entities.Donation{
		ID:         uuid.New(),
		DonorID:    donorID,
		Quantity:   5,
		ExpiryDate: time.Now().Add(time.Hour),
		Status:     entities.DonationStatusAvailable,
	}

	var updatedStatus string
	repo := &fakeDonationRepository{
		getDonationByID: func(ctx context.Context, id string) (*entities.Donation, error) {
			return d, nil
		},
		updateStatus: func(ctx context.Context, id, status string) error {
			updatedStatus = status
			return nil
		},
	}
	service := NewDonationService(repo, nil)

	t.Run("not the owner", func(t *testing.T) {
		err := service.CancelDonation(context.Background(), d.ID.String(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotDonationOwner)
	})

	t.Run("owner cancels", func(t *testing.T) {
		err := service.CancelDonation(context.Background(), d.ID.String(), donorID.String())
		require.NoError(t, err)
		assert.Equal(t, entities.DonationStatusCancelled, updatedStatus)
	})

	t.Run("only available donations", func(t *testing.T) {
		d.Status = entities.DonationStatusExpired
		err := service.CancelDonation(context.Background(), d.ID.String(), donorID.String())
		assert.ErrorIs(t, err, domain.ErrCancelNotAllowed)
	})
}

func TestCollectClaim(t *testing.T) {
	donorID := uuid.New()
	claim := &entities.DonationClaim{
		ID:       uuid.New(),
		Quantity: 2,
		Status:   entities.ClaimStatusPending,
		Donation: &entities.Donation{ID: uuid.New(), DonorID: donorID},
	}

	collected := false
	repo := &fakeDonationRepository{
		getClaimByID: func(ctx context.Context, id string) (*entities.DonationClaim, error) {
			return claim, nil
		},
		collectClaim: func(ctx context.Context, claimID uuid.UUID) error {
			collected = true
			return nil
		},
	}
	service := NewDonationService(repo, nil)

	t.Run("only the donation owner", func(t *testing.T) {
		_, err := service.CollectClaim(context.Background(), claim.ID.String(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotClaimOwner)
	})

	t.Run("owner collects", func(t *testing.T) {
		result, err := service.CollectClaim(context.Background(), claim.ID.String(), donorID.String())
		require.NoError(t, err)
		assert.True(t, collected)
		assert.Equal(t, entities.ClaimStatusCollected, result.Status)
	})

	t.Run("already collected", func(t *testing.T) {
		_, err := service.CollectClaim(context.Background(), claim.ID.String(), donorID.String())
		assert.ErrorIs(t, err, domain.ErrClaimNotPending)
	})

	t.Run("claim settled between read and update", func(t *testing.T) {
		// The read still reports pending, but the status-guarded update
		// matches zero rows because another request settled the claim first.
		raced := &fakeDonationRepository{
			getClaimByID: func(ctx context.Context, id string) (*entities.DonationClaim, error) {
				return &entities.DonationClaim{
					ID:       claim.ID,
					Quantity: 2,
					Status:   entities.ClaimStatusPending,
					Donation: &entities.Donation{ID: uuid.New(), DonorID: donorID},
				}, nil
			},
			collectClaim: func(ctx context.Context, claimID uuid.UUID) error {
				return domain.ErrClaimNotPending
			},
		}

		_, err := NewDonationService(raced, nil).CollectClaim(context.Background(), claim.ID.String(), donorID.String())
		assert.ErrorIs(t, err, domain.ErrClaimNotPending)
	})
}

func TestCancelClaim(t *testing.T) {
	recipientID := uuid.New()
	claim := &entities.DonationClaim{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Quantity:    2,
		Status:      entities.ClaimStatusPending,
	}

	repo := &fakeDonationRepository{
		getClaimByID: func(ctx context.Context, id string) (*entities.DonationClaim, error) {
			return claim, nil
		},
		cancelClaim: func(ctx context.Context, claimID uuid.UUID) (*entities.Donation, error) {
			return &entities.Donation{}, nil
		},
	}
	service := NewDonationService(repo, nil)

	t.Run("only the claim recipient", func(t *testing.T) {
		_, err := service.CancelClaim(context.Background(), claim.ID.String(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotClaimOwner)
	})

	t.Run("recipient cancels", func(t *testing.T) {
		result, err := service.CancelClaim(context.Background(), claim.ID.String(), recipientID.String())
		require.NoError(t, err)
		assert.Equal(t, entities.ClaimStatusCancelled, result.Status)
	})

	t.Run("second cancel loses the race and releases nothing", func(t *testing.T) {
		// A concurrent cancel won between this request's read and the guarded
		// update inside the transaction: the update matches zero rows and the
		// quantity must not be returned a second time.
		raced := &fakeDonationRepository{
			getClaimByID: func(ctx context.Context, id string) (*entities.DonationClaim, error) {
				return &entities.DonationClaim{
					ID:          claim.ID,
					RecipientID: recipientID,
					Quantity:    2,
					Status:      entities.ClaimStatusPending,
				}, nil
			},
			cancelClaim: func(ctx context.Context, claimID uuid.UUID) (*entities.Donation, error) {
				return nil, domain.ErrClaimNotPending
			},
		}

		_, err := NewDonationService(raced, nil).CancelClaim(context.Background(), claim.ID.String(), recipientID.String())
		assert.ErrorIs(t, err, domain.ErrClaimNotPending)
	})
}
