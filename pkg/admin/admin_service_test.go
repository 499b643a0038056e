package admin

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

type fakeAdminRepository struct {
	donor      *entities.User
	rows       []*badDonorRow
	count      int64
	gotRequest domain.BadDonorsRequest
	banned     map[string]bool
	increments int
}

func (f *fakeAdminRepository) GetBadDonors(ctx context.Context, req domain.BadDonorsRequest, window time.Duration) ([]*badDonorRow, int64, error) {
	f.gotRequest = req
	return f.rows, f.count, nil
}

func (f *fakeAdminRepository) GetDonorByID(ctx context.Context, id string) (*entities.User, error) {
	if f.donor != nil && f.donor.ID.String() == id {
		return f.donor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAdminRepository) SetDonorBanned(ctx context.Context, id string, banned bool) error {
	if f.banned == nil {
		f.banned = map[string]bool{}
	}
	f.banned[id] = banned
	return nil
}

func (f *fakeAdminRepository) IncrementWarningCount(ctx context.Context, id string) error {
	f.increments++
	return nil
}

type capturingWarningRepository struct {
	created []*entities.Warning
}

func (c *capturingWarningRepository) CreateWarning(ctx context.Context, warning *entities.Warning) error {
	c.created = append(c.created, warning)
	return nil
}

func (c *capturingWarningRepository) GetUserWarnings(ctx context.Context, userID string) ([]*entities.Warning, error) {
	var result []*entities.Warning
	for _, w := range c.created {
		if w.UserID.String() == userID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (c *capturingWarningRepository) GetWarningByID(ctx context.Context, id string) (*entities.Warning, error) {
	return nil, gorm.ErrRecordNotFound
}

func (c *capturingWarningRepository) MarkWarningRead(ctx context.Context, id string) error {
	return nil
}

func testDonor() *entities.User {
	return &entities.User{
		ID:        uuid.New(),
		Username:  "donor1",
		Email:     "donor1@example.com",
		FirstName: "Dana",
		LastName:  "Ortiz",
		Role:      domain.RoleDonor,
	}
}

func TestGetBadDonorsDefaults(t *testing.T) {
	repo := &fakeAdminRepository{
		rows: []*badDonorRow{{
			ID:            uuid.NewString(),
			Username:      "donor1",
			AverageRating: 1.8,
			FeedbackCount: 4,
		}},
		count: 1,
	}
	service := NewAdminService(repo, &capturingWarningRepository{})

	result, err := service.GetBadDonors(context.Background(), domain.BadDonorsRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Count)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "donor1", result.Results[0].Username)

	// Unset filters fall back to the moderation defaults.
	assert.Equal(t, 1, repo.gotRequest.Page)
	assert.Equal(t, 20, repo.gotRequest.PageSize)
	assert.Equal(t, 3, repo.gotRequest.MinFeedback)
	assert.Equal(t, 2.5, repo.gotRequest.MaxAvgRating)
	assert.Equal(t, "rating", repo.gotRequest.SortBy)
}

func TestApplyDonorAction(t *testing.T) {
	t.Run("warn creates warning and bumps count", func(t *testing.T) {
		donor := testDonor()
		repo := &fakeAdminRepository{donor: donor}
		warnings := &capturingWarningRepository{}
		service := NewAdminService(repo, warnings)

		err := service.ApplyDonorAction(context.Background(), donor.ID.String(), domain.DonorActionWarn, "please improve")
		require.NoError(t, err)

		require.Len(t, warnings.created, 1)
		assert.Equal(t, donor.ID, warnings.created[0].UserID)
		assert.Equal(t, "please improve", warnings.created[0].Message)
		assert.Equal(t, 1, repo.increments)
	})

	t.Run("warn without message uses default", func(t *testing.T) {
		donor := testDonor()
		repo := &fakeAdminRepository{donor: donor}
		warnings := &capturingWarningRepository{}
		service := NewAdminService(repo, warnings)

		require.NoError(t, service.ApplyDonorAction(context.Background(), donor.ID.String(), domain.DonorActionWarn, ""))
		require.Len(t, warnings.created, 1)
		assert.Equal(t, defaultWarningMessage, warnings.created[0].Message)
	})

	t.Run("ban and unban flip the flag", func(t *testing.T) {
		donor := testDonor()
		repo := &fakeAdminRepository{donor: donor}
		service := NewAdminService(repo, &capturingWarningRepository{})

		require.NoError(t, service.ApplyDonorAction(context.Background(), donor.ID.String(), domain.DonorActionBan, ""))
		assert.True(t, repo.banned[donor.ID.String()])

		require.NoError(t, service.ApplyDonorAction(context.Background(), donor.ID.String(), domain.DonorActionUnban, ""))
		assert.False(t, repo.banned[donor.ID.String()])
	})

	t.Run("unknown donor", func(t *testing.T) {
		service := NewAdminService(&fakeAdminRepository{}, &capturingWarningRepository{})
		err := service.ApplyDonorAction(context.Background(), uuid.NewString(), domain.DonorActionBan, "")
		assert.ErrorIs(t, err, domain.ErrDonorNotFound)
	})
}

func TestGetDonorWarnings(t *testing.T) {
	donor := testDonor()
	repo := &fakeAdminRepository{donor: donor}
	warnings := &capturingWarningRepository{
		created: []*entities.Warning{
			{ID: uuid.New(), UserID: donor.ID, Message: "first strike"},
		},
	}
	service := NewAdminService(repo, warnings)

	result, err := service.GetDonorWarnings(context.Background(), donor.ID.String())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "first strike", result[0].Message)

	_, err = service.GetDonorWarnings(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrDonorNotFound)
}
