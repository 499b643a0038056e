package warning

import (
	"context"
	"testing"

	"generosity-backend/domain"
	"generosity-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeWarningRepository struct {
	warnings map[string]*entities.Warning
	marked   []string
}

func newFakeWarningRepository(warnings ...*entities.Warning) *fakeWarningRepository {
	f := &fakeWarningRepository{warnings: map[string]*entities.Warning{}}
	for _, w := range warnings {
		f.warnings[w.ID.String()] = w
	}
	return f
}

func (f *fakeWarningRepository) CreateWarning(ctx context.Context, warning *entities.Warning) error {
	f.warnings[warning.ID.String()] = warning
	return nil
}

func (f *fakeWarningRepository) GetUserWarnings(ctx context.Context, userID string) ([]*entities.Warning, error) {
	var result []*entities.Warning
	for _, w := range f.warnings {
		if w.UserID.String() == userID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (f *fakeWarningRepository) GetWarningByID(ctx context.Context, id string) (*entities.Warning, error) {
	if w, ok := f.warnings[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWarningRepository) MarkWarningRead(ctx context.Context, id string) error {
	f.marked = append(f.marked, id)
	f.warnings[id].IsRead = true
	return nil
}

func TestDismissWarning(t *testing.T) {
	userID := uuid.New()
	warning := &entities.Warning{
		ID:      uuid.New(),
		UserID:  userID,
		Message: "quality complaints on recent donations",
	}

	t.Run("marks read", func(t *testing.T) {
		repo := newFakeWarningRepository(warning)
		service := NewWarningService(repo)

		require.NoError(t, service.DismissWarning(context.Background(), warning.ID.String(), userID.String()))
		assert.True(t, repo.warnings[warning.ID.String()].IsRead)
	})

	t.Run("already read is a no-op", func(t *testing.T) {
		read := &entities.Warning{ID: uuid.New(), UserID: userID, IsRead: true}
		repo := newFakeWarningRepository(read)
		service := NewWarningService(repo)

		require.NoError(t, service.DismissWarning(context.Background(), read.ID.String(), userID.String()))
		assert.Empty(t, repo.marked)
	})

	t.Run("foreign warning looks nonexistent", func(t *testing.T) {
		repo := newFakeWarningRepository(warning)
		service := NewWarningService(repo)

		err := service.DismissWarning(context.Background(), warning.ID.String(), uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrWarningNotFound)
	})

	t.Run("unknown warning", func(t *testing.T) {
		service := NewWarningService(newFakeWarningRepository())
		err := service.DismissWarning(context.Background(), uuid.NewString(), userID.String())
		assert.ErrorIs(t, err, domain.ErrWarningNotFound)
	})
}

func TestGetUserWarnings(t *testing.T) {
	userID := uuid.New()
	repo := newFakeWarningRepository(
		&entities.Warning{ID: uuid.New(), UserID: userID, Message: "first"},
		&entities.Warning{ID: uuid.New(), UserID: uuid.New(), Message: "someone else's"},
	)
	service := NewWarningService(repo)

	warnings, err := service.GetUserWarnings(context.Background(), userID.String())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "first", warnings[0].Message)
}
