package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/storage/repository"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) UpdateSubscription(ctx context.Context, userUID, status string, expiry *time.Time) error {
	args := m.Called(ctx, userUID, status, expiry)
	return args.Error(0)
}

func TestUsersService_UpdateSubscription(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	repo := new(UserRepoMock)
	repo.On("UpdateSubscription", mock.Anything, "uid-1", models.TierPremium, &expiry).
		Return(nil).Once()

	svc := NewUsersService(repo, nil)
	err := svc.UpdateSubscription(context.Background(), "admin-uid", "uid-1", models.TierPremium, &expiry)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUsersService_UpdateSubscription_UnknownUser(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("UpdateSubscription", mock.Anything, "ghost-uid", models.TierVIP, (*time.Time)(nil)).
		Return(repository.ErrNotFound).Once()

	svc := NewUsersService(repo, nil)
	err := svc.UpdateSubscription(context.Background(), "admin-uid", "ghost-uid", models.TierVIP, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	repo.AssertExpectations(t)
}
