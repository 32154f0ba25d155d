package grants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edushield/edushield/internal/models"
)

type GrantRepoMock struct {
	mock.Mock
}

func (m *GrantRepoMock) CreateGrant(ctx context.Context, grant models.Grant) (*models.Grant, error) {
	args := m.Called(ctx, grant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grant), args.Error(1)
}

func (m *GrantRepoMock) DeactivateGrants(ctx context.Context, userUID string, courseID int) (int, error) {
	args := m.Called(ctx, userUID, courseID)
	return args.Int(0), args.Error(1)
}

func (m *GrantRepoMock) ListGrantsByUser(ctx context.Context, userUID string) ([]models.Grant, error) {
	args := m.Called(ctx, userUID)
	grants, _ := args.Get(0).([]models.Grant)
	return grants, args.Error(1)
}

func TestGrantService_Grant(t *testing.T) {
	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := new(GrantRepoMock)
	repo.On("CreateGrant", mock.Anything, mock.MatchedBy(func(g models.Grant) bool {
		return g.UserUID == "uid-1" &&
			g.CourseID == 42 &&
			g.AccessType == models.AccessTypeGranted &&
			g.ExpiryDate != nil && g.ExpiryDate.Equal(expiry)
	})).Return(&models.Grant{
		ID:         7,
		UserUID:    "uid-1",
		CourseID:   42,
		AccessType: models.AccessTypeGranted,
		ExpiryDate: &expiry,
		IsActive:   true,
	}, nil).Once()

	svc := NewGrantService(repo, nil)
	got, err := svc.Grant(context.Background(), "admin-uid", "uid-1", 42, models.AccessTypeGranted, &expiry)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	assert.True(t, got.IsActive)
	repo.AssertExpectations(t)
}

func TestGrantService_Grant_RepoError(t *testing.T) {
	repo := new(GrantRepoMock)
	repo.On("CreateGrant", mock.Anything, mock.Anything).
		Return(nil, errors.New("db down")).Once()

	svc := NewGrantService(repo, nil)
	got, err := svc.Grant(context.Background(), "admin-uid", "uid-1", 42, models.AccessTypeTrial, nil)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestGrantService_Revoke(t *testing.T) {
	tests := []struct {
		name     string
		affected int
		want     bool
	}{
		{
			name:     "revokes active grants",
			affected: 2,
			want:     true,
		},
		{
			name:     "nothing active to revoke",
			affected: 0,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(GrantRepoMock)
			repo.On("DeactivateGrants", mock.Anything, "uid-1", 42).
				Return(tt.affected, nil).Once()

			svc := NewGrantService(repo, nil)
			got, err := svc.Revoke(context.Background(), "admin-uid", "uid-1", 42)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestGrantService_ListByUser(t *testing.T) {
	repo := new(GrantRepoMock)
	repo.On("ListGrantsByUser", mock.Anything, "uid-1").
		Return([]models.Grant{{ID: 1, IsActive: true}, {ID: 2, IsActive: false}}, nil).Once()

	svc := NewGrantService(repo, nil)
	got, err := svc.ListByUser(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
