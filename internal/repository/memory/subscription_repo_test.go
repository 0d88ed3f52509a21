package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/memory"
)

func seedSubscriptions(t *testing.T) (repository.SubscriptionRepository, *domain.Subscription, *domain.Subscription, *domain.Subscription) {
	t.Helper()
	ctx := t.Context()
	repo := memory.NewSubscriptionRepository()

	active := activeSubscription(t, "SUB-A", 30)
	expired := expiredSubscription(t, "SUB-E", 20)
	cancelled := activeSubscription(t, "SUB-C", 50)
	require.NoError(t, cancelled.Cancel())

	for _, s := range []*domain.Subscription{active, expired, cancelled} {
		require.NoError(t, repo.Save(ctx, s))
	}
	return repo, active, expired, cancelled
}

func TestSubscriptionRepositoryCrud(t *testing.T) {
	ctx := t.Context()
	repo, active, _, _ := seedSubscriptions(t)

	found, err := repo.FindByID(ctx, "SUB-A")
	require.NoError(t, err)
	assert.Same(t, active, found)

	_, err = repo.FindByID(ctx, "SUB-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.FindByID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	deleted, err := repo.DeleteByID(ctx, "SUB-A")
	require.NoError(t, err)
	assert.True(t, deleted)
	exists, err := repo.ExistsByID(ctx, "SUB-A")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubscriptionRepositoryStatusQueries(t *testing.T) {
	ctx := t.Context()
	repo, active, expired, cancelled := seedSubscriptions(t)

	actives, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Same(t, active, actives[0])

	// Activity is computed: the stale ACTIVE label still counts by status.
	byStatus, err := repo.CountByStatus(ctx, domain.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, 2, byStatus)

	expireds, err := repo.FindExpired(ctx)
	require.NoError(t, err)
	require.Len(t, expireds, 1)
	assert.Same(t, expired, expireds[0])

	cancelledOnes, err := repo.FindByStatus(ctx, domain.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelledOnes, 1)
	assert.Same(t, cancelled, cancelledOnes[0])

	n, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.CountExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubscriptionRepositoryDateQueries(t *testing.T) {
	ctx := t.Context()
	repo, active, expired, _ := seedSubscriptions(t)
	today := domain.Today()

	// Running subscriptions ending on or before the cut-off; the expired one is excluded.
	expiring, err := repo.FindExpiringBy(ctx, active.EndDate())
	require.NoError(t, err)
	assert.Len(t, expiring, 2)

	expiring, err = repo.FindExpiringBy(ctx, active.EndDate().AddDays(-1))
	require.NoError(t, err)
	assert.Empty(t, expiring)

	n, err := repo.CountExpiringBy(ctx, active.EndDate())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	starting, err := repo.FindStartingAfter(ctx, expired.StartDate())
	require.NoError(t, err)
	assert.Len(t, starting, 2)

	ending, err := repo.FindEndingBefore(ctx, today)
	require.NoError(t, err)
	require.Len(t, ending, 1)
	assert.Same(t, expired, ending[0])

	created, err := repo.FindCreatedOn(ctx, today)
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestSubscriptionRepositoryRevenue(t *testing.T) {
	ctx := t.Context()
	repo, _, _, _ := seedSubscriptions(t)

	total, err := repo.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, total, 1e-9)

	activeRevenue, err := repo.ActiveRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, activeRevenue, 1e-9)
}
