package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/memory"
)

func TestMemberRepositorySaveAndLookup(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewMemberRepository()
	m := newMember(t, 1)
	require.NoError(t, repo.Save(ctx, m))

	found, err := repo.FindByID(ctx, m.MemberID())
	require.NoError(t, err)
	assert.Same(t, m, found)

	byUser, err := repo.FindByUserID(ctx, "U001")
	require.NoError(t, err)
	assert.Same(t, m, byUser)

	_, err = repo.FindByID(ctx, mustID(t, 99))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.FindByID(ctx, domain.MemberID{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = repo.FindByUserID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	exists, err := repo.ExistsByUserID(ctx, "U001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemberRepositoryResaveIsUpdate(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewMemberRepository()
	m := newMember(t, 1)
	require.NoError(t, repo.Save(ctx, m))

	m.IncrementWorkouts()
	require.NoError(t, repo.Save(ctx, m))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	exists, err := repo.ExistsByUserID(ctx, "U001")
	require.NoError(t, err)
	assert.True(t, exists)

	byUser, err := repo.FindByUserID(ctx, "U001")
	require.NoError(t, err)
	assert.Same(t, m, byUser)
	assert.Equal(t, 1, byUser.Progress().WorkoutsCompleted())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// The user id index still points at the one entry, so deleting clears it.
	deleted, err := repo.DeleteByID(ctx, m.MemberID())
	require.NoError(t, err)
	assert.True(t, deleted)
	exists, err = repo.ExistsByUserID(ctx, "U001")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemberRepositoryUserIDUnique(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewMemberRepository()
	require.NoError(t, repo.Save(ctx, newMember(t, 1)))

	// Different member id, same user id.
	other, err := domain.NewMember(info(1), mustID(t, 2))
	require.NoError(t, err)
	err = repo.Save(ctx, other)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.EqualError(t, err, "user ID already exists: U001")

	deleted, err := repo.DeleteByID(ctx, mustID(t, 1))
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting releases the user id.
	require.NoError(t, repo.Save(ctx, other))
}

func TestMemberRepositorySubscriptionQueries(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewMemberRepository()

	withActive := newMember(t, 1)
	require.NoError(t, withActive.AssignSubscription(activeSubscription(t, "SUB-1", 30)))
	withStale := newMember(t, 2)
	require.NoError(t, withStale.AssignSubscription(expiredSubscription(t, "SUB-2", 30)))
	without := newMember(t, 3)

	for _, m := range []*domain.Member{withActive, withStale, without} {
		require.NoError(t, repo.Save(ctx, m))
	}

	active, err := repo.FindWithActiveSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, withActive.MemberID(), active[0].MemberID())

	inactive, err := repo.FindWithoutActiveSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, inactive, 2)
	assert.Equal(t, withStale.MemberID(), inactive[0].MemberID())
	assert.Equal(t, without.MemberID(), inactive[1].MemberID())

	n, err := repo.CountWithActiveSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.CountWithoutActiveSubscriptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemberRepositoryRegistrationQueries(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewMemberRepository()
	require.NoError(t, repo.Save(ctx, newMember(t, 1)))
	require.NoError(t, repo.Save(ctx, newMember(t, 2)))

	today := domain.Today()
	n, err := repo.CountByRegistrationMonth(ctx, today.Year, int(today.Month))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountByRegistrationMonth(ctx, 1999, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = repo.CountByRegistrationMonth(ctx, 1899, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = repo.CountByRegistrationMonth(ctx, 2024, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = repo.CountByRegistrationMonth(ctx, 2024, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	inMonth, err := repo.FindRegisteredInMonth(ctx, today.Year, int(today.Month))
	require.NoError(t, err)
	require.Len(t, inMonth, 2)
	assert.Equal(t, mustID(t, 1), inMonth[0].MemberID())
	assert.Equal(t, mustID(t, 2), inMonth[1].MemberID())
	_, err = repo.FindRegisteredInMonth(ctx, 2101, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	after, err := repo.FindRegisteredAfter(ctx, today.AddDays(-1))
	require.NoError(t, err)
	assert.Len(t, after, 2)
	before, err := repo.FindRegisteredBefore(ctx, today)
	require.NoError(t, err)
	assert.Empty(t, before)
}

func TestMemberRepositoryActiveAccounts(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewMemberRepository()
	a, b := newMember(t, 1), newMember(t, 2)
	b.Deactivate()
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.MemberID(), active[0].MemberID())

	inactive, err := repo.FindInactive(ctx)
	require.NoError(t, err)
	require.Len(t, inactive, 1)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
