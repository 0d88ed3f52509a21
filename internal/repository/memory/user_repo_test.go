package memory_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/memory"
)

func TestUserRepositorySaveAndFind(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUserRepository()

	member := newMember(t, 1)
	trainer, err := domain.NewTrainer(info(2), domain.SpecializationStrength, 4)
	require.NoError(t, err)
	admin, err := domain.NewAdmin(info(3), "SUPER")
	require.NoError(t, err)

	for _, u := range []domain.User{member, trainer, admin} {
		require.NoError(t, repo.Save(ctx, u))
	}

	found, err := repo.FindByID(ctx, "U002")
	require.NoError(t, err)
	assert.Same(t, trainer, found)

	byName, err := repo.FindByUsername(ctx, "user_001")
	require.NoError(t, err)
	assert.Equal(t, "U001", byName.UserID())

	byEmail, err := repo.FindByEmail(ctx, "user003@example.com")
	require.NoError(t, err)
	_, isAdmin := byEmail.(*domain.Admin)
	assert.True(t, isAdmin)

	_, err = repo.FindByID(ctx, "U404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.FindByID(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	trainers, err := repo.FindByRole(ctx, domain.RoleTrainer)
	require.NoError(t, err)
	require.Len(t, trainers, 1)
	assert.Equal(t, "U002", trainers[0].UserID())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "U001", all[0].UserID())
	assert.Equal(t, "U003", all[2].UserID())

	n, err := repo.CountByRole(ctx, domain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserRepositoryUniqueness(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUserRepository()
	require.NoError(t, repo.Save(ctx, newMember(t, 1)))

	clash := info(2)
	clash.Username = "user_001"
	dup, err := domain.NewMember(clash, mustID(t, 2))
	require.NoError(t, err)

	err = repo.Save(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.EqualError(t, err, "username already exists: user_001")

	clash = info(2)
	clash.Email = "user001@example.com"
	dup, err = domain.NewMember(clash, mustID(t, 2))
	require.NoError(t, err)
	assert.EqualError(t, repo.Save(ctx, dup), "email already exists: user001@example.com")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserRepositoryUpdateReleasesOldKeys(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUserRepository()
	m := newMember(t, 1)
	require.NoError(t, repo.Save(ctx, m))

	require.NoError(t, m.UpdateEmail("changed@example.com"))
	require.NoError(t, repo.Save(ctx, m))

	exists, err := repo.ExistsByEmail(ctx, "user001@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "changed@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	// The released address can be claimed by someone else.
	other := info(2)
	other.Email = "user001@example.com"
	u2, err := domain.NewMember(other, mustID(t, 2))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u2))

	// Saving the same user again is an update, not a clash.
	require.NoError(t, repo.Save(ctx, m))
}

func TestUserRepositoryActiveAndDelete(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUserRepository()
	a, b := newMember(t, 1), newMember(t, 2)
	b.Deactivate()
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
	inactive, err := repo.FindInactive(ctx)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "U002", inactive[0].UserID())

	deleted, err := repo.DeleteByID(ctx, "U002")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.DeleteByID(ctx, "U002")
	require.NoError(t, err)
	assert.False(t, deleted)

	exists, err := repo.ExistsByUsername(ctx, "user_002")
	require.NoError(t, err)
	assert.False(t, exists)
	cnt, err := repo.CountInactive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, cnt)
}

func TestUserRepositoryConcurrentSavesKeepOneOwner(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUserRepository()

	const workers = 16
	users := make([]domain.User, workers)
	for i := range users {
		in := info(i + 1)
		in.Username = "contested"
		m, err := domain.NewMember(in, mustID(t, i+1))
		require.NoError(t, err)
		users[i] = m
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Save(ctx, users[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, repository.ErrDuplicate)
		}
	}
	assert.Equal(t, 1, succeeded)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	owner, err := repo.FindByUsername(ctx, "contested")
	require.NoError(t, err)
	assert.NotEmpty(t, owner.UserID())
}

func mustID(t *testing.T, n int) domain.MemberID {
	t.Helper()
	id, err := domain.NewMemberID(fmt.Sprintf("MEM-%06d", n))
	require.NoError(t, err)
	return id
}
