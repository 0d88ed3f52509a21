package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/service"
)

func (f *fixture) registerTrainer(t *testing.T, n int, spec domain.Specialization) *domain.Trainer {
	t.Helper()
	tr, err := f.trainerService.RegisterTrainer(t.Context(), accountInfo("T", n), spec, 4)
	require.NoError(t, err)
	return tr
}

func TestRegisterTrainer(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	tr := f.registerTrainer(t, 1, domain.SpecializationStrength)
	assert.True(t, tr.IsAvailable())

	got, err := f.trainerService.GetTrainer(ctx, "T001")
	require.NoError(t, err)
	assert.Same(t, tr, got)

	_, err = f.trainerService.RegisterTrainer(ctx, accountInfo("T", 1), domain.SpecializationCardio, 1)
	assert.EqualError(t, err, "user ID already exists: T001")

	_, err = f.trainerService.RegisterTrainer(ctx, accountInfo("T", 2), domain.SpecializationCardio, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	f.createMember(t, 1)
	_, err = f.trainerService.GetTrainer(ctx, "U001")
	assert.ErrorIs(t, err, service.ErrNotATrainer)
	_, err = f.trainerService.GetTrainer(ctx, "T404")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestTrainerAssignMember(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	f.registerTrainer(t, 1, domain.SpecializationGeneral)
	for n := 1; n <= 3; n++ {
		f.createMember(t, n)
	}

	_, err := f.trainerService.AssignMember(ctx, "T001", memberID(1))
	require.NoError(t, err)
	tr, err := f.trainerService.AssignMember(ctx, "T001", memberID(1))
	require.NoError(t, err)
	assert.Len(t, tr.AssignedMemberIDs(), 1)

	_, err = f.trainerService.AssignMember(ctx, "T001", memberID(2))
	require.NoError(t, err)

	// The fixture caps rosters at two members.
	_, err = f.trainerService.AssignMember(ctx, "T001", memberID(3))
	assert.ErrorIs(t, err, service.ErrTrainerAtCapacity)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.trainerService.AssignMember(ctx, "T001", memberID(9))
	assert.ErrorIs(t, err, service.ErrMemberNotFound)

	members, err := f.trainerService.AssignedMembers(ctx, "T001")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, memberID(1), members[0].MemberID().String())

	tr, err = f.trainerService.UnassignMember(ctx, "T001", memberID(1))
	require.NoError(t, err)
	removed, err := domain.NewMemberID(memberID(1))
	require.NoError(t, err)
	assert.False(t, tr.HasMember(removed))
	assert.Len(t, tr.AssignedMemberIDs(), 1)

	_, err = f.trainerService.AssignMember(ctx, "T001", memberID(3))
	require.NoError(t, err)
}

func TestTrainerAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	f.registerTrainer(t, 1, domain.SpecializationCardio)
	f.createMember(t, 1)

	tr, err := f.trainerService.SetAvailability(ctx, "T001", false)
	require.NoError(t, err)
	assert.False(t, tr.IsAvailable())

	_, err = f.trainerService.AssignMember(ctx, "T001", memberID(1))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.EqualError(t, err, "trainer is not available for new assignments")
}

func TestQualifiedTrainers(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	f.registerTrainer(t, 1, domain.SpecializationGeneral)
	f.registerTrainer(t, 2, domain.SpecializationCardio)
	f.registerTrainer(t, 3, domain.SpecializationStrength)
	f.registerTrainer(t, 4, domain.SpecializationCardio)
	_, err := f.trainerService.SetAvailability(ctx, "T004", false)
	require.NoError(t, err)

	trainers, err := f.trainerService.QualifiedTrainers(ctx, domain.SpecializationCardio)
	require.NoError(t, err)
	var ids []string
	for _, tr := range trainers {
		ids = append(ids, tr.UserID())
	}
	assert.Equal(t, []string{"T001", "T002"}, ids)

	_, err = f.trainerService.QualifiedTrainers(ctx, domain.Specialization("JUGGLING"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
