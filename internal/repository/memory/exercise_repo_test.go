package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
	"alcyxob/gym-management/internal/repository/memory"
)

func seedExercises(t *testing.T) repository.ExerciseRepository {
	t.Helper()
	ctx := t.Context()
	repo := memory.NewExerciseRepository()

	fixtures := []struct {
		id, name   string
		typ        domain.ExerciseType
		level      domain.DifficultyLevel
		muscles    string
		equipment  string
		deactivate bool
	}{
		{"EX-1", "Bench Press", domain.ExerciseCompound, domain.DifficultyIntermediate, "Chest, Triceps", "Barbell, Bench", false},
		{"EX-2", "Plank", domain.ExerciseCore, domain.DifficultyBeginner, "Core", "None", false},
		{"EX-3", "Incline Bench Press", domain.ExerciseCompound, domain.DifficultyAdvanced, "Upper Chest", "Barbell, Incline Bench", true},
		{"EX-4", "Box Jump", domain.ExercisePlyometric, domain.DifficultyExpert, "Legs", "Plyo Box", false},
	}
	for _, f := range fixtures {
		ex, err := domain.NewSimpleExercise(f.id, f.name, f.typ, f.level, f.name+" description", f.muscles, f.equipment)
		require.NoError(t, err)
		if f.deactivate {
			ex.Deactivate()
		}
		require.NoError(t, repo.Save(ctx, ex))
	}
	return repo
}

func ids(exercises []*domain.Exercise) []string {
	out := make([]string, len(exercises))
	for i, e := range exercises {
		out[i] = e.ID()
	}
	return out
}

func TestExerciseRepositoryQueries(t *testing.T) {
	ctx := t.Context()
	repo := seedExercises(t)

	byType, err := repo.FindByType(ctx, domain.ExerciseCompound)
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-1", "EX-3"}, ids(byType))

	byLevel, err := repo.FindByDifficulty(ctx, domain.DifficultyBeginner)
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-2"}, ids(byLevel))

	suitable, err := repo.FindSuitableFor(ctx, domain.DifficultyAdvanced)
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-1", "EX-2", "EX-3"}, ids(suitable))

	chest, err := repo.FindByTargetMuscle(ctx, "CHEST")
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-1", "EX-3"}, ids(chest))

	barbell, err := repo.FindByEquipment(ctx, "barbell")
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-1", "EX-3"}, ids(barbell))

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-1", "EX-2", "EX-4"}, ids(active))

	inactive, err := repo.FindInactive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-3"}, ids(inactive))

	search, err := repo.SearchByName(ctx, "bench")
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-1", "EX-3"}, ids(search))

	search, err = repo.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, search)
}

func TestExerciseRepositoryCounts(t *testing.T) {
	ctx := t.Context()
	repo := seedExercises(t)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = repo.CountByType(ctx, domain.ExerciseCompound)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountByDifficulty(ctx, domain.DifficultyExpert)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.CountByTargetMuscle(ctx, "legs")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	deleted, err := repo.DeleteByID(ctx, "EX-4")
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = repo.FindByID(ctx, "EX-4")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanRepository(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewPlanRepository()

	monthly := plan(t, 1, 30)
	yearly := plan(t, 12, 300)
	require.NoError(t, repo.Save(ctx, yearly))
	require.NoError(t, repo.Save(ctx, monthly))
	assert.ErrorIs(t, repo.Save(ctx, domain.SubscriptionPlan{}), domain.ErrInvalidArgument)

	found, err := repo.FindByID(ctx, "PLAN-1")
	require.NoError(t, err)
	assert.Equal(t, monthly, found)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "PLAN-1", all[0].ID())
	assert.Equal(t, "PLAN-12", all[1].ID())

	deleted, err := repo.DeleteByID(ctx, "PLAN-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = repo.FindByID(ctx, "PLAN-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
