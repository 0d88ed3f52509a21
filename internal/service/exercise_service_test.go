package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/service"
)

func seedExercises(t *testing.T, f *fixture) {
	t.Helper()
	fixtures := []struct {
		id, name   string
		typ        domain.ExerciseType
		difficulty domain.DifficultyLevel
	}{
		{"EX-1", "Bench Press", domain.ExerciseStrength, domain.DifficultyIntermediate},
		{"EX-2", "Treadmill Run", domain.ExerciseCardio, domain.DifficultyBeginner},
		{"EX-3", "Incline Bench Press", domain.ExerciseStrength, domain.DifficultyAdvanced},
		{"EX-4", "Plank", domain.ExerciseCore, domain.DifficultyBeginner},
	}
	for _, fx := range fixtures {
		_, err := f.exerciseService.CreateExercise(t.Context(), domain.ExerciseParams{
			ID:                fx.id,
			Name:              fx.name,
			Type:              fx.typ,
			Difficulty:        fx.difficulty,
			Description:       fx.name + " description",
			Instructions:      domain.DefaultInstructions,
			EstimatedDuration: domain.DefaultExerciseDuration,
			DefaultSets:       domain.DefaultSets,
			DefaultReps:       domain.DefaultReps,
			TargetMuscles:     "chest, core",
			Equipment:         "none",
		})
		require.NoError(t, err, fx.id)
	}
}

func exerciseIDs(exercises []*domain.Exercise) []string {
	ids := make([]string, 0, len(exercises))
	for _, e := range exercises {
		ids = append(ids, e.ID())
	}
	return ids
}

func TestCreateAndGetExercise(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	seedExercises(t, f)

	e, err := f.exerciseService.GetExercise(ctx, "EX-1")
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", e.Name())
	assert.True(t, e.IsActive())

	_, err = f.exerciseService.CreateExercise(ctx, domain.ExerciseParams{
		ID: "EX-1", Name: "Copy", Type: domain.ExerciseCardio, Difficulty: domain.DifficultyBeginner,
		Description: "copy", Instructions: "copy", EstimatedDuration: domain.DefaultExerciseDuration,
		DefaultSets: 1, DefaultReps: 1, TargetMuscles: "legs", Equipment: "none",
	})
	assert.EqualError(t, err, "exercise ID already exists: EX-1")

	_, err = f.exerciseService.GetExercise(ctx, "EX-404")
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}

func TestListExercises(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	seedExercises(t, f)
	_, err := f.exerciseService.SetActive(ctx, "EX-3", false)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter service.ExerciseFilter
		want   []string
	}{
		{"no filter", service.ExerciseFilter{}, []string{"EX-1", "EX-2", "EX-3", "EX-4"}},
		{"by type", service.ExerciseFilter{Type: domain.ExerciseStrength}, []string{"EX-1", "EX-3"}},
		{"by difficulty", service.ExerciseFilter{Difficulty: domain.DifficultyBeginner}, []string{"EX-2", "EX-4"}},
		{"name query", service.ExerciseFilter{Query: "bench"}, []string{"EX-1", "EX-3"}},
		{"query and active", service.ExerciseFilter{Query: "BENCH", ActiveOnly: true}, []string{"EX-1"}},
		{"type and difficulty", service.ExerciseFilter{Type: domain.ExerciseStrength, Difficulty: domain.DifficultyAdvanced}, []string{"EX-3"}},
		{"active only", service.ExerciseFilter{ActiveOnly: true}, []string{"EX-1", "EX-2", "EX-4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.exerciseService.ListExercises(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exerciseIDs(got))
		})
	}

	_, err = f.exerciseService.ListExercises(ctx, service.ExerciseFilter{Type: "DANCE"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSuitableFor(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	seedExercises(t, f)
	_, err := f.exerciseService.SetActive(ctx, "EX-2", false)
	require.NoError(t, err)

	got, err := f.exerciseService.SuitableFor(ctx, domain.DifficultyIntermediate)
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-1", "EX-4"}, exerciseIDs(got))

	_, err = f.exerciseService.SuitableFor(ctx, domain.DifficultyLevel(9))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDeleteExercise(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	seedExercises(t, f)

	require.NoError(t, f.exerciseService.DeleteExercise(ctx, "EX-1"))
	err := f.exerciseService.DeleteExercise(ctx, "EX-1")
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)

	n, err := f.exercises.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
