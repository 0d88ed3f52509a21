package service

import (
	"context"
	"errors"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// ExerciseFilter narrows ListExercises. Zero fields do not filter.
type ExerciseFilter struct {
	Type       domain.ExerciseType
	Difficulty domain.DifficultyLevel
	// Query matches a case-insensitive substring of the exercise name.
	Query      string
	ActiveOnly bool
}

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, params domain.ExerciseParams) (*domain.Exercise, error)
	GetExercise(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	ListExercises(ctx context.Context, filter ExerciseFilter) ([]*domain.Exercise, error)
	// SuitableFor lists active exercises at or below level.
	SuitableFor(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error)
	SetActive(ctx context.Context, exerciseID string, active bool) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID string) error
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise adds an exercise to the library. Exercise IDs are unique.
func (s *exerciseService) CreateExercise(ctx context.Context, params domain.ExerciseParams) (*domain.Exercise, error) {
	exercise, err := domain.NewExercise(params)
	if err != nil {
		return nil, err
	}
	exists, err := s.exerciseRepo.ExistsByID(ctx, exercise.ID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.DuplicateError("exercise ID", exercise.ID())
	}
	if err := s.exerciseRepo.Save(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) GetExercise(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.FindByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, withID(ErrExerciseNotFound, exerciseID)
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises runs the most selective repository query the filter allows
// and applies the remaining criteria to its result.
func (s *exerciseService) ListExercises(ctx context.Context, filter ExerciseFilter) ([]*domain.Exercise, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.NewError(domain.ErrInvalidArgument, "unknown exercise type: %s", filter.Type)
	}
	if filter.Difficulty != 0 && !filter.Difficulty.Valid() {
		return nil, domain.NewError(domain.ErrInvalidArgument, "unknown difficulty level: %d", filter.Difficulty)
	}

	var (
		exercises []*domain.Exercise
		err       error
	)
	switch {
	case filter.Query != "":
		exercises, err = s.exerciseRepo.SearchByName(ctx, filter.Query)
	case filter.Type != "":
		exercises, err = s.exerciseRepo.FindByType(ctx, filter.Type)
	case filter.Difficulty != 0:
		exercises, err = s.exerciseRepo.FindByDifficulty(ctx, filter.Difficulty)
	case filter.ActiveOnly:
		exercises, err = s.exerciseRepo.FindActive(ctx)
	default:
		exercises, err = s.exerciseRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := exercises[:0]
	for _, e := range exercises {
		if filter.Type != "" && e.Type() != filter.Type {
			continue
		}
		if filter.Difficulty != 0 && e.Difficulty() != filter.Difficulty {
			continue
		}
		if filter.ActiveOnly && !e.IsActive() {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *exerciseService) SuitableFor(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error) {
	if !level.Valid() {
		return nil, domain.NewError(domain.ErrInvalidArgument, "unknown difficulty level: %d", level)
	}
	exercises, err := s.exerciseRepo.FindSuitableFor(ctx, level)
	if err != nil {
		return nil, err
	}
	out := exercises[:0]
	for _, e := range exercises {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *exerciseService) SetActive(ctx context.Context, exerciseID string, active bool) (*domain.Exercise, error) {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if active {
		exercise.Activate()
	} else {
		exercise.Deactivate()
	}
	if err := s.exerciseRepo.Save(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID string) error {
	deleted, err := s.exerciseRepo.DeleteByID(ctx, exerciseID)
	if err != nil {
		return err
	}
	if !deleted {
		return withID(ErrExerciseNotFound, exerciseID)
	}
	return nil
}
