package memory

import (
	"context"
	"strings"
	"sync"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

type exerciseRepository struct {
	mu        sync.RWMutex
	exercises map[string]*domain.Exercise
}

// NewExerciseRepository creates an empty in-memory exercise library.
func NewExerciseRepository() repository.ExerciseRepository {
	return &exerciseRepository{exercises: make(map[string]*domain.Exercise)}
}

func exerciseKey(e *domain.Exercise) string { return e.ID() }

func (r *exerciseRepository) Save(ctx context.Context, exercise *domain.Exercise) error {
	if exercise == nil {
		return domain.NewError(domain.ErrInvalidArgument, "exercise cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exercises[exercise.ID()] = exercise
	return nil
}

func (r *exerciseRepository) FindByID(ctx context.Context, id string) (*domain.Exercise, error) {
	if err := repository.RequireID("exercise ID", id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ex, nil
}

func (r *exerciseRepository) FindByType(ctx context.Context, typ domain.ExerciseType) ([]*domain.Exercise, error) {
	return r.find(func(e *domain.Exercise) bool { return e.Type() == typ }), nil
}

func (r *exerciseRepository) FindByDifficulty(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error) {
	return r.find(func(e *domain.Exercise) bool { return e.Difficulty() == level }), nil
}

func (r *exerciseRepository) FindSuitableFor(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error) {
	return r.find(func(e *domain.Exercise) bool { return e.IsSuitableFor(level) }), nil
}

func (r *exerciseRepository) FindByTargetMuscle(ctx context.Context, muscle string) ([]*domain.Exercise, error) {
	return r.find(func(e *domain.Exercise) bool { return e.TargetsMuscleGroup(muscle) }), nil
}

func (r *exerciseRepository) FindByEquipment(ctx context.Context, equipment string) ([]*domain.Exercise, error) {
	return r.find(func(e *domain.Exercise) bool { return e.RequiresEquipment(equipment) }), nil
}

func (r *exerciseRepository) FindActive(ctx context.Context) ([]*domain.Exercise, error) {
	return r.find((*domain.Exercise).IsActive), nil
}

func (r *exerciseRepository) FindInactive(ctx context.Context) ([]*domain.Exercise, error) {
	return r.find(func(e *domain.Exercise) bool { return !e.IsActive() }), nil
}

func (r *exerciseRepository) FindAll(ctx context.Context) ([]*domain.Exercise, error) {
	return r.find(nil), nil
}

func (r *exerciseRepository) SearchByName(ctx context.Context, query string) ([]*domain.Exercise, error) {
	if strings.TrimSpace(query) == "" {
		return []*domain.Exercise{}, nil
	}
	q := strings.ToLower(query)
	return r.find(func(e *domain.Exercise) bool {
		return strings.Contains(strings.ToLower(e.Name()), q)
	}), nil
}

func (r *exerciseRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.exercises[id]
	return ok, nil
}

func (r *exerciseRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return false, nil
	}
	delete(r.exercises, id)
	return true, nil
}

func (r *exerciseRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exercises), nil
}

func (r *exerciseRepository) CountByType(ctx context.Context, typ domain.ExerciseType) (int, error) {
	return r.count(func(e *domain.Exercise) bool { return e.Type() == typ }), nil
}

func (r *exerciseRepository) CountByDifficulty(ctx context.Context, level domain.DifficultyLevel) (int, error) {
	return r.count(func(e *domain.Exercise) bool { return e.Difficulty() == level }), nil
}

func (r *exerciseRepository) CountActive(ctx context.Context) (int, error) {
	return r.count((*domain.Exercise).IsActive), nil
}

func (r *exerciseRepository) CountByTargetMuscle(ctx context.Context, muscle string) (int, error) {
	return r.count(func(e *domain.Exercise) bool { return e.TargetsMuscleGroup(muscle) }), nil
}

func (r *exerciseRepository) find(keep func(*domain.Exercise) bool) []*domain.Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collect(r.exercises, exerciseKey, keep)
}

func (r *exerciseRepository) count(keep func(*domain.Exercise) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return count(r.exercises, keep)
}
