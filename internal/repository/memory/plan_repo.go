package memory

import (
	"context"
	"sync"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

type planRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.SubscriptionPlan
}

// NewPlanRepository creates an empty in-memory plan catalogue.
func NewPlanRepository() repository.PlanRepository {
	return &planRepository{plans: make(map[string]domain.SubscriptionPlan)}
}

func (r *planRepository) Save(ctx context.Context, plan domain.SubscriptionPlan) error {
	if plan.IsZero() {
		return domain.NewError(domain.ErrInvalidArgument, "plan cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID()] = plan
	return nil
}

func (r *planRepository) FindByID(ctx context.Context, id string) (domain.SubscriptionPlan, error) {
	if err := repository.RequireID("plan ID", id); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[id]
	if !ok {
		return domain.SubscriptionPlan{}, repository.ErrNotFound
	}
	return plan, nil
}

func (r *planRepository) FindAll(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collect(r.plans, domain.SubscriptionPlan.ID, nil), nil
}

func (r *planRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return false, nil
	}
	delete(r.plans, id)
	return true, nil
}
