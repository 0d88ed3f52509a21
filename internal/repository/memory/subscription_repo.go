package memory

import (
	"context"
	"sync"

	"cloud.google.com/go/civil"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

type subscriptionRepository struct {
	mu   sync.RWMutex
	subs map[string]*domain.Subscription
}

// NewSubscriptionRepository creates an empty in-memory subscription store.
func NewSubscriptionRepository() repository.SubscriptionRepository {
	return &subscriptionRepository{subs: make(map[string]*domain.Subscription)}
}

func subscriptionKey(s *domain.Subscription) string { return s.ID() }

func (r *subscriptionRepository) Save(ctx context.Context, sub *domain.Subscription) error {
	if sub == nil {
		return domain.NewError(domain.ErrInvalidArgument, "subscription cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.ID()] = sub
	return nil
}

func (r *subscriptionRepository) FindByID(ctx context.Context, id string) (*domain.Subscription, error) {
	if err := repository.RequireID("subscription ID", id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return sub, nil
}

func (r *subscriptionRepository) FindByStatus(ctx context.Context, status domain.SubscriptionStatus) ([]*domain.Subscription, error) {
	return r.find(func(s *domain.Subscription) bool { return s.Status() == status }), nil
}

func (r *subscriptionRepository) FindActive(ctx context.Context) ([]*domain.Subscription, error) {
	today := domain.Today()
	return r.find(func(s *domain.Subscription) bool { return s.IsActiveOn(today) }), nil
}

func (r *subscriptionRepository) FindExpired(ctx context.Context) ([]*domain.Subscription, error) {
	today := domain.Today()
	return r.find(func(s *domain.Subscription) bool { return s.IsExpiredOn(today) }), nil
}

func (r *subscriptionRepository) FindExpiringBy(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(expiringBy(domain.Today(), date)), nil
}

func (r *subscriptionRepository) FindStartingAfter(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(func(s *domain.Subscription) bool { return s.StartDate().After(date) }), nil
}

func (r *subscriptionRepository) FindEndingBefore(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(func(s *domain.Subscription) bool { return s.EndDate().Before(date) }), nil
}

func (r *subscriptionRepository) FindCreatedOn(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return r.find(func(s *domain.Subscription) bool { return s.CreatedAt() == date }), nil
}

func (r *subscriptionRepository) FindAll(ctx context.Context) ([]*domain.Subscription, error) {
	return r.find(nil), nil
}

func (r *subscriptionRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.subs[id]
	return ok, nil
}

func (r *subscriptionRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[id]; !ok {
		return false, nil
	}
	delete(r.subs, id)
	return true, nil
}

func (r *subscriptionRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs), nil
}

func (r *subscriptionRepository) CountByStatus(ctx context.Context, status domain.SubscriptionStatus) (int, error) {
	return r.count(func(s *domain.Subscription) bool { return s.Status() == status }), nil
}

func (r *subscriptionRepository) CountActive(ctx context.Context) (int, error) {
	today := domain.Today()
	return r.count(func(s *domain.Subscription) bool { return s.IsActiveOn(today) }), nil
}

func (r *subscriptionRepository) CountExpired(ctx context.Context) (int, error) {
	today := domain.Today()
	return r.count(func(s *domain.Subscription) bool { return s.IsExpiredOn(today) }), nil
}

func (r *subscriptionRepository) CountExpiringBy(ctx context.Context, date civil.Date) (int, error) {
	return r.count(expiringBy(domain.Today(), date)), nil
}

func (r *subscriptionRepository) TotalRevenue(ctx context.Context) (float64, error) {
	return r.sum(nil), nil
}

func (r *subscriptionRepository) ActiveRevenue(ctx context.Context) (float64, error) {
	today := domain.Today()
	return r.sum(func(s *domain.Subscription) bool { return s.IsActiveOn(today) }), nil
}

func (r *subscriptionRepository) find(keep func(*domain.Subscription) bool) []*domain.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collect(r.subs, subscriptionKey, keep)
}

func (r *subscriptionRepository) count(keep func(*domain.Subscription) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return count(r.subs, keep)
}

func (r *subscriptionRepository) sum(keep func(*domain.Subscription) bool) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0.0
	for _, s := range r.subs {
		if keep == nil || keep(s) {
			total += s.Amount()
		}
	}
	return total
}

// expiringBy matches subscriptions that are still running today and end on
// or before date.
func expiringBy(today, date civil.Date) func(*domain.Subscription) bool {
	return func(s *domain.Subscription) bool {
		return !s.IsExpiredOn(today) && !s.EndDate().After(date)
	}
}
