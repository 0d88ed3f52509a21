package service

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// RevenueReport summarises subscription income.
type RevenueReport struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	ActiveRevenue float64 `json:"activeRevenue"`
	Subscriptions int     `json:"subscriptions"`
	ActiveCount   int     `json:"activeCount"`
	ExpiredCount  int     `json:"expiredCount"`
}

// SubscriptionService manages the plan catalogue and the subscription lifecycle.
type SubscriptionService interface {
	AddPlan(ctx context.Context, params domain.PlanParams) (domain.SubscriptionPlan, error)
	Plans(ctx context.Context) ([]domain.SubscriptionPlan, error)

	Subscribe(ctx context.Context, planID string, startDate civil.Date) (*domain.Subscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
	Cancel(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
	// Renew stores a new subscription to the same plan; the original is unchanged.
	Renew(ctx context.Context, subscriptionID string, startDate civil.Date) (*domain.Subscription, error)
	// RefreshStatuses moves every lapsed ACTIVE subscription to EXPIRED and
	// returns how many changed.
	RefreshStatuses(ctx context.Context) (int, error)
	ExpiringBy(ctx context.Context, date civil.Date) ([]*domain.Subscription, error)

	RevenueReport(ctx context.Context) (RevenueReport, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	planRepo         repository.PlanRepository
	memberRepo       repository.MemberRepository
	userRepo         repository.UserRepository
}

// NewSubscriptionService creates a new instance of subscriptionService. The
// member and user repositories are kept in step when a subscription a member
// holds changes state.
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		memberRepo:       memberRepo,
		userRepo:         userRepo,
	}
}

// === Plans ===

func (s *subscriptionService) AddPlan(ctx context.Context, params domain.PlanParams) (domain.SubscriptionPlan, error) {
	plan, err := domain.NewSubscriptionPlan(params)
	if err != nil {
		return domain.SubscriptionPlan{}, err
	}
	if _, err := s.planRepo.FindByID(ctx, plan.ID()); err == nil {
		return domain.SubscriptionPlan{}, repository.DuplicateError("plan ID", plan.ID())
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.SubscriptionPlan{}, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	return plan, nil
}

func (s *subscriptionService) Plans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return s.planRepo.FindAll(ctx)
}

// === Lifecycle ===

func (s *subscriptionService) Subscribe(ctx context.Context, planID string, startDate civil.Date) (*domain.Subscription, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, withID(ErrPlanNotFound, planID)
		}
		return nil, err
	}
	sub, err := domain.NewSubscription("SUB-"+uuid.NewString(), plan, startDate)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, withID(ErrSubscriptionNotFound, subscriptionID)
	}
	return sub, err
}

func (s *subscriptionService) Cancel(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if err := sub.Cancel(); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	if err := s.syncMembers(ctx, map[string]*domain.Subscription{sub.ID(): sub}); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) Renew(ctx context.Context, subscriptionID string, startDate civil.Date) (*domain.Subscription, error) {
	sub, err := s.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	renewed, err := sub.Renew(startDate)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, renewed); err != nil {
		return nil, err
	}
	return renewed, nil
}

func (s *subscriptionService) RefreshStatuses(ctx context.Context) (int, error) {
	subs, err := s.subscriptionRepo.FindByStatus(ctx, domain.StatusActive)
	if err != nil {
		return 0, err
	}
	changed := make(map[string]*domain.Subscription)
	for _, sub := range subs {
		if !sub.UpdateStatus() {
			continue
		}
		if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
			return len(changed), err
		}
		changed[sub.ID()] = sub
	}
	if len(changed) == 0 {
		return 0, nil
	}
	return len(changed), s.syncMembers(ctx, changed)
}

func (s *subscriptionService) ExpiringBy(ctx context.Context, date civil.Date) ([]*domain.Subscription, error) {
	return s.subscriptionRepo.FindExpiringBy(ctx, date)
}

// === Reporting ===

func (s *subscriptionService) RevenueReport(ctx context.Context) (RevenueReport, error) {
	var (
		report RevenueReport
		err    error
	)
	if report.TotalRevenue, err = s.subscriptionRepo.TotalRevenue(ctx); err != nil {
		return RevenueReport{}, err
	}
	if report.ActiveRevenue, err = s.subscriptionRepo.ActiveRevenue(ctx); err != nil {
		return RevenueReport{}, err
	}
	if report.Subscriptions, err = s.subscriptionRepo.Count(ctx); err != nil {
		return RevenueReport{}, err
	}
	if report.ActiveCount, err = s.subscriptionRepo.CountActive(ctx); err != nil {
		return RevenueReport{}, err
	}
	if report.ExpiredCount, err = s.subscriptionRepo.CountExpired(ctx); err != nil {
		return RevenueReport{}, err
	}
	return report, nil
}

// syncMembers re-saves members whose stored subscription is a stale copy of
// one in updated. Stores that keep the same pointer need no write.
func (s *subscriptionService) syncMembers(ctx context.Context, updated map[string]*domain.Subscription) error {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		held := m.Subscription()
		if held == nil {
			continue
		}
		sub, ok := updated[held.ID()]
		if !ok || held == sub {
			continue
		}
		if err := m.AssignSubscription(sub); err != nil {
			return err
		}
		if err := s.memberRepo.Save(ctx, m); err != nil {
			return err
		}
		if err := s.userRepo.Save(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
