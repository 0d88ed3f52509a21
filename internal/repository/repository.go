package repository

import (
	"alcyxob/gym-management/internal/domain" // Import our defined domain models
	"context"                                 // Standard for request-scoped deadlines, cancellation signals, etc.
	"fmt"

	"cloud.google.com/go/civil"
)

// Error constants for repository layer. Both wrap a domain error kind so
// services can classify them with errors.Is.
var (
	ErrNotFound  = fmt.Errorf("record %w", domain.ErrNotFound)
	ErrDuplicate = fmt.Errorf("%w: duplicate key", domain.ErrInvalidArgument)
)

// DuplicateError reports a uniqueness violation on field, e.g.
// "username already exists: john_doe".
func DuplicateError(field, value string) error {
	return &domain.Error{Kind: ErrDuplicate, Message: fmt.Sprintf("%s already exists: %s", field, value)}
}

// UserRepository stores every user variant. Username and email are unique
// across all users.
type UserRepository interface {
	// Save inserts or replaces the user keyed by its user ID.
	Save(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, userID string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	FindActive(ctx context.Context) ([]domain.User, error)
	FindInactive(ctx context.Context) ([]domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	ExistsByID(ctx context.Context, userID string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// DeleteByID reports whether a user was removed.
	DeleteByID(ctx context.Context, userID string) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role domain.Role) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountInactive(ctx context.Context) (int, error)
}

// MemberRepository stores members keyed by member ID. The member's user ID
// is unique.
type MemberRepository interface {
	Save(ctx context.Context, member *domain.Member) error
	FindByID(ctx context.Context, memberID domain.MemberID) (*domain.Member, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Member, error)
	FindRegisteredAfter(ctx context.Context, date civil.Date) ([]*domain.Member, error)
	FindRegisteredBefore(ctx context.Context, date civil.Date) ([]*domain.Member, error)
	FindWithActiveSubscriptions(ctx context.Context) ([]*domain.Member, error)
	FindWithoutActiveSubscriptions(ctx context.Context) ([]*domain.Member, error)
	FindActive(ctx context.Context) ([]*domain.Member, error)
	FindInactive(ctx context.Context) ([]*domain.Member, error)
	FindAll(ctx context.Context) ([]*domain.Member, error)
	ExistsByID(ctx context.Context, memberID domain.MemberID) (bool, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	DeleteByID(ctx context.Context, memberID domain.MemberID) (bool, error)
	Count(ctx context.Context) (int, error)
	CountWithActiveSubscriptions(ctx context.Context) (int, error)
	CountWithoutActiveSubscriptions(ctx context.Context) (int, error)
	// FindRegisteredInMonth and CountByRegistrationMonth accept years
	// 1900-2100 and months 1-12.
	FindRegisteredInMonth(ctx context.Context, year, month int) ([]*domain.Member, error)
	CountByRegistrationMonth(ctx context.Context, year, month int) (int, error)
}

// SubscriptionRepository stores subscriptions keyed by subscription ID.
type SubscriptionRepository interface {
	Save(ctx context.Context, sub *domain.Subscription) error
	FindByID(ctx context.Context, id string) (*domain.Subscription, error)
	FindByStatus(ctx context.Context, status domain.SubscriptionStatus) ([]*domain.Subscription, error)
	FindActive(ctx context.Context) ([]*domain.Subscription, error)
	FindExpired(ctx context.Context) ([]*domain.Subscription, error)
	// FindExpiringBy returns running subscriptions whose end date is on or before date.
	FindExpiringBy(ctx context.Context, date civil.Date) ([]*domain.Subscription, error)
	FindStartingAfter(ctx context.Context, date civil.Date) ([]*domain.Subscription, error)
	FindEndingBefore(ctx context.Context, date civil.Date) ([]*domain.Subscription, error)
	FindCreatedOn(ctx context.Context, date civil.Date) ([]*domain.Subscription, error)
	FindAll(ctx context.Context) ([]*domain.Subscription, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.SubscriptionStatus) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountExpired(ctx context.Context) (int, error)
	CountExpiringBy(ctx context.Context, date civil.Date) (int, error)
	TotalRevenue(ctx context.Context) (float64, error)
	ActiveRevenue(ctx context.Context) (float64, error)
}

// ExerciseRepository stores the exercise library keyed by exercise ID.
type ExerciseRepository interface {
	Save(ctx context.Context, exercise *domain.Exercise) error
	FindByID(ctx context.Context, id string) (*domain.Exercise, error)
	FindByType(ctx context.Context, typ domain.ExerciseType) ([]*domain.Exercise, error)
	FindByDifficulty(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error)
	// FindSuitableFor returns exercises at or below level.
	FindSuitableFor(ctx context.Context, level domain.DifficultyLevel) ([]*domain.Exercise, error)
	FindByTargetMuscle(ctx context.Context, muscle string) ([]*domain.Exercise, error)
	FindByEquipment(ctx context.Context, equipment string) ([]*domain.Exercise, error)
	FindActive(ctx context.Context) ([]*domain.Exercise, error)
	FindInactive(ctx context.Context) ([]*domain.Exercise, error)
	FindAll(ctx context.Context) ([]*domain.Exercise, error)
	// SearchByName matches a case-insensitive substring of the name.
	SearchByName(ctx context.Context, query string) ([]*domain.Exercise, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByType(ctx context.Context, typ domain.ExerciseType) (int, error)
	CountByDifficulty(ctx context.Context, level domain.DifficultyLevel) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountByTargetMuscle(ctx context.Context, muscle string) (int, error)
}

// PlanRepository stores the subscription plan catalogue keyed by plan ID.
type PlanRepository interface {
	Save(ctx context.Context, plan domain.SubscriptionPlan) error
	FindByID(ctx context.Context, id string) (domain.SubscriptionPlan, error)
	FindAll(ctx context.Context) ([]domain.SubscriptionPlan, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
