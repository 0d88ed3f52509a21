package service

import (
	"errors"
	"fmt"

	"alcyxob/gym-management/internal/domain"
)

// --- Error Definitions ---
// Each sentinel wraps a domain error kind so the API layer can map it to a
// status code with errors.Is. Services add the offending id with
// fmt.Errorf("%w: %s", ...).
var (
	ErrMemberNotFound       = fmt.Errorf("member %w", domain.ErrNotFound)
	ErrSubscriptionNotFound = fmt.Errorf("subscription %w", domain.ErrNotFound)
	ErrPlanNotFound         = fmt.Errorf("subscription plan %w", domain.ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrExerciseNotFound     = fmt.Errorf("exercise %w", domain.ErrNotFound)

	ErrInvalidSubscription = fmt.Errorf("%w: subscription is expired", domain.ErrInvalidState)
	ErrTrainerAtCapacity   = fmt.Errorf("%w: trainer has reached the member limit", domain.ErrInvalidState)
	ErrAttendanceRecorded  = fmt.Errorf("%w: attendance already recorded", domain.ErrInvalidState)
	ErrNotATrainer         = fmt.Errorf("%w: user is not a trainer", domain.ErrInvalidArgument)

	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

func withID(err error, id string) error {
	return fmt.Errorf("%w: %s", err, id)
}
