package domain

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Subscription is a member's purchase of a plan over a date range.
//
// status is a cached label. IsActive and IsExpired compute from the end date
// and are authoritative; UpdateStatus refreshes the label to match them.
type Subscription struct {
	id        string
	plan      SubscriptionPlan
	startDate civil.Date
	endDate   civil.Date
	status    SubscriptionStatus
	amount    float64
	createdAt civil.Date
}

// NewSubscription starts an ACTIVE subscription to plan on startDate, which
// must not be before today.
func NewSubscription(id string, plan SubscriptionPlan, startDate civil.Date) (*Subscription, error) {
	return NewSubscriptionOn(id, plan, startDate, Today())
}

// NewSubscriptionOn is NewSubscription with an explicit current date.
func NewSubscriptionOn(id string, plan SubscriptionPlan, startDate, today civil.Date) (*Subscription, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidArgument("subscription ID cannot be empty")
	}
	if plan.IsZero() {
		return nil, invalidArgument("subscription plan is required")
	}
	if !startDate.IsValid() {
		return nil, invalidArgument("start date is required")
	}
	if startDate.Before(today) {
		return nil, invalidArgument("start date cannot be in the past")
	}
	return &Subscription{
		id:        id,
		plan:      plan,
		startDate: startDate,
		endDate:   AddMonths(startDate, plan.DurationMonths()),
		status:    StatusActive,
		amount:    plan.Price(),
		createdAt: today,
	}, nil
}

func (s *Subscription) ID() string                 { return s.id }
func (s *Subscription) Plan() SubscriptionPlan     { return s.plan }
func (s *Subscription) StartDate() civil.Date      { return s.startDate }
func (s *Subscription) EndDate() civil.Date        { return s.endDate }
func (s *Subscription) Status() SubscriptionStatus { return s.status }
func (s *Subscription) Amount() float64            { return s.amount }
func (s *Subscription) CreatedAt() civil.Date      { return s.createdAt }

func (s *Subscription) IsActive() bool { return s.IsActiveOn(Today()) }

// IsActiveOn requires both the ACTIVE label and an end date not yet passed.
func (s *Subscription) IsActiveOn(today civil.Date) bool {
	return s.status == StatusActive && !s.IsExpiredOn(today)
}

func (s *Subscription) IsExpired() bool { return s.IsExpiredOn(Today()) }

// IsExpiredOn is true once today is after the end date.
func (s *Subscription) IsExpiredOn(today civil.Date) bool {
	return today.After(s.endDate)
}

func (s *Subscription) IsExpiringWithin(days int) (bool, error) {
	return s.IsExpiringWithinOn(days, Today())
}

// IsExpiringWithinOn reports whether the subscription is still running and
// its end date falls before today+days.
func (s *Subscription) IsExpiringWithinOn(days int, today civil.Date) (bool, error) {
	if days < 0 {
		return false, invalidArgument("days cannot be negative")
	}
	return !s.IsExpiredOn(today) && s.endDate.Before(today.AddDays(days)), nil
}

func (s *Subscription) Cancel() error { return s.CancelOn(Today()) }

// CancelOn moves ACTIVE to CANCELLED.
func (s *Subscription) CancelOn(today civil.Date) error {
	if s.status == StatusCancelled {
		return invalidState("subscription is already cancelled")
	}
	if s.status == StatusExpired || s.IsExpiredOn(today) {
		return invalidState("cannot cancel an expired subscription")
	}
	s.status = StatusCancelled
	return nil
}

func (s *Subscription) Renew(newStartDate civil.Date) (*Subscription, error) {
	return s.RenewOn(newStartDate, Today())
}

// RenewOn returns a new subscription to the same plan starting on
// newStartDate. The receiver is left untouched.
func (s *Subscription) RenewOn(newStartDate, today civil.Date) (*Subscription, error) {
	if !newStartDate.IsValid() || newStartDate.Before(today) {
		return nil, invalidArgument("new start date cannot be in the past")
	}
	if s.status == StatusCancelled {
		return nil, invalidState("cannot renew a cancelled subscription")
	}
	return NewSubscriptionOn(renewalID(s.id), s.plan, newStartDate, today)
}

func renewalID(id string) string {
	return fmt.Sprintf("%s-RENEWAL-%s", id, uuid.NewString())
}

func (s *Subscription) DaysRemaining() int { return s.DaysRemainingOn(Today()) }

// DaysRemainingOn is zero once expired.
func (s *Subscription) DaysRemainingOn(today civil.Date) int {
	if s.IsExpiredOn(today) {
		return 0
	}
	return s.endDate.DaysSince(today)
}

func (s *Subscription) DurationInDays() int {
	return s.endDate.DaysSince(s.startDate)
}

// DailyCost spreads the amount over the calendar days covered.
func (s *Subscription) DailyCost() float64 {
	days := s.DurationInDays()
	if days <= 0 {
		return 0
	}
	return s.amount / float64(days)
}

// UpdateStatus flips ACTIVE to EXPIRED once the end date has passed. Other
// states are left alone, so calling it repeatedly is harmless.
func (s *Subscription) UpdateStatus() bool { return s.UpdateStatusOn(Today()) }

// UpdateStatusOn reports whether the status changed.
func (s *Subscription) UpdateStatusOn(today civil.Date) bool {
	if s.status == StatusActive && s.IsExpiredOn(today) {
		s.status = StatusExpired
		return true
	}
	return false
}
