package domain_test

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/domain"
)

var (
	jan1  = civil.Date{Year: 2025, Month: time.January, Day: 1}
	jan31 = civil.Date{Year: 2025, Month: time.January, Day: 31}
)

func monthlyPlan(t *testing.T) domain.SubscriptionPlan {
	t.Helper()
	plan, err := domain.NewBasicPlan("B1", "Basic Monthly", 1, 31)
	require.NoError(t, err)
	return plan
}

func TestNewSubscription(t *testing.T) {
	plan := monthlyPlan(t)

	sub, err := domain.NewSubscriptionOn("SUB-1", plan, jan1, jan1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, sub.Status())
	assert.Equal(t, civil.Date{Year: 2025, Month: time.February, Day: 1}, sub.EndDate())
	assert.Equal(t, 31.0, sub.Amount())
	assert.Equal(t, jan1, sub.CreatedAt())
	assert.Equal(t, 31, sub.DurationInDays())
	assert.InDelta(t, 1.0, sub.DailyCost(), 1e-9)
	assert.True(t, sub.IsActiveOn(jan1))

	_, err = domain.NewSubscriptionOn("SUB-2", plan, jan1, jan1.AddDays(1))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.EqualError(t, err, "start date cannot be in the past")

	_, err = domain.NewSubscriptionOn("", plan, jan1, jan1)
	assert.EqualError(t, err, "subscription ID cannot be empty")

	_, err = domain.NewSubscriptionOn("SUB-3", domain.SubscriptionPlan{}, jan1, jan1)
	assert.EqualError(t, err, "subscription plan is required")

	// Month arithmetic clamps to the end of February.
	late, err := domain.NewSubscriptionOn("SUB-4", plan, jan31, jan1)
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.February, Day: 28}, late.EndDate())
}

func TestSubscriptionExpiryIsExclusiveOfEndDate(t *testing.T) {
	sub, err := domain.NewSubscriptionOn("SUB-1", monthlyPlan(t), jan1, jan1)
	require.NoError(t, err)
	end := sub.EndDate()

	assert.False(t, sub.IsExpiredOn(end))
	assert.True(t, sub.IsActiveOn(end))
	assert.True(t, sub.IsExpiredOn(end.AddDays(1)))
	assert.False(t, sub.IsActiveOn(end.AddDays(1)))

	assert.Equal(t, 31, sub.DaysRemainingOn(jan1))
	assert.Equal(t, 0, sub.DaysRemainingOn(end))
	assert.Equal(t, 0, sub.DaysRemainingOn(end.AddDays(10)))
}

func TestSubscriptionUpdateStatus(t *testing.T) {
	sub, err := domain.NewSubscriptionOn("SUB-1", monthlyPlan(t), jan1, jan1)
	require.NoError(t, err)
	after := sub.EndDate().AddDays(1)

	assert.False(t, sub.UpdateStatusOn(jan1))
	assert.Equal(t, domain.StatusActive, sub.Status())

	// The label lags until refreshed; activity does not.
	assert.False(t, sub.IsActiveOn(after))
	assert.Equal(t, domain.StatusActive, sub.Status())

	assert.True(t, sub.UpdateStatusOn(after))
	assert.Equal(t, domain.StatusExpired, sub.Status())
	assert.False(t, sub.UpdateStatusOn(after))
	assert.Equal(t, domain.StatusExpired, sub.Status())
}

func TestSubscriptionCancel(t *testing.T) {
	sub, err := domain.NewSubscriptionOn("SUB-1", monthlyPlan(t), jan1, jan1)
	require.NoError(t, err)

	require.NoError(t, sub.CancelOn(jan1))
	assert.Equal(t, domain.StatusCancelled, sub.Status())
	assert.False(t, sub.IsActiveOn(jan1))

	err = sub.CancelOn(jan1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.EqualError(t, err, "subscription is already cancelled")

	// Cancelling does not move the end date.
	assert.Equal(t, civil.Date{Year: 2025, Month: time.February, Day: 1}, sub.EndDate())

	expired, err := domain.NewSubscriptionOn("SUB-2", monthlyPlan(t), jan1, jan1)
	require.NoError(t, err)
	err = expired.CancelOn(expired.EndDate().AddDays(1))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.EqualError(t, err, "cannot cancel an expired subscription")
	assert.Equal(t, domain.StatusActive, expired.Status())
}

func TestSubscriptionRenew(t *testing.T) {
	original, err := domain.NewSubscriptionOn("SUB-1", monthlyPlan(t), jan1, jan1)
	require.NoError(t, err)
	renewStart := original.EndDate().AddDays(1)

	renewed, err := original.RenewOn(renewStart, jan1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(renewed.ID(), "SUB-1-RENEWAL-"))
	assert.Equal(t, original.Plan(), renewed.Plan())
	assert.Equal(t, renewStart, renewed.StartDate())
	assert.Equal(t, domain.StatusActive, renewed.Status())

	again, err := original.RenewOn(renewStart, jan1)
	require.NoError(t, err)
	assert.NotEqual(t, renewed.ID(), again.ID())

	// Expiring the original leaves the renewal untouched.
	assert.True(t, original.UpdateStatusOn(renewStart))
	assert.Equal(t, domain.StatusExpired, original.Status())
	assert.Equal(t, domain.StatusActive, renewed.Status())
	assert.True(t, renewed.IsActiveOn(renewStart))

	_, err = original.RenewOn(jan1.AddDays(-1), jan1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.EqualError(t, err, "new start date cannot be in the past")

	cancelled, err := domain.NewSubscriptionOn("SUB-2", monthlyPlan(t), jan1, jan1)
	require.NoError(t, err)
	require.NoError(t, cancelled.CancelOn(jan1))
	_, err = cancelled.RenewOn(jan1, jan1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.EqualError(t, err, "cannot renew a cancelled subscription")
}

func TestSubscriptionIsExpiringWithin(t *testing.T) {
	sub, err := domain.NewSubscriptionOn("SUB-1", monthlyPlan(t), jan1, jan1)
	require.NoError(t, err)
	end := sub.EndDate()

	expiring, err := sub.IsExpiringWithinOn(7, end.AddDays(-3))
	require.NoError(t, err)
	assert.True(t, expiring)

	expiring, err = sub.IsExpiringWithinOn(7, jan1)
	require.NoError(t, err)
	assert.False(t, expiring)

	expiring, err = sub.IsExpiringWithinOn(7, end.AddDays(1))
	require.NoError(t, err)
	assert.False(t, expiring)

	_, err = sub.IsExpiringWithinOn(-1, jan1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRestoreSubscriptionAllowsPastStart(t *testing.T) {
	plan := monthlyPlan(t)
	sub, err := domain.RestoreSubscription(domain.SubscriptionRecord{
		ID:        "SUB-OLD",
		Plan:      plan,
		StartDate: civil.Date{Year: 2020, Month: time.March, Day: 31},
		Status:    domain.StatusActive,
		Amount:    31,
		CreatedAt: civil.Date{Year: 2020, Month: time.March, Day: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2020, Month: time.April, Day: 30}, sub.EndDate())
	assert.True(t, sub.IsExpired())

	_, err = domain.RestoreSubscription(domain.SubscriptionRecord{ID: "X", Plan: plan, StartDate: jan1, Status: "LIMBO"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
