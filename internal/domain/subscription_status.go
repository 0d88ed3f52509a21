package domain

// SubscriptionStatus is the cached lifecycle label of a Subscription.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "ACTIVE"
	StatusCancelled SubscriptionStatus = "CANCELLED"
	StatusExpired   SubscriptionStatus = "EXPIRED"
	StatusSuspended SubscriptionStatus = "SUSPENDED"
)

var subscriptionStatusInfo = map[SubscriptionStatus]describedValue{
	StatusActive:    {"Active", "Subscription is currently active"},
	StatusCancelled: {"Cancelled", "Subscription has been cancelled"},
	StatusExpired:   {"Expired", "Subscription has expired"},
	StatusSuspended: {"Suspended", "Subscription is temporarily suspended"},
}

func SubscriptionStatuses() []SubscriptionStatus {
	return []SubscriptionStatus{StatusActive, StatusCancelled, StatusExpired, StatusSuspended}
}

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	st := SubscriptionStatus(s)
	if !st.Valid() {
		return "", invalidArgument("unknown subscription status: %q", s)
	}
	return st, nil
}

func (s SubscriptionStatus) Valid() bool {
	_, ok := subscriptionStatusInfo[s]
	return ok
}

func (s SubscriptionStatus) DisplayName() string { return subscriptionStatusInfo[s].displayName }
func (s SubscriptionStatus) Description() string { return subscriptionStatusInfo[s].description }

func (s SubscriptionStatus) IsActive() bool    { return s == StatusActive }
func (s SubscriptionStatus) IsCancelled() bool { return s == StatusCancelled }
func (s SubscriptionStatus) IsExpired() bool   { return s == StatusExpired }
func (s SubscriptionStatus) IsSuspended() bool { return s == StatusSuspended }

// AllowsAccess reports whether a member holding a subscription in this
// status may use the facilities.
func (s SubscriptionStatus) AllowsAccess() bool { return s == StatusActive }
