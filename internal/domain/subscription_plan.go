package domain

import (
	"math"
	"strings"
)

// PlanParams carries the attributes of a SubscriptionPlan into NewSubscriptionPlan.
type PlanParams struct {
	ID                      string
	Name                    string
	DurationMonths          int
	Price                   float64
	Description             string
	Type                    PlanType
	IncludesPersonalTrainer bool
	IncludesGroupClasses    bool
	IncludesLockerAccess    bool
}

// SubscriptionPlan is an immutable plan offering. Two plans are equal (==)
// when every attribute matches.
type SubscriptionPlan struct {
	id               string
	name             string
	durationMonths   int
	price            float64
	description      string
	planType         PlanType
	personalTraining bool
	groupClasses     bool
	lockerAccess     bool
}

// NewSubscriptionPlan validates p and builds the plan.
func NewSubscriptionPlan(p PlanParams) (SubscriptionPlan, error) {
	if strings.TrimSpace(p.ID) == "" {
		return SubscriptionPlan{}, invalidArgument("plan ID cannot be empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return SubscriptionPlan{}, invalidArgument("plan name cannot be empty")
	}
	if p.DurationMonths <= 0 {
		return SubscriptionPlan{}, invalidArgument("duration must be positive")
	}
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return SubscriptionPlan{}, invalidArgument("price cannot be negative")
	}
	if !p.Type.Valid() {
		return SubscriptionPlan{}, invalidArgument("plan type is required")
	}
	return SubscriptionPlan{
		id:               p.ID,
		name:             p.Name,
		durationMonths:   p.DurationMonths,
		price:            p.Price,
		description:      p.Description,
		planType:         p.Type,
		personalTraining: p.IncludesPersonalTrainer,
		groupClasses:     p.IncludesGroupClasses,
		lockerAccess:     p.IncludesLockerAccess,
	}, nil
}

// NewBasicPlan builds a BASIC plan without extra features.
func NewBasicPlan(id, name string, durationMonths int, price float64) (SubscriptionPlan, error) {
	return NewSubscriptionPlan(PlanParams{
		ID:             id,
		Name:           name,
		DurationMonths: durationMonths,
		Price:          price,
		Description:    "Basic gym access",
		Type:           PlanBasic,
	})
}

// NewPremiumPlan builds a PREMIUM plan with every feature included.
func NewPremiumPlan(id, name string, durationMonths int, price float64) (SubscriptionPlan, error) {
	return NewSubscriptionPlan(PlanParams{
		ID:                      id,
		Name:                    name,
		DurationMonths:          durationMonths,
		Price:                   price,
		Description:             "Premium gym access with all features",
		Type:                    PlanPremium,
		IncludesPersonalTrainer: true,
		IncludesGroupClasses:    true,
		IncludesLockerAccess:    true,
	})
}

func (p SubscriptionPlan) ID() string                    { return p.id }
func (p SubscriptionPlan) Name() string                  { return p.name }
func (p SubscriptionPlan) DurationMonths() int           { return p.durationMonths }
func (p SubscriptionPlan) Price() float64                { return p.price }
func (p SubscriptionPlan) Description() string           { return p.description }
func (p SubscriptionPlan) Type() PlanType                { return p.planType }
func (p SubscriptionPlan) IncludesPersonalTrainer() bool { return p.personalTraining }
func (p SubscriptionPlan) IncludesGroupClasses() bool    { return p.groupClasses }
func (p SubscriptionPlan) IncludesLockerAccess() bool    { return p.lockerAccess }

// MonthlyCost spreads the plan price evenly over its months.
func (p SubscriptionPlan) MonthlyCost() float64 {
	return p.price / float64(p.durationMonths)
}

// DailyCost assumes 30 day months.
func (p SubscriptionPlan) DailyCost() float64 {
	return p.price / float64(p.durationMonths*30)
}

func (p SubscriptionPlan) IsMoreExpensiveThan(other SubscriptionPlan) bool {
	return p.price > other.price
}

func (p SubscriptionPlan) HasSameFeaturesAs(other SubscriptionPlan) bool {
	return p.personalTraining == other.personalTraining &&
		p.groupClasses == other.groupClasses &&
		p.lockerAccess == other.lockerAccess
}

// IsZero reports whether p is the zero plan returned alongside errors.
func (p SubscriptionPlan) IsZero() bool {
	return p == SubscriptionPlan{}
}
