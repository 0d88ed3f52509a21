package domain

// PlanType is the tier of a subscription plan. Tiers are ordered by HierarchyLevel.
type PlanType string

const (
	PlanBasic    PlanType = "BASIC"
	PlanStandard PlanType = "STANDARD"
	PlanPremium  PlanType = "PREMIUM"
	PlanVIP      PlanType = "VIP"
)

type planTypeRow struct {
	describedValue
	level int
}

var planTypeInfo = map[PlanType]planTypeRow{
	PlanBasic:    {describedValue{"Basic", "Basic gym access with standard equipment"}, 1},
	PlanStandard: {describedValue{"Standard", "Gym access plus group classes"}, 2},
	PlanPremium:  {describedValue{"Premium", "Full access including personal training sessions"}, 3},
	PlanVIP:      {describedValue{"VIP", "All premium features plus exclusive services"}, 4},
}

// PlanTypes lists every tier from lowest to highest.
func PlanTypes() []PlanType {
	return []PlanType{PlanBasic, PlanStandard, PlanPremium, PlanVIP}
}

func ParsePlanType(s string) (PlanType, error) {
	p := PlanType(s)
	if !p.Valid() {
		return "", invalidArgument("unknown plan type: %q", s)
	}
	return p, nil
}

func (p PlanType) Valid() bool {
	_, ok := planTypeInfo[p]
	return ok
}

func (p PlanType) DisplayName() string { return planTypeInfo[p].displayName }
func (p PlanType) Description() string { return planTypeInfo[p].description }
func (p PlanType) HierarchyLevel() int { return planTypeInfo[p].level }

// HasMoreFeaturesThan reports whether p sits strictly above other.
func (p PlanType) HasMoreFeaturesThan(other PlanType) bool {
	return p.HierarchyLevel() > other.HierarchyLevel()
}
