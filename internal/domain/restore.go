package domain

import (
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// The Restore* constructors rebuild entities loaded from storage. They check
// structural invariants but skip rules that only hold at creation time, such
// as a start date not being in the past.

// MemberRecord is the persisted member-specific state.
type MemberRecord struct {
	MemberID           MemberID
	RegistrationDate   civil.Date
	Subscription       *Subscription
	WorkoutScheduleIDs []string
	AttendanceIDs      []string
	Progress           ProgressMetrics
}

func RestoreMember(acct AccountState, r MemberRecord) (*Member, error) {
	a, err := restoreAccount(acct, RoleMember)
	if err != nil {
		return nil, err
	}
	if r.MemberID.IsZero() {
		return nil, invalidArgument("member ID cannot be empty")
	}
	if !r.RegistrationDate.IsValid() {
		return nil, invalidArgument("registration date is invalid")
	}
	return &Member{
		Account:            a,
		memberID:           r.MemberID,
		registrationDate:   r.RegistrationDate,
		subscription:       r.Subscription,
		workoutScheduleIDs: dedupe(r.WorkoutScheduleIDs),
		attendanceIDs:      dedupe(r.AttendanceIDs),
		progress:           r.Progress,
	}, nil
}

// TrainerRecord is the persisted trainer-specific state.
type TrainerRecord struct {
	Specialization     Specialization
	YearsOfExperience  int
	Available          bool
	CertifiedAt        time.Time
	MemberIDs          []MemberID
	WorkoutScheduleIDs []string
}

func RestoreTrainer(acct AccountState, r TrainerRecord) (*Trainer, error) {
	a, err := restoreAccount(acct, RoleTrainer)
	if err != nil {
		return nil, err
	}
	if !r.Specialization.Valid() {
		return nil, invalidArgument("specialization is required")
	}
	if r.YearsOfExperience < 0 {
		return nil, invalidArgument("years of experience cannot be negative")
	}
	return &Trainer{
		Account:            a,
		specialization:     r.Specialization,
		yearsOfExperience:  r.YearsOfExperience,
		available:          r.Available,
		certifiedAt:        r.CertifiedAt,
		memberIDs:          dedupe(r.MemberIDs),
		workoutScheduleIDs: dedupe(r.WorkoutScheduleIDs),
	}, nil
}

// AdminRecord is the persisted admin-specific state.
type AdminRecord struct {
	AdminLevel  string
	Permissions AdminPermissions
	AdminSince  time.Time
}

func RestoreAdmin(acct AccountState, r AdminRecord) (*Admin, error) {
	a, err := restoreAccount(acct, RoleAdmin)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(r.AdminLevel) == "" {
		return nil, invalidArgument("admin level cannot be empty")
	}
	return &Admin{
		Account:     a,
		adminLevel:  r.AdminLevel,
		permissions: r.Permissions,
		adminSince:  r.AdminSince,
	}, nil
}

// SubscriptionRecord is the persisted form of a Subscription. The end date is
// derived from the plan and start date.
type SubscriptionRecord struct {
	ID        string
	Plan      SubscriptionPlan
	StartDate civil.Date
	Status    SubscriptionStatus
	Amount    float64
	CreatedAt civil.Date
}

func RestoreSubscription(r SubscriptionRecord) (*Subscription, error) {
	if strings.TrimSpace(r.ID) == "" {
		return nil, invalidArgument("subscription ID cannot be empty")
	}
	if r.Plan.IsZero() {
		return nil, invalidArgument("subscription plan is required")
	}
	if !r.StartDate.IsValid() {
		return nil, invalidArgument("start date is invalid")
	}
	if !r.Status.Valid() {
		return nil, invalidArgument("unknown subscription status: %q", r.Status)
	}
	if r.Amount < 0 {
		return nil, invalidArgument("amount cannot be negative")
	}
	return &Subscription{
		id:        r.ID,
		plan:      r.Plan,
		startDate: r.StartDate,
		endDate:   AddMonths(r.StartDate, r.Plan.DurationMonths()),
		status:    r.Status,
		amount:    r.Amount,
		createdAt: r.CreatedAt,
	}, nil
}

// RestoreExercise validates p like NewExercise and applies the stored active flag.
func RestoreExercise(p ExerciseParams, active bool) (*Exercise, error) {
	e, err := NewExercise(p)
	if err != nil {
		return nil, err
	}
	e.active = active
	return e, nil
}

func dedupe[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
