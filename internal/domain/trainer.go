package domain

import (
	"slices"
	"strings"
	"time"
)

// Trainer is a fitness trainer. New trainers start available.
type Trainer struct {
	Account

	specialization     Specialization
	yearsOfExperience  int
	available          bool
	certifiedAt        time.Time
	memberIDs          []MemberID
	workoutScheduleIDs []string
}

func NewTrainer(info AccountInfo, specialization Specialization, yearsOfExperience int) (*Trainer, error) {
	acct, err := newAccount(info, RoleTrainer)
	if err != nil {
		return nil, err
	}
	if !specialization.Valid() {
		return nil, invalidArgument("specialization is required")
	}
	if yearsOfExperience < 0 {
		return nil, invalidArgument("years of experience cannot be negative")
	}
	return &Trainer{
		Account:           acct,
		specialization:    specialization,
		yearsOfExperience: yearsOfExperience,
		available:         true,
		certifiedAt:       acct.createdAt,
	}, nil
}

func (t *Trainer) Specialization() Specialization { return t.specialization }
func (t *Trainer) YearsOfExperience() int         { return t.yearsOfExperience }
func (t *Trainer) IsAvailable() bool              { return t.available }
func (t *Trainer) CertifiedAt() time.Time         { return t.certifiedAt }
func (t *Trainer) AssignedMemberIDs() []MemberID  { return slices.Clone(t.memberIDs) }
func (t *Trainer) WorkoutScheduleIDs() []string   { return slices.Clone(t.workoutScheduleIDs) }

// AssignMember adds memberID to the trainer's roster. Assigning the same
// member twice is a no-op.
func (t *Trainer) AssignMember(memberID MemberID) error {
	if memberID.IsZero() {
		return invalidArgument("member ID cannot be empty")
	}
	if !t.available {
		return invalidState("trainer is not available for new assignments")
	}
	if !slices.Contains(t.memberIDs, memberID) {
		t.memberIDs = append(t.memberIDs, memberID)
		t.touch()
	}
	return nil
}

func (t *Trainer) RemoveMember(memberID MemberID) {
	if i := slices.Index(t.memberIDs, memberID); i >= 0 {
		t.memberIDs = slices.Delete(t.memberIDs, i, i+1)
		t.touch()
	}
}

func (t *Trainer) HasMember(memberID MemberID) bool {
	return slices.Contains(t.memberIDs, memberID)
}

func (t *Trainer) AddWorkoutSchedule(scheduleID string) error {
	if strings.TrimSpace(scheduleID) == "" {
		return invalidArgument("schedule ID cannot be empty")
	}
	if !slices.Contains(t.workoutScheduleIDs, scheduleID) {
		t.workoutScheduleIDs = append(t.workoutScheduleIDs, scheduleID)
		t.touch()
	}
	return nil
}

func (t *Trainer) RemoveWorkoutSchedule(scheduleID string) {
	if i := slices.Index(t.workoutScheduleIDs, scheduleID); i >= 0 {
		t.workoutScheduleIDs = slices.Delete(t.workoutScheduleIDs, i, i+1)
		t.touch()
	}
}

func (t *Trainer) UpdateExperience(years int) error {
	if years < 0 {
		return invalidArgument("years of experience cannot be negative")
	}
	t.yearsOfExperience = years
	t.touch()
	return nil
}

func (t *Trainer) SetAvailability(available bool) {
	t.available = available
	t.touch()
}

// Workload is the number of assigned members.
func (t *Trainer) Workload() int { return len(t.memberIDs) }

func (t *Trainer) ScheduleWorkload() int { return len(t.workoutScheduleIDs) }

// CanHandleMoreMembers reports whether the roster is below limit.
func (t *Trainer) CanHandleMoreMembers(limit int) bool {
	return len(t.memberIDs) < limit
}

// IsQualifiedFor is true for the trainer's own specialization, and for every
// specialization when the trainer is a generalist.
func (t *Trainer) IsQualifiedFor(s Specialization) bool {
	return t.specialization == s || t.specialization == SpecializationGeneral
}

func (t *Trainer) ExperienceLevel() string {
	switch {
	case t.yearsOfExperience < 2:
		return "Junior"
	case t.yearsOfExperience < 5:
		return "Intermediate"
	case t.yearsOfExperience < 10:
		return "Senior"
	default:
		return "Expert"
	}
}
