package domain

import (
	"slices"
	"strings"

	"cloud.google.com/go/civil"
)

// Member is a gym member. The current subscription is referenced, not owned:
// the same *Subscription may also be held by the subscription repository.
type Member struct {
	Account

	memberID           MemberID
	registrationDate   civil.Date
	subscription       *Subscription
	workoutScheduleIDs []string
	attendanceIDs      []string
	progress           ProgressMetrics
}

// NewMember registers a member today with zeroed progress.
func NewMember(info AccountInfo, memberID MemberID) (*Member, error) {
	acct, err := newAccount(info, RoleMember)
	if err != nil {
		return nil, err
	}
	if memberID.IsZero() {
		return nil, invalidArgument("member ID cannot be empty")
	}
	today := Today()
	return &Member{
		Account:          acct,
		memberID:         memberID,
		registrationDate: today,
		progress:         InitialProgress(memberID.String(), today),
	}, nil
}

func (m *Member) MemberID() MemberID           { return m.memberID }
func (m *Member) RegistrationDate() civil.Date { return m.registrationDate }
func (m *Member) Subscription() *Subscription  { return m.subscription }
func (m *Member) Progress() ProgressMetrics    { return m.progress }
func (m *Member) WorkoutScheduleIDs() []string { return slices.Clone(m.workoutScheduleIDs) }
func (m *Member) AttendanceIDs() []string      { return slices.Clone(m.attendanceIDs) }

func (m *Member) AssignSubscription(sub *Subscription) error {
	if sub == nil {
		return invalidArgument("subscription cannot be nil")
	}
	m.subscription = sub
	m.touch()
	return nil
}

func (m *Member) RemoveSubscription() {
	m.subscription = nil
	m.touch()
}

// HasActiveSubscription consults the subscription's computed activity, not
// just its cached status.
func (m *Member) HasActiveSubscription() bool {
	return m.HasActiveSubscriptionOn(Today())
}

func (m *Member) HasActiveSubscriptionOn(today civil.Date) bool {
	return m.subscription != nil && m.subscription.IsActiveOn(today)
}

func (m *Member) AddWorkoutSchedule(scheduleID string) error {
	if strings.TrimSpace(scheduleID) == "" {
		return invalidArgument("schedule ID cannot be empty")
	}
	if !slices.Contains(m.workoutScheduleIDs, scheduleID) {
		m.workoutScheduleIDs = append(m.workoutScheduleIDs, scheduleID)
		m.touch()
	}
	return nil
}

func (m *Member) RemoveWorkoutSchedule(scheduleID string) {
	if i := slices.Index(m.workoutScheduleIDs, scheduleID); i >= 0 {
		m.workoutScheduleIDs = slices.Delete(m.workoutScheduleIDs, i, i+1)
		m.touch()
	}
}

func (m *Member) AddAttendance(attendanceID string) error {
	if strings.TrimSpace(attendanceID) == "" {
		return invalidArgument("attendance ID cannot be empty")
	}
	if !slices.Contains(m.attendanceIDs, attendanceID) {
		m.attendanceIDs = append(m.attendanceIDs, attendanceID)
		m.touch()
	}
	return nil
}

// UpdateProgress replaces the progress snapshot with fresh measurements dated
// today. Notes are cleared.
func (m *Member) UpdateProgress(weight, bodyFat float64, workoutsCompleted int) error {
	next, err := NewProgressMetrics(m.memberID.String(), Today(), weight, bodyFat, workoutsCompleted, "")
	if err != nil {
		return err
	}
	m.progress = next
	m.touch()
	return nil
}

func (m *Member) IncrementWorkouts() {
	m.progress = m.progress.IncrementWorkouts()
	m.touch()
}

func (m *Member) MembershipDurationInDays() int {
	return Today().DaysSince(m.registrationDate)
}

// AttendanceRate is attended sessions over scheduled sessions, as a
// percentage. Zero when nothing is scheduled.
func (m *Member) AttendanceRate() float64 {
	if len(m.workoutScheduleIDs) == 0 {
		return 0
	}
	return float64(len(m.attendanceIDs)) / float64(len(m.workoutScheduleIDs)) * 100
}
