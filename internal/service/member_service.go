package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// --- Service Interface ---

// MemberService covers member registration, subscriptions, progress tracking
// and the member statistics used on the reception dashboard.
type MemberService interface {
	CreateMember(ctx context.Context, info domain.AccountInfo, memberID string) (*domain.Member, error)
	FindByID(ctx context.Context, memberID string) (*domain.Member, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Member, error)

	AssignSubscription(ctx context.Context, memberID, subscriptionID string) (*domain.Member, error)
	RemoveSubscription(ctx context.Context, memberID string) (*domain.Member, error)

	UpdateProgress(ctx context.Context, memberID string, weight, bodyFat float64, workoutsCompleted int) (*domain.Member, error)
	IncrementWorkouts(ctx context.Context, memberID string) (*domain.Member, error)
	AddWorkoutSchedule(ctx context.Context, memberID, scheduleID string) (*domain.Member, error)
	// RecordAttendance checks the member in for today and counts the visit as a workout.
	RecordAttendance(ctx context.Context, memberID string) (*domain.Member, error)

	MembersWithActiveSubscriptions(ctx context.Context) ([]*domain.Member, error)
	MembersWithoutActiveSubscriptions(ctx context.Context) ([]*domain.Member, error)
	AllMembers(ctx context.Context) ([]*domain.Member, error)
	MembersByRegistrationMonth(ctx context.Context, year, month int) ([]*domain.Member, error)
	RegistrationCount(ctx context.Context, year, month int) (int, error)
	TotalMemberCount(ctx context.Context) (int, error)
	ActiveSubscriptionCount(ctx context.Context) (int, error)
	// MemberRetentionRate is the percentage of members holding an active
	// subscription, 0 when there are no members.
	MemberRetentionRate(ctx context.Context) (float64, error)
}

// --- Service Implementation ---

type memberService struct {
	memberRepo       repository.MemberRepository
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(
	memberRepo repository.MemberRepository,
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) MemberService {
	return &memberService{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// CreateMember registers a new member. The member is stored in both the
// member and the user repository so it can log in.
func (s *memberService) CreateMember(ctx context.Context, info domain.AccountInfo, memberID string) (*domain.Member, error) {
	// 1. Validate input through the domain constructors
	id, err := domain.NewMemberID(memberID)
	if err != nil {
		return nil, err
	}
	member, err := domain.NewMember(info, id)
	if err != nil {
		return nil, err
	}

	// 2. Check both primary keys are free; username and email are checked by the repository
	exists, err := s.memberRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.DuplicateError("member ID", id.String())
	}
	exists, err = s.userRepo.ExistsByID(ctx, member.UserID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.DuplicateError("user ID", member.UserID())
	}

	// 3. Persist, undoing the user record if the member cannot be stored
	if err := s.userRepo.Save(ctx, member); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Save(ctx, member); err != nil {
		if _, rbErr := s.userRepo.DeleteByID(ctx, member.UserID()); rbErr != nil {
			return nil, errors.Join(err, fmt.Errorf("rollback user %s: %w", member.UserID(), rbErr))
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) FindByID(ctx context.Context, memberID string) (*domain.Member, error) {
	id, err := domain.NewMemberID(memberID)
	if err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, withID(ErrMemberNotFound, memberID)
	}
	return member, err
}

func (s *memberService) FindByUserID(ctx context.Context, userID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, withID(ErrMemberNotFound, userID)
	}
	return member, err
}

// AssignSubscription attaches an existing subscription to the member.
// Subscriptions that are expired, by cached status or by date, are refused.
func (s *memberService) AssignSubscription(ctx context.Context, memberID, subscriptionID string) (*domain.Member, error) {
	member, err := s.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, withID(ErrSubscriptionNotFound, subscriptionID)
		}
		return nil, err
	}
	if sub.Status().IsExpired() || sub.IsExpired() {
		return nil, withID(ErrInvalidSubscription, subscriptionID)
	}

	if err := member.AssignSubscription(sub); err != nil {
		return nil, err
	}
	if err := s.save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) RemoveSubscription(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.mutate(ctx, memberID, func(m *domain.Member) error {
		m.RemoveSubscription()
		return nil
	})
}

func (s *memberService) UpdateProgress(ctx context.Context, memberID string, weight, bodyFat float64, workoutsCompleted int) (*domain.Member, error) {
	return s.mutate(ctx, memberID, func(m *domain.Member) error {
		return m.UpdateProgress(weight, bodyFat, workoutsCompleted)
	})
}

func (s *memberService) IncrementWorkouts(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.mutate(ctx, memberID, func(m *domain.Member) error {
		m.IncrementWorkouts()
		return nil
	})
}

func (s *memberService) AddWorkoutSchedule(ctx context.Context, memberID, scheduleID string) (*domain.Member, error) {
	return s.mutate(ctx, memberID, func(m *domain.Member) error {
		return m.AddWorkoutSchedule(scheduleID)
	})
}

func (s *memberService) RecordAttendance(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.mutate(ctx, memberID, func(m *domain.Member) error {
		attendanceID := AttendanceID(m.MemberID(), domain.Today().String())
		if slices.Contains(m.AttendanceIDs(), attendanceID) {
			return withID(ErrAttendanceRecorded, attendanceID)
		}
		if err := m.AddAttendance(attendanceID); err != nil {
			return err
		}
		m.IncrementWorkouts()
		return nil
	})
}

// AttendanceID is the identifier of a member's visit on date (YYYY-MM-DD).
func AttendanceID(memberID domain.MemberID, date string) string {
	return fmt.Sprintf("ATT-%s-%s", memberID, date)
}

// === Statistics ===

func (s *memberService) MembersWithActiveSubscriptions(ctx context.Context) ([]*domain.Member, error) {
	return s.memberRepo.FindWithActiveSubscriptions(ctx)
}

func (s *memberService) MembersWithoutActiveSubscriptions(ctx context.Context) ([]*domain.Member, error) {
	return s.memberRepo.FindWithoutActiveSubscriptions(ctx)
}

func (s *memberService) AllMembers(ctx context.Context) ([]*domain.Member, error) {
	return s.memberRepo.FindAll(ctx)
}

// MembersByRegistrationMonth lists the members who registered in the given
// calendar month, ordered by member ID.
func (s *memberService) MembersByRegistrationMonth(ctx context.Context, year, month int) ([]*domain.Member, error) {
	return s.memberRepo.FindRegisteredInMonth(ctx, year, month)
}

func (s *memberService) RegistrationCount(ctx context.Context, year, month int) (int, error) {
	return s.memberRepo.CountByRegistrationMonth(ctx, year, month)
}

func (s *memberService) TotalMemberCount(ctx context.Context) (int, error) {
	return s.memberRepo.Count(ctx)
}

func (s *memberService) ActiveSubscriptionCount(ctx context.Context) (int, error) {
	return s.memberRepo.CountWithActiveSubscriptions(ctx)
}

func (s *memberService) MemberRetentionRate(ctx context.Context) (float64, error) {
	total, err := s.memberRepo.Count(ctx)
	if err != nil || total == 0 {
		return 0, err
	}
	active, err := s.memberRepo.CountWithActiveSubscriptions(ctx)
	if err != nil {
		return 0, err
	}
	return float64(active) / float64(total) * 100, nil
}

// --- Helpers ---

// mutate loads the member, applies fn and persists the result.
func (s *memberService) mutate(ctx context.Context, memberID string, fn func(*domain.Member) error) (*domain.Member, error) {
	member, err := s.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := fn(member); err != nil {
		return nil, err
	}
	if err := s.save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// save writes the member to both repositories it lives in.
func (s *memberService) save(ctx context.Context, member *domain.Member) error {
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, member)
}
