package memory

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

type indexedMember struct {
	member *domain.Member
	userID string
}

type memberRepository struct {
	mu       sync.RWMutex
	members  map[domain.MemberID]indexedMember
	byUserID map[string]domain.MemberID
}

// NewMemberRepository creates an empty in-memory member store.
func NewMemberRepository() repository.MemberRepository {
	return &memberRepository{
		members:  make(map[domain.MemberID]indexedMember),
		byUserID: make(map[string]domain.MemberID),
	}
}

func memberKey(e indexedMember) string { return e.member.MemberID().String() }

func (r *memberRepository) Save(ctx context.Context, member *domain.Member) error {
	if member == nil {
		return domain.NewError(domain.ErrInvalidArgument, "member cannot be nil")
	}
	id, userID := member.MemberID(), member.UserID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byUserID[userID]; ok && owner != id {
		return repository.DuplicateError("user ID", userID)
	}
	if old, ok := r.members[id]; ok {
		delete(r.byUserID, old.userID)
	}
	r.members[id] = indexedMember{member: member, userID: userID}
	r.byUserID[userID] = id
	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, memberID domain.MemberID) (*domain.Member, error) {
	if memberID.IsZero() {
		return nil, domain.NewError(domain.ErrInvalidArgument, "member ID cannot be empty")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.members[memberID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return entry.member, nil
}

func (r *memberRepository) FindByUserID(ctx context.Context, userID string) (*domain.Member, error) {
	if err := repository.RequireID("user ID", userID); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUserID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.members[id].member, nil
}

func (r *memberRepository) FindRegisteredAfter(ctx context.Context, date civil.Date) ([]*domain.Member, error) {
	return r.find(func(m *domain.Member) bool { return m.RegistrationDate().After(date) }), nil
}

func (r *memberRepository) FindRegisteredBefore(ctx context.Context, date civil.Date) ([]*domain.Member, error) {
	return r.find(func(m *domain.Member) bool { return m.RegistrationDate().Before(date) }), nil
}

func (r *memberRepository) FindWithActiveSubscriptions(ctx context.Context) ([]*domain.Member, error) {
	return r.find(hasActiveSubscription(domain.Today())), nil
}

func (r *memberRepository) FindWithoutActiveSubscriptions(ctx context.Context) ([]*domain.Member, error) {
	active := hasActiveSubscription(domain.Today())
	return r.find(func(m *domain.Member) bool { return !active(m) }), nil
}

func (r *memberRepository) FindActive(ctx context.Context) ([]*domain.Member, error) {
	return r.find(func(m *domain.Member) bool { return m.IsActive() }), nil
}

func (r *memberRepository) FindInactive(ctx context.Context) ([]*domain.Member, error) {
	return r.find(func(m *domain.Member) bool { return !m.IsActive() }), nil
}

func (r *memberRepository) FindAll(ctx context.Context) ([]*domain.Member, error) {
	return r.find(nil), nil
}

func (r *memberRepository) ExistsByID(ctx context.Context, memberID domain.MemberID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[memberID]
	return ok, nil
}

func (r *memberRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUserID[userID]
	return ok, nil
}

func (r *memberRepository) DeleteByID(ctx context.Context, memberID domain.MemberID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.members[memberID]
	if !ok {
		return false, nil
	}
	delete(r.members, memberID)
	delete(r.byUserID, entry.userID)
	return true, nil
}

func (r *memberRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members), nil
}

func (r *memberRepository) CountWithActiveSubscriptions(ctx context.Context) (int, error) {
	return r.count(hasActiveSubscription(domain.Today())), nil
}

func (r *memberRepository) CountWithoutActiveSubscriptions(ctx context.Context) (int, error) {
	active := hasActiveSubscription(domain.Today())
	return r.count(func(m *domain.Member) bool { return !active(m) }), nil
}

func (r *memberRepository) FindRegisteredInMonth(ctx context.Context, year, month int) ([]*domain.Member, error) {
	if err := repository.ValidateRegistrationMonth(year, month); err != nil {
		return nil, err
	}
	return r.find(registeredIn(year, month)), nil
}

func (r *memberRepository) CountByRegistrationMonth(ctx context.Context, year, month int) (int, error) {
	if err := repository.ValidateRegistrationMonth(year, month); err != nil {
		return 0, err
	}
	return r.count(registeredIn(year, month)), nil
}

func registeredIn(year, month int) func(*domain.Member) bool {
	return func(m *domain.Member) bool {
		d := m.RegistrationDate()
		return d.Year == year && d.Month == time.Month(month)
	}
}

func (r *memberRepository) find(keep func(*domain.Member) bool) []*domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := collect(r.members, memberKey, func(e indexedMember) bool {
		return keep == nil || keep(e.member)
	})
	out := make([]*domain.Member, len(entries))
	for i, e := range entries {
		out[i] = e.member
	}
	return out
}

func (r *memberRepository) count(keep func(*domain.Member) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return count(r.members, func(e indexedMember) bool { return keep(e.member) })
}

// hasActiveSubscription pins "today" once per query so every member in a
// result set is judged against the same date.
func hasActiveSubscription(today civil.Date) func(*domain.Member) bool {
	return func(m *domain.Member) bool { return m.HasActiveSubscriptionOn(today) }
}
