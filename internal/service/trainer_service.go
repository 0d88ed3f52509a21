package service

import (
	"context"
	"errors"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// DefaultMaxMembersPerTrainer applies when NewTrainerService is given a
// non-positive limit.
const DefaultMaxMembersPerTrainer = 20

// --- Service Interface ---
type TrainerService interface {
	RegisterTrainer(ctx context.Context, info domain.AccountInfo, specialization domain.Specialization, yearsOfExperience int) (*domain.Trainer, error)
	GetTrainer(ctx context.Context, trainerID string) (*domain.Trainer, error)

	// Roster Management
	AssignMember(ctx context.Context, trainerID, memberID string) (*domain.Trainer, error)
	UnassignMember(ctx context.Context, trainerID, memberID string) (*domain.Trainer, error)
	SetAvailability(ctx context.Context, trainerID string, available bool) (*domain.Trainer, error)
	AssignedMembers(ctx context.Context, trainerID string) ([]*domain.Member, error)

	// QualifiedTrainers lists available trainers able to coach specialization.
	QualifiedTrainers(ctx context.Context, specialization domain.Specialization) ([]*domain.Trainer, error)
}

// --- Service Implementation ---

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo   repository.UserRepository
	memberRepo repository.MemberRepository
	maxMembers int
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	maxMembersPerTrainer int,
) TrainerService {
	if maxMembersPerTrainer <= 0 {
		maxMembersPerTrainer = DefaultMaxMembersPerTrainer
	}
	return &trainerService{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		maxMembers: maxMembersPerTrainer,
	}
}

// RegisterTrainer creates a trainer account.
func (s *trainerService) RegisterTrainer(ctx context.Context, info domain.AccountInfo, specialization domain.Specialization, yearsOfExperience int) (*domain.Trainer, error) {
	trainer, err := domain.NewTrainer(info, specialization, yearsOfExperience)
	if err != nil {
		return nil, err
	}
	if err := registerUser(ctx, s.userRepo, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// GetTrainer loads a user and checks it is a trainer.
func (s *trainerService) GetTrainer(ctx context.Context, trainerID string) (*domain.Trainer, error) {
	user, err := s.userRepo.FindByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, withID(ErrUserNotFound, trainerID)
		}
		return nil, err
	}
	trainer, ok := user.(*domain.Trainer)
	if !ok {
		return nil, withID(ErrNotATrainer, trainerID)
	}
	return trainer, nil
}

// === Roster Management ===

// AssignMember adds a member to the trainer's roster. Re-assigning a member
// already on the roster changes nothing.
func (s *trainerService) AssignMember(ctx context.Context, trainerID, memberID string) (*domain.Trainer, error) {
	// 1. Validate the member exists
	id, err := s.existingMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	// 2. Load the trainer
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if trainer.HasMember(id) {
		return trainer, nil
	}

	// 3. Check capacity, then let the trainer enforce availability
	if !trainer.CanHandleMoreMembers(s.maxMembers) {
		return nil, withID(ErrTrainerAtCapacity, trainerID)
	}
	if err := trainer.AssignMember(id); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

func (s *trainerService) UnassignMember(ctx context.Context, trainerID, memberID string) (*domain.Trainer, error) {
	id, err := domain.NewMemberID(memberID)
	if err != nil {
		return nil, err
	}
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if !trainer.HasMember(id) {
		return trainer, nil
	}
	trainer.RemoveMember(id)
	if err := s.userRepo.Save(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

func (s *trainerService) SetAvailability(ctx context.Context, trainerID string, available bool) (*domain.Trainer, error) {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	trainer.SetAvailability(available)
	if err := s.userRepo.Save(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// AssignedMembers resolves the trainer's roster. Members deleted since they
// were assigned are skipped.
func (s *trainerService) AssignedMembers(ctx context.Context, trainerID string) ([]*domain.Member, error) {
	trainer, err := s.GetTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	ids := trainer.AssignedMemberIDs()
	members := make([]*domain.Member, 0, len(ids))
	for _, id := range ids {
		member, err := s.memberRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func (s *trainerService) QualifiedTrainers(ctx context.Context, specialization domain.Specialization) ([]*domain.Trainer, error) {
	if !specialization.Valid() {
		return nil, domain.NewError(domain.ErrInvalidArgument, "specialization is required")
	}
	users, err := s.userRepo.FindByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}
	var trainers []*domain.Trainer
	for _, u := range users {
		trainer, ok := u.(*domain.Trainer)
		if !ok || !trainer.IsActive() || !trainer.IsAvailable() || !trainer.IsQualifiedFor(specialization) {
			continue
		}
		trainers = append(trainers, trainer)
	}
	return trainers, nil
}

// --- Helpers ---

func (s *trainerService) existingMember(ctx context.Context, memberID string) (domain.MemberID, error) {
	id, err := domain.NewMemberID(memberID)
	if err != nil {
		return domain.MemberID{}, err
	}
	exists, err := s.memberRepo.ExistsByID(ctx, id)
	if err != nil {
		return domain.MemberID{}, err
	}
	if !exists {
		return domain.MemberID{}, withID(ErrMemberNotFound, memberID)
	}
	return id, nil
}

// registerUser stores a freshly constructed user after checking its user ID
// is free. Username and email uniqueness are enforced by the repository.
func registerUser(ctx context.Context, userRepo repository.UserRepository, user domain.User) error {
	exists, err := userRepo.ExistsByID(ctx, user.UserID())
	if err != nil {
		return err
	}
	if exists {
		return repository.DuplicateError("user ID", user.UserID())
	}
	return userRepo.Save(ctx, user)
}
