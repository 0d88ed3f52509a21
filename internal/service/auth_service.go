package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4" // Import JWT library

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/repository"
)

// TokenIssuer is the "iss" claim of every token this service signs.
const TokenIssuer = "gym-management"

// --- Service Interface ---
type AuthService interface {
	RegisterAdmin(ctx context.Context, info domain.AccountInfo, adminLevel string, perms domain.AdminPermissions) (*domain.Admin, error)
	Login(ctx context.Context, username, password string) (token string, user domain.User, err error)
	GetUser(ctx context.Context, userID string) (domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// SetActive activates or deactivates an account. Inactive accounts cannot log in.
	SetActive(ctx context.Context, userID string, active bool) (domain.User, error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	memberRepo    repository.MemberRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// RegisterAdmin creates an administrator account.
func (s *authService) RegisterAdmin(ctx context.Context, info domain.AccountInfo, adminLevel string, perms domain.AdminPermissions) (*domain.Admin, error) {
	admin, err := domain.NewAdminWithPermissions(info, adminLevel, perms)
	if err != nil {
		return nil, err
	}
	if err := registerUser(ctx, s.userRepo, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	// 1. Basic Input Validation
	if username == "" || password == "" {
		return "", nil, domain.NewError(domain.ErrInvalidArgument, "username and password cannot be empty")
	}

	// 2. Fetch user by username
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed // User not found maps to auth failure
		}
		return "", nil, err
	}

	// 3. Check password and account state
	if !user.Authenticate(username, password) {
		return "", nil, ErrAuthenticationFailed
	}

	// 4. Authentication successful - Generate JWT
	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, user, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, withID(ErrUserNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after re-checking the current one.
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Authenticate(user.Username(), currentPassword) {
		return ErrAuthenticationFailed
	}
	if err := user.UpdatePassword(newPassword); err != nil {
		return err
	}
	return s.save(ctx, user)
}

func (s *authService) SetActive(ctx context.Context, userID string, active bool) (domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// save writes the user back, including the member record for members.
func (s *authService) save(ctx context.Context, user domain.User) error {
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	if member, ok := user.(*domain.Member); ok {
		return s.memberRepo.Save(ctx, member)
	}
	return nil
}

// --- JWT Helper ---

// Claims defines the structure of the JWT payload.
type Claims struct {
	UserID string      `json:"uid"`  // User ID
	Role   domain.Role `json:"role"` // User Role
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.UserID(),
		Role:   user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
