package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	maxPasswordBytes = 72
)

// PasswordCost is the bcrypt cost used when hashing account passwords.
var PasswordCost = bcrypt.DefaultCost

// User is a gym user. It is implemented by *Admin, *Trainer and *Member;
// use a type switch to reach the role-specific behaviour.
type User interface {
	UserID() string
	Username() string
	Email() string
	Phone() string
	Role() Role
	IsActive() bool
	CreatedAt() time.Time
	LastModifiedAt() time.Time
	Authenticate(username, password string) bool
	UpdatePassword(password string) error
	UpdateEmail(email string) error
	UpdatePhone(phone string) error
	Activate()
	Deactivate()
	State() AccountState

	account() *Account
}

// AccountInfo is the caller-supplied input shared by every user variant.
type AccountInfo struct {
	UserID   string
	Username string
	Password string
	Email    string
	Phone    string
}

// Account holds the attributes every user shares. It is embedded by the
// user variants and never used on its own.
type Account struct {
	userID         string
	username       string
	passwordHash   string
	email          string
	phone          string
	role           Role
	createdAt      time.Time
	lastModifiedAt time.Time
	active         bool
}

// newAccount validates info in a fixed order (id, username, password, email,
// phone, role) and hashes the password.
func newAccount(info AccountInfo, role Role) (Account, error) {
	if strings.TrimSpace(info.UserID) == "" {
		return Account{}, invalidArgument("user ID cannot be empty")
	}
	if err := validateUsername(info.Username); err != nil {
		return Account{}, err
	}
	if err := validatePassword(info.Password); err != nil {
		return Account{}, err
	}
	if err := validateEmail(info.Email); err != nil {
		return Account{}, err
	}
	if err := validatePhone(info.Phone); err != nil {
		return Account{}, err
	}
	if !role.Valid() {
		return Account{}, invalidArgument("role is required")
	}

	hash, err := hashPassword(info.Password)
	if err != nil {
		return Account{}, err
	}

	now := time.Now().UTC()
	return Account{
		userID:         info.UserID,
		username:       info.Username,
		passwordHash:   hash,
		email:          info.Email,
		phone:          info.Phone,
		role:           role,
		createdAt:      now,
		lastModifiedAt: now,
		active:         true,
	}, nil
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return invalidArgument("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalidArgument("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return invalidArgument("password must be at most %d bytes long", maxPasswordBytes)
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return invalidArgument("invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return invalidArgument("invalid phone number format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (a *Account) account() *Account { return a }

func (a *Account) UserID() string            { return a.userID }
func (a *Account) Username() string          { return a.username }
func (a *Account) Email() string             { return a.email }
func (a *Account) Phone() string             { return a.phone }
func (a *Account) Role() Role                { return a.role }
func (a *Account) IsActive() bool            { return a.active }
func (a *Account) CreatedAt() time.Time      { return a.createdAt }
func (a *Account) LastModifiedAt() time.Time { return a.lastModifiedAt }

// Authenticate reports whether the account is active, the username matches
// exactly and password matches the stored hash.
func (a *Account) Authenticate(username, password string) bool {
	if !a.active || a.username != username {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password))
	return err == nil
}

func (a *Account) UpdatePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	a.passwordHash = hash
	a.touch()
	return nil
}

func (a *Account) UpdateEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	a.email = email
	a.touch()
	return nil
}

func (a *Account) UpdatePhone(phone string) error {
	if err := validatePhone(phone); err != nil {
		return err
	}
	a.phone = phone
	a.touch()
	return nil
}

func (a *Account) Activate() {
	a.active = true
	a.touch()
}

func (a *Account) Deactivate() {
	a.active = false
	a.touch()
}

func (a *Account) touch() {
	a.lastModifiedAt = time.Now().UTC()
}

// AccountState is the persisted form of an Account.
type AccountState struct {
	UserID         string
	Username       string
	PasswordHash   string
	Email          string
	Phone          string
	Role           Role
	CreatedAt      time.Time
	LastModifiedAt time.Time
	Active         bool
}

func (a *Account) State() AccountState {
	return AccountState{
		UserID:         a.userID,
		Username:       a.username,
		PasswordHash:   a.passwordHash,
		Email:          a.email,
		Phone:          a.phone,
		Role:           a.role,
		CreatedAt:      a.createdAt,
		LastModifiedAt: a.lastModifiedAt,
		Active:         a.active,
	}
}

// restoreAccount rebuilds an Account from persisted state. The hash is taken
// as is; only the identifying fields are checked.
func restoreAccount(s AccountState, role Role) (Account, error) {
	if strings.TrimSpace(s.UserID) == "" {
		return Account{}, invalidArgument("user ID cannot be empty")
	}
	if err := validateUsername(s.Username); err != nil {
		return Account{}, err
	}
	if s.PasswordHash == "" {
		return Account{}, invalidArgument("password hash cannot be empty")
	}
	if _, err := bcrypt.Cost([]byte(s.PasswordHash)); err != nil {
		return Account{}, invalidArgument("password hash is malformed")
	}
	if s.Role != "" && s.Role != role {
		return Account{}, invalidArgument("role %q does not match %q", s.Role, role)
	}
	return Account{
		userID:         s.UserID,
		username:       s.Username,
		passwordHash:   s.PasswordHash,
		email:          s.Email,
		phone:          s.Phone,
		role:           role,
		createdAt:      s.CreatedAt,
		lastModifiedAt: s.LastModifiedAt,
		active:         s.Active,
	}, nil
}
