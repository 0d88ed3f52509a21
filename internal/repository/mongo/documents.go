package mongo

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"alcyxob/gym-management/internal/domain"
)

// Documents are the stored shape of domain entities. They are filled from the
// entities' getters and turned back into entities through domain.Restore*, so
// the domain package never carries bson tags.
//
// Calendar dates are stored as "YYYY-MM-DD" strings, which sort and compare
// correctly in range filters.

// accountDocument holds the fields shared by every user variant.
type accountDocument struct {
	Username     string      `bson:"username"`
	PasswordHash string      `bson:"passwordHash"`
	Email        string      `bson:"email"`
	Phone        string      `bson:"phone"`
	Role         domain.Role `bson:"role"`
	Active       bool        `bson:"active"`
	CreatedAt    time.Time   `bson:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt"`
}

type permissionsDocument struct {
	ManageUsers          bool `bson:"manageUsers"`
	ManageSubscriptions  bool `bson:"manageSubscriptions"`
	ManageReports        bool `bson:"manageReports"`
	ManageSystemSettings bool `bson:"manageSystemSettings"`
}

type adminDocument struct {
	AdminLevel  string              `bson:"adminLevel"`
	Permissions permissionsDocument `bson:"permissions"`
	AdminSince  time.Time           `bson:"adminSince"`
}

type trainerDocument struct {
	Specialization     domain.Specialization `bson:"specialization"`
	YearsOfExperience  int                   `bson:"yearsOfExperience"`
	Available          bool                  `bson:"available"`
	CertifiedAt        time.Time             `bson:"certifiedAt"`
	MemberIDs          []string              `bson:"memberIds"`
	WorkoutScheduleIDs []string              `bson:"workoutScheduleIds"`
}

type progressDocument struct {
	Date              string  `bson:"date"`
	Weight            float64 `bson:"weight"`
	BodyFatPercentage float64 `bson:"bodyFatPercentage"`
	WorkoutsCompleted int     `bson:"workoutsCompleted"`
	Notes             string  `bson:"notes,omitempty"`
}

// memberDetails is the member-specific state, stored as a sub-document of a
// user and inline in the members collection.
type memberDetails struct {
	MemberID           string                `bson:"memberId"`
	RegistrationDate   string                `bson:"registrationDate"`
	Subscription       *subscriptionDocument `bson:"subscription,omitempty"`
	WorkoutScheduleIDs []string              `bson:"workoutScheduleIds"`
	AttendanceIDs      []string              `bson:"attendanceIds"`
	Progress           progressDocument      `bson:"progress"`
}

// userDocument is a row of the users collection. Exactly one variant
// sub-document is set, matching Role.
type userDocument struct {
	ID      string           `bson:"_id"`
	Account accountDocument  `bson:",inline"`
	Admin   *adminDocument   `bson:"admin,omitempty"`
	Trainer *trainerDocument `bson:"trainer,omitempty"`
	Member  *memberDetails   `bson:"member,omitempty"`
}

// memberDocument is a row of the members collection, keyed by member ID.
type memberDocument struct {
	ID      string          `bson:"_id"`
	UserID  string          `bson:"userId"`
	Account accountDocument `bson:",inline"`
	Details memberDetails   `bson:",inline"`
}

type planDocument struct {
	ID                      string          `bson:"_id"`
	Name                    string          `bson:"name"`
	DurationMonths          int             `bson:"durationMonths"`
	Price                   float64         `bson:"price"`
	Description             string          `bson:"description"`
	Type                    domain.PlanType `bson:"type"`
	IncludesPersonalTrainer bool            `bson:"includesPersonalTrainer"`
	IncludesGroupClasses    bool            `bson:"includesGroupClasses"`
	IncludesLockerAccess    bool            `bson:"includesLockerAccess"`
}

type subscriptionDocument struct {
	ID        string                    `bson:"_id"`
	Plan      planDocument              `bson:"plan"`
	StartDate string                    `bson:"startDate"`
	EndDate   string                    `bson:"endDate"` // derived on load, stored for queries
	Status    domain.SubscriptionStatus `bson:"status"`
	Amount    float64                   `bson:"amount"`
	CreatedAt string                    `bson:"createdAt"`
}

type exerciseDocument struct {
	ID                string              `bson:"_id"`
	Name              string              `bson:"name"`
	Type              domain.ExerciseType `bson:"type"`
	Difficulty        int                 `bson:"difficulty"`
	Description       string              `bson:"description"`
	Instructions      string              `bson:"instructions"`
	EstimatedDuration time.Duration       `bson:"estimatedDuration"`
	DefaultSets       int                 `bson:"defaultSets"`
	DefaultReps       int                 `bson:"defaultReps"`
	DefaultWeight     float64             `bson:"defaultWeight"`
	TargetMuscles     string              `bson:"targetMuscles"`
	Equipment         string              `bson:"equipment"`
	Active            bool                `bson:"active"`
}

func formatDate(d civil.Date) string {
	if d == (civil.Date{}) {
		return ""
	}
	return d.String()
}

func parseDate(field, s string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("decode %s %q: %w", field, s, err)
	}
	return d, nil
}

func newAccountDocument(s domain.AccountState) accountDocument {
	return accountDocument{
		Username:     s.Username,
		PasswordHash: s.PasswordHash,
		Email:        s.Email,
		Phone:        s.Phone,
		Role:         s.Role,
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.LastModifiedAt,
	}
}

func (d accountDocument) state(userID string) domain.AccountState {
	return domain.AccountState{
		UserID:         userID,
		Username:       d.Username,
		PasswordHash:   d.PasswordHash,
		Email:          d.Email,
		Phone:          d.Phone,
		Role:           d.Role,
		CreatedAt:      d.CreatedAt,
		LastModifiedAt: d.UpdatedAt,
		Active:         d.Active,
	}
}

func newUserDocument(u domain.User) (userDocument, error) {
	doc := userDocument{ID: u.UserID(), Account: newAccountDocument(u.State())}
	switch v := u.(type) {
	case *domain.Admin:
		p := v.Permissions()
		doc.Admin = &adminDocument{
			AdminLevel: v.AdminLevel(),
			Permissions: permissionsDocument{
				ManageUsers:          p.ManageUsers,
				ManageSubscriptions:  p.ManageSubscriptions,
				ManageReports:        p.ManageReports,
				ManageSystemSettings: p.ManageSystemSettings,
			},
			AdminSince: v.AdminSince(),
		}
	case *domain.Trainer:
		doc.Trainer = &trainerDocument{
			Specialization:     v.Specialization(),
			YearsOfExperience:  v.YearsOfExperience(),
			Available:          v.IsAvailable(),
			CertifiedAt:        v.CertifiedAt(),
			MemberIDs:          memberIDStrings(v.AssignedMemberIDs()),
			WorkoutScheduleIDs: v.WorkoutScheduleIDs(),
		}
	case *domain.Member:
		details := newMemberDetails(v)
		doc.Member = &details
	default:
		return userDocument{}, fmt.Errorf("unsupported user type %T", u)
	}
	return doc, nil
}

func (d userDocument) toDomain() (domain.User, error) {
	acct := d.Account.state(d.ID)
	switch d.Account.Role {
	case domain.RoleAdmin:
		if d.Admin == nil {
			return nil, fmt.Errorf("user %s: missing admin document", d.ID)
		}
		p := d.Admin.Permissions
		return domain.RestoreAdmin(acct, domain.AdminRecord{
			AdminLevel: d.Admin.AdminLevel,
			Permissions: domain.AdminPermissions{
				ManageUsers:          p.ManageUsers,
				ManageSubscriptions:  p.ManageSubscriptions,
				ManageReports:        p.ManageReports,
				ManageSystemSettings: p.ManageSystemSettings,
			},
			AdminSince: d.Admin.AdminSince,
		})
	case domain.RoleTrainer:
		if d.Trainer == nil {
			return nil, fmt.Errorf("user %s: missing trainer document", d.ID)
		}
		ids, err := parseMemberIDs(d.Trainer.MemberIDs)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", d.ID, err)
		}
		return domain.RestoreTrainer(acct, domain.TrainerRecord{
			Specialization:     d.Trainer.Specialization,
			YearsOfExperience:  d.Trainer.YearsOfExperience,
			Available:          d.Trainer.Available,
			CertifiedAt:        d.Trainer.CertifiedAt,
			MemberIDs:          ids,
			WorkoutScheduleIDs: d.Trainer.WorkoutScheduleIDs,
		})
	case domain.RoleMember:
		if d.Member == nil {
			return nil, fmt.Errorf("user %s: missing member document", d.ID)
		}
		return restoreMember(acct, *d.Member)
	default:
		return nil, fmt.Errorf("user %s: unknown role %q", d.ID, d.Account.Role)
	}
}

func newMemberDetails(m *domain.Member) memberDetails {
	p := m.Progress()
	details := memberDetails{
		MemberID:           m.MemberID().String(),
		RegistrationDate:   formatDate(m.RegistrationDate()),
		WorkoutScheduleIDs: m.WorkoutScheduleIDs(),
		AttendanceIDs:      m.AttendanceIDs(),
		Progress: progressDocument{
			Date:              formatDate(p.Date()),
			Weight:            p.Weight(),
			BodyFatPercentage: p.BodyFatPercentage(),
			WorkoutsCompleted: p.WorkoutsCompleted(),
			Notes:             p.Notes(),
		},
	}
	if sub := m.Subscription(); sub != nil {
		doc := newSubscriptionDocument(sub)
		details.Subscription = &doc
	}
	return details
}

func newMemberDocument(m *domain.Member) memberDocument {
	return memberDocument{
		ID:      m.MemberID().String(),
		UserID:  m.UserID(),
		Account: newAccountDocument(m.State()),
		Details: newMemberDetails(m),
	}
}

func (d memberDocument) toDomain() (*domain.Member, error) {
	return restoreMember(d.Account.state(d.UserID), d.Details)
}

func restoreMember(acct domain.AccountState, d memberDetails) (*domain.Member, error) {
	id, err := domain.NewMemberID(d.MemberID)
	if err != nil {
		return nil, err
	}
	registered, err := parseDate("registrationDate", d.RegistrationDate)
	if err != nil {
		return nil, err
	}
	progressDate, err := parseDate("progress.date", d.Progress.Date)
	if err != nil {
		return nil, err
	}
	progress, err := domain.NewProgressMetrics(id.String(), progressDate,
		d.Progress.Weight, d.Progress.BodyFatPercentage, d.Progress.WorkoutsCompleted, d.Progress.Notes)
	if err != nil {
		return nil, err
	}
	var sub *domain.Subscription
	if d.Subscription != nil {
		if sub, err = d.Subscription.toDomain(); err != nil {
			return nil, err
		}
	}
	return domain.RestoreMember(acct, domain.MemberRecord{
		MemberID:           id,
		RegistrationDate:   registered,
		Subscription:       sub,
		WorkoutScheduleIDs: d.WorkoutScheduleIDs,
		AttendanceIDs:      d.AttendanceIDs,
		Progress:           progress,
	})
}

func newPlanDocument(p domain.SubscriptionPlan) planDocument {
	return planDocument{
		ID:                      p.ID(),
		Name:                    p.Name(),
		DurationMonths:          p.DurationMonths(),
		Price:                   p.Price(),
		Description:             p.Description(),
		Type:                    p.Type(),
		IncludesPersonalTrainer: p.IncludesPersonalTrainer(),
		IncludesGroupClasses:    p.IncludesGroupClasses(),
		IncludesLockerAccess:    p.IncludesLockerAccess(),
	}
}

func (d planDocument) toDomain() (domain.SubscriptionPlan, error) {
	return domain.NewSubscriptionPlan(domain.PlanParams{
		ID:                      d.ID,
		Name:                    d.Name,
		DurationMonths:          d.DurationMonths,
		Price:                   d.Price,
		Description:             d.Description,
		Type:                    d.Type,
		IncludesPersonalTrainer: d.IncludesPersonalTrainer,
		IncludesGroupClasses:    d.IncludesGroupClasses,
		IncludesLockerAccess:    d.IncludesLockerAccess,
	})
}

func newSubscriptionDocument(s *domain.Subscription) subscriptionDocument {
	return subscriptionDocument{
		ID:        s.ID(),
		Plan:      newPlanDocument(s.Plan()),
		StartDate: formatDate(s.StartDate()),
		EndDate:   formatDate(s.EndDate()),
		Status:    s.Status(),
		Amount:    s.Amount(),
		CreatedAt: formatDate(s.CreatedAt()),
	}
}

func (d subscriptionDocument) toDomain() (*domain.Subscription, error) {
	plan, err := d.Plan.toDomain()
	if err != nil {
		return nil, fmt.Errorf("subscription %s: %w", d.ID, err)
	}
	start, err := parseDate("startDate", d.StartDate)
	if err != nil {
		return nil, err
	}
	created, err := parseDate("createdAt", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return domain.RestoreSubscription(domain.SubscriptionRecord{
		ID:        d.ID,
		Plan:      plan,
		StartDate: start,
		Status:    d.Status,
		Amount:    d.Amount,
		CreatedAt: created,
	})
}

func newExerciseDocument(e *domain.Exercise) exerciseDocument {
	return exerciseDocument{
		ID:                e.ID(),
		Name:              e.Name(),
		Type:              e.Type(),
		Difficulty:        e.Difficulty().Level(),
		Description:       e.Description(),
		Instructions:      e.Instructions(),
		EstimatedDuration: e.EstimatedDuration(),
		DefaultSets:       e.DefaultSets(),
		DefaultReps:       e.DefaultReps(),
		DefaultWeight:     e.DefaultWeight(),
		TargetMuscles:     e.TargetMuscles(),
		Equipment:         e.Equipment(),
		Active:            e.IsActive(),
	}
}

func (d exerciseDocument) toDomain() (*domain.Exercise, error) {
	return domain.RestoreExercise(domain.ExerciseParams{
		ID:                d.ID,
		Name:              d.Name,
		Type:              d.Type,
		Difficulty:        domain.DifficultyLevel(d.Difficulty),
		Description:       d.Description,
		Instructions:      d.Instructions,
		EstimatedDuration: d.EstimatedDuration,
		DefaultSets:       d.DefaultSets,
		DefaultReps:       d.DefaultReps,
		DefaultWeight:     d.DefaultWeight,
		TargetMuscles:     d.TargetMuscles,
		Equipment:         d.Equipment,
	}, d.Active)
}

func memberIDStrings(ids []domain.MemberID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseMemberIDs(raw []string) ([]domain.MemberID, error) {
	out := make([]domain.MemberID, 0, len(raw))
	for _, s := range raw {
		id, err := domain.NewMemberID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
