package mongo

import (
	"os"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"alcyxob/gym-management/internal/domain"
)

func TestMain(m *testing.M) {
	domain.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func accountInfo(id, username string) domain.AccountInfo {
	return domain.AccountInfo{
		UserID:   id,
		Username: username,
		Password: "secret123",
		Email:    username + "@example.com",
		Phone:    "+15551234567",
	}
}

func TestMemberDocumentRoundTrip(t *testing.T) {
	id, err := domain.NewMemberID("MEM-000042")
	require.NoError(t, err)
	m, err := domain.NewMember(accountInfo("U042", "jane_doe"), id)
	require.NoError(t, err)

	plan, err := domain.NewPremiumPlan("PLAN-P", "Premium", 3, 150)
	require.NoError(t, err)
	sub, err := domain.NewSubscription("SUB-1", plan, domain.Today())
	require.NoError(t, err)
	require.NoError(t, m.AssignSubscription(sub))
	require.NoError(t, m.AddWorkoutSchedule("SCH-1"))
	require.NoError(t, m.AddAttendance("ATT-1"))
	require.NoError(t, m.UpdateProgress(72.5, 18, 4))

	doc := newMemberDocument(m)
	assert.Equal(t, "MEM-000042", doc.ID)
	assert.Equal(t, "U042", doc.UserID)
	require.NotNil(t, doc.Details.Subscription)
	assert.Equal(t, formatDate(sub.EndDate()), doc.Details.Subscription.EndDate)

	restored, err := doc.toDomain()
	require.NoError(t, err)
	assert.Equal(t, m.MemberID(), restored.MemberID())
	assert.Equal(t, m.Username(), restored.Username())
	assert.Equal(t, m.RegistrationDate(), restored.RegistrationDate())
	assert.Equal(t, []string{"SCH-1"}, restored.WorkoutScheduleIDs())
	assert.Equal(t, []string{"ATT-1"}, restored.AttendanceIDs())
	assert.Equal(t, m.Progress(), restored.Progress())
	assert.True(t, restored.Authenticate("jane_doe", "secret123"))

	require.NotNil(t, restored.Subscription())
	assert.Equal(t, sub.EndDate(), restored.Subscription().EndDate())
	assert.Equal(t, plan, restored.Subscription().Plan())
	assert.True(t, restored.HasActiveSubscription())
}

func TestUserDocumentVariants(t *testing.T) {
	trainer, err := domain.NewTrainer(accountInfo("U001", "coach_kim"), domain.SpecializationCardio, 7)
	require.NoError(t, err)
	memberID, err := domain.MemberIDFromNumeric(7)
	require.NoError(t, err)
	require.NoError(t, trainer.AssignMember(memberID))

	admin, err := domain.NewAdminWithPermissions(accountInfo("U002", "root_admin"), "SUPER", domain.FullPermissions())
	require.NoError(t, err)

	tests := []struct {
		name  string
		user  domain.User
		check func(t *testing.T, doc userDocument, restored domain.User)
	}{
		{
			name: "trainer",
			user: trainer,
			check: func(t *testing.T, doc userDocument, restored domain.User) {
				require.NotNil(t, doc.Trainer)
				assert.Nil(t, doc.Admin)
				assert.Equal(t, []string{"MEM-000007"}, doc.Trainer.MemberIDs)
				got, ok := restored.(*domain.Trainer)
				require.True(t, ok)
				assert.Equal(t, domain.SpecializationCardio, got.Specialization())
				assert.Equal(t, 7, got.YearsOfExperience())
				assert.True(t, got.HasMember(memberID))
			},
		},
		{
			name: "admin",
			user: admin,
			check: func(t *testing.T, doc userDocument, restored domain.User) {
				require.NotNil(t, doc.Admin)
				got, ok := restored.(*domain.Admin)
				require.True(t, ok)
				assert.Equal(t, "SUPER", got.AdminLevel())
				assert.True(t, got.HasFullPrivileges())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newUserDocument(tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.user.UserID(), doc.ID)
			assert.Equal(t, tt.user.Role(), doc.Account.Role)

			restored, err := doc.toDomain()
			require.NoError(t, err)
			assert.Equal(t, tt.user.Email(), restored.Email())
			assert.Equal(t, tt.user.IsActive(), restored.IsActive())
			tt.check(t, doc, restored)
		})
	}
}

func TestUserDocumentRejectsInconsistentRows(t *testing.T) {
	doc := userDocument{ID: "U009", Account: accountDocument{Username: "ghost_user", Role: domain.RoleTrainer}}
	_, err := doc.toDomain()
	assert.ErrorContains(t, err, "missing trainer document")

	doc.Account.Role = "janitor"
	_, err = doc.toDomain()
	assert.ErrorContains(t, err, "unknown role")
}

func TestUserDocumentBSONLayout(t *testing.T) {
	admin, err := domain.NewAdmin(accountInfo("U003", "ops_admin"), "OPS")
	require.NoError(t, err)
	doc, err := newUserDocument(admin)
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))

	// Account fields are inlined so the unique indexes see them at the top level.
	assert.Equal(t, "U003", fields["_id"])
	assert.Equal(t, "ops_admin", fields["username"])
	assert.Equal(t, "ops_admin@example.com", fields["email"])
	assert.Contains(t, fields, "admin")
	assert.NotContains(t, fields, "trainer")
	assert.NotContains(t, fields, "member")
}

func TestExerciseDocumentRoundTrip(t *testing.T) {
	ex, err := domain.NewExercise(domain.ExerciseParams{
		ID:                "EX-9",
		Name:              "Deadlift",
		Type:              domain.ExerciseCompound,
		Difficulty:        domain.DifficultyAdvanced,
		Description:       "Hip hinge",
		Instructions:      "Keep the bar close",
		EstimatedDuration: 90 * time.Second,
		DefaultSets:       5,
		DefaultReps:       5,
		DefaultWeight:     100,
		TargetMuscles:     "Hamstrings, Glutes",
		Equipment:         "Barbell",
	})
	require.NoError(t, err)
	ex.Deactivate()

	doc := newExerciseDocument(ex)
	assert.Equal(t, 4, doc.Difficulty)

	restored, err := doc.toDomain()
	require.NoError(t, err)
	assert.Equal(t, ex, restored)
}

func TestSubscriptionDocumentRejectsBadDates(t *testing.T) {
	plan, err := domain.NewBasicPlan("PLAN-B", "Basic", 1, 30)
	require.NoError(t, err)
	doc := subscriptionDocument{
		ID:        "SUB-X",
		Plan:      newPlanDocument(plan),
		StartDate: "2024-13-40",
		Status:    domain.StatusActive,
	}
	_, err = doc.toDomain()
	assert.ErrorContains(t, err, "decode startDate")

	doc.StartDate = "2024-01-31"
	sub, err := doc.toDomain()
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, sub.EndDate())
}

func TestFilters(t *testing.T) {
	today := civil.Date{Year: 2024, Month: time.May, Day: 10}

	assert.Equal(t, bson.M{"registrationDate": bson.M{"$gte": "2024-12-01", "$lt": "2025-01-01"}},
		registrationMonthFilter(2024, 12))

	assert.Equal(t, bson.M{"endDate": bson.M{"$gte": "2024-05-10", "$lte": "2024-06-01"}},
		expiringByFilter(today, civil.Date{Year: 2024, Month: time.June, Day: 1}))

	assert.Equal(t, bson.M{
		"subscription.status":  domain.StatusActive,
		"subscription.endDate": bson.M{"$gte": "2024-05-10"},
	}, activeSubscriptionFilter(today))

	_, ok := containsFilter("name", "  ")
	assert.False(t, ok)
	filter, ok := containsFilter("name", "a+b")
	require.True(t, ok)
	assert.Contains(t, filter, "name")
}
