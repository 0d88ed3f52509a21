package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/metrics"
	"alcyxob/gym-management/internal/repository/memory"
	"alcyxob/gym-management/internal/service"
)

const testSecret = "api-test-secret-0123456789"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	domain.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testServer struct {
	router   *gin.Engine
	services Services

	adminToken   string
	trainerToken string
}

// newTestServer wires the full route table over memory stores, with one
// admin and one trainer already logged in.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := memory.NewUserRepository()
	members := memory.NewMemberRepository()
	subscriptions := memory.NewSubscriptionRepository()
	plans := memory.NewPlanRepository()
	exercises := memory.NewExerciseRepository()

	s := &testServer{
		router: gin.New(),
		services: Services{
			Auth:         service.NewAuthService(users, members, testSecret, time.Hour),
			Member:       service.NewMemberService(members, subscriptions, users),
			Subscription: service.NewSubscriptionService(subscriptions, plans, members, users),
			Trainer:      service.NewTrainerService(users, members, 2),
			Exercise:     service.NewExerciseService(exercises),
		},
	}
	SetupRoutes(s.router, testSecret, s.services, metrics.Nop{}, nil)

	ctx := t.Context()
	_, err := s.services.Auth.RegisterAdmin(ctx, account("ADM-1", "root_admin"), "SUPER", domain.FullPermissions())
	require.NoError(t, err)
	_, err = s.services.Trainer.RegisterTrainer(ctx, account("TRN-1", "coach_one"), domain.SpecializationCardio, 6)
	require.NoError(t, err)

	s.adminToken = s.login(t, "root_admin", "secret123")
	s.trainerToken = s.login(t, "coach_one", "secret123")
	return s
}

func account(id, username string) domain.AccountInfo {
	return domain.AccountInfo{
		UserID:   id,
		Username: username,
		Password: "secret123",
		Email:    username + "@example.com",
		Phone:    "+15551234567",
	}
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[LoginResponse](t, w).Token
}

// do sends body as JSON (when non-nil) with an optional bearer token.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	authorization := ""
	if token != "" {
		authorization = "Bearer " + token
	}
	return s.send(t, method, path, authorization, body)
}

// send is do with a raw Authorization header.
func (s *testServer) send(t *testing.T, method, path, authorization string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func memberRequest(n int) CreateMemberRequest {
	username := fmt.Sprintf("member_%03d", n)
	return CreateMemberRequest{
		AccountRequest: AccountRequest{
			UserID:   fmt.Sprintf("USR-%03d", n),
			Username: username,
			Password: "secret123",
			Email:    username + "@example.com",
			Phone:    "+15557654321",
		},
		MemberID: fmt.Sprintf("MEM-%06d", n),
	}
}
