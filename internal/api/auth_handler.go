package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/metrics"
	"alcyxob/gym-management/internal/service"
)

// AuthHandler serves login, the caller's own account and admin account management.
type AuthHandler struct {
	authService service.AuthService
	recorder    metrics.Recorder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, recorder metrics.Recorder) *AuthHandler {
	return &AuthHandler{authService: authService, recorder: recorder}
}

// --- Request/Response Structs ---

// AccountRequest carries the fields every new account needs.
type AccountRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
}

func (r AccountRequest) info() domain.AccountInfo {
	return domain.AccountInfo{
		UserID:   r.UserID,
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		Phone:    r.Phone,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type PermissionsDTO struct {
	ManageUsers          bool `json:"manageUsers"`
	ManageSubscriptions  bool `json:"manageSubscriptions"`
	ManageReports        bool `json:"manageReports"`
	ManageSystemSettings bool `json:"manageSystemSettings"`
}

// RegisterAdminRequest grants every permission when Permissions is omitted.
type RegisterAdminRequest struct {
	AccountRequest
	AdminLevel  string          `json:"adminLevel" binding:"required"`
	Permissions *PermissionsDTO `json:"permissions"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// UserResponse excludes the password hash. Exactly one of the role-specific
// sections is set.
type UserResponse struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Role           domain.Role     `json:"role"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastModifiedAt time.Time       `json:"lastModifiedAt"`
	Member         *MemberDetails  `json:"member,omitempty"`
	Trainer        *TrainerDetails `json:"trainer,omitempty"`
	Admin          *AdminDetails   `json:"admin,omitempty"`
}

type AdminDetails struct {
	AdminLevel  string         `json:"adminLevel"`
	Permissions PermissionsDTO `json:"permissions"`
	AdminSince  time.Time      `json:"adminSince"`
}

// MapUserToResponse converts any user variant to a UserResponse DTO.
func MapUserToResponse(user domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	resp := UserResponse{
		ID:             user.UserID(),
		Username:       user.Username(),
		Email:          user.Email(),
		Phone:          user.Phone(),
		Role:           user.Role(),
		Active:         user.IsActive(),
		CreatedAt:      user.CreatedAt(),
		LastModifiedAt: user.LastModifiedAt(),
	}
	switch u := user.(type) {
	case *domain.Member:
		resp.Member = mapMemberDetails(u)
	case *domain.Trainer:
		resp.Trainer = mapTrainerDetails(u)
	case *domain.Admin:
		p := u.Permissions()
		resp.Admin = &AdminDetails{
			AdminLevel: u.AdminLevel(),
			Permissions: PermissionsDTO{
				ManageUsers:          p.ManageUsers,
				ManageSubscriptions:  p.ManageSubscriptions,
				ManageReports:        p.ManageReports,
				ManageSystemSettings: p.ManageSystemSettings,
			},
			AdminSince: u.AdminSince(),
		}
	}
	return resp
}

// --- Handler Methods ---

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	h.recorder.RecordLogin(err == nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "User no longer exists"
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags Auth
// @Accept json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Current and new password"
// @Success 204 "Password changed"
// @Failure 400 {object} gin.H "New password rejected"
// @Failure 401 {object} gin.H "Current password is wrong"
// @Router /me/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterAdmin godoc
// @Summary Register an administrator
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param admin body RegisterAdminRequest true "Admin details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input or duplicate username/email"
// @Failure 403 {object} gin.H "Forbidden (not an admin)"
// @Router /admins [post]
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	perms := domain.FullPermissions()
	if p := req.Permissions; p != nil {
		perms = domain.AdminPermissions{
			ManageUsers:          p.ManageUsers,
			ManageSubscriptions:  p.ManageSubscriptions,
			ManageReports:        p.ManageReports,
			ManageSystemSettings: p.ManageSystemSettings,
		}
	}

	admin, err := h.authService.RegisterAdmin(c.Request.Context(), req.info(), req.AdminLevel, perms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(admin))
}

// SetUserActive godoc
// @Summary Activate or deactivate an account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param body body SetActiveRequest true "Desired state"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "User not found"
// @Router /users/{userId}/active [put]
func (h *AuthHandler) SetUserActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.authService.SetActive(c.Request.Context(), c.Param("userId"), *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
