package api

import (
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/metrics"
	"alcyxob/gym-management/internal/service"
)

// MemberHandler serves member registration, subscriptions and progress.
type MemberHandler struct {
	memberService service.MemberService
	recorder      metrics.Recorder
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService, recorder metrics.Recorder) *MemberHandler {
	return &MemberHandler{memberService: memberService, recorder: recorder}
}

// --- DTOs ---

type CreateMemberRequest struct {
	AccountRequest
	MemberID string `json:"memberId" binding:"required"`
}

type AssignSubscriptionRequest struct {
	SubscriptionID string `json:"subscriptionId" binding:"required"`
}

type UpdateProgressRequest struct {
	Weight            float64 `json:"weight" binding:"gte=0"`
	BodyFatPercentage float64 `json:"bodyFatPercentage" binding:"gte=0,lte=100"`
	WorkoutsCompleted int     `json:"workoutsCompleted" binding:"gte=0"`
}

type AddScheduleRequest struct {
	ScheduleID string `json:"scheduleId" binding:"required"`
}

type ProgressResponse struct {
	Date              civil.Date `json:"date"`
	Weight            float64    `json:"weight"`
	BodyFatPercentage float64    `json:"bodyFatPercentage"`
	WorkoutsCompleted int        `json:"workoutsCompleted"`
	Notes             string     `json:"notes,omitempty"`
}

// MemberDetails is the member section of a UserResponse.
type MemberDetails struct {
	MemberID           string                `json:"memberId"`
	RegistrationDate   civil.Date            `json:"registrationDate"`
	ActiveSubscription bool                  `json:"activeSubscription"`
	Subscription       *SubscriptionResponse `json:"subscription,omitempty"`
	Progress           ProgressResponse      `json:"progress"`
	WorkoutScheduleIDs []string              `json:"workoutScheduleIds"`
	AttendanceIDs      []string              `json:"attendanceIds"`
}

type MemberStatsResponse struct {
	TotalMembers        int     `json:"totalMembers"`
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	RetentionRate       float64 `json:"retentionRate"`
	// RegisteredInMonth is set when year and month are given.
	RegisteredInMonth *int `json:"registeredInMonth,omitempty"`
}

func mapMemberDetails(m *domain.Member) *MemberDetails {
	p := m.Progress()
	d := &MemberDetails{
		MemberID:           m.MemberID().String(),
		RegistrationDate:   m.RegistrationDate(),
		ActiveSubscription: m.HasActiveSubscription(),
		Progress: ProgressResponse{
			Date:              p.Date(),
			Weight:            p.Weight(),
			BodyFatPercentage: p.BodyFatPercentage(),
			WorkoutsCompleted: p.WorkoutsCompleted(),
			Notes:             p.Notes(),
		},
		WorkoutScheduleIDs: m.WorkoutScheduleIDs(),
		AttendanceIDs:      m.AttendanceIDs(),
	}
	if sub := m.Subscription(); sub != nil {
		resp := MapSubscriptionToResponse(sub)
		d.Subscription = &resp
	}
	return d
}

// MapMembersToResponse converts members to UserResponse DTOs.
func MapMembersToResponse(members []*domain.Member) []UserResponse {
	out := make([]UserResponse, len(members))
	for i, m := range members {
		out[i] = MapUserToResponse(m)
	}
	return out
}

// --- Handler Methods ---

// CreateMember godoc
// @Summary Register a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member body CreateMemberRequest true "Member details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input or duplicate identifier"
// @Router /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	member, err := h.memberService.CreateMember(c.Request.Context(), req.info(), req.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.recorder.RecordMemberCreated()
	c.JSON(http.StatusCreated, MapUserToResponse(member))
}

// GetMember godoc
// @Summary Get a member by member ID
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID (MEM-XXXXXX)"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "Member not found"
// @Router /members/{memberId} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.memberService.FindByID(c.Request.Context(), c.Param("memberId"))
	h.respondMember(c, member, err)
}

// ListMembers godoc
// @Summary List members
// @Description Without filters every member is returned. "subscribed" selects by
// @Description subscription state; "year" and "month" select by registration month.
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param subscribed query bool false "true for members with an active subscription"
// @Param year query int false "Registration year (with month)"
// @Param month query int false "Registration month 1-12 (with year)"
// @Success 200 {array} UserResponse
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		members []*domain.Member
		err     error
	)
	switch {
	case c.Query("subscribed") != "":
		subscribed, perr := strconv.ParseBool(c.Query("subscribed"))
		if perr != nil {
			abortWithError(c, http.StatusBadRequest, "query parameter 'subscribed' must be true or false")
			return
		}
		if subscribed {
			members, err = h.memberService.MembersWithActiveSubscriptions(ctx)
		} else {
			members, err = h.memberService.MembersWithoutActiveSubscriptions(ctx)
		}
	case c.Query("year") != "" || c.Query("month") != "":
		year, month, ok := registrationMonth(c)
		if !ok {
			return
		}
		members, err = h.memberService.MembersByRegistrationMonth(ctx, year, month)
	default:
		members, err = h.memberService.AllMembers(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMembersToResponse(members))
}

// AssignSubscription godoc
// @Summary Attach a subscription to a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param body body AssignSubscriptionRequest true "Subscription"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "Member or subscription not found"
// @Failure 409 {object} gin.H "Subscription is expired"
// @Router /members/{memberId}/subscription [post]
func (h *MemberHandler) AssignSubscription(c *gin.Context) {
	var req AssignSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	member, err := h.memberService.AssignSubscription(c.Request.Context(), c.Param("memberId"), req.SubscriptionID)
	h.respondMember(c, member, err)
}

// RemoveSubscription godoc
// @Summary Detach the member's subscription
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} UserResponse
// @Router /members/{memberId}/subscription [delete]
func (h *MemberHandler) RemoveSubscription(c *gin.Context) {
	member, err := h.memberService.RemoveSubscription(c.Request.Context(), c.Param("memberId"))
	h.respondMember(c, member, err)
}

// UpdateProgress godoc
// @Summary Record new progress measurements
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param body body UpdateProgressRequest true "Measurements"
// @Success 200 {object} UserResponse
// @Router /members/{memberId}/progress [put]
func (h *MemberHandler) UpdateProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	member, err := h.memberService.UpdateProgress(c.Request.Context(), c.Param("memberId"),
		req.Weight, req.BodyFatPercentage, req.WorkoutsCompleted)
	h.respondMember(c, member, err)
}

// IncrementWorkouts godoc
// @Summary Count one completed workout
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} UserResponse
// @Router /members/{memberId}/workouts [post]
func (h *MemberHandler) IncrementWorkouts(c *gin.Context) {
	member, err := h.memberService.IncrementWorkouts(c.Request.Context(), c.Param("memberId"))
	h.respondMember(c, member, err)
}

// RecordAttendance godoc
// @Summary Check a member in for today
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} UserResponse
// @Failure 409 {object} gin.H "Already checked in today"
// @Router /members/{memberId}/attendance [post]
func (h *MemberHandler) RecordAttendance(c *gin.Context) {
	member, err := h.memberService.RecordAttendance(c.Request.Context(), c.Param("memberId"))
	h.respondMember(c, member, err)
}

// AddWorkoutSchedule godoc
// @Summary Link a workout schedule to a member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param body body AddScheduleRequest true "Schedule"
// @Success 200 {object} UserResponse
// @Router /members/{memberId}/schedules [post]
func (h *MemberHandler) AddWorkoutSchedule(c *gin.Context) {
	var req AddScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	member, err := h.memberService.AddWorkoutSchedule(c.Request.Context(), c.Param("memberId"), req.ScheduleID)
	h.respondMember(c, member, err)
}

// Stats godoc
// @Summary Member statistics
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param year query int false "Registration year"
// @Param month query int false "Registration month (1-12)"
// @Success 200 {object} MemberStatsResponse
// @Router /members/stats [get]
func (h *MemberHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		stats MemberStatsResponse
		err   error
	)
	if stats.TotalMembers, err = h.memberService.TotalMemberCount(ctx); err != nil {
		respondError(c, err)
		return
	}
	if stats.ActiveSubscriptions, err = h.memberService.ActiveSubscriptionCount(ctx); err != nil {
		respondError(c, err)
		return
	}
	if stats.RetentionRate, err = h.memberService.MemberRetentionRate(ctx); err != nil {
		respondError(c, err)
		return
	}

	if c.Query("year") != "" || c.Query("month") != "" {
		year, month, ok := registrationMonth(c)
		if !ok {
			return
		}
		n, err := h.memberService.RegistrationCount(ctx, year, month)
		if err != nil {
			respondError(c, err)
			return
		}
		stats.RegisteredInMonth = &n
	}
	c.JSON(http.StatusOK, stats)
}

// registrationMonth reads the year and month query parameters, aborting with
// 400 unless both are integers.
func registrationMonth(c *gin.Context) (year, month int, ok bool) {
	year, yErr := strconv.Atoi(c.Query("year"))
	month, mErr := strconv.Atoi(c.Query("month"))
	if yErr != nil || mErr != nil {
		abortWithError(c, http.StatusBadRequest, "query parameters 'year' and 'month' must both be integers")
		return 0, 0, false
	}
	return year, month, true
}

func (h *MemberHandler) respondMember(c *gin.Context, member *domain.Member, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(member))
}
