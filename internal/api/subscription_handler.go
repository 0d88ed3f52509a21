package api

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/metrics"
	"alcyxob/gym-management/internal/service"
)

// SubscriptionHandler serves the plan catalogue, subscriptions and revenue.
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	recorder            metrics.Recorder
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionService service.SubscriptionService, recorder metrics.Recorder) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService, recorder: recorder}
}

// --- DTOs ---

type CreatePlanRequest struct {
	ID                      string          `json:"id" binding:"required"`
	Name                    string          `json:"name" binding:"required"`
	DurationMonths          int             `json:"durationMonths" binding:"required,gt=0"`
	Price                   float64         `json:"price" binding:"gte=0"`
	Description             string          `json:"description"`
	Type                    domain.PlanType `json:"type" binding:"required"`
	IncludesPersonalTrainer bool            `json:"includesPersonalTrainer"`
	IncludesGroupClasses    bool            `json:"includesGroupClasses"`
	IncludesLockerAccess    bool            `json:"includesLockerAccess"`
}

type PlanResponse struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	DurationMonths          int             `json:"durationMonths"`
	Price                   float64         `json:"price"`
	MonthlyCost             float64         `json:"monthlyCost"`
	Description             string          `json:"description,omitempty"`
	Type                    domain.PlanType `json:"type"`
	IncludesPersonalTrainer bool            `json:"includesPersonalTrainer"`
	IncludesGroupClasses    bool            `json:"includesGroupClasses"`
	IncludesLockerAccess    bool            `json:"includesLockerAccess"`
}

// SubscribeRequest starts today when StartDate is empty.
type SubscribeRequest struct {
	PlanID    string `json:"planId" binding:"required"`
	StartDate string `json:"startDate"`
}

type RenewRequest struct {
	StartDate string `json:"startDate"`
}

type SubscriptionResponse struct {
	ID            string                    `json:"id"`
	PlanID        string                    `json:"planId"`
	PlanName      string                    `json:"planName"`
	StartDate     civil.Date                `json:"startDate"`
	EndDate       civil.Date                `json:"endDate"`
	Status        domain.SubscriptionStatus `json:"status"`
	Amount        float64                   `json:"amount"`
	CreatedAt     civil.Date                `json:"createdAt"`
	Active        bool                      `json:"active"`
	DaysRemaining int                       `json:"daysRemaining"`
}

type RefreshResponse struct {
	Expired int `json:"expired"`
}

func MapPlanToResponse(p domain.SubscriptionPlan) PlanResponse {
	return PlanResponse{
		ID:                      p.ID(),
		Name:                    p.Name(),
		DurationMonths:          p.DurationMonths(),
		Price:                   p.Price(),
		MonthlyCost:             p.MonthlyCost(),
		Description:             p.Description(),
		Type:                    p.Type(),
		IncludesPersonalTrainer: p.IncludesPersonalTrainer(),
		IncludesGroupClasses:    p.IncludesGroupClasses(),
		IncludesLockerAccess:    p.IncludesLockerAccess(),
	}
}

func MapSubscriptionToResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:            s.ID(),
		PlanID:        s.Plan().ID(),
		PlanName:      s.Plan().Name(),
		StartDate:     s.StartDate(),
		EndDate:       s.EndDate(),
		Status:        s.Status(),
		Amount:        s.Amount(),
		CreatedAt:     s.CreatedAt(),
		Active:        s.IsActive(),
		DaysRemaining: s.DaysRemaining(),
	}
}

func MapSubscriptionsToResponse(subs []*domain.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		out[i] = MapSubscriptionToResponse(s)
	}
	return out
}

// parseDate reads a YYYY-MM-DD value, defaulting to today when empty.
func parseDate(value string) (civil.Date, error) {
	if value == "" {
		return domain.Today(), nil
	}
	d, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, domain.NewError(domain.ErrInvalidArgument, "date must be YYYY-MM-DD: %q", value)
	}
	return d, nil
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Add a subscription plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} gin.H "Invalid input or duplicate plan ID"
// @Router /plans [post]
func (h *SubscriptionHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	plan, err := h.subscriptionService.AddPlan(c.Request.Context(), domain.PlanParams{
		ID:                      req.ID,
		Name:                    req.Name,
		DurationMonths:          req.DurationMonths,
		Price:                   req.Price,
		Description:             req.Description,
		Type:                    req.Type,
		IncludesPersonalTrainer: req.IncludesPersonalTrainer,
		IncludesGroupClasses:    req.IncludesGroupClasses,
		IncludesLockerAccess:    req.IncludesLockerAccess,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListPlans godoc
// @Summary List subscription plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PlanResponse
// @Router /plans [get]
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionService.Plans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = MapPlanToResponse(p)
	}
	c.JSON(http.StatusOK, out)
}

// Subscribe godoc
// @Summary Create a subscription to a plan
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubscribeRequest true "Plan and start date"
// @Success 201 {object} SubscriptionResponse
// @Failure 404 {object} gin.H "Plan not found"
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), req.PlanID, start)
	if err != nil {
		respondError(c, err)
		return
	}
	h.recorder.RecordSubscriptionEvent(metrics.EventSubscribed)
	c.JSON(http.StatusCreated, MapSubscriptionToResponse(sub))
}

// GetSubscription godoc
// @Summary Get a subscription
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param subscriptionId path string true "Subscription ID"
// @Success 200 {object} SubscriptionResponse
// @Failure 404 {object} gin.H "Subscription not found"
// @Router /subscriptions/{subscriptionId} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), c.Param("subscriptionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSubscriptionToResponse(sub))
}

// CancelSubscription godoc
// @Summary Cancel a subscription
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param subscriptionId path string true "Subscription ID"
// @Success 200 {object} SubscriptionResponse
// @Failure 409 {object} gin.H "Already cancelled or expired"
// @Router /subscriptions/{subscriptionId}/cancel [post]
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	sub, err := h.subscriptionService.Cancel(c.Request.Context(), c.Param("subscriptionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.recorder.RecordSubscriptionEvent(metrics.EventCancelled)
	c.JSON(http.StatusOK, MapSubscriptionToResponse(sub))
}

// RenewSubscription godoc
// @Summary Renew a subscription
// @Description Creates a new subscription to the same plan. The original is unchanged.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subscriptionId path string true "Subscription ID"
// @Param body body RenewRequest false "New start date"
// @Success 201 {object} SubscriptionResponse
// @Failure 409 {object} gin.H "Cancelled subscriptions cannot be renewed"
// @Router /subscriptions/{subscriptionId}/renew [post]
func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	var req RenewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	renewed, err := h.subscriptionService.Renew(c.Request.Context(), c.Param("subscriptionId"), start)
	if err != nil {
		respondError(c, err)
		return
	}
	h.recorder.RecordSubscriptionEvent(metrics.EventRenewed)
	c.JSON(http.StatusCreated, MapSubscriptionToResponse(renewed))
}

// RefreshStatuses godoc
// @Summary Expire lapsed subscriptions
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RefreshResponse
// @Router /subscriptions/refresh [post]
func (h *SubscriptionHandler) RefreshStatuses(c *gin.Context) {
	n, err := h.subscriptionService.RefreshStatuses(c.Request.Context())
	for range n {
		h.recorder.RecordSubscriptionEvent(metrics.EventExpired)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RefreshResponse{Expired: n})
}

// ExpiringSubscriptions godoc
// @Summary Running subscriptions ending on or before a date
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param by query string false "Cut-off date (YYYY-MM-DD), default today"
// @Success 200 {array} SubscriptionResponse
// @Router /subscriptions/expiring [get]
func (h *SubscriptionHandler) ExpiringSubscriptions(c *gin.Context) {
	by, err := parseDate(c.Query("by"))
	if err != nil {
		respondError(c, err)
		return
	}
	subs, err := h.subscriptionService.ExpiringBy(c.Request.Context(), by)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSubscriptionsToResponse(subs))
}

// RevenueReport godoc
// @Summary Subscription revenue
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.RevenueReport
// @Router /reports/revenue [get]
func (h *SubscriptionHandler) RevenueReport(c *gin.Context) {
	report, err := h.subscriptionService.RevenueReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
