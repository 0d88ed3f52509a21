// internal/api/trainer_handler.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/service"
)

type TrainerHandler struct {
	trainerService service.TrainerService
}

func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs for Roster Management ---

type RegisterTrainerRequest struct {
	AccountRequest
	Specialization    domain.Specialization `json:"specialization" binding:"required"`
	YearsOfExperience int                   `json:"yearsOfExperience" binding:"gte=0"`
}

type AssignMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// TrainerDetails is the trainer section of a UserResponse.
type TrainerDetails struct {
	Specialization    domain.Specialization `json:"specialization"`
	YearsOfExperience int                   `json:"yearsOfExperience"`
	ExperienceLevel   string                `json:"experienceLevel"`
	Available         bool                  `json:"available"`
	CertifiedAt       time.Time             `json:"certifiedAt"`
	MemberIDs         []string              `json:"memberIds"`
}

func mapTrainerDetails(t *domain.Trainer) *TrainerDetails {
	ids := t.AssignedMemberIDs()
	memberIDs := make([]string, len(ids))
	for i, id := range ids {
		memberIDs[i] = id.String()
	}
	return &TrainerDetails{
		Specialization:    t.Specialization(),
		YearsOfExperience: t.YearsOfExperience(),
		ExperienceLevel:   t.ExperienceLevel(),
		Available:         t.IsAvailable(),
		CertifiedAt:       t.CertifiedAt(),
		MemberIDs:         memberIDs,
	}
}

// trainerID is the :trainerId path parameter on admin routes, and the
// caller's own ID on /trainer routes.
func trainerID(c *gin.Context) (string, bool) {
	if id := c.Param("trainerId"); id != "" {
		return id, true
	}
	id, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify trainer from token.")
		return "", false
	}
	return id, true
}

// --- Handler Methods ---

// RegisterTrainer godoc
// @Summary Register a trainer
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainer body RegisterTrainerRequest true "Trainer details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input or duplicate identifier"
// @Router /trainers [post]
func (h *TrainerHandler) RegisterTrainer(c *gin.Context) {
	var req RegisterTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	trainer, err := h.trainerService.RegisterTrainer(c.Request.Context(), req.info(), req.Specialization, req.YearsOfExperience)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(trainer))
}

// QualifiedTrainers godoc
// @Summary Available trainers for a specialization
// @Tags Trainers
// @Produce json
// @Security BearerAuth
// @Param specialization query string true "Specialization, e.g. CARDIO"
// @Success 200 {array} UserResponse
// @Router /trainers [get]
func (h *TrainerHandler) QualifiedTrainers(c *gin.Context) {
	trainers, err := h.trainerService.QualifiedTrainers(c.Request.Context(), domain.Specialization(c.Query("specialization")))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]UserResponse, len(trainers))
	for i, t := range trainers {
		out[i] = MapUserToResponse(t)
	}
	c.JSON(http.StatusOK, out)
}

// AssignMember godoc
// @Summary Add a member to a trainer's roster
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainerId path string true "Trainer user ID"
// @Param body body AssignMemberRequest true "Member"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "Trainer or member not found"
// @Failure 409 {object} gin.H "Trainer unavailable or at capacity"
// @Router /trainers/{trainerId}/members [post]
func (h *TrainerHandler) AssignMember(c *gin.Context) {
	var req AssignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	id, ok := trainerID(c)
	if !ok {
		return
	}
	trainer, err := h.trainerService.AssignMember(c.Request.Context(), id, req.MemberID)
	h.respondTrainer(c, trainer, err)
}

// UnassignMember godoc
// @Summary Remove a member from a trainer's roster
// @Tags Trainers
// @Produce json
// @Security BearerAuth
// @Param trainerId path string true "Trainer user ID"
// @Param memberId path string true "Member ID"
// @Success 200 {object} UserResponse
// @Router /trainers/{trainerId}/members/{memberId} [delete]
func (h *TrainerHandler) UnassignMember(c *gin.Context) {
	id, ok := trainerID(c)
	if !ok {
		return
	}
	trainer, err := h.trainerService.UnassignMember(c.Request.Context(), id, c.Param("memberId"))
	h.respondTrainer(c, trainer, err)
}

// SetAvailability godoc
// @Summary Open or close a trainer for new members
// @Tags Trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainerId path string true "Trainer user ID"
// @Param body body AvailabilityRequest true "Availability"
// @Success 200 {object} UserResponse
// @Router /trainers/{trainerId}/availability [put]
func (h *TrainerHandler) SetAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	id, ok := trainerID(c)
	if !ok {
		return
	}
	trainer, err := h.trainerService.SetAvailability(c.Request.Context(), id, *req.Available)
	h.respondTrainer(c, trainer, err)
}

// AssignedMembers godoc
// @Summary Members on a trainer's roster
// @Tags Trainers
// @Produce json
// @Security BearerAuth
// @Param trainerId path string true "Trainer user ID"
// @Success 200 {array} UserResponse
// @Router /trainers/{trainerId}/members [get]
func (h *TrainerHandler) AssignedMembers(c *gin.Context) {
	id, ok := trainerID(c)
	if !ok {
		return
	}
	members, err := h.trainerService.AssignedMembers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMembersToResponse(members))
}

func (h *TrainerHandler) respondTrainer(c *gin.Context, trainer *domain.Trainer, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(trainer))
}
