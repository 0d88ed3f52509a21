package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/gym-management/internal/domain"
	"alcyxob/gym-management/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
// Difficulty is given by name, e.g. "INTERMEDIATE".
type CreateExerciseRequest struct {
	ID               string                 `json:"id" binding:"required"`
	Name             string                 `json:"name" binding:"required"`
	Type             domain.ExerciseType    `json:"type" binding:"required"`
	Difficulty       domain.DifficultyLevel `json:"difficulty" binding:"required"`
	Description      string                 `json:"description" binding:"required"`
	Instructions     string                 `json:"instructions"`
	EstimatedMinutes int                    `json:"estimatedMinutes" binding:"gte=0"`
	DefaultSets      int                    `json:"defaultSets" binding:"gte=0"`
	DefaultReps      int                    `json:"defaultReps" binding:"gte=0"`
	DefaultWeight    float64                `json:"defaultWeight" binding:"gte=0"`
	TargetMuscles    string                 `json:"targetMuscles" binding:"required"`
	Equipment        string                 `json:"equipment" binding:"required"`
}

// params fills omitted optional fields with the library defaults.
func (r CreateExerciseRequest) params() domain.ExerciseParams {
	p := domain.ExerciseParams{
		ID:                r.ID,
		Name:              r.Name,
		Type:              r.Type,
		Difficulty:        r.Difficulty,
		Description:       r.Description,
		Instructions:      r.Instructions,
		EstimatedDuration: time.Duration(r.EstimatedMinutes) * time.Minute,
		DefaultSets:       r.DefaultSets,
		DefaultReps:       r.DefaultReps,
		DefaultWeight:     r.DefaultWeight,
		TargetMuscles:     r.TargetMuscles,
		Equipment:         r.Equipment,
	}
	if p.Instructions == "" {
		p.Instructions = domain.DefaultInstructions
	}
	if p.EstimatedDuration == 0 {
		p.EstimatedDuration = domain.DefaultExerciseDuration
	}
	if p.DefaultSets == 0 {
		p.DefaultSets = domain.DefaultSets
	}
	if p.DefaultReps == 0 {
		p.DefaultReps = domain.DefaultReps
	}
	return p
}

type SetExerciseActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Type             domain.ExerciseType    `json:"type"`
	Difficulty       domain.DifficultyLevel `json:"difficulty"`
	Description      string                 `json:"description"`
	Instructions     string                 `json:"instructions"`
	EstimatedMinutes float64                `json:"estimatedMinutes"`
	DefaultSets      int                    `json:"defaultSets"`
	DefaultReps      int                    `json:"defaultReps"`
	DefaultWeight    float64                `json:"defaultWeight"`
	TargetMuscles    string                 `json:"targetMuscles"`
	Equipment        string                 `json:"equipment"`
	Active           bool                   `json:"active"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:               ex.ID(),
		Name:             ex.Name(),
		Type:             ex.Type(),
		Difficulty:       ex.Difficulty(),
		Description:      ex.Description(),
		Instructions:     ex.Instructions(),
		EstimatedMinutes: ex.EstimatedDuration().Minutes(),
		DefaultSets:      ex.DefaultSets(),
		DefaultReps:      ex.DefaultReps(),
		DefaultWeight:    ex.DefaultWeight(),
		TargetMuscles:    ex.TargetMuscles(),
		Equipment:        ex.Equipment(),
		Active:           ex.IsActive(),
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []*domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(ex)
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Adds an exercise to the gym's library.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req.params())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List exercises
// @Description Lists the library, optionally filtered. With "suitableFor" the
// @Description other filters are ignored and active exercises at or below that level are returned.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param type query string false "Exercise type, e.g. STRENGTH"
// @Param difficulty query string false "Difficulty, e.g. BEGINNER"
// @Param q query string false "Name contains (case-insensitive)"
// @Param active query bool false "Only active exercises"
// @Param suitableFor query string false "Difficulty the trainee can handle"
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Failure 400 {object} gin.H "Unknown type or difficulty"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	ctx := c.Request.Context()

	if s := c.Query("suitableFor"); s != "" {
		level, err := domain.ParseDifficultyLevel(s)
		if err != nil {
			respondError(c, err)
			return
		}
		exercises, err := h.exerciseService.SuitableFor(ctx, level)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
		return
	}

	filter := service.ExerciseFilter{
		Type:  domain.ExerciseType(c.Query("type")),
		Query: c.Query("q"),
	}
	if s := c.Query("difficulty"); s != "" {
		level, err := domain.ParseDifficultyLevel(s)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.Difficulty = level
	}
	if s := c.Query("active"); s != "" {
		active, err := strconv.ParseBool(s)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "query parameter 'active' must be true or false")
			return
		}
		filter.ActiveOnly = active
	}

	exercises, err := h.exerciseService.ListExercises(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get an exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), c.Param("exerciseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// SetExerciseActive godoc
// @Summary Activate or retire an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Param body body SetExerciseActiveRequest true "Desired state"
// @Success 200 {object} ExerciseResponse
// @Router /exercises/{exerciseId}/active [put]
func (h *ExerciseHandler) SetExerciseActive(c *gin.Context) {
	var req SetExerciseActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	exercise, err := h.exerciseService.SetActive(c.Request.Context(), c.Param("exerciseId"), *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Tags Exercises
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), c.Param("exerciseId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
