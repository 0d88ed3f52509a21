package domain

import (
	"math"
	"strings"
	"time"
)

// Defaults applied by NewSimpleExercise.
const (
	DefaultInstructions     = "Follow proper form and technique"
	DefaultExerciseDuration = 5 * time.Minute
	DefaultSets             = 3
	DefaultReps             = 10
	DefaultWeight           = 0.0
)

// ExerciseParams carries the attributes of an Exercise into NewExercise.
type ExerciseParams struct {
	ID                string
	Name              string
	Type              ExerciseType
	Difficulty        DifficultyLevel
	Description       string
	Instructions      string
	EstimatedDuration time.Duration
	DefaultSets       int
	DefaultReps       int
	DefaultWeight     float64
	TargetMuscles     string
	Equipment         string
}

// Exercise represents a single exercise definition in the library.
// New exercises are active.
type Exercise struct {
	id                string
	name              string
	exerciseType      ExerciseType
	difficulty        DifficultyLevel
	description       string
	instructions      string
	estimatedDuration time.Duration
	defaultSets       int
	defaultReps       int
	defaultWeight     float64
	targetMuscles     string
	equipment         string
	active            bool
}

// NewExercise validates every field in declaration order and fails on the
// first violation.
func NewExercise(p ExerciseParams) (*Exercise, error) {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return nil, invalidArgument("exercise ID cannot be empty")
	case strings.TrimSpace(p.Name) == "":
		return nil, invalidArgument("exercise name cannot be empty")
	case !p.Type.Valid():
		return nil, invalidArgument("exercise type is required")
	case !p.Difficulty.Valid():
		return nil, invalidArgument("difficulty level is required")
	case strings.TrimSpace(p.Description) == "":
		return nil, invalidArgument("description cannot be empty")
	case strings.TrimSpace(p.Instructions) == "":
		return nil, invalidArgument("instructions cannot be empty")
	case p.EstimatedDuration < 0:
		return nil, invalidArgument("estimated duration cannot be negative")
	case p.DefaultSets <= 0:
		return nil, invalidArgument("default sets must be positive")
	case p.DefaultReps <= 0:
		return nil, invalidArgument("default reps must be positive")
	case p.DefaultWeight < 0 || math.IsNaN(p.DefaultWeight):
		return nil, invalidArgument("default weight cannot be negative")
	case strings.TrimSpace(p.TargetMuscles) == "":
		return nil, invalidArgument("target muscles cannot be empty")
	case strings.TrimSpace(p.Equipment) == "":
		return nil, invalidArgument("equipment cannot be empty")
	}
	return &Exercise{
		id:                p.ID,
		name:              p.Name,
		exerciseType:      p.Type,
		difficulty:        p.Difficulty,
		description:       p.Description,
		instructions:      p.Instructions,
		estimatedDuration: p.EstimatedDuration,
		defaultSets:       p.DefaultSets,
		defaultReps:       p.DefaultReps,
		defaultWeight:     p.DefaultWeight,
		targetMuscles:     p.TargetMuscles,
		equipment:         p.Equipment,
		active:            true,
	}, nil
}

// NewSimpleExercise fills instructions, duration, sets, reps and weight with
// the package defaults.
func NewSimpleExercise(id, name string, typ ExerciseType, difficulty DifficultyLevel, description, targetMuscles, equipment string) (*Exercise, error) {
	return NewExercise(ExerciseParams{
		ID:                id,
		Name:              name,
		Type:              typ,
		Difficulty:        difficulty,
		Description:       description,
		Instructions:      DefaultInstructions,
		EstimatedDuration: DefaultExerciseDuration,
		DefaultSets:       DefaultSets,
		DefaultReps:       DefaultReps,
		DefaultWeight:     DefaultWeight,
		TargetMuscles:     targetMuscles,
		Equipment:         equipment,
	})
}

func (e *Exercise) ID() string                       { return e.id }
func (e *Exercise) Name() string                     { return e.name }
func (e *Exercise) Type() ExerciseType               { return e.exerciseType }
func (e *Exercise) Difficulty() DifficultyLevel      { return e.difficulty }
func (e *Exercise) Description() string              { return e.description }
func (e *Exercise) Instructions() string             { return e.instructions }
func (e *Exercise) EstimatedDuration() time.Duration { return e.estimatedDuration }
func (e *Exercise) DefaultSets() int                 { return e.defaultSets }
func (e *Exercise) DefaultReps() int                 { return e.defaultReps }
func (e *Exercise) DefaultWeight() float64           { return e.defaultWeight }
func (e *Exercise) TargetMuscles() string            { return e.targetMuscles }
func (e *Exercise) Equipment() string                { return e.equipment }
func (e *Exercise) IsActive() bool                   { return e.active }

func (e *Exercise) Activate()   { e.active = true }
func (e *Exercise) Deactivate() { e.active = false }

// IsSuitableFor reports whether someone at level can attempt the exercise.
func (e *Exercise) IsSuitableFor(level DifficultyLevel) bool {
	return level >= e.difficulty
}

// IsSuitableForBeginners requires both an easy difficulty and a
// beginner-friendly type.
func (e *Exercise) IsSuitableForBeginners() bool {
	return e.difficulty.IsSuitableForBeginners() && e.exerciseType.IsSuitableForBeginners()
}

func (e *Exercise) IsSuitableForAdvanced() bool {
	return e.difficulty.IsSuitableForExperienced() && e.exerciseType.IsSuitableForAdvanced()
}

// TotalTime is the working time of every default set plus rest between sets.
func (e *Exercise) TotalTime(restBetweenSets time.Duration) (time.Duration, error) {
	if restBetweenSets < 0 {
		return 0, invalidArgument("rest time cannot be negative")
	}
	rests := max(0, e.defaultSets-1)
	return e.estimatedDuration*time.Duration(e.defaultSets) + restBetweenSets*time.Duration(rests), nil
}

// TotalVolume is sets x reps x weight.
func (e *Exercise) TotalVolume() float64 {
	return float64(e.defaultSets*e.defaultReps) * e.defaultWeight
}

func (e *Exercise) RequiresEquipment(equipment string) bool {
	return containsFold(e.equipment, equipment)
}

func (e *Exercise) TargetsMuscleGroup(muscle string) bool {
	return containsFold(e.targetMuscles, muscle)
}

// containsFold is a case-insensitive substring test that is false for blank needles.
func containsFold(haystack, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
