package domain

import (
	"math"
	"strings"

	"cloud.google.com/go/civil"
)

// ProgressMetrics is an immutable snapshot of a member's fitness progress.
// Every update returns a new value.
type ProgressMetrics struct {
	memberID          string
	date              civil.Date
	weight            float64
	bodyFatPercentage float64
	workoutsCompleted int
	notes             string
}

// NewProgressMetrics validates the measurements and builds a snapshot.
func NewProgressMetrics(memberID string, date civil.Date, weight, bodyFat float64, workouts int, notes string) (ProgressMetrics, error) {
	if strings.TrimSpace(memberID) == "" {
		return ProgressMetrics{}, invalidArgument("member ID cannot be empty")
	}
	if !date.IsValid() {
		return ProgressMetrics{}, invalidArgument("progress date is required")
	}
	if err := validateMeasurements(weight, bodyFat); err != nil {
		return ProgressMetrics{}, err
	}
	if workouts < 0 {
		return ProgressMetrics{}, invalidArgument("workouts completed cannot be negative")
	}
	return ProgressMetrics{
		memberID:          memberID,
		date:              date,
		weight:            weight,
		bodyFatPercentage: bodyFat,
		workoutsCompleted: workouts,
		notes:             notes,
	}, nil
}

// InitialProgress is the all-zero snapshot a new member starts with.
func InitialProgress(memberID string, date civil.Date) ProgressMetrics {
	return ProgressMetrics{memberID: memberID, date: date}
}

func validateMeasurements(weight, bodyFat float64) error {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return invalidArgument("weight cannot be negative")
	}
	if bodyFat < 0 || bodyFat > 100 || math.IsNaN(bodyFat) {
		return invalidArgument("body fat percentage must be between 0 and 100")
	}
	return nil
}

func (p ProgressMetrics) MemberID() string           { return p.memberID }
func (p ProgressMetrics) Date() civil.Date           { return p.date }
func (p ProgressMetrics) Weight() float64            { return p.weight }
func (p ProgressMetrics) BodyFatPercentage() float64 { return p.bodyFatPercentage }
func (p ProgressMetrics) WorkoutsCompleted() int     { return p.workoutsCompleted }
func (p ProgressMetrics) Notes() string              { return p.notes }

// UpdateMetrics returns a copy carrying the new measurements, dated today.
func (p ProgressMetrics) UpdateMetrics(weight, bodyFat float64) (ProgressMetrics, error) {
	return p.UpdateMetricsOn(weight, bodyFat, Today())
}

func (p ProgressMetrics) UpdateMetricsOn(weight, bodyFat float64, date civil.Date) (ProgressMetrics, error) {
	if err := validateMeasurements(weight, bodyFat); err != nil {
		return ProgressMetrics{}, err
	}
	next := p
	next.weight = weight
	next.bodyFatPercentage = bodyFat
	next.date = date
	return next, nil
}

func (p ProgressMetrics) IncrementWorkouts() ProgressMetrics {
	next := p
	next.workoutsCompleted++
	return next
}

func (p ProgressMetrics) UpdateNotes(notes string) ProgressMetrics {
	next := p
	next.notes = notes
	return next
}

// BMI computes the body mass index for a height in metres.
func (p ProgressMetrics) BMI(heightInMeters float64) (float64, error) {
	if heightInMeters <= 0 || math.IsNaN(heightInMeters) {
		return 0, invalidArgument("height must be positive")
	}
	return p.weight / (heightInMeters * heightInMeters), nil
}

func (p ProgressMetrics) BMICategory(heightInMeters float64) (string, error) {
	bmi, err := p.BMI(heightInMeters)
	if err != nil {
		return "", err
	}
	switch {
	case bmi < 18.5:
		return "Underweight", nil
	case bmi < 25:
		return "Normal weight", nil
	case bmi < 30:
		return "Overweight", nil
	default:
		return "Obese", nil
	}
}

// WeightProgress is the distance from target as a percentage of target.
func (p ProgressMetrics) WeightProgress(targetWeight float64) (float64, error) {
	if targetWeight <= 0 || math.IsNaN(targetWeight) {
		return 0, invalidArgument("target weight must be positive")
	}
	return (p.weight - targetWeight) / targetWeight * 100, nil
}
