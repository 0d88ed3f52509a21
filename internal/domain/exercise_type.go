package domain

// ExerciseType classifies an exercise by training goal.
type ExerciseType string

const (
	ExerciseStrength    ExerciseType = "STRENGTH"
	ExerciseCardio      ExerciseType = "CARDIO"
	ExerciseFlexibility ExerciseType = "FLEXIBILITY"
	ExerciseFunctional  ExerciseType = "FUNCTIONAL"
	ExerciseBalance     ExerciseType = "BALANCE"
	ExerciseCore        ExerciseType = "CORE"
	ExercisePlyometric  ExerciseType = "PLYOMETRIC"
	ExerciseIsometric   ExerciseType = "ISOMETRIC"
	ExerciseCompound    ExerciseType = "COMPOUND"
	ExerciseIsolation   ExerciseType = "ISOLATION"
)

type exerciseTypeTraits struct {
	describedValue
	strength, cardio, flexibility, functional bool
	beginner, advanced, equipment, home       bool
}

var exerciseTypeInfo = map[ExerciseType]exerciseTypeTraits{
	ExerciseStrength: {
		describedValue: describedValue{"Strength Training", "Exercises focused on building muscle strength"},
		strength:       true, equipment: true,
	},
	ExerciseCardio: {
		describedValue: describedValue{"Cardiovascular", "Exercises that improve heart and lung health"},
		cardio:         true,
	},
	ExerciseFlexibility: {
		describedValue: describedValue{"Flexibility", "Stretching and mobility exercises"},
		flexibility:    true, beginner: true, home: true,
	},
	ExerciseFunctional: {
		describedValue: describedValue{"Functional", "Exercises that mimic daily activities"},
		functional:     true, home: true,
	},
	ExerciseBalance: {
		describedValue: describedValue{"Balance", "Exercises that improve stability and coordination"},
		flexibility:    true, beginner: true, home: true,
	},
	ExerciseCore: {
		describedValue: describedValue{"Core", "Exercises targeting abdominal and back muscles"},
		functional:     true, beginner: true, home: true,
	},
	ExercisePlyometric: {
		describedValue: describedValue{"Plyometric", "Explosive jumping and power exercises"},
		cardio:         true, advanced: true,
	},
	ExerciseIsometric: {
		describedValue: describedValue{"Isometric", "Static holds without joint movement"},
		advanced:       true, home: true,
	},
	ExerciseCompound: {
		describedValue: describedValue{"Compound", "Multi-joint exercises working several muscle groups"},
		strength:       true, advanced: true, equipment: true,
	},
	ExerciseIsolation: {
		describedValue: describedValue{"Isolation", "Single-joint exercises targeting one muscle group"},
		strength:       true, equipment: true,
	},
}

// ExerciseTypes lists every exercise type in declaration order.
func ExerciseTypes() []ExerciseType {
	return []ExerciseType{
		ExerciseStrength, ExerciseCardio, ExerciseFlexibility, ExerciseFunctional,
		ExerciseBalance, ExerciseCore, ExercisePlyometric, ExerciseIsometric,
		ExerciseCompound, ExerciseIsolation,
	}
}

func ParseExerciseType(s string) (ExerciseType, error) {
	t := ExerciseType(s)
	if !t.Valid() {
		return "", invalidArgument("unknown exercise type: %q", s)
	}
	return t, nil
}

func (t ExerciseType) Valid() bool {
	_, ok := exerciseTypeInfo[t]
	return ok
}

func (t ExerciseType) DisplayName() string { return exerciseTypeInfo[t].displayName }
func (t ExerciseType) Description() string { return exerciseTypeInfo[t].description }

func (t ExerciseType) IsStrengthFocused() bool      { return exerciseTypeInfo[t].strength }
func (t ExerciseType) IsCardioFocused() bool        { return exerciseTypeInfo[t].cardio }
func (t ExerciseType) IsFlexibilityFocused() bool   { return exerciseTypeInfo[t].flexibility }
func (t ExerciseType) IsFunctionalFocused() bool    { return exerciseTypeInfo[t].functional }
func (t ExerciseType) IsSuitableForBeginners() bool { return exerciseTypeInfo[t].beginner }
func (t ExerciseType) IsSuitableForAdvanced() bool  { return exerciseTypeInfo[t].advanced }
func (t ExerciseType) RequiresEquipment() bool      { return exerciseTypeInfo[t].equipment }
func (t ExerciseType) CanBeDoneAtHome() bool        { return exerciseTypeInfo[t].home }
