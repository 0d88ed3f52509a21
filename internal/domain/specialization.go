package domain

// Specialization is a trainer's area of expertise.
type Specialization string

const (
	SpecializationGeneral        Specialization = "GENERAL"
	SpecializationStrength       Specialization = "STRENGTH"
	SpecializationCardio         Specialization = "CARDIO"
	SpecializationWeightLoss     Specialization = "WEIGHT_LOSS"
	SpecializationMuscleBuilding Specialization = "MUSCLE_BUILDING"
	SpecializationFunctional     Specialization = "FUNCTIONAL"
	SpecializationSports         Specialization = "SPORTS"
	SpecializationRehabilitation Specialization = "REHABILITATION"
	SpecializationSenior         Specialization = "SENIOR"
	SpecializationPrenatal       Specialization = "PRENATAL"
)

type specializationTraits struct {
	describedValue
	strength, cardio, rehabilitation, sports bool
	beginner, advanced, certification        bool
}

var specializationInfo = map[Specialization]specializationTraits{
	SpecializationGeneral: {
		describedValue: describedValue{"General Fitness", "General fitness training for overall health"},
		beginner:       true,
	},
	SpecializationStrength: {
		describedValue: describedValue{"Strength Training", "Focus on building muscle strength and power"},
		strength:       true, advanced: true,
	},
	SpecializationCardio: {
		describedValue: describedValue{"Cardiovascular", "Cardio and endurance training"},
		cardio:         true, beginner: true,
	},
	SpecializationWeightLoss: {
		describedValue: describedValue{"Weight Loss", "Specialized in weight loss and fat burning programs"},
		cardio:         true,
	},
	SpecializationMuscleBuilding: {
		describedValue: describedValue{"Muscle Building", "Bodybuilding and muscle hypertrophy training"},
		strength:       true, advanced: true,
	},
	SpecializationFunctional: {
		describedValue: describedValue{"Functional Training", "Functional movement and daily activity training"},
		sports:         true, beginner: true,
	},
	SpecializationSports: {
		describedValue: describedValue{"Sports Performance", "Athletic performance and sports-specific training"},
		sports:         true, advanced: true,
	},
	SpecializationRehabilitation: {
		describedValue: describedValue{"Rehabilitation", "Injury recovery and physical therapy"},
		rehabilitation: true, certification: true,
	},
	SpecializationSenior: {
		describedValue: describedValue{"Senior Fitness", "Fitness programs designed for older adults"},
		rehabilitation: true, certification: true,
	},
	SpecializationPrenatal: {
		describedValue: describedValue{"Prenatal Fitness", "Safe exercise programs for pregnant women"},
		certification:  true,
	},
}

// Specializations lists every specialization in declaration order.
func Specializations() []Specialization {
	return []Specialization{
		SpecializationGeneral, SpecializationStrength, SpecializationCardio,
		SpecializationWeightLoss, SpecializationMuscleBuilding, SpecializationFunctional,
		SpecializationSports, SpecializationRehabilitation, SpecializationSenior,
		SpecializationPrenatal,
	}
}

func ParseSpecialization(s string) (Specialization, error) {
	sp := Specialization(s)
	if !sp.Valid() {
		return "", invalidArgument("unknown specialization: %q", s)
	}
	return sp, nil
}

func (s Specialization) Valid() bool {
	_, ok := specializationInfo[s]
	return ok
}

func (s Specialization) DisplayName() string { return specializationInfo[s].displayName }
func (s Specialization) Description() string { return specializationInfo[s].description }

func (s Specialization) IsGeneral() bool               { return s == SpecializationGeneral }
func (s Specialization) IsStrengthFocused() bool       { return specializationInfo[s].strength }
func (s Specialization) IsCardioFocused() bool         { return specializationInfo[s].cardio }
func (s Specialization) IsRehabilitationFocused() bool { return specializationInfo[s].rehabilitation }
func (s Specialization) IsSportsFocused() bool         { return specializationInfo[s].sports }
func (s Specialization) IsSuitableForBeginners() bool  { return specializationInfo[s].beginner }
func (s Specialization) IsSuitableForAdvanced() bool   { return specializationInfo[s].advanced }

// RequiresSpecialCertification reports whether trainers need an extra
// credential to work in this area.
func (s Specialization) RequiresSpecialCertification() bool {
	return specializationInfo[s].certification
}
