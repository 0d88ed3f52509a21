package domain

import "fmt"

// DifficultyLevel is an ordered exercise difficulty, 1 (BEGINNER) to 5 (EXPERT).
type DifficultyLevel int

const (
	DifficultyBeginner DifficultyLevel = iota + 1
	DifficultyNovice
	DifficultyIntermediate
	DifficultyAdvanced
	DifficultyExpert
)

type difficultyRow struct {
	name string
	describedValue
}

var difficultyInfo = map[DifficultyLevel]difficultyRow{
	DifficultyBeginner:     {"BEGINNER", describedValue{"Beginner", "Suitable for those new to exercise"}},
	DifficultyNovice:       {"NOVICE", describedValue{"Novice", "Some exercise experience required"}},
	DifficultyIntermediate: {"INTERMEDIATE", describedValue{"Intermediate", "Regular exercise experience needed"}},
	DifficultyAdvanced:     {"ADVANCED", describedValue{"Advanced", "Extensive exercise experience required"}},
	DifficultyExpert:       {"EXPERT", describedValue{"Expert", "Professional or competitive level"}},
}

// DifficultyLevels lists every level from easiest to hardest.
func DifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{
		DifficultyBeginner, DifficultyNovice, DifficultyIntermediate,
		DifficultyAdvanced, DifficultyExpert,
	}
}

// ParseDifficultyLevel accepts the upper-case level name, e.g. "ADVANCED".
func ParseDifficultyLevel(s string) (DifficultyLevel, error) {
	for level, row := range difficultyInfo {
		if row.name == s {
			return level, nil
		}
	}
	return 0, invalidArgument("unknown difficulty level: %q", s)
}

func (d DifficultyLevel) Valid() bool {
	_, ok := difficultyInfo[d]
	return ok
}

func (d DifficultyLevel) String() string {
	if row, ok := difficultyInfo[d]; ok {
		return row.name
	}
	return fmt.Sprintf("DifficultyLevel(%d)", int(d))
}

func (d DifficultyLevel) Level() int          { return int(d) }
func (d DifficultyLevel) DisplayName() string { return difficultyInfo[d].displayName }
func (d DifficultyLevel) Description() string { return difficultyInfo[d].description }

func (d DifficultyLevel) IsSuitableForBeginners() bool   { return d <= DifficultyNovice }
func (d DifficultyLevel) IsSuitableForExperienced() bool { return d >= DifficultyIntermediate }

func (d DifficultyLevel) IsHigherThan(other DifficultyLevel) bool { return d > other }
func (d DifficultyLevel) IsLowerThan(other DifficultyLevel) bool  { return d < other }

// Next returns the following level; ok is false at EXPERT.
func (d DifficultyLevel) Next() (next DifficultyLevel, ok bool) {
	if d >= DifficultyExpert {
		return d, false
	}
	return d + 1, true
}

// Previous returns the preceding level; ok is false at BEGINNER.
func (d DifficultyLevel) Previous() (prev DifficultyLevel, ok bool) {
	if d <= DifficultyBeginner {
		return d, false
	}
	return d - 1, true
}

// MarshalText encodes the level by name so JSON and config files stay readable.
func (d DifficultyLevel) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, invalidArgument("unknown difficulty level: %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *DifficultyLevel) UnmarshalText(text []byte) error {
	level, err := ParseDifficultyLevel(string(text))
	if err != nil {
		return err
	}
	*d = level
	return nil
}
