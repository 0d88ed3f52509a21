package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var memberIDPattern = regexp.MustCompile(`^MEM-\d{6}$`)

const maxMemberNumber = 999999

// MemberID identifies a member, e.g. "MEM-000042". The zero value is not a
// valid id; MemberID values are comparable and usable as map keys.
type MemberID struct {
	value string
}

// NewMemberID validates s against the MEM-XXXXXX format.
func NewMemberID(s string) (MemberID, error) {
	if strings.TrimSpace(s) == "" {
		return MemberID{}, invalidArgument("member ID cannot be empty")
	}
	if !memberIDPattern.MatchString(s) {
		return MemberID{}, invalidArgument("member ID must follow format MEM-XXXXXX")
	}
	return MemberID{value: s}, nil
}

// MemberIDFromNumeric formats n (0..999999) as a zero-padded member id.
func MemberIDFromNumeric(n int) (MemberID, error) {
	if n < 0 || n > maxMemberNumber {
		return MemberID{}, invalidArgument("numeric ID must be between 0 and %d", maxMemberNumber)
	}
	return MemberID{value: fmt.Sprintf("MEM-%06d", n)}, nil
}

func (id MemberID) String() string { return id.value }

func (id MemberID) IsZero() bool { return id.value == "" }

// Numeric returns the six digit suffix as an int.
func (id MemberID) Numeric() int {
	n, _ := strconv.Atoi(strings.TrimPrefix(id.value, "MEM-"))
	return n
}

func (id MemberID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

func (id *MemberID) UnmarshalText(text []byte) error {
	parsed, err := NewMemberID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
