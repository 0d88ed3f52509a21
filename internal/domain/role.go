package domain

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleMember  Role = "member"
)

// describedValue is the row type of the attribute tables that back each enum.
type describedValue struct {
	displayName string
	description string
}

var roleInfo = map[Role]describedValue{
	RoleAdmin:   {"Administrator", "System administrator with full access"},
	RoleTrainer: {"Trainer", "Fitness trainer who can manage members and workouts"},
	RoleMember:  {"Member", "Gym member with access to facilities and services"},
}

// Roles lists every role in declaration order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleTrainer, RoleMember}
}

// ParseRole converts a role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", invalidArgument("unknown role: %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleInfo[r]
	return ok
}

func (r Role) DisplayName() string { return roleInfo[r].displayName }
func (r Role) Description() string { return roleInfo[r].description }

func (r Role) IsAdmin() bool   { return r == RoleAdmin }
func (r Role) IsTrainer() bool { return r == RoleTrainer }
func (r Role) IsMember() bool  { return r == RoleMember }
