package domain

// AdminAction is an operation guarded by an admin permission flag.
type AdminAction string

const (
	ActionManageUsers          AdminAction = "MANAGE_USERS"
	ActionManageSubscriptions  AdminAction = "MANAGE_SUBSCRIPTIONS"
	ActionManageReports        AdminAction = "MANAGE_REPORTS"
	ActionManageSystemSettings AdminAction = "MANAGE_SYSTEM_SETTINGS"
)

var adminActionInfo = map[AdminAction]describedValue{
	ActionManageUsers:          {"Manage Users", "Create, update, and delete user accounts"},
	ActionManageSubscriptions:  {"Manage Subscriptions", "Handle subscription plans and member subscriptions"},
	ActionManageReports:        {"Manage Reports", "Generate and view system reports"},
	ActionManageSystemSettings: {"Manage System Settings", "Configure system-wide settings"},
}

func AdminActions() []AdminAction {
	return []AdminAction{
		ActionManageUsers, ActionManageSubscriptions,
		ActionManageReports, ActionManageSystemSettings,
	}
}

func ParseAdminAction(s string) (AdminAction, error) {
	a := AdminAction(s)
	if !a.Valid() {
		return "", invalidArgument("unknown admin action: %q", s)
	}
	return a, nil
}

func (a AdminAction) Valid() bool {
	_, ok := adminActionInfo[a]
	return ok
}

func (a AdminAction) DisplayName() string { return adminActionInfo[a].displayName }
func (a AdminAction) Description() string { return adminActionInfo[a].description }

func (a AdminAction) IsUserRelated() bool         { return a == ActionManageUsers }
func (a AdminAction) IsSubscriptionRelated() bool { return a == ActionManageSubscriptions }
func (a AdminAction) IsReportRelated() bool       { return a == ActionManageReports }
func (a AdminAction) IsSystemRelated() bool       { return a == ActionManageSystemSettings }

// RequiresHighLevelPrivileges is true for user and system management.
func (a AdminAction) RequiresHighLevelPrivileges() bool {
	return a == ActionManageSystemSettings || a == ActionManageUsers
}
