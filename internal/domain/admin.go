package domain

import (
	"strings"
	"time"
)

const (
	seniorAdminTenureDays = 365
	juniorAdminTenureDays = 180
)

// AdminPermissions are the four permission flags an Admin carries.
type AdminPermissions struct {
	ManageUsers          bool
	ManageSubscriptions  bool
	ManageReports        bool
	ManageSystemSettings bool
}

// FullPermissions grants every admin action.
func FullPermissions() AdminPermissions {
	return AdminPermissions{
		ManageUsers:          true,
		ManageSubscriptions:  true,
		ManageReports:        true,
		ManageSystemSettings: true,
	}
}

// Admin is a system administrator.
type Admin struct {
	Account

	adminLevel  string
	permissions AdminPermissions
	adminSince  time.Time
}

// NewAdmin creates an admin holding every permission.
func NewAdmin(info AccountInfo, adminLevel string) (*Admin, error) {
	return NewAdminWithPermissions(info, adminLevel, FullPermissions())
}

func NewAdminWithPermissions(info AccountInfo, adminLevel string, perms AdminPermissions) (*Admin, error) {
	acct, err := newAccount(info, RoleAdmin)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(adminLevel) == "" {
		return nil, invalidArgument("admin level cannot be empty")
	}
	return &Admin{
		Account:     acct,
		adminLevel:  adminLevel,
		permissions: perms,
		adminSince:  acct.createdAt,
	}, nil
}

func (a *Admin) AdminLevel() string            { return a.adminLevel }
func (a *Admin) Permissions() AdminPermissions { return a.permissions }
func (a *Admin) AdminSince() time.Time         { return a.adminSince }

func (a *Admin) UpdatePermissions(perms AdminPermissions) {
	a.permissions = perms
	a.touch()
}

func (a *Admin) HasFullPrivileges() bool {
	return a.permissions == FullPermissions()
}

// CanPerform maps an action onto its permission flag.
func (a *Admin) CanPerform(action AdminAction) (bool, error) {
	switch action {
	case ActionManageUsers:
		return a.permissions.ManageUsers, nil
	case ActionManageSubscriptions:
		return a.permissions.ManageSubscriptions, nil
	case ActionManageReports:
		return a.permissions.ManageReports, nil
	case ActionManageSystemSettings:
		return a.permissions.ManageSystemSettings, nil
	default:
		return false, invalidArgument("unknown admin action: %q", action)
	}
}

func (a *Admin) TenureInDays() int {
	return a.TenureInDaysAt(time.Now())
}

// TenureInDaysAt counts whole days between adminSince and now.
func (a *Admin) TenureInDaysAt(now time.Time) int {
	return int(now.Sub(a.adminSince) / (24 * time.Hour))
}

func (a *Admin) IsSeniorAdmin() bool { return a.TenureInDays() > seniorAdminTenureDays }
func (a *Admin) IsJuniorAdmin() bool { return a.TenureInDays() < juniorAdminTenureDays }
