package echoweb

import "github.com/DrumilPatell/sms-system/core/session"

type NavItem struct {
	Name  string
	Path  string
	Roles []session.Role
}

// navigation is the static sidebar; each item carries its role allow-list.
var navigation = []NavItem{
	{Name: "Dashboard", Path: dashboardPath, Roles: session.AllRoles},
	{Name: "Users", Path: dashboardPath + "/users", Roles: []session.Role{session.RoleAdmin}},
	{Name: "Students", Path: dashboardPath + "/students", Roles: []session.Role{session.RoleAdmin, session.RoleFaculty}},
	{Name: "Courses", Path: dashboardPath + "/courses", Roles: session.AllRoles},
	{Name: "Enrollments", Path: dashboardPath + "/enrollments", Roles: []session.Role{session.RoleAdmin}},
	{Name: "Attendance", Path: dashboardPath + "/attendance", Roles: []session.Role{session.RoleAdmin, session.RoleFaculty}},
	{Name: "Grades", Path: dashboardPath + "/grades", Roles: session.AllRoles},
}

func navigationFor(role session.Role) []NavItem {
	items := make([]NavItem, 0, len(navigation))
	for _, item := range navigation {
		if roleAllowed(role, item.Roles) {
			items = append(items, item)
		}
	}
	return items
}
