package auth

// Роли выводятся из флагов is_staff / is_superuser пользователя.
const (
	RoleSuperuser = "superuser"
	RoleStaff     = "staff"
	RoleUser      = "user"
)

const (
	PermUsersList    = "users:list"
	PermProfileSelf  = "profile:write:self"
	PermTasksRun     = "tasks:run"
	PermTasksRead    = "tasks:read"
	PermLinksCreate  = "links:create"
	PermSystemManage = "system:manage"
)

// Permissions список разрешений по ролям
var Permissions = map[string][]string{
	RoleSuperuser: {
		PermUsersList,
		PermProfileSelf,
		PermTasksRun,
		PermTasksRead,
		PermLinksCreate,
		PermSystemManage,
	},
	RoleStaff: {
		PermUsersList,
		PermProfileSelf,
		PermTasksRun,
		PermTasksRead,
		PermLinksCreate,
	},
	RoleUser: {
		PermProfileSelf,
		PermLinksCreate,
	},
}

// RoleFor возвращает роль по флагам пользователя
func RoleFor(isStaff, isSuperuser bool) string {
	switch {
	case isSuperuser:
		return RoleSuperuser
	case isStaff:
		return RoleStaff
	default:
		return RoleUser
	}
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
