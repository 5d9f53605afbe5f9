package auth

import "daycare_backend/internal/models"

// Permission sets per role.
var Permissions = map[models.UserRole][]string{
	models.UserRoleAdmin: {
		"users:read", "users:write", "users:delete",
		"children:read", "children:write",
		"plans:write", "payments:read", "exports:read",
		"system:admin",
	},
	models.UserRoleSupervisor: {
		"users:read",
		"children:read", "children:write",
		"complaints:resolve", "payments:read", "exports:read",
	},
	models.UserRoleTeacher: {
		"children:read:group",
		"attendance:write", "reports:write", "meetings:decide",
	},
	models.UserRoleParent: {
		"children:read:own",
		"reports:read:own", "payments:write:own",
		"complaints:write", "meetings:request",
	},
}

// HasPermission reports whether the role carries the permission.
func HasPermission(role models.UserRole, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to daycare staff.
func IsStaff(role models.UserRole) bool {
	switch role {
	case models.UserRoleTeacher, models.UserRoleSupervisor, models.UserRoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the claims belong to an administrator.
func IsAdmin(claims *Claims) bool {
	return models.UserRole(claims.Role) == models.UserRoleAdmin
}
