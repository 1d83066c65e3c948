package user

type Permission string

const (
	PermissionManageUsers   Permission = "users:manage"
	PermissionAdjustQuotas  Permission = "quotas:adjust"
	PermissionDecideManager Permission = "requests:decide:manager"
	PermissionDecideHR      Permission = "requests:decide:hr"
	PermissionSubmitRequest Permission = "requests:submit"
)

var rolePermissions = map[Role][]Permission{
	RoleEmployee: {
		PermissionSubmitRequest,
	},
	RoleManager: {
		PermissionSubmitRequest,
		PermissionDecideManager,
	},
	RoleHRAdmin: {
		PermissionSubmitRequest,
		PermissionManageUsers,
		PermissionAdjustQuotas,
		PermissionDecideHR,
	},
}

// HasPermission checks if a role grants the given permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
