package cache

import "github.com/google/uuid"

const roleRequirementsPrefix = "roles:skills:"

func RoleRequirementsKey(roleID uuid.UUID) string {
	return roleRequirementsPrefix + roleID.String()
}

// AllRoleRequirementsPattern matches every cached requirement list.
func AllRoleRequirementsPattern() string {
	return roleRequirementsPrefix + "*"
}
