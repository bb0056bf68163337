// Package authz evaluates role permissions with an explicit table
// instead of metadata-driven guards.
package authz

const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"

	ModuleAll = "*"
)

var permissionsByRole = map[string]map[string][]string{
	RoleAdmin: {
		ModuleAll: {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
	},
	RoleMember: {
		"news":    {ActionRead},
		"library": {ActionRead},
		"report":  {ActionCreate, ActionRead},
		"quiz":    {ActionRead, ActionCreate},
	},
}

// Allow reports whether role may perform action on module.
func Allow(role, module, action string) bool {
	modules, ok := permissionsByRole[role]
	if !ok {
		return false
	}
	for _, m := range []string{ModuleAll, module} {
		for _, a := range modules[m] {
			if a == action {
				return true
			}
		}
	}
	return false
}

// Permissions returns the raw permission table for a role, for the
// auth response payload.
func Permissions(role string) map[string][]string {
	return permissionsByRole[role]
}
