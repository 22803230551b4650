package domain

// Role is a user's access level.
type Role string

const (
	RoleOwner          Role = "owner"
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleWarehouse      Role = "warehouse"
	RoleEmployee       Role = "employee"
)

// AllRoles lists every recognized role.
var AllRoles = []Role{RoleOwner, RoleAdmin, RoleProjectManager, RoleWarehouse, RoleEmployee}

// Role groups used for endpoint and assistant gating.
var (
	OfficeRoles    = []Role{RoleOwner, RoleAdmin, RoleProjectManager}
	ManagerRoles   = []Role{RoleOwner, RoleAdmin}
	InventoryRoles = []Role{RoleOwner, RoleAdmin, RoleProjectManager, RoleWarehouse}
	OwnerOnly      = []Role{RoleOwner}
)

// IsValid reports whether r is a recognized role.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
