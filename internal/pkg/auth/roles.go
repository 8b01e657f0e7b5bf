package auth

// Role is a named capability held by an authenticated principal
type Role string

const (
	RoleWarehouse     Role = "warehouse"
	RoleAdministrator Role = "administrator"
	RoleFinancial     Role = "financial"
	RoleCustomer      Role = "customer"
)

// EmployeeRoles are the roles that can be assigned when creating staff accounts
var EmployeeRoles = []Role{RoleWarehouse, RoleAdministrator, RoleFinancial}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleWarehouse, RoleAdministrator, RoleFinancial, RoleCustomer:
		return true
	}
	return false
}

// IsEmployee reports whether r may be assigned to a staff account
func (r Role) IsEmployee() bool {
	for _, er := range EmployeeRoles {
		if r == er {
			return true
		}
	}
	return false
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Roles     []Role `json:"roles"`
	Superuser bool   `json:"superuser"`
}

// Has reports whether the principal holds any of the given roles.
// A superuser satisfies every check.
func (p Principal) Has(roles ...Role) bool {
	if p.Superuser {
		return true
	}
	for _, want := range roles {
		for _, held := range p.Roles {
			if held == want {
				return true
			}
		}
	}
	return false
}
