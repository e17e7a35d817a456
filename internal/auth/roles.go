package auth

// Roles known to the system.
const (
	RoleGerente   = "gerente"   // manager: full access
	RoleContador  = "contador"  // accountant
	RoleCajero    = "cajero"    // cashier
	RoleBodeguero = "bodeguero" // warehouse keeper
)

// Screens that can be gated by role.
const (
	ScreenDashboard  = "dashboard"
	ScreenUsers      = "users"
	ScreenProducts   = "products"
	ScreenInventory  = "inventory"
	ScreenSales      = "sales"
	ScreenAccounting = "accounting"
	ScreenAlerts     = "alerts"
	ScreenLogs       = "logs"
	ScreenSuppliers  = "suppliers"
)

var screenRoles = map[string][]string{
	ScreenDashboard:  {RoleGerente, RoleContador, RoleCajero, RoleBodeguero},
	ScreenUsers:      {RoleGerente},
	ScreenProducts:   {RoleGerente, RoleBodeguero},
	ScreenInventory:  {RoleGerente, RoleBodeguero},
	ScreenSales:      {RoleGerente, RoleCajero},
	ScreenAccounting: {RoleGerente, RoleContador},
	ScreenAlerts:     {RoleGerente, RoleBodeguero},
	ScreenLogs:       {RoleGerente},
	ScreenSuppliers:  {RoleGerente, RoleBodeguero},
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleGerente, RoleContador, RoleCajero, RoleBodeguero:
		return true
	}
	return false
}

// CanAccess reports whether a role may open a screen. Unknown screens are
// denied for every role.
func CanAccess(role, screen string) bool {
	for _, r := range screenRoles[screen] {
		if r == role {
			return true
		}
	}
	return false
}
