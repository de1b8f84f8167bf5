package user

type Role string

const (
	RoleAdmin     Role = "admin"     // HR administrator - full payroll access
	RoleManager   Role = "manager"   // Can read everyone's payroll
	RoleEmployee  Role = "employee"  // Regular employee
	RoleCandidate Role = "candidate" // Applicant, no payroll access
)

// Principal is the authenticated caller as carried by the access token.
type Principal struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

// PrincipalFromClaims reads the principal out of decoded JWT claims.
func PrincipalFromClaims(claims map[string]interface{}) (Principal, error) {
	var p Principal

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, ErrInvalidClaims
	}
	p.UserID = userID

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Principal{}, ErrInvalidClaims
	}
	p.Role = Role(role)

	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		p.EmployeeID = &employeeID
	}

	return p, nil
}

func (p Principal) HasPermission(permission Permission) bool {
	return HasPermission(p.Role, permission)
}

// IsEmployee reports whether the principal is linked to employeeID.
func (p Principal) IsEmployee(employeeID string) bool {
	return p.EmployeeID != nil && *p.EmployeeID == employeeID
}

// CanViewPayrollOf checks view_all, or view_own on the caller's own record.
func (p Principal) CanViewPayrollOf(employeeID string) bool {
	if p.HasPermission(PermissionPayrollViewAll) {
		return true
	}
	return p.HasPermission(PermissionPayrollViewOwn) && p.IsEmployee(employeeID)
}
