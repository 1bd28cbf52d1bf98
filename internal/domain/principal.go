package domain

type Role string

const (
	RoleGuest  Role = "guest"
	RoleTenant Role = "tenant"
)

// Principal is the authenticated caller handed over by the auth layer.
type Principal struct {
	UserID int64
	Role   Role
}

func (p Principal) Valid() bool {
	return p.UserID > 0 && (p.Role == RoleGuest || p.Role == RoleTenant)
}
