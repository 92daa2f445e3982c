package domain

// Roles established by the upstream auth gateway.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated caller, extracted once by router
// middleware and passed explicitly to every operation that needs it.
type Principal struct {
	ID   string
	Role string
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessUser reports whether the principal may read data owned by
// userID. Users see their own data; admins see everyone's.
func (p Principal) CanAccessUser(userID string) bool {
	return p.IsAdmin() || p.ID == userID
}
