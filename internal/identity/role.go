package identity

// Role is fixed at token-issue time. Changing a user's role in the
// database only takes effect after re-authentication.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleBusiness Role = "BUSINESS"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleBusiness:
		return Role(s), true
	}
	return "", false
}

func (r Role) level() int {
	switch r {
	case RoleClient:
		return 1
	case RoleBusiness:
		return 2
	}
	return 0
}

// Satisfies reports whether r covers the capabilities required by min.
// BUSINESS satisfies a CLIENT requirement; the reverse does not hold.
func (r Role) Satisfies(min Role) bool {
	return r.level() > 0 && r.level() >= min.level()
}

// Identity is the resolved session: who is making the request.
// Handlers receive it through the request context, never through
// package-level state.
type Identity struct {
	UserID uint
	Email  string
	Role   Role
}
