package service

import "github.com/erpdash/user-directory/internal/core/domain"

// scopeFn reports whether a record is within a caller's visibility scope.
type scopeFn func(callerID int64, u *domain.User) bool

// rolePolicy captures what one role may do against the directory. The table
// below is the single authoritative place role checks occur; transport-level
// guards only short-circuit, they never widen access.
type rolePolicy struct {
	// Scope bounds both List results and Get visibility.
	Scope scopeFn
	// CanCreate and CanDelete gate the corresponding mutations outright.
	CanCreate bool
	CanDelete bool
	// CanUpdateAny permits updating every field of every record.
	CanUpdateAny bool
	// CanUpdateOwnContact permits updating the caller's own name and email,
	// but never role or status.
	CanUpdateOwnContact bool
}

var policies = map[domain.Role]rolePolicy{
	domain.RoleAdmin: {
		Scope:        func(int64, *domain.User) bool { return true },
		CanCreate:    true,
		CanDelete:    true,
		CanUpdateAny: true,
	},
	domain.RoleManager: {
		Scope: func(_ int64, u *domain.User) bool { return u.Role == domain.RoleEmployee },
	},
	domain.RoleEmployee: {
		Scope:               func(callerID int64, u *domain.User) bool { return u.ID == callerID },
		CanUpdateOwnContact: true,
	},
}

// policyFor returns the policy for a role. Unknown roles get a zero policy
// that denies everything.
func policyFor(role domain.Role) rolePolicy {
	return policies[role]
}
