package auth

// AdminPolicy decides whether an authenticated session may hit mutating
// admin endpoints. Today the allow-list is exactly one address: the seeded
// admin account. Keeping this behind a value object (instead of handlers
// reading an env var) means tests can swap the policy freely.
type AdminPolicy struct {
	adminEmail string
}

func NewAdminPolicy(adminEmail string) AdminPolicy {
	return AdminPolicy{adminEmail: adminEmail}
}

// IsAuthorized is a case-sensitive match against the configured admin email.
func (p AdminPolicy) IsAuthorized(claims *Claims) bool {
	if claims == nil {
		return false
	}

	return p.adminEmail != "" && claims.Email == p.adminEmail
}
