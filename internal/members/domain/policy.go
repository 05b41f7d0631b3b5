package domain

// Scope names for token capabilities.
const (
	ScopeProfileRead     = "profile:read"
	ScopeDuesCheckout    = "dues:checkout"
	ScopeRosterRead      = "roster:read"
	ScopeRosterWrite     = "roster:write"
	ScopeInvitesWrite    = "invites:write"
	ScopeComplianceWrite = "compliance:write"
	ScopeDuesWrite       = "dues:write"
)

// CapabilitiesFor maps a user to the scopes their tokens carry. Every active
// member can read their own profile and start a dues checkout; officers get
// the full administrative set on top.
func CapabilitiesFor(u User) []string {
	scopes := []string{ScopeProfileRead, ScopeDuesCheckout}
	if u.Officer {
		scopes = append(scopes,
			ScopeRosterRead,
			ScopeRosterWrite,
			ScopeInvitesWrite,
			ScopeComplianceWrite,
			ScopeDuesWrite,
		)
	}
	return scopes
}
