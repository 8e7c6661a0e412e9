package tasks

import "strings"

// Role is a normalized role identifier
type Role string

const (
	// RoleUser is the default role every registered account holds
	RoleUser Role = "USER"
	// RoleAdmin grants access to every task regardless of ownership
	RoleAdmin Role = "ADMIN"
)

// authorityPrefix is the legacy authority convention some identity providers
// prepend to role names. It is stripped at the authentication boundary only;
// the core always operates on normalized identifiers.
const authorityPrefix = "ROLE_"

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// NormalizeAuthority converts a raw granted-authority token into a clean
// role identifier, stripping the ROLE_ prefix and uppercasing
func NormalizeAuthority(authority string) Role {
	authority = strings.ToUpper(strings.TrimSpace(authority))
	authority = strings.TrimPrefix(authority, authorityPrefix)
	return Role(authority)
}

// NormalizeAuthorities maps a raw authority list into role identifiers,
// dropping blanks and duplicates while preserving order
func NormalizeAuthorities(authorities []string) []Role {
	seen := make(map[Role]struct{}, len(authorities))
	roles := make([]Role, 0, len(authorities))

	for _, a := range authorities {
		role := NormalizeAuthority(a)
		if role == "" {
			continue
		}
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		roles = append(roles, role)
	}

	return roles
}

// ContainsRole reports whether roles includes role
func ContainsRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAdmin reports whether a role set carries the administrative role
func HasAdmin(roles []Role) bool {
	return ContainsRole(roles, RoleAdmin)
}

// RoleStrings converts a role set to plain strings for claim payloads
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// ParseRoles converts raw claim strings back into a role set, dropping
// anything outside the defined enumeration
func ParseRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, s := range raw {
		role := Role(s)
		if role.IsValid() {
			roles = append(roles, role)
		}
	}
	return roles
}
