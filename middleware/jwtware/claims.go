package jwtware

import "github.com/golang-jwt/jwt/v5"

// mapBackedClaims adapts raw map claims to the AuthClaims interface when no
// structured TokenValidator is configured.
type mapBackedClaims struct {
	claims jwt.MapClaims
}

func claimsFromMap(claims jwt.MapClaims) AuthClaims {
	return &mapBackedClaims{claims: claims}
}

func (m *mapBackedClaims) Subject() string {
	sub, _ := m.claims.GetSubject()
	return sub
}

func (m *mapBackedClaims) UserID() string {
	if uid, ok := m.claims["uid"].(string); ok && uid != "" {
		return uid
	}
	return m.Subject()
}

func (m *mapBackedClaims) Username() string {
	username, _ := m.claims["username"].(string)
	return username
}

func (m *mapBackedClaims) HasRole(role string) bool {
	raw, ok := m.claims["roles"].([]any)
	if !ok {
		return false
	}

	for _, r := range raw {
		if s, ok := r.(string); ok && s == role {
			return true
		}
	}

	return false
}

func (m *mapBackedClaims) IsAdmin() bool {
	return m.HasRole("ADMIN")
}
