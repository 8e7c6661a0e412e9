package tasks

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents structured token claims carrying the caller identity
type AuthClaims interface {
	Subject() string
	UserID() string
	Username() string
	Roles() []Role
	HasRole(role string) bool
	IsAdmin() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string   `json:"uid,omitempty"`
	Uname     string   `json:"username,omitempty"`
	UserRoles []string `json:"roles,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Username returns the username claim
func (c *JWTClaims) Username() string {
	return c.Uname
}

// Roles returns the normalized role set embedded in the token
func (c *JWTClaims) Roles() []Role {
	return ParseRoles(c.UserRoles)
}

// HasRole checks if the role set contains role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the token carries the administrative role
func (c *JWTClaims) IsAdmin() bool {
	return c.HasRole(string(RoleAdmin))
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// PrincipalFromClaims converts validated claims into the Principal value the
// core operations take. The user id claim must be a UUID.
func PrincipalFromClaims(claims AuthClaims) (Principal, error) {
	uid, err := uuid.Parse(claims.UserID())
	if err != nil {
		return Principal{}, ErrTokenMalformed
	}

	return Principal{
		UserID:   uid,
		Username: claims.Username(),
		Roles:    claims.Roles(),
	}, nil
}
