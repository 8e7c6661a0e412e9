package tasks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated account
type Identity interface {
	ID() string
	Username() string
	Email() string
	Roles() []Role
}

// Principal is the resolved caller for a single operation: username plus the
// normalized role set. It is built once at the request boundary and passed
// explicitly into every core operation.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Roles    []Role
}

// HasRole reports whether the principal's role set contains role
func (p Principal) HasRole(role Role) bool {
	return ContainsRole(p.Roles, role)
}

// IsAdmin reports whether the principal holds the administrative role
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetContextKey() string
	GetTokenExpiration() int
	GetTokenLookup() string
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
}

// IdentityProvider ensures we have a store to retrieve auth identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// TokenService issues and validates signed identity tokens
type TokenService interface {
	TokenValidator
	Generate(identity Identity) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
}

// TaskQuery describes one of the four paginated query shapes: all, by status,
// by owner, by owner and status
type TaskQuery struct {
	OwnerID  *uuid.UUID
	Status   *TaskStatus
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

// Page is a zero-indexed result window over a filtered collection
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPage computes the derived page count for a result window
func NewPage[T any](items []T, total, page, pageSize int) *Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// MapPage converts a page of one item type into another, keeping the window
// metadata intact
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return &Page[U]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] TASKS "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] TASKS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] TASKS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] TASKS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
