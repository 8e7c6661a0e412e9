package tasks_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/goliatone/go-tasks"
	"github.com/goliatone/go-tasks/middleware/jwtware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalContextRoundTrip(t *testing.T) {
	principal := tasks.Principal{
		UserID:   uuid.New(),
		Username: "alice",
		Roles:    []tasks.Role{tasks.RoleUser},
	}

	ctx := tasks.WithPrincipal(context.Background(), principal)

	got, ok := tasks.PrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, principal, got)

	t.Run("empty context has no principal", func(t *testing.T) {
		_, ok := tasks.PrincipalFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := tokenClaims("alice", "USER")

	ctx := tasks.WithClaimsContext(context.Background(), claims)

	got, ok := tasks.GetClaims(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", got.Username())

	t.Run("empty context has no claims", func(t *testing.T) {
		_, ok := tasks.GetClaims(context.Background())
		assert.False(t, ok)
	})
}

func TestGetRouterClaims(t *testing.T) {
	t.Run("reads claims stored by the middleware", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["user"] = tokenClaims("alice", "USER")

		claims, ok := tasks.GetRouterClaims(ctx, "user")
		assert.True(t, ok)
		assert.Equal(t, "alice", claims.Username())
	})

	t.Run("empty key falls back to the default", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["user"] = tokenClaims("alice", "USER")

		_, ok := tasks.GetRouterClaims(ctx, "")
		assert.True(t, ok)
	})

	t.Run("missing claims report false", func(t *testing.T) {
		ctx := router.NewMockContext()

		_, ok := tasks.GetRouterClaims(ctx, "user")
		assert.False(t, ok)
	})

	t.Run("wrong type reports false", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["user"] = "not-claims"

		_, ok := tasks.GetRouterClaims(ctx, "user")
		assert.False(t, ok)
	})
}

// middlewareOnlyClaims satisfies the middleware claims surface but not the
// richer root interface.
type middlewareOnlyClaims struct{}

func (middlewareOnlyClaims) Subject() string          { return "sub" }
func (middlewareOnlyClaims) UserID() string           { return "sub" }
func (middlewareOnlyClaims) Username() string         { return "alice" }
func (middlewareOnlyClaims) HasRole(role string) bool { return false }
func (middlewareOnlyClaims) IsAdmin() bool            { return false }

func TestContextEnricherAdapter(t *testing.T) {
	t.Run("claims become reachable through the standard context", func(t *testing.T) {
		enriched := tasks.ContextEnricherAdapter(context.Background(), tokenClaims("alice", "USER"))

		claims, ok := tasks.GetClaims(enriched)
		assert.True(t, ok)
		assert.Equal(t, "alice", claims.Username())
	})

	t.Run("token claims never seed a principal", func(t *testing.T) {
		enriched := tasks.ContextEnricherAdapter(context.Background(), tokenClaims("alice", "ADMIN"))

		_, ok := tasks.PrincipalFromContext(enriched)
		assert.False(t, ok)
	})

	t.Run("foreign claim types pass through untouched", func(t *testing.T) {
		base := context.Background()
		enriched := tasks.ContextEnricherAdapter(base, jwtware.AuthClaims(middlewareOnlyClaims{}))

		assert.Equal(t, base, enriched)
	})
}
