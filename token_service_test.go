package tasks_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-tasks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenServiceGenerateValidate(t *testing.T) {
	signingKey := []byte("test-signing-key-for-units")

	t.Run("round trip preserves identity claims", func(t *testing.T) {
		service := tasks.NewTokenService(signingKey, 1, "taskd", nil, nil)

		userID := uuid.NewString()
		identity := MockIdentity{
			IDValue:       userID,
			UsernameValue: "alice",
			EmailValue:    "alice@example.com",
			RolesValue:    []tasks.Role{tasks.RoleUser, tasks.RoleAdmin},
		}

		token, err := service.Generate(identity)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
		assert.Equal(t, userID, claims.Subject())
		assert.Equal(t, "alice", claims.Username())
		assert.Equal(t, []tasks.Role{tasks.RoleUser, tasks.RoleAdmin}, claims.Roles())
		assert.True(t, claims.IsAdmin())
		assert.True(t, claims.HasRole("USER"))
		assert.False(t, claims.HasRole("AUDITOR"))
		assert.True(t, claims.Expires().After(time.Now()))
	})

	t.Run("expired token", func(t *testing.T) {
		service := tasks.NewTokenService(signingKey, -1, "taskd", nil, nil)

		token, err := service.Generate(MockIdentity{
			IDValue:       uuid.NewString(),
			UsernameValue: "alice",
		})
		assert.NoError(t, err)

		claims, err := service.Validate(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, tasks.ErrTokenExpired)
		assert.True(t, tasks.IsTokenExpiredError(err))
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		issuing := tasks.NewTokenService([]byte("some-other-signing-key-entirely"), 1, "taskd", nil, nil)
		validating := tasks.NewTokenService(signingKey, 1, "taskd", nil, nil)

		token, err := issuing.Generate(MockIdentity{IDValue: uuid.NewString()})
		assert.NoError(t, err)

		claims, err := validating.Validate(token)
		assert.Nil(t, claims)
		assert.True(t, tasks.IsMalformedError(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		service := tasks.NewTokenService(signingKey, 1, "taskd", nil, nil)

		claims, err := service.Validate("not.a.token")
		assert.Nil(t, claims)
		assert.True(t, tasks.IsMalformedError(err))
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		issuing := tasks.NewTokenService(signingKey, 1, "someone-else", nil, nil)
		validating := tasks.NewTokenService(signingKey, 1, "taskd", nil, nil)

		token, err := issuing.Generate(MockIdentity{IDValue: uuid.NewString()})
		assert.NoError(t, err)

		_, err = validating.Validate(token)
		assert.Error(t, err)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		issuing := tasks.NewTokenService(signingKey, 1, "taskd", []string{"mobile"}, nil)
		validating := tasks.NewTokenService(signingKey, 1, "taskd", []string{"web"}, nil)

		token, err := issuing.Generate(MockIdentity{IDValue: uuid.NewString()})
		assert.NoError(t, err)

		_, err = validating.Validate(token)
		assert.Error(t, err)
	})

	t.Run("nil claims cannot be signed", func(t *testing.T) {
		service := tasks.NewTokenService(signingKey, 1, "taskd", nil, nil)

		impl, ok := service.(*tasks.TokenServiceImpl)
		assert.True(t, ok)

		_, err := impl.SignClaims(nil)
		assert.Error(t, err)
	})
}
