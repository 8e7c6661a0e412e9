package tasks_test

import (
	"testing"

	"github.com/goliatone/go-tasks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMultiTokenValidator(t *testing.T) {
	signingKey := []byte("test-signing-key-for-units")
	otherKey := []byte("partner-issuer-signing-key")

	primary := tasks.NewTokenService(signingKey, 1, "", nil, nil)
	secondary := tasks.NewTokenService(otherKey, 1, "", nil, nil)

	t.Run("falls through to the next validator on malformed tokens", func(t *testing.T) {
		multi := tasks.NewMultiTokenValidator(primary, secondary)

		token, err := secondary.Generate(MockIdentity{
			IDValue:       uuid.NewString(),
			UsernameValue: "partner",
		})
		assert.NoError(t, err)

		claims, err := multi.Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, "partner", claims.Username())
	})

	t.Run("expired tokens stop the chain", func(t *testing.T) {
		expiredIssuer := tasks.NewTokenService(signingKey, -1, "", nil, nil)
		token, err := expiredIssuer.Generate(MockIdentity{IDValue: uuid.NewString()})
		assert.NoError(t, err)

		multi := tasks.NewMultiTokenValidator(primary, secondary)

		_, err = multi.Validate(token)
		assert.ErrorIs(t, err, tasks.ErrTokenExpired)
	})

	t.Run("all validators failing yields a malformed error", func(t *testing.T) {
		multi := tasks.NewMultiTokenValidator(primary, secondary)

		_, err := multi.Validate("garbage")
		assert.True(t, tasks.IsMalformedError(err))
	})

	t.Run("nil validators are skipped", func(t *testing.T) {
		multi := tasks.NewMultiTokenValidator(nil, primary)

		token, err := primary.Generate(MockIdentity{IDValue: uuid.NewString()})
		assert.NoError(t, err)

		_, err = multi.Validate(token)
		assert.NoError(t, err)
	})

	t.Run("empty chain rejects everything", func(t *testing.T) {
		multi := tasks.NewMultiTokenValidator()

		_, err := multi.Validate("anything")
		assert.ErrorIs(t, err, tasks.ErrTokenMalformed)
	})
}
