package tasks_test

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-tasks"
	"github.com/stretchr/testify/assert"
)

func TestIsTokenExpiredError(t *testing.T) {
	assert.False(t, tasks.IsTokenExpiredError(nil))
	assert.True(t, tasks.IsTokenExpiredError(tasks.ErrTokenExpired))
	assert.True(t, tasks.IsTokenExpiredError(fmt.Errorf("jwt: token is expired")))
	assert.False(t, tasks.IsTokenExpiredError(tasks.ErrTokenMalformed))
}

func TestIsMalformedError(t *testing.T) {
	assert.False(t, tasks.IsMalformedError(nil))
	assert.True(t, tasks.IsMalformedError(tasks.ErrTokenMalformed))
	assert.True(t, tasks.IsMalformedError(fmt.Errorf("missing or malformed JWT")))
	assert.False(t, tasks.IsMalformedError(tasks.ErrTokenExpired))
}

func TestErrorCategories(t *testing.T) {
	cases := []struct {
		err      *errors.Error
		category errors.Category
		textCode string
	}{
		{tasks.ErrMismatchedHashAndPassword, errors.CategoryAuth, tasks.TextCodeInvalidCreds},
		{tasks.ErrUsernameTaken, errors.CategoryConflict, tasks.TextCodeUsernameTaken},
		{tasks.ErrEmailTaken, errors.CategoryConflict, tasks.TextCodeEmailTaken},
		{tasks.ErrTaskNotFound, errors.CategoryNotFound, tasks.TextCodeTaskNotFound},
		{tasks.ErrUserNotFound, errors.CategoryNotFound, tasks.TextCodeUserNotFound},
		{tasks.ErrPrincipalNotFound, errors.CategoryInternal, tasks.TextCodePrincipalNotFound},
		{tasks.ErrAccessDenied, errors.CategoryAuthz, tasks.TextCodeAccessDenied},
		{tasks.ErrTooManyLoginAttempts, errors.CategoryRateLimit, tasks.TextCodeTooManyAttempts},
		{tasks.ErrTokenExpired, errors.CategoryAuth, tasks.TextCodeTokenExpired},
		{tasks.ErrTokenMalformed, errors.CategoryAuth, tasks.TextCodeTokenMalformed},
		{tasks.ErrNoEmptyString, errors.CategoryValidation, tasks.TextCodeEmptyPassword},
	}

	for _, tc := range cases {
		t.Run(tc.textCode, func(t *testing.T) {
			assert.Equal(t, tc.category, tc.err.Category)
			assert.Equal(t, tc.textCode, tc.err.TextCode)
		})
	}
}

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", tasks.ErrNoEmptyString, 400},
		{"auth", tasks.ErrMismatchedHashAndPassword, 401},
		{"authz", tasks.ErrAccessDenied, 403},
		{"not found", tasks.ErrTaskNotFound, 404},
		{"conflict", tasks.ErrUsernameTaken, 409},
		{"rate limit", tasks.ErrTooManyLoginAttempts, 429},
		{"internal", tasks.ErrPrincipalNotFound, 500},
		{"plain error", fmt.Errorf("boom"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tasks.HTTPStatusFromError(tc.err))
		})
	}
}
