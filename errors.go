package tasks

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside structured errors
const (
	TextCodeInvalidCreds      = "INVALID_CREDENTIALS"
	TextCodeUsernameTaken     = "USERNAME_TAKEN"
	TextCodeEmailTaken        = "EMAIL_TAKEN"
	TextCodeTaskNotFound      = "TASK_NOT_FOUND"
	TextCodeUserNotFound      = "USER_NOT_FOUND"
	TextCodePrincipalNotFound = "PRINCIPAL_NOT_FOUND"
	TextCodeAccessDenied      = "ACCESS_DENIED"
	TextCodeTooManyAttempts   = "TOO_MANY_LOGIN_ATTEMPTS"
	TextCodeTokenExpired      = "TOKEN_EXPIRED"
	TextCodeTokenMalformed    = "TOKEN_MALFORMED"
	TextCodeEmptyPassword     = "EMPTY_PASSWORD"
)

// ErrMismatchedHashAndPassword is the uniform login failure; it never reveals
// whether the username or the password was wrong
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrUsernameTaken is returned when registration hits an existing username
var ErrUsernameTaken = errors.New("username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken)

// ErrEmailTaken is returned when registration hits an existing email
var ErrEmailTaken = errors.New("email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken)

// ErrTaskNotFound is returned when a referenced task does not exist
var ErrTaskNotFound = errors.New("task not found", errors.CategoryNotFound).
	WithTextCode(TextCodeTaskNotFound)

// ErrUserNotFound is returned when a referenced user does not exist
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrPrincipalNotFound indicates an authenticated request whose principal no
// longer resolves to a stored user. That is a broken invariant, not a client
// error, so it carries the internal category.
var ErrPrincipalNotFound = errors.New("authenticated principal could not be resolved", errors.CategoryInternal).
	WithTextCode(TextCodePrincipalNotFound)

// ErrAccessDenied is returned when an authenticated principal is neither the
// task owner nor privileged
var ErrAccessDenied = errors.New("you don't have permission to access this task", errors.CategoryAuthz).
	WithTextCode(TextCodeAccessDenied).
	WithCode(errors.CodeForbidden)

// ErrTooManyLoginAttempts is returned once the attempt counter exceeds the
// cooldown threshold
var ErrTooManyLoginAttempts = errors.New("too many login attempts, try again later", errors.CategoryRateLimit).
	WithTextCode(TextCodeTooManyAttempts)

// ErrTokenExpired is returned for tokens past their expiration claim
var ErrTokenExpired = errors.New("authentication token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail to parse or verify
var ErrTokenMalformed = errors.New("authentication token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
