package tasks

import (
	"context"

	"github.com/goliatone/go-tasks/middleware/jwtware"
)

// ValidationListener aliases the jwtware listener so callers can register
// hooks without importing the middleware package directly.
type ValidationListener = jwtware.ValidationListener

// ContextEnricherAdapter propagates validated claims into the standard
// context so code running below the router can recover the caller identity
// with GetClaims. Claims only carry what the token asserted; authorization
// data comes from the stored account, resolved at the controller boundary.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}

// RegisterValidationListeners appends listeners to a jwtware.Config
func RegisterValidationListeners(cfg *jwtware.Config, listeners ...ValidationListener) {
	if cfg == nil || len(listeners) == 0 {
		return
	}
	cfg.ValidationListeners = append(cfg.ValidationListeners, listeners...)
}
