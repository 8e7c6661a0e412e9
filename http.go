package tasks

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-tasks/middleware/jwtware"
)

// ApiResponse is the uniform JSON envelope every endpoint returns
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// OkResponse wraps a payload in a successful envelope
func OkResponse(message string, data any) ApiResponse {
	return ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// HTTPStatusFromError maps a structured error category to a response status
func HTTPStatusFromError(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return http.StatusInternalServerError
	}

	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RouteAuthenticator wires token validation into the HTTP router and renders
// structured errors as JSON envelopes.
type RouteAuthenticator struct {
	auth         Authenticator
	cfg          Config
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

// middlewareValidator bridges the root token validator into the middleware's
// claims interface
type middlewareValidator struct {
	validator TokenValidator
}

func (m middlewareValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := m.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute guards a route group with bearer token validation
func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return jwtware.New(jwtware.Config{
			ErrorHandler: errorHandler,
			SigningKey: jwtware.SigningKey{
				Key:    []byte(cfg.GetSigningKey()),
				JWTAlg: cfg.GetSigningMethod(),
			},
			AuthScheme:      cfg.GetAuthScheme(),
			ContextKey:      cfg.GetContextKey(),
			TokenLookup:     cfg.GetTokenLookup(),
			TokenValidator:  middlewareValidator{a.auth.TokenService()},
			ContextEnricher: ContextEnricherAdapter,
		})
	}
}

// AdminRoute guards a route group with bearer token validation plus an
// ADMIN role requirement.
func (a *RouteAuthenticator) AdminRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return jwtware.New(jwtware.Config{
			ErrorHandler: errorHandler,
			SigningKey: jwtware.SigningKey{
				Key:    []byte(cfg.GetSigningKey()),
				JWTAlg: cfg.GetSigningMethod(),
			},
			AuthScheme:      cfg.GetAuthScheme(),
			ContextKey:      cfg.GetContextKey(),
			TokenLookup:     cfg.GetTokenLookup(),
			TokenValidator:  middlewareValidator{a.auth.TokenService()},
			ContextEnricher: ContextEnricherAdapter,
			RequiredRole:    string(RoleAdmin),
		})
	}
}

// MakeAPIAuthErrorHandler normalizes middleware auth failures into the
// envelope clients expect. With optional set, failed auth proceeds
// unauthenticated instead of failing the request.
func (a *RouteAuthenticator) MakeAPIAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else if strings.Contains(err.Error(), "access denied") {
			richErr = ErrAccessDenied
		} else if errors.As(err, &richErr) && richErr.Category == errors.CategoryAuthz {
			// leave forbidden errors untouched
		} else {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	return RenderError(c, a.Logger, err)
}

// RenderError writes a structured error as a JSON envelope with the status
// derived from its category
func RenderError(c router.Context, logger Logger, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred")
	}

	if logger != nil {
		logger.Info(
			"request error",
			"error", richErr.Message,
			"category", richErr.Category,
			"text_code", richErr.TextCode,
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)
	}

	body := ApiResponse{
		Success: false,
		Message: richErr.Message,
	}

	if richErr.Category == errors.CategoryValidation {
		body.Errors = richErr.ValidationMap()
	}

	return c.JSON(HTTPStatusFromError(richErr), body)
}
