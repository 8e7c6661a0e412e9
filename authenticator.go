package tasks

import (
	"context"
	"reflect"
)

// LoginResult carries the signed token together with the identity it was
// issued for, so the login response can echo the account attributes.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Roles    []Role `json:"roles"`
}

// Authenticator verifies credentials and mints bearer tokens
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	PrincipalFromToken(raw string) (Principal, error)
	TokenService() TokenService
}

type Auther struct {
	provider        IdentityProvider
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        []string
	logger          Logger
	tokenService    TokenService
	tokenValidator  TokenValidator
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:        provider,
		signingKey:      []byte(opts.GetSigningKey()),
		tokenExpiration: opts.GetTokenExpiration(),
		audience:        opts.GetAudience(),
		issuer:          opts.GetIssuer(),
		logger:          defLogger{},
		tokenService:    tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService = NewTokenService(
		s.signingKey,
		s.tokenExpiration,
		s.issuer,
		s.audience,
		logger,
	)
	return s
}

// WithTokenValidator sets a custom token validator for externally issued tokens.
func (s *Auther) WithTokenValidator(validator TokenValidator) *Auther {
	s.tokenValidator = validator
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials and mints a bearer token carrying the
// account's username and normalized roles.
func (s *Auther) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		return nil, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return nil, ErrMismatchedHashAndPassword
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		UserID:   identity.ID(),
		Username: identity.Username(),
		Email:    identity.Email(),
		Roles:    NormalizeAuthorities(RoleStrings(identity.Roles())),
	}, nil
}

// PrincipalFromToken validates a raw bearer token and builds the Principal
// for the request. External validators take precedence when configured.
func (s *Auther) PrincipalFromToken(raw string) (Principal, error) {
	validator := s.tokenValidator
	if validator == nil {
		validator = s.tokenService
	}

	claims, err := validator.Validate(raw)
	if err != nil {
		s.logger.Error("PrincipalFromToken validation failed", "error", err)
		return Principal{}, err
	}

	principal, err := PrincipalFromClaims(claims)
	if err != nil {
		s.logger.Error("PrincipalFromToken failed to build principal from claims", "error", err)
		return Principal{}, err
	}

	return principal, nil
}
