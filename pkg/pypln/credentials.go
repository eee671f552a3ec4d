package pypln

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Credentials is either BasicAuth or Token.
type Credentials interface {
	transport(base http.RoundTripper) http.RoundTripper
	validate() error
}

// BasicAuth authenticates every request with HTTP Basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

func (b BasicAuth) validate() error {
	if b.Username == "" {
		return fmt.Errorf("%w: basic auth requires a username", ErrInvalidCredentials)
	}
	return nil
}

func (b BasicAuth) transport(base http.RoundTripper) http.RoundTripper {
	return &basicAuthTransport{username: b.Username, password: b.Password, base: base}
}

// Token authenticates every request with "Authorization: Token <value>".
type Token string

func (t Token) validate() error {
	if t == "" {
		return fmt.Errorf("%w: token is empty", ErrInvalidCredentials)
	}
	return nil
}

func (t Token) transport(base http.RoundTripper) http.RoundTripper {
	// A static oauth2 token with a non-standard type is sent as
	// "<TokenType> <AccessToken>".
	return &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: string(t),
			TokenType:   "Token",
		}),
		Base: base,
	}
}

// SigningContext attaches one set of credentials to outgoing requests. It is
// immutable once built.
type SigningContext struct {
	creds Credentials
}

// NewSigningContext validates creds and returns a signing context for them.
func NewSigningContext(creds Credentials) (*SigningContext, error) {
	if creds == nil {
		return nil, fmt.Errorf("%w: no credentials given", ErrInvalidCredentials)
	}
	if err := creds.validate(); err != nil {
		return nil, err
	}
	return &SigningContext{creds: creds}, nil
}

// ResolveCredentials accepts BasicAuth, Token, a plain string (token) or a
// two-element string array or slice (username, password).
func ResolveCredentials(v any) (*SigningContext, error) {
	switch c := v.(type) {
	case Credentials:
		return NewSigningContext(c)
	case string:
		return NewSigningContext(Token(c))
	case [2]string:
		return NewSigningContext(BasicAuth{Username: c[0], Password: c[1]})
	case []string:
		if len(c) != 2 {
			return nil, fmt.Errorf("%w: expected (username, password), got %d values",
				ErrInvalidCredentials, len(c))
		}
		return NewSigningContext(BasicAuth{Username: c[0], Password: c[1]})
	default:
		return nil, fmt.Errorf("%w: must be a (username, password) pair for basic "+
			"authentication or a string for token authentication, got %T",
			ErrInvalidCredentials, v)
	}
}

// Credentials returns the credentials this context signs with.
func (s *SigningContext) Credentials() Credentials {
	return s.creds
}

// Transport wraps base so that every request is signed.
func (s *SigningContext) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return s.creds.transport(base)
}

type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(r)
}
