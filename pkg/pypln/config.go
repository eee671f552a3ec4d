package pypln

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config contains configuration for a PyPLN client.
//
// Example configuration (HCL):
//
//	pypln {
//	  base_url = "https://demo.pypln.org"
//	  token    = "0123456789abcdef"
//	  timeout  = "30s"
//	}
//
// The command line also reads PYPLN_TOKEN, which overrides the file.
type Config struct {
	// BaseURL is the root of the PyPLN REST API, without a trailing slash.
	// Example: "https://demo.pypln.org"
	BaseURL string `hcl:"base_url" json:"baseUrl"`

	// Username and Password select HTTP Basic authentication.
	Username string `hcl:"username,optional" json:"username,omitempty"`
	Password string `hcl:"password,optional" json:"-"`

	// Token selects token authentication. It is never marshaled to JSON.
	Token string `hcl:"token,optional" json:"-"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tlsVerify,omitempty"`

	// Timeout bounds each request.
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// TimeoutString is the HCL form of Timeout, e.g. "30s".
	TimeoutString string `hcl:"timeout,optional" json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TLSVerify: &tlsVerify,
		Timeout:   30 * time.Second,
	}
}

// ApplyDefaults fills unset fields from DefaultConfig and parses
// TimeoutString.
func (c *Config) ApplyDefaults() error {
	defaults := DefaultConfig()
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.TimeoutString != "" {
		d, err := time.ParseDuration(c.TimeoutString)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.TimeoutString, err)
		}
		c.Timeout = d
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required.Error("base_url is required")),
		validation.Field(&c.Timeout, validation.Min(time.Duration(1)).Error("timeout must be positive")),
	); err != nil {
		return err
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %s", parsedURL.Scheme)
	}

	if _, err := c.Credentials(); err != nil {
		return err
	}

	return nil
}

// Credentials returns the credentials selected by the config. Exactly one of
// token or username/password must be set.
func (c *Config) Credentials() (Credentials, error) {
	hasBasic := c.Username != "" || c.Password != ""
	switch {
	case hasBasic && c.Token != "":
		return nil, fmt.Errorf("%w: set either token or username/password, not both",
			ErrInvalidCredentials)
	case c.Token != "":
		return Token(c.Token), nil
	case hasBasic:
		if c.Username == "" {
			return nil, fmt.Errorf("%w: password given without username", ErrInvalidCredentials)
		}
		return BasicAuth{Username: c.Username, Password: c.Password}, nil
	default:
		return nil, fmt.Errorf("%w: token or username/password is required",
			ErrInvalidCredentials)
	}
}

// NewHTTPClient creates an unsigned HTTP client honoring Timeout and
// TLSVerify.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
