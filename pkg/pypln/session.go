package pypln

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/namd/pypln-go/internal/version"
)

// UserAgent identifies this library to the server.
var UserAgent = fmt.Sprintf("pypln.api/%s (go)", version.Version)

// Session is the signing context, HTTP client and logger shared by a Client
// and every resource hydrated through it. It is safe for concurrent read-only
// use.
type Session struct {
	baseURL string
	signer  *SigningContext
	client  *http.Client
	logger  hclog.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	httpClient *http.Client
	logger     hclog.Logger
}

// WithHTTPClient sets the HTTP client requests are sent with. Its transport
// is wrapped with the signing transport; the client itself is not modified.
func WithHTTPClient(c *http.Client) Option {
	return func(o *sessionOptions) {
		o.httpClient = c
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(l hclog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = l
	}
}

// NewSession builds a session for baseURL signed by signer.
func NewSession(baseURL string, signer *SigningContext, opts ...Option) *Session {
	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}

	base := o.httpClient
	if base == nil {
		base = DefaultConfig().NewHTTPClient()
	}
	client := *base
	client.Transport = signer.Transport(base.Transport)

	return &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
		client:  &client,
		logger:  o.logger.Named("pypln"),
	}
}

// BaseURL returns the root URL the session was created for.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// Logger returns the session logger.
func (s *Session) Logger() hclog.Logger {
	return s.logger
}

// response is a fully read HTTP response.
type response struct {
	method     string
	url        string
	statusCode int
	body       []byte
}

// check returns a *ResponseError of the given kind unless the status is
// want.
func (r *response) check(want int, kind error) error {
	if r.statusCode == want {
		return nil
	}
	return &ResponseError{
		Kind:       kind,
		Method:     r.method,
		URL:        r.url,
		StatusCode: r.statusCode,
		Body:       string(r.body),
	}
}

func (r *response) decode(dst any) error {
	if err := json.Unmarshal(r.body, dst); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", r.url, err)
	}
	return nil
}

// do sends one request and reads the whole body. Statuses are not
// interpreted.
func (s *Session) do(ctx context.Context, method, endpoint, contentType string, body io.Reader) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("request failed",
			"method", method, "url", endpoint, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	s.logger.Debug("request",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	return &response{
		method:     method,
		url:        endpoint,
		statusCode: resp.StatusCode,
		body:       respBody,
	}, nil
}

func (s *Session) get(ctx context.Context, endpoint string) (*response, error) {
	return s.do(ctx, http.MethodGet, endpoint, "", nil)
}

func (s *Session) postForm(ctx context.Context, endpoint string, data url.Values) (*response, error) {
	return s.do(ctx, http.MethodPost, endpoint,
		"application/x-www-form-urlencoded", strings.NewReader(data.Encode()))
}

// postMultipart sends fields plus one file part named fileField.
func (s *Session) postMultipart(ctx context.Context, endpoint string, fields map[string]string, fileField string, content Content) (*response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field %q: %w", k, err)
		}
	}

	part, err := w.CreateFormFile(fileField, content.filename())
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if body := content.reader(); body != nil {
		if _, err := io.Copy(part, body); err != nil {
			return nil, fmt.Errorf("failed to read document content: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return s.do(ctx, http.MethodPost, endpoint, w.FormDataContentType(), &buf)
}

// resolve appends ref to the session base URL, keeping any path prefix the
// base carries. Absolute URLs are returned unchanged.
func (s *Session) resolve(ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", ref, err)
	}
	if r.IsAbs() {
		return ref, nil
	}
	return s.baseURL + "/" + strings.TrimLeft(ref, "/"), nil
}

func joinURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}
