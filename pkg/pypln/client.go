package pypln

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
)

// Client is the entry point to a PyPLN server.
type Client struct {
	session *Session
}

// NewClient creates a client for baseURL authenticated with creds. Invalid
// credentials are rejected before any request is made.
func NewClient(baseURL string, creds Credentials, opts ...Option) (*Client, error) {
	signer, err := NewSigningContext(creds)
	if err != nil {
		return nil, err
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	return &Client{session: NewSession(baseURL, signer, opts...)}, nil
}

// NewClientFromConfig applies defaults to cfg, validates it and creates a
// client from it. An HTTP client given with WithHTTPClient takes precedence
// over the one built from cfg.
func NewClientFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithHTTPClient(cfg.NewHTTPClient())}, opts...)
	return NewClient(cfg.BaseURL, creds, opts...)
}

// Session returns the session shared by the client and its resources.
func (c *Client) Session() *Session {
	return c.session
}

// AddCorpus creates a corpus owned by the authenticated user.
func (c *Client) AddCorpus(ctx context.Context, name, description string) (*Corpus, error) {
	endpoint, err := c.session.resolve(corporaPath)
	if err != nil {
		return nil, err
	}

	resp, err := c.session.postForm(ctx, endpoint, url.Values{
		"name":        {name},
		"description": {description},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create corpus: %w", err)
	}
	if err := resp.check(http.StatusCreated, ErrCreateFailed); err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := resp.decode(&payload); err != nil {
		return nil, err
	}
	return HydrateCorpus(payload, c.session)
}

// Corpora lists the corpora owned by the user. Only the first page is
// returned unless full is set.
func (c *Client) Corpora(ctx context.Context, full bool) ([]*Corpus, error) {
	endpoint, err := c.session.resolve(corporaPath)
	if err != nil {
		return nil, err
	}
	return listAll(ctx, c.session, endpoint, full, HydrateCorpus)
}

// Documents lists the documents owned by the user. Only the first page is
// returned unless full is set.
func (c *Client) Documents(ctx context.Context, full bool) ([]*Document, error) {
	endpoint, err := c.session.resolve(documentsPath)
	if err != nil {
		return nil, err
	}
	return listAll(ctx, c.session, endpoint, full, HydrateDocument)
}

// IterCorpora yields every corpus, requesting the next page only once the
// previous one has been consumed.
func (c *Client) IterCorpora(ctx context.Context) iter.Seq2[*Corpus, error] {
	endpoint, err := c.session.resolve(corporaPath)
	if err != nil {
		return failed[Corpus](err)
	}
	return iterate(ctx, c.session, endpoint, HydrateCorpus)
}

// IterDocuments yields every document, requesting the next page only once
// the previous one has been consumed.
func (c *Client) IterDocuments(ctx context.Context) iter.Seq2[*Document, error] {
	endpoint, err := c.session.resolve(documentsPath)
	if err != nil {
		return failed[Document](err)
	}
	return iterate(ctx, c.session, endpoint, HydrateDocument)
}

// sessionForResource builds a fresh session rooted at the scheme and host of
// resourceURL.
func sessionForResource(resourceURL string, creds Credentials, opts ...Option) (*Session, error) {
	signer, err := NewSigningContext(creds)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", resourceURL, err)
	}
	return NewSession(fmt.Sprintf("%s://%s", u.Scheme, u.Host), signer, opts...), nil
}

// fetchOne GETs endpoint, expects 200 and hydrates the body.
func fetchOne[T any](ctx context.Context, s *Session, endpoint string, hydrateFn func(map[string]any, *Session) (*T, error)) (*T, error) {
	resp, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	if err := resp.check(http.StatusOK, ErrFetchFailed); err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := resp.decode(&payload); err != nil {
		return nil, err
	}
	return hydrateFn(payload, s)
}
