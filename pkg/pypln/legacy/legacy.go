// Package legacy talks to the PyPLN web interface instead of the REST API.
//
// Older PyPLN deployments only expose HTML pages. This package logs in with
// the web form (username, password and CSRF token), keeps the session cookie
// and scrapes the corpus and document tables. Scraped rows are hydrated into
// the same pypln.Corpus and pypln.Document types the REST client returns.
package legacy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/net/publicsuffix"

	"github.com/namd/pypln-go/pkg/pypln"
)

const (
	loginPath   = "/account/login/"
	corporaPath = "/corpora/"

	csrfField = "csrfmiddlewaretoken"
)

// Client is a logged-in web session.
type Client struct {
	baseURL string
	http    *http.Client
	session *pypln.Session
	logger  hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Its cookie jar is replaced.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Client) {
		copied := *c
		copied.Jar = l.http.Jar
		l.http = &copied
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(l *Client) {
		l.logger = logger
	}
}

// Login signs in to the web interface at baseURL.
func Login(ctx context.Context, baseURL, username, password string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("legacy")

	loginURL := c.baseURL + loginPath
	doc, _, err := c.fetch(ctx, http.MethodGet, loginURL, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	token, err := csrfToken(doc)
	if err != nil {
		return nil, err
	}

	form := url.Values{
		"username": {username},
		"password": {password},
		csrfField:  {token},
	}
	doc, _, err = c.fetch(ctx, http.MethodPost, loginURL, form, http.StatusOK)
	if err != nil {
		return nil, err
	}
	if loginFormPresent(doc) {
		return nil, fmt.Errorf("%w: login rejected for user %q", pypln.ErrInvalidCredentials, username)
	}
	c.logger.Debug("logged in", "user", username)

	// Resources hydrated by this client share the cookie-authenticated
	// HTTP client; the basic auth header is only a fallback for servers
	// that also expose the REST API.
	signer, err := pypln.NewSigningContext(pypln.BasicAuth{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	c.session = pypln.NewSession(c.baseURL, signer,
		pypln.WithHTTPClient(c.http), pypln.WithLogger(c.logger))

	return c, nil
}

// Corpora scrapes the corpus table.
func (c *Client) Corpora(ctx context.Context) ([]*pypln.Corpus, error) {
	doc, pageURL, err := c.fetch(ctx, http.MethodGet, c.baseURL+corporaPath, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	rows, err := tableRows(doc, "corpora_table", pageURL)
	if err != nil {
		return nil, err
	}

	corpora := make([]*pypln.Corpus, 0, len(rows))
	for _, r := range rows {
		corpus, err := pypln.HydrateCorpus(r.corpusPayload(), c.session)
		if err != nil {
			return nil, err
		}
		corpora = append(corpora, corpus)
	}
	return corpora, nil
}

// Documents scrapes the document table of the corpus identified by slug.
func (c *Client) Documents(ctx context.Context, slug string) ([]*pypln.Document, error) {
	corpusURL := c.baseURL + corporaPath + url.PathEscape(slug) + "/"
	doc, pageURL, err := c.fetch(ctx, http.MethodGet, corpusURL, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	rows, err := tableRows(doc, "documents_table", pageURL)
	if err != nil {
		return nil, err
	}

	docs := make([]*pypln.Document, 0, len(rows))
	for _, r := range rows {
		d, err := pypln.HydrateDocument(r.documentPayload(corpusURL), c.session)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// fetch performs a request and parses the HTML response. A form, if given,
// is posted url-encoded with the page itself as referer, as Django's CSRF
// check requires.
func (c *Client) fetch(ctx context.Context, method, endpoint string, form url.Values, want int) (*goquery.Document, *url.URL, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", pypln.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Referer", endpoint)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "url", endpoint, "status", resp.StatusCode)

	if resp.StatusCode != want {
		respBody, _ := io.ReadAll(resp.Body)
		kind := pypln.ErrFetchFailed
		if method == http.MethodPost {
			kind = pypln.ErrCreateFailed
		}
		return nil, nil, &pypln.ResponseError{
			Kind:       kind,
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", endpoint, err)
	}
	return doc, resp.Request.URL, nil
}
