package pypln

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	corporaPath   = "/corpora/"
	documentsPath = "/documents/"
)

// Corpus is a named collection of documents.
type Corpus struct {
	URL         string    `mapstructure:"url" json:"url" yaml:"url"`
	Name        string    `mapstructure:"name" json:"name" yaml:"name"`
	Description string    `mapstructure:"description" json:"description" yaml:"description"`
	Owner       string    `mapstructure:"owner" json:"owner" yaml:"owner"`
	CreatedAt   time.Time `mapstructure:"created_at" json:"created_at" yaml:"created_at"`

	// Documents holds the URLs of the corpus documents, as listed by the
	// server.
	Documents []string `mapstructure:"documents" json:"documents" yaml:"documents"`

	session *Session
}

func (c *Corpus) String() string {
	return fmt.Sprintf("<Corpus: %s (%s)>", c.Name, c.URL)
}

// Equal compares name, description, creation time, owner and URL. The
// session is not compared.
func (c *Corpus) Equal(other *Corpus) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Name == other.Name &&
		c.Description == other.Description &&
		c.CreatedAt.Equal(other.CreatedAt) &&
		c.Owner == other.Owner &&
		c.URL == other.URL
}

// BaseURL returns the scheme and host of the corpus URL.
func (c *Corpus) BaseURL() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}

// CorpusFromURL fetches the corpus at corpusURL with a new session signed by
// creds.
func CorpusFromURL(ctx context.Context, corpusURL string, creds Credentials, opts ...Option) (*Corpus, error) {
	s, err := sessionForResource(corpusURL, creds, opts...)
	if err != nil {
		return nil, err
	}
	return fetchOne(ctx, s, corpusURL, HydrateCorpus)
}

// AddDocument uploads content into this corpus.
func (c *Corpus) AddDocument(ctx context.Context, content Content) (*Document, error) {
	if c.session == nil {
		return nil, ErrAuthRequired
	}

	endpoint, err := joinURL(c.BaseURL(), documentsPath)
	if err != nil {
		return nil, err
	}

	resp, err := c.session.postMultipart(ctx, endpoint,
		map[string]string{"corpus": c.URL}, "blob", content)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document %s: %w", content, err)
	}
	if err := resp.check(http.StatusCreated, ErrCreateFailed); err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := resp.decode(&payload); err != nil {
		return nil, err
	}
	return HydrateDocument(payload, c.session)
}

// UploadFailure is one content that could not be uploaded.
type UploadFailure struct {
	Content Content
	Err     error
}

// UploadFailures is the failure list returned by AddDocuments.
type UploadFailures []UploadFailure

// Err aggregates all failures into one error, or returns nil if there are
// none.
func (f UploadFailures) Err() error {
	var result *multierror.Error
	for _, failure := range f {
		result = multierror.Append(result,
			fmt.Errorf("%s: %w", failure.Content, failure.Err))
	}
	return result.ErrorOrNil()
}

// AddDocuments uploads each content in order. A failed upload is recorded
// and the remaining contents are still uploaded.
func (c *Corpus) AddDocuments(ctx context.Context, contents []Content) ([]*Document, UploadFailures) {
	var (
		docs     []*Document
		failures UploadFailures
	)
	for _, content := range contents {
		doc, err := c.AddDocument(ctx, content)
		if err != nil {
			if c.session != nil {
				c.session.logger.Warn("document upload failed", "corpus", c.URL, "content", content.String(), "error", err)
			}
			failures = append(failures, UploadFailure{Content: content, Err: err})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, failures
}
