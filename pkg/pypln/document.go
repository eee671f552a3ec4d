package pypln

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Document is one uploaded file in a corpus. Properties computed by the
// server are fetched on demand.
type Document struct {
	URL        string    `mapstructure:"url" json:"url" yaml:"url"`
	Corpus     string    `mapstructure:"corpus" json:"corpus" yaml:"corpus"`
	Size       int64     `mapstructure:"size" json:"size" yaml:"size"`
	Owner      string    `mapstructure:"owner" json:"owner" yaml:"owner"`
	UploadedAt time.Time `mapstructure:"uploaded_at" json:"uploaded_at" yaml:"uploaded_at"`
	Blob       string    `mapstructure:"blob" json:"blob" yaml:"blob"`

	// PropertiesLocation is the URL listing this document's properties. It
	// is the "properties" field of the server payload.
	PropertiesLocation string `mapstructure:"properties" json:"properties_location" yaml:"properties_location"`

	session *Session
}

func (d *Document) String() string {
	return fmt.Sprintf("<Document: %s (%s)>", d.Blob, d.URL)
}

// Equal compares URL, size, upload time, owner and corpus. The session is
// not compared.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.URL == other.URL &&
		d.Size == other.Size &&
		d.UploadedAt.Equal(other.UploadedAt) &&
		d.Owner == other.Owner &&
		d.Corpus == other.Corpus
}

// DocumentFromURL fetches the document at documentURL with a new session
// signed by creds.
func DocumentFromURL(ctx context.Context, documentURL string, creds Credentials, opts ...Option) (*Document, error) {
	s, err := sessionForResource(documentURL, creds, opts...)
	if err != nil {
		return nil, err
	}
	return fetchOne(ctx, s, documentURL, HydrateDocument)
}

// Properties lists the names of the properties the server has computed for
// this document so far.
func (d *Document) Properties(ctx context.Context) ([]string, error) {
	if d.session == nil {
		return nil, ErrAuthRequired
	}

	resp, err := d.session.get(ctx, d.PropertiesLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	if err := resp.check(http.StatusOK, ErrFetchFailed); err != nil {
		return nil, err
	}

	var listing struct {
		Properties []string `json:"properties"`
	}
	if err := resp.decode(&listing); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(listing.Properties))
	for _, propURL := range listing.Properties {
		if !strings.HasPrefix(propURL, d.PropertiesLocation) {
			return nil, fmt.Errorf("property url %q is outside %q", propURL, d.PropertiesLocation)
		}
		name := strings.TrimPrefix(propURL, d.PropertiesLocation)
		names = append(names, strings.ReplaceAll(name, "/", ""))
	}
	return names, nil
}

// propertyValue fetches the raw "value" of a property.
func (d *Document) propertyValue(ctx context.Context, name string) (json.RawMessage, error) {
	if d.session == nil {
		return nil, ErrAuthRequired
	}

	endpoint, err := joinURL(d.PropertiesLocation, url.PathEscape(name))
	if err != nil {
		return nil, err
	}

	resp, err := d.session.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get property %s: %w", name, err)
	}
	if err := resp.check(http.StatusOK, ErrFetchFailed); err != nil {
		return nil, err
	}

	var prop struct {
		Value json.RawMessage `json:"value"`
	}
	if err := resp.decode(&prop); err != nil {
		return nil, err
	}
	return prop.Value, nil
}

// GetProperty returns the decoded value of the named property.
func (d *Document) GetProperty(ctx context.Context, name string) (any, error) {
	var v any
	if err := d.DecodeProperty(ctx, name, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeProperty decodes the value of the named property into dst.
func (d *Document) DecodeProperty(ctx context.Context, name string, dst any) error {
	raw, err := d.propertyValue(ctx, name)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("property %s: response has no value", name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode property %s: %w", name, err)
	}
	return nil
}

// DownloadWordcloud writes the document's word cloud PNG to filename on fs.
func (d *Document) DownloadWordcloud(ctx context.Context, fs afero.Fs, filename string) error {
	var encoded string
	if err := d.DecodeProperty(ctx, "wordcloud", &encoded); err != nil {
		return err
	}

	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode wordcloud: %w", err)
	}

	if err := afero.WriteFile(fs, filename, png, 0o644); err != nil {
		return fmt.Errorf("failed to write wordcloud: %w", err)
	}
	return nil
}
