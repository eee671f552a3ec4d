package pypln

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"
)

// HydrateCorpus builds a Corpus from a decoded server payload. The corpus
// keeps s for its own requests.
func HydrateCorpus(payload map[string]any, s *Session) (*Corpus, error) {
	c := &Corpus{}
	if err := hydrate(payload, c, s); err != nil {
		return nil, fmt.Errorf("failed to hydrate corpus: %w", err)
	}
	c.session = s
	return c, nil
}

// HydrateDocument builds a Document from a decoded server payload. The
// payload's "properties" URL becomes PropertiesLocation.
func HydrateDocument(payload map[string]any, s *Session) (*Document, error) {
	d := &Document{}
	if err := hydrate(payload, d, s); err != nil {
		return nil, fmt.Errorf("failed to hydrate document: %w", err)
	}
	d.session = s
	return d, nil
}

func hydrate(payload map[string]any, dst any, s *Session) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       timeHook,
		Metadata:         &md,
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(payload); err != nil {
		return err
	}

	// Keys outside the schema are dropped.
	if len(md.Unused) > 0 && s != nil {
		sort.Strings(md.Unused)
		s.logger.Trace("ignored unknown fields", "type", fmt.Sprintf("%T", dst), "fields", md.Unused)
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// timeHook parses timestamps in any format dateparse understands. ISO-8601
// is what the REST API sends; the legacy HTML pages use other layouts.
func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		t, err := dateparse.ParseAny(v)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", v, err)
		}
		return t, nil
	case nil:
		return time.Time{}, nil
	default:
		return data, nil
	}
}
