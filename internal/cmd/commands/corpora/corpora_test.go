package corpora

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namd/pypln-go/internal/cmd/base"
)

func corpus(srv *httptest.Server, id int, name string) map[string]any {
	return map[string]any{
		"url":         fmt.Sprintf("%s/corpora/%d/", srv.URL, id),
		"name":        name,
		"description": "corpus " + name,
		"owner":       "user",
		"created_at":  "2013-10-25T17:00:00.000Z",
		"documents":   []string{},
	}
}

// corporaServer serves two pages of one corpus each.
func corporaServer(t *testing.T) *httptest.Server {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "password" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		assert.Equal(t, "/corpora/", r.URL.Path)

		var body map[string]any
		if r.URL.Query().Get("page") == "2" {
			body = map[string]any{
				"count":   2,
				"next":    nil,
				"results": []any{corpus(srv, 2, "books")},
			}
		} else {
			body = map[string]any{
				"count":   2,
				"next":    srv.URL + "/corpora/?page=2",
				"results": []any{corpus(srv, 1, "news")},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newCommand(t *testing.T, srv *httptest.Server, password string) (*Command, *cli.MockUi) {
	for _, k := range []string{"PYPLN_BASE_URL", "PYPLN_USERNAME", "PYPLN_PASSWORD", "PYPLN_TOKEN"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "pypln.hcl")
	body := fmt.Sprintf(`
output = "json"

pypln {
  base_url = %q
  username = "user"
  password = %q
}
`, srv.URL, password)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv(base.EnvConfig, path)

	ui := cli.NewMockUi()
	return &Command{Command: base.NewCommand(hclog.NewNullLogger(), ui)}, ui
}

func names(t *testing.T, ui *cli.MockUi) []string {
	var corpora []map[string]any
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &corpora))
	var out []string
	for _, c := range corpora {
		out = append(out, c["name"].(string))
	}
	return out
}

func TestCommand(t *testing.T) {
	srv := corporaServer(t)

	t.Run("First page", func(t *testing.T) {
		c, ui := newCommand(t, srv, "password")
		require.Equal(t, 0, c.Run(nil), ui.ErrorWriter.String())
		assert.Equal(t, []string{"news"}, names(t, ui))
	})

	t.Run("Full", func(t *testing.T) {
		c, ui := newCommand(t, srv, "password")
		require.Equal(t, 0, c.Run([]string{"-full"}), ui.ErrorWriter.String())
		assert.Equal(t, []string{"news", "books"}, names(t, ui))
	})

	t.Run("Table output", func(t *testing.T) {
		c, ui := newCommand(t, srv, "password")
		require.Equal(t, 0, c.Run([]string{"-output", "table"}), ui.ErrorWriter.String())
		out := ui.OutputWriter.String()
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "news")
		assert.Contains(t, out, srv.URL+"/corpora/1/")
	})

	t.Run("Forbidden", func(t *testing.T) {
		c, ui := newCommand(t, srv, "wrong")
		assert.Equal(t, 1, c.Run(nil))
		assert.Contains(t, ui.ErrorWriter.String(), "error listing corpora")
		assert.Empty(t, ui.OutputWriter.String())
	})

	t.Run("Unknown flag", func(t *testing.T) {
		c, ui := newCommand(t, srv, "password")
		assert.Equal(t, 1, c.Run([]string{"-bogus"}))
		assert.Contains(t, ui.ErrorWriter.String(), "error parsing flags")
	})
}
