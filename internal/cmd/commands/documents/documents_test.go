package documents

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

func document(srv *httptest.Server, id int) map[string]any {
	return map[string]any{
		"url":         fmt.Sprintf("%s/documents/%d/", srv.URL, id),
		"corpus":      srv.URL + "/corpora/1/",
		"size":        1024 * id,
		"owner":       "user",
		"uploaded_at": "2013-10-25T17:00:00.000Z",
		"blob":        fmt.Sprintf("/doc%d.txt", id),
		"properties":  fmt.Sprintf("%s/documents/%d/properties/", srv.URL, id),
	}
}

func TestCommand(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/", r.URL.Path)
		assert.Equal(t, "Token t0k3n", r.Header.Get("Authorization"))

		body := map[string]any{"count": 3, "next": nil, "results": []any{document(srv, 3)}}
		if r.URL.Query().Get("page") == "" {
			body["next"] = srv.URL + "/documents/?page=2"
			body["results"] = []any{document(srv, 1), document(srv, 2)}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	for _, k := range []string{"PYPLN_BASE_URL", "PYPLN_USERNAME", "PYPLN_PASSWORD", "PYPLN_TOKEN"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "pypln.hcl")
	body := fmt.Sprintf("pypln {\n  base_url = %q\n  token = \"t0k3n\"\n}\n", srv.URL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cases := []struct {
		name  string
		args  []string
		blobs []string
	}{
		{"First page", []string{"-config", path, "-output", "json"}, []string{"/doc1.txt", "/doc2.txt"}},
		{"Full", []string{"-config", path, "-output", "json", "-full"}, []string{"/doc1.txt", "/doc2.txt", "/doc3.txt"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ui := cli.NewMockUi()
			c := &Command{Command: base.NewCommand(hclog.NewNullLogger(), ui)}
			require.Equal(t, 0, c.Run(tc.args), ui.ErrorWriter.String())

			var docs []map[string]any
			require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &docs))
			var blobs []string
			for _, d := range docs {
				blobs = append(blobs, d["blob"].(string))
			}
			assert.Equal(t, tc.blobs, blobs)
		})
	}
}
