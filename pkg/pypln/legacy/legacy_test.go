package legacy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namd/pypln-go/pkg/pypln"
)

const loginPage = `<html><body>
<form method="post" action="/account/login/">
  <input type="hidden" name="csrfmiddlewaretoken" value="csrf-123">
  <input type="text" name="username">
  <input type="password" name="password">
</form>
</body></html>`

const corporaPage = `<html><body>
<table id="corpora_table">
  <tr><th>Name</th><th>Description</th><th>Created</th><th>Owner</th></tr>
  <tr>
    <td><a href="/corpora/news/">news</a></td>
    <td>Newspaper articles</td>
    <td>2013-10-25 17:00:00</td>
    <td>user</td>
  </tr>
  <tr>
    <td><a href="/corpora/books/">books</a></td>
    <td>Public domain books</td>
    <td>2013-11-02 09:30:00</td>
    <td>user</td>
  </tr>
</table>
</body></html>`

const newsPage = `<html><body>
<table id="documents_table">
  <tr><th>File</th><th>Size</th><th>Uploaded</th></tr>
  <tr><td><a href="/document/12/">a.txt</a></td><td>1024</td><td>2013-10-26 10:00:00</td></tr>
</table>
</body></html>`

// webServer mimics the PyPLN web interface for user/password.
func webServer(t *testing.T) *httptest.Server {
	loggedIn := func(r *http.Request) bool {
		c, err := r.Cookie("sessionid")
		return err == nil && c.Value == "s1"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/account/login/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(w, loginPage)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "csrf-123", r.PostForm.Get("csrfmiddlewaretoken"))
		assert.NotEmpty(t, r.Header.Get("Referer"))
		if r.PostForm.Get("username") != "user" || r.PostForm.Get("password") != "password" {
			fmt.Fprint(w, loginPage)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s1", Path: "/"})
		http.Redirect(w, r, "/corpora/", http.StatusFound)
	})
	mux.HandleFunc("/corpora/", func(w http.ResponseWriter, r *http.Request) {
		if !loggedIn(r) {
			http.Redirect(w, r, "/account/login/", http.StatusFound)
			return
		}
		switch r.URL.Path {
		case "/corpora/":
			fmt.Fprint(w, corporaPage)
		case "/corpora/news/":
			fmt.Fprint(w, newsPage)
		case "/corpora/empty/":
			fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
		default:
			http.NotFound(w, r)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	srv := webServer(t)

	t.Run("Valid credentials", func(t *testing.T) {
		c, err := Login(context.Background(), srv.URL, "user", "password")
		require.NoError(t, err)
		assert.NotNil(t, c.session)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := Login(context.Background(), srv.URL, "user", "wrong")
		require.Error(t, err)
		assert.ErrorIs(t, err, pypln.ErrInvalidCredentials)
	})

	t.Run("No login page", func(t *testing.T) {
		_, err := Login(context.Background(), srv.URL+"/nowhere", "user", "password")
		require.Error(t, err)
		assert.ErrorIs(t, err, pypln.ErrFetchFailed)
	})
}

func TestClient_Corpora(t *testing.T) {
	srv := webServer(t)
	c, err := Login(context.Background(), srv.URL, "user", "password")
	require.NoError(t, err)

	corpora, err := c.Corpora(context.Background())
	require.NoError(t, err)
	require.Len(t, corpora, 2)

	news := corpora[0]
	assert.Equal(t, "news", news.Name)
	assert.Equal(t, "Newspaper articles", news.Description)
	assert.Equal(t, "user", news.Owner)
	assert.Equal(t, srv.URL+"/corpora/news/", news.URL)
	assert.Equal(t, 2013, news.CreatedAt.Year())
	assert.Equal(t, time.October, news.CreatedAt.Month())
	assert.Equal(t, "news", Slug(news.URL))

	assert.Equal(t, "books", corpora[1].Name)
}

func TestClient_Documents(t *testing.T) {
	srv := webServer(t)
	c, err := Login(context.Background(), srv.URL, "user", "password")
	require.NoError(t, err)

	docs, err := c.Documents(context.Background(), "news")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, srv.URL+"/document/12/", docs[0].URL)
	assert.Equal(t, srv.URL+"/corpora/news/", docs[0].Corpus)
	assert.Equal(t, "a.txt", docs[0].Blob)
	assert.Equal(t, int64(1024), docs[0].Size)

	_, err = c.Documents(context.Background(), "empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "documents_table")

	_, err = c.Documents(context.Background(), "missing")
	assert.ErrorIs(t, err, pypln.ErrFetchFailed)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "news", Slug("http://pypln.example.com/corpora/news/"))
	assert.Equal(t, "12", Slug("http://pypln.example.com/document/12"))
}
