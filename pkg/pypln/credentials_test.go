package pypln

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCredentials(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantCreds Credentials
		wantError bool
	}{
		{
			name:      "Pair array",
			input:     [2]string{"user", "password"},
			wantCreds: BasicAuth{Username: "user", Password: "password"},
		},
		{
			name:      "Pair slice",
			input:     []string{"user", "password"},
			wantCreds: BasicAuth{Username: "user", Password: "password"},
		},
		{
			name:      "BasicAuth value",
			input:     BasicAuth{Username: "user", Password: ""},
			wantCreds: BasicAuth{Username: "user", Password: ""},
		},
		{
			name:      "Plain string",
			input:     "abc123",
			wantCreds: Token("abc123"),
		},
		{
			name:      "Token value",
			input:     Token("abc123"),
			wantCreds: Token("abc123"),
		},
		{
			name:      "Slice of three",
			input:     []string{"a", "b", "c"},
			wantError: true,
		},
		{
			name:      "Integer",
			input:     42,
			wantError: true,
		},
		{
			name:      "Nil",
			input:     nil,
			wantError: true,
		},
		{
			name:      "Empty token",
			input:     "",
			wantError: true,
		},
		{
			name:      "Empty username",
			input:     [2]string{"", "password"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signer, err := ResolveCredentials(tt.input)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, signer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreds, signer.Credentials())
		})
	}
}

func TestSigningContext_Headers(t *testing.T) {
	type seen struct {
		authorization string
		user, pass    string
		basic         bool
		userAgent     string
	}

	newServer := func(t *testing.T, got *seen) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got.authorization = r.Header.Get("Authorization")
			got.user, got.pass, got.basic = r.BasicAuth()
			got.userAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results": [], "next": null, "previous": null, "count": 0}`))
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("Basic auth", func(t *testing.T) {
		var got seen
		srv := newServer(t, &got)

		client, err := NewClient(srv.URL, BasicAuth{Username: "user", Password: "password"})
		require.NoError(t, err)

		_, err = client.Corpora(context.Background(), false)
		require.NoError(t, err)

		assert.True(t, got.basic)
		assert.Equal(t, "user", got.user)
		assert.Equal(t, "password", got.pass)
		assert.True(t, strings.HasPrefix(got.userAgent, "pypln.api/"), got.userAgent)
	})

	t.Run("Token auth", func(t *testing.T) {
		var got seen
		srv := newServer(t, &got)

		client, err := NewClient(srv.URL, Token("abc123"))
		require.NoError(t, err)

		_, err = client.Corpora(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, "Token abc123", got.authorization)
		assert.False(t, got.basic)
		assert.True(t, strings.HasPrefix(got.userAgent, "pypln.api/"), got.userAgent)
	})
}

func TestNewClient_InvalidCredentialsMakesNoRequest(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = NewClient(srv.URL, Token(""))
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = CorpusFromURL(context.Background(), srv.URL+"/corpora/1/", nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, int32(0), atomic.LoadInt32(&requests))
}
