package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUser_SendsTokenHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc.def.ghi", r.Header.Get("x-auth-token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Alice","email":"a@x.com"}`))
	}))
	defer srv.Close()

	u, err := New(srv.URL).LoadUser(context.Background(), "abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
}

func TestLogin_NoTokenHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Auth-Token"]
		assert.False(t, present, "credential exchange must not carry a session token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"issued"}`))
	}))
	defer srv.Close()

	token, err := New(srv.URL).Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "issued", token)
}

func TestDecodeError_BothEnvelopes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errors":[{"msg":"Invalid credentials"}]}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"No token, authorization denied"}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Login(context.Background(), "a@x.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, []string{"Invalid credentials"}, apiErr.Messages)

	_, err = c.Feed(context.Background(), "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"No token, authorization denied"}, apiErr.Messages)
}
