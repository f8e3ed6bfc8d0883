package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepos(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":"hello-world","html_url":"https://github.com/octocat/hello-world","description":"demo","stargazers_count":42,"forks_count":7},
			{"name":"spoon-knife","html_url":"https://github.com/octocat/spoon-knife","description":"","stargazers_count":1,"forks_count":0}
		]`))
	}))
	defer srv.Close()

	repos, err := New(srv.URL).Repos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "hello-world", repos[0].Name)
	assert.Equal(t, 42, repos[0].Stars)
	assert.Equal(t, 7, repos[0].Forks)
	assert.Equal(t, "https://github.com/octocat/spoon-knife", repos[1].HTMLURL)
}

func TestRepos_UnknownUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Repos(context.Background(), "no-such-user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
