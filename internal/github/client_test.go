package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/memstore"
	"github.com/stretchr/testify/require"
)

const reposPayload = `[
	{"name":"finflex","full_name":"ada/finflex","description":" Budgeting app ","html_url":"https://github.com/ada/finflex","homepage":"finflex.app","language":"TypeScript","topics":["react-native","fintech"],"fork":false},
	{"name":"dotfiles","full_name":"ada/dotfiles","description":null,"html_url":"https://github.com/ada/dotfiles","homepage":"","language":null,"topics":[],"fork":true}
]`

func TestClient_ListRepositories(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reposPayload))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/", Token: "ghp_test"}, nil, nil)
	repos, err := c.ListRepositories(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	require.Equal(t, "/users/ada/repos", gotPath)
	require.Equal(t, "per_page=100&sort=updated", gotQuery)
	require.Equal(t, "Bearer ghp_test", gotAuth)
	require.True(t, repos[1].Fork)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusNotFound, want: ErrAccountNotFound},
		{status: http.StatusForbidden, want: ErrRateLimited},
		{status: http.StatusTooManyRequests, want: ErrRateLimited},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := NewClient(Config{BaseURL: srv.URL}, nil, nil)
		_, err := c.ListRepositories(context.Background(), "ada")
		require.ErrorIs(t, err, tt.want, "status %d", tt.status)
		srv.Close()
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()
	_, err := NewClient(Config{BaseURL: srv.URL}, nil, nil).ListRepositories(context.Background(), "ada")
	require.ErrorContains(t, err, "status 502")
}

func TestClient_Drafts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(reposPayload))
	}))
	defer srv.Close()

	drafts, err := NewClient(Config{BaseURL: srv.URL}, nil, nil).Drafts(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	require.Equal(t, project.CreateRequest{
		Name:         "finflex",
		Description:  "Budgeting app",
		Category:     project.CategoryWebsite,
		ProfileOwner: "ada",
		Tags:         []string{"TypeScript", "react-native", "fintech"},
		Links: []project.Link{
			{Label: "Repository", URL: "https://github.com/ada/finflex", Type: project.LinkRepository},
			{Label: "Live Site", URL: "https://finflex.app", Type: project.LinkLive},
		},
	}, drafts[0])

	require.Equal(t, project.CategoryOther, drafts[1].Category)
	require.Empty(t, drafts[1].Tags)
	require.Len(t, drafts[1].Links, 1)
}

func TestClient_RateLimitHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}, nil, nil).ListRepositories(context.Background(), "ada")
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestToDraft_DropsUnusableHomepage(t *testing.T) {
	draft := ToDraft(Repository{Name: "site", HTMLURL: "https://github.com/ada/site", Homepage: "my site"}, "ada")
	require.Equal(t, project.CategoryOther, draft.Category)
	require.Equal(t, []project.Link{
		{Label: "Repository", URL: "https://github.com/ada/site", Type: project.LinkRepository},
	}, draft.Links)
}

func TestImportRepositories_BadHomepageDoesNotAbort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
	{"name":"one","html_url":"https://github.com/ada/one"},
	{"name":"two","html_url":"https://github.com/ada/two","homepage":"my site"},
	{"name":"three","html_url":"https://github.com/ada/three","homepage":"three.dev"}
]`))
	}))
	defer srv.Close()

	store := memstore.New()
	svc := project.NewService(store.Projects(), nil, nil, nil,
		project.WithRepositorySource(NewClient(Config{BaseURL: srv.URL}, nil, nil)))

	out, err := svc.ImportRepositories(context.Background(), "ada", "ada", true)
	require.NoError(t, err)
	require.Len(t, out.Saved, 3)

	stored, err := store.Projects().List(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, stored, 3)
}
