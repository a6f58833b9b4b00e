package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/shipboard/schema"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts an httptest server and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := test.NewNullLogger()
	client, err := NewClient(srv.URL+"/api", 5*time.Second, 0, logger)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClientValidatesURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://localhost:8000/api", false},
		{"https with trailing slash", "https://metrics.example.com/api/", false},
		{"missing scheme", "localhost:8000", true},
		{"ftp", "ftp://example.com", true},
		{"missing host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.url, time.Second, 10, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFetchDevelopersForwardsQuery(t *testing.T) {
	var gotPath, gotQuery, gotAccept, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get(RequestIDHeader)
		writeJSON(t, w, []schema.DeveloperProfile{
			{DeveloperKey: "mdubois", DisplayName: "Marie Dubois", TypeBreakdown: schema.TypeBreakdown{Feat: 3, Total: 3}},
		})
	})

	profiles, err := client.FetchDevelopers(context.Background(), "?from=2024-01-01&to=2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, "/api/developers", gotPath)
	assert.Equal(t, "from=2024-01-01&to=2024-03-31", gotQuery)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Marie Dubois", profiles[0].DisplayName)
	assert.Equal(t, 3, profiles[0].TypeBreakdown.Feat)
}

func TestRequestIDsAreUnique(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.Header.Get(RequestIDHeader)] = struct{}{}
		mu.Unlock()
		writeJSON(t, w, []schema.Sprint{})
	})

	for range 3 {
		_, err := client.FetchSprints(context.Background())
		require.NoError(t, err)
	}
	assert.Len(t, seen, 3)
}

func TestNullBodyDecodesToEmptySlice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("null"))
	})

	incidents, err := client.FetchIncidents(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, incidents)
	assert.Empty(t, incidents)
}

func TestNonOKStatusReturnsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	})

	_, err := client.FetchBugFixes(context.Background(), "")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "/bugfixes", apiErr.Path)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "database unavailable")
	assert.False(t, IsNotFound(err))
}

func TestIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.FetchProjects(context.Background(), "")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestMalformedJSONIsWrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"developer_key": 42`))
	})

	_, err := client.FetchRepoMatrix(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode GET /repo-matrix")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCanceledContextStopsRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, []schema.Release{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.FetchReleases(ctx, schema.ReleaseScope{}, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchReleasesMergesScope(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(t, w, []schema.Release{{ID: 1, DeveloperKey: "mdubois", ReleaseType: schema.FeatRelease}})
	})

	projectID := int64(7)
	releases, err := client.FetchReleases(context.Background(),
		schema.ReleaseScope{DeveloperKey: "mdubois", ProjectID: &projectID},
		"?from=2024-01-01&to=2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, "developer_key=mdubois&from=2024-01-01&project_id=7&to=2024-01-31", gotQuery)
	require.Len(t, releases, 1)
	assert.Equal(t, schema.FeatRelease, releases[0].ReleaseType)
}

func TestMergeScope(t *testing.T) {
	sprintID := int64(12)

	tests := []struct {
		name  string
		query string
		scope schema.ReleaseScope
		want  string
	}{
		{"empty", "", schema.ReleaseScope{}, ""},
		{"period only", "?sprint_id=3", schema.ReleaseScope{}, "?sprint_id=3"},
		{"scope only", "", schema.ReleaseScope{DeveloperKey: "a b"}, "?developer_key=a+b"},
		{"scope overrides period", "?sprint_id=3", schema.ReleaseScope{SprintID: &sprintID}, "?sprint_id=12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MergeScope(tt.query, tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSummary(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		writeJSON(t, w, map[string]string{"ai_summary": "Shipped the billing rewrite."})
	})

	summary, err := client.GenerateSummary(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/projects/42/generate-summary", gotPath)
	assert.Equal(t, "Shipped the billing rewrite.", summary)
}

func TestRateLimiterPacesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, time.Second, 20, nil)
	require.NoError(t, err)

	start := time.Now()
	for range 3 {
		_, err := client.FetchSprints(context.Background())
		require.NoError(t, err)
	}
	// Burst of one at 20/s: the second and third requests wait ~50ms each.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}
