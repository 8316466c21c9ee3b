package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/logging"
	"github.com/agentstation/goseed/pkg/resources"
)

// recorded captures the last request a test server received.
type recorded struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   string
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*rec = recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			header: r.Header.Clone(),
			body:   string(data),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL, &BasicAuth{Username: "user", APIKey: "key"}, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("rejects relative URLs", func(t *testing.T) {
		_, err := New("seed.local", nil)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("options", func(t *testing.T) {
		hc := &http.Client{}
		c, err := New("http://seed.local/", nil, WithHTTPClient(hc), WithTimeout(5*time.Second), WithUserAgent("seedctl/dev"))
		require.NoError(t, err)
		assert.Same(t, hc, c.http)
		assert.Equal(t, 5*time.Second, c.http.Timeout)
		assert.Equal(t, "seedctl/dev", c.userAgent)
		assert.IsType(t, &NoAuth{}, c.auth)
	})
}

func TestResourceURL(t *testing.T) {
	c, err := New("https://seed.example.com/prefix/", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		kind   resources.Kind
		id     int
		suffix string
		query  url.Values
		want   string
	}{
		{"collection", resources.KindCycles, 0, "", nil, "https://seed.example.com/prefix/api/v3/cycles/?organization_id=1"},
		{"member", resources.KindCycles, 12, "", nil, "https://seed.example.com/prefix/api/v3/cycles/12/?organization_id=1"},
		{"filter suffix", resources.KindColumnMappingProfiles, 0, "filter/", nil, "https://seed.example.com/prefix/api/v3/column_mapping_profiles/filter/?organization_id=1"},
		{"extra query", resources.KindLabels, 0, "", url.Values{"inventory_type": {"property"}}, "https://seed.example.com/prefix/api/v3/labels/?inventory_type=property&organization_id=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.resourceURL(tt.kind, 1, tt.id, tt.suffix, tt.query).String())
		})
	}
}

func TestClientList(t *testing.T) {
	server, rec := newServer(t, http.StatusOK, `{"status":"success","cycles":[{"id":1,"name":"2021","start":"2021-01-01T00:00:00Z","end":"2021-12-31T00:00:00Z"}]}`)
	c := newClient(t, server.URL)

	var out resources.CyclesResponse
	require.NoError(t, c.List(context.Background(), resources.KindCycles, 3, nil, &out))

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/v3/cycles/", rec.path)
	assert.Equal(t, "3", rec.query.Get("organization_id"))
	assert.Equal(t, "application/json", rec.header.Get("Accept"))
	assert.Equal(t, "goseed", rec.header.Get("User-Agent"))
	assert.NotEmpty(t, rec.header.Get("X-Request-ID"))
	user, _, ok := (&http.Request{Header: rec.header}).BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Empty(t, rec.body)

	require.Len(t, out.Cycles, 1)
	assert.Equal(t, "2021-01-01", out.Cycles[0].Start.String())
}

func TestClientListProfilesUsesFilterEndpoint(t *testing.T) {
	server, rec := newServer(t, http.StatusOK, `{"status":"success","data":[]}`)
	c := newClient(t, server.URL)

	var out resources.ProfilesResponse
	require.NoError(t, c.List(context.Background(), resources.KindColumnMappingProfiles, 1, nil, &out))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v3/column_mapping_profiles/filter/", rec.path)
	assert.JSONEq(t, `{}`, rec.body)
	assert.Equal(t, "application/json", rec.header.Get("Content-Type"))
}

func TestClientCreateUpdateDelete(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		server, rec := newServer(t, http.StatusCreated, `{"status":"success","id":9,"name":"ds","super_organization":1}`)
		c := newClient(t, server.URL)

		var out resources.DatasetResponse
		require.NoError(t, c.Create(context.Background(), resources.KindDatasets, 1, resources.DatasetPayload{Name: "ds"}, &out))
		assert.Equal(t, http.MethodPost, rec.method)
		assert.JSONEq(t, `{"name":"ds"}`, rec.body)
		assert.Equal(t, 9, out.ID)
		assert.Equal(t, 1, out.SuperOrganization)
	})

	t.Run("update", func(t *testing.T) {
		server, rec := newServer(t, http.StatusOK, `{"status":"success","data":{"id":4,"name":"p","mappings":[]}}`)
		c := newClient(t, server.URL)

		var out resources.ProfileResponse
		payload := resources.ProfileMappingsPayload{Mappings: []resources.Mapping{}}
		require.NoError(t, c.Update(context.Background(), resources.KindColumnMappingProfiles, 1, 4, payload, &out))
		assert.Equal(t, http.MethodPut, rec.method)
		assert.Equal(t, "/api/v3/column_mapping_profiles/4/", rec.path)

		var sent map[string]any
		require.NoError(t, json.Unmarshal([]byte(rec.body), &sent))
		assert.Equal(t, []any{}, sent["mappings"])
	})

	t.Run("delete with empty body", func(t *testing.T) {
		server, rec := newServer(t, http.StatusNoContent, ``)
		c := newClient(t, server.URL)

		require.NoError(t, c.Delete(context.Background(), resources.KindCycles, 1, 7))
		assert.Equal(t, http.MethodDelete, rec.method)
		assert.Equal(t, "/api/v3/cycles/7/", rec.path)
	})
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		message  string
		sentinel error
	}{
		{"not found", http.StatusNotFound, `{"status":"error","message":"Cycle does not exist"}`, "Cycle does not exist", errors.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Invalid username/password."}`, "Invalid username/password.", errors.ErrUnauthorized},
		{"server error", http.StatusInternalServerError, `oops`, "oops", errors.ErrServiceUnavailable},
		{"structured message", http.StatusBadRequest, `{"status":"error","message":{"name":["required"]}}`, "map[name:[required]]", nil},
		{"empty body", http.StatusTooManyRequests, ``, "429 Too Many Requests", errors.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newServer(t, tt.status, tt.body)
			c := newClient(t, server.URL)

			err := c.Delete(context.Background(), resources.KindCycles, 1, 1)
			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, "DELETE /api/v3/cycles/1/", apiErr.Endpoint)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"cycles":`)
		c := newClient(t, server.URL)
		var out resources.CyclesResponse
		err := c.List(context.Background(), resources.KindCycles, 1, nil, &out)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("missing credentials never reach the server", func(t *testing.T) {
		server, rec := newServer(t, http.StatusOK, `{}`)
		c, err := New(server.URL, &BasicAuth{Username: "user"})
		require.NoError(t, err)
		err = c.Delete(context.Background(), resources.KindCycles, 1, 1)
		assert.True(t, errors.IsUnauthorized(err))
		assert.Empty(t, rec.method)
	})

	t.Run("connection failure", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{}`)
		c := newClient(t, server.URL)
		server.Close()
		err := c.Delete(context.Background(), resources.KindCycles, 1, 1)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Zero(t, apiErr.StatusCode)
		assert.Error(t, apiErr.Unwrap())
	})

	t.Run("canceled context", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{}`)
		c := newClient(t, server.URL)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := c.Delete(ctx, resources.KindCycles, 1, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
