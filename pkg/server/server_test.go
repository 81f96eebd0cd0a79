package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getlistd/listd/pkg/config"
	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
	"github.com/getlistd/listd/pkg/portability"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	stores, registry, err := BuildStores(cfg)
	require.NoError(t, err)
	opts = append([]Option{WithVersion("test")}, opts...)
	return New(cfg.Server, stores, registry, opts...)
}

func doRequest(s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestStatus(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status statusResponse
	decodeInto(t, rec, &status)
	assert.Equal(t, "listd", status.Name)
	assert.Equal(t, "test", status.Version)
	assert.Equal(t, 3, status.Lists.Total)
}

func TestLists(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/lists", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ov keeper.Overview
	decodeInto(t, rec, &ov)
	require.Len(t, ov.Lists, 3)
	assert.Equal(t, "cards", ov.Lists[0].Name)
	assert.Equal(t, "groceries", ov.Lists[1].Name)
	assert.Equal(t, "tasks", ov.Lists[2].Name)
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/tasks", `{"title":"Write tests"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID   int64 `json:"id"`
		Done bool  `json:"done"`
	}
	decodeInto(t, rec, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Done)

	rec = doRequest(s, http.MethodGet, "/api/tasks/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodPut, "/api/tasks/1", `{"title":"Write more tests","notes":"soon"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		Fields struct {
			Title string `json:"title"`
		} `json:"fields"`
	}
	decodeInto(t, rec, &updated)
	assert.Equal(t, "Write more tests", updated.Fields.Title)

	rec = doRequest(s, http.MethodPost, "/api/tasks/1/done", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second transition is a conflict, not a repeat.
	rec = doRequest(s, http.MethodPost, "/api/tasks/1/done", "", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	var errResp keeper.ErrorResponse
	decodeInto(t, rec, &errResp)
	assert.Equal(t, "already_done", errResp.Code)
	assert.Contains(t, errResp.Error, "already completed")

	rec = doRequest(s, http.MethodDelete, "/api/tasks/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/tasks/1", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	decodeInto(t, rec, &errResp)
	assert.Equal(t, "not_found", errResp.Code)

	// The id is retired; a new task gets the next one.
	rec = doRequest(s, http.MethodPost, "/api/tasks", `{"title":"Another"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeInto(t, rec, &created)
	assert.Equal(t, int64(2), created.ID)
}

func TestCreateValidation(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/groceries", `{"name":"Milk","quantity":0}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp keeper.ErrorResponse
	decodeInto(t, rec, &errResp)
	assert.Equal(t, "validation_failed", errResp.Code)
	assert.Equal(t, "quantity", errResp.Field)

	// Unknown fields are rejected, not dropped.
	rec = doRequest(s, http.MethodPost, "/api/tasks", `{"title":"ok","titel":"typo"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidID(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/tasks/abc", "/api/tasks/0", "/api/tasks/-3"} {
		rec := doRequest(s, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
		var errResp keeper.ErrorResponse
		decodeInto(t, rec, &errResp)
		assert.Equal(t, "invalid_id", errResp.Code)
	}
}

func TestQueryFilters(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{
		`{"name":"Milk","quantity":2,"unit":"l"}`,
		`{"name":"Eggs","quantity":12}`,
		`{"name":"Bread","quantity":1}`,
	} {
		rec := doRequest(s, http.MethodPost, "/api/groceries", body, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := doRequest(s, http.MethodPost, "/api/groceries/2/done", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []struct {
			ID     int64 `json:"id"`
			Fields struct {
				Name string `json:"name"`
			} `json:"fields"`
		} `json:"items"`
		Meta keeper.PageMeta `json:"meta"`
	}

	rec = doRequest(s, http.MethodGet, "/api/groceries?done=false", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &page)
	require.Len(t, page.Items, 2)

	rec = doRequest(s, http.MethodGet, "/api/groceries?where=fields.quantity+>+1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &page)
	require.Len(t, page.Items, 2)

	rec = doRequest(s, http.MethodGet, "/api/groceries?sort=name&order=asc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &page)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Bread", page.Items[0].Fields.Name)

	rec = doRequest(s, http.MethodGet, "/api/groceries?limit=1&offset=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 3, page.Meta.Total)
	assert.Equal(t, 1, page.Meta.Offset)

	rec = doRequest(s, http.MethodGet, "/api/groceries?where=fields.quantity+%2B", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "bad where expression")

	rec = doRequest(s, http.MethodGet, "/api/groceries?done=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetAndClear(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/tasks", `{"title":"temp"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/tasks/clear", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"list":"tasks","removed":1}`, rec.Body.String())

	rec = doRequest(s, http.MethodPost, "/api/tasks/reset", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"list":"tasks","items":0}`, rec.Body.String(), "default config has no task seeds")

	rec = doRequest(s, http.MethodPost, "/api/clear", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestExportImport(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/api/tasks", `{"title":"exported"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/export", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	exported := rec.Body.String()

	rec = doRequest(s, http.MethodGet, "/api/export?format=xml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<listd")

	rec = doRequest(s, http.MethodGet, "/api/export?format=toml", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	dst := newTestServer(t)
	rec = doRequest(dst, http.MethodPost, "/api/import", exported, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary portability.ImportSummary
	decodeInto(t, rec, &summary)
	assert.Equal(t, 1, summary.Total)

	rec = doRequest(dst, http.MethodPost, "/api/import?replace=true", exported, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(dst, http.MethodGet, "/api/tasks", "", nil)
	var page keeper.Page[taskProbe]
	decodeInto(t, rec, &page)
	assert.Equal(t, 1, page.Meta.Total)
}

// taskProbe satisfies keeper.Entry just enough to reuse Page in decoding.
type taskProbe struct {
	Title string `json:"title"`
}

func (taskProbe) Kind() string     { return "task" }
func (taskProbe) Validate() error  { return nil }
func (taskProbe) Summary() string  { return "" }
func (taskProbe) DoneVerb() string { return "completed" }

func TestAuth(t *testing.T) {
	s := newTestServer(t, WithAPIKey("secret"))

	rec := doRequest(s, http.MethodGet, "/api/lists", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var errResp keeper.ErrorResponse
	decodeInto(t, rec, &errResp)
	assert.Equal(t, "unauthorized", errResp.Code)

	rec = doRequest(s, http.MethodGet, "/api/lists", "", map[string]string{HeaderAPIKey: "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Probes stay open.
	rec = doRequest(s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health", "", map[string]string{HeaderRequestID: "req-42"})
	assert.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))
}

func TestMetricsExposition(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/api/tasks", `{"title":"count me"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `listd_http_requests_total{code="201",method="POST"} 1`)
	assert.Contains(t, body, `listd_operations_total{list="tasks",op="create"} 1`)
	assert.Contains(t, body, `listd_items{list="tasks"} 1`)
	assert.Contains(t, body, "# TYPE listd_items gauge")
}

func TestBuildStoresSeeds(t *testing.T) {
	cfg, err := config.ParseYAML([]byte(config.StarterYAML))
	require.NoError(t, err)

	stores, registry, err := BuildStores(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, stores.Tasks.Count())
	assert.Equal(t, 1, stores.Groceries.Count())
	assert.Equal(t, 1, stores.Cards.Count())
	assert.Equal(t, 3, registry.TotalItems())

	// Reset restores seeds with fresh ids.
	_, err = stores.Tasks.Create(entry.Task{Title: "extra"})
	require.NoError(t, err)
	assert.Equal(t, 1, stores.Tasks.Reset())
	items := stores.Tasks.List()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)
}

func TestBuildStoresRejectsBadSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Lists.Cards.Seeds = []map[string]interface{}{{"prompt": "?", "answer": ""}}
	_, _, err := BuildStores(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cards")
}
