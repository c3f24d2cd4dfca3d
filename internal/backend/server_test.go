package backend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dragboard/internal/models"
)

type testServer struct {
	handler http.Handler
	token   string
	repo    *Repository
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	repo := setupRepo(t)
	auth := testAuth(t)
	srv := NewServer(repo, auth, nil, prometheus.NewRegistry())
	return &testServer{handler: srv.Handler(), token: mint(t, auth, "alice"), repo: repo}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServer_BoardRoundTrip(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPost, "/api/boards", `{"title":"Sprint"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	board := decode[models.Board](t, rec)

	rec = ts.do(t, http.MethodPost, "/api/lists", `{"title":"Todo","board_id":"`+board.ID.String()+`","order":0}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	list := decode[models.List](t, rec)

	for i, title := range []string{"A", "B"} {
		body := `{"title":"` + title + `","list_id":"` + list.ID.String() + `","order":` + string(rune('0'+i)) + `}`
		rec = ts.do(t, http.MethodPost, "/api/cards", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/boards/"+board.ID.String()+"/lists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	lists := decode[[]*models.List](t, rec)
	require.Len(t, lists, 1)
	assert.Equal(t, [][]string{{"A", "B"}}, cardTitles(lists))

	b := lists[0].Cards[1].ID.String()
	rec = ts.do(t, http.MethodPatch, "/api/cards/"+b, `{"order":0}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/boards/"+board.ID.String()+"/lists", "")
	assert.Equal(t, [][]string{{"B", "A"}}, cardTitles(decode[[]*models.List](t, rec)))

	rec = ts.do(t, http.MethodGet, "/api/boards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]*models.Board](t, rec), 1)
}

func TestServer_ErrorMapping(t *testing.T) {
	ts := setupServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{name: "unknown card", method: http.MethodPatch, path: "/api/cards/42", body: `{"order":0}`, code: http.StatusNotFound},
		{name: "unknown list", method: http.MethodDelete, path: "/api/lists/42", code: http.StatusNotFound},
		{name: "bad id", method: http.MethodDelete, path: "/api/cards/tmp-1", code: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPost, path: "/api/boards", body: `{`, code: http.StatusBadRequest},
		{name: "empty title", method: http.MethodPost, path: "/api/boards", body: `{"title":""}`, code: http.StatusBadRequest},
		{name: "negative order", method: http.MethodPatch, path: "/api/cards/42", body: `{"order":-1}`, code: http.StatusBadRequest},
		{name: "list without board", method: http.MethodPost, path: "/api/lists", body: `{"title":"Todo","order":0}`, code: http.StatusBadRequest},
		{name: "card without list", method: http.MethodPost, path: "/api/cards", body: `{"title":"A","order":0}`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestServer_RequiresToken(t *testing.T) {
	ts := setupServer(t)
	ts.token = ""

	rec := ts.do(t, http.MethodGet, "/api/boards", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	ts := setupServer(t)
	ts.do(t, http.MethodGet, "/api/boards", "")

	rec := ts.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `boardd_http_requests_total{code="200",route="/api/boards"}`)
}
