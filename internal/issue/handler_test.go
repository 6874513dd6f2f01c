package issue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ydash/internal/feed"
	"a11ydash/internal/store"
	"a11ydash/pkg/models"
)

func newRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.New()
	require.NoError(t, s.Reload(context.Background(), feed.NewBundled(), nil))

	h := NewHandler(s, nil)
	r := gin.New()
	h.RegisterRoutes(r.Group("/issues"))
	h.RegisterTouchpointRoutes(r.Group("/touchpoints"))
	h.RegisterWCAGRoutes(r.Group("/wcag"))
	return r, s
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestListForTouchpoint(t *testing.T) {
	r, _ := newRouter(t)

	rr := do(r, http.MethodGet, "/touchpoints/ricerca-prodotti/issues?wcag=1.4")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Total   int              `json:"total"`
		Items   []map[string]any `json:"items"`
		Options Options          `json:"options"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, float64(5), resp.Items[0]["id"])
	assert.Equal(t, float64(6), resp.Items[1]["id"])
	assert.Contains(t, resp.Options.Type, "Form")
	assert.Contains(t, resp.Options.WCAG, "3.1.1")
}

func TestListForTouchpoint_NoResults(t *testing.T) {
	r, _ := newRouter(t)

	rr := do(r, http.MethodGet, "/touchpoints/checkout/issues")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), models.NoResults)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/touchpoints/blog/issues").Code)
}

func TestGetByID(t *testing.T) {
	r, _ := newRouter(t)

	rr := do(r, http.MethodGet, "/issues/13")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Issue    map[string]any `json:"issue"`
		WCAGLink string         `json:"wcagLink"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Contrasto", resp.Issue["Tipologia"])
	assert.Equal(t, "https://www.w3.org/WAI/WCAG22/Understanding/1-4.3.html", resp.WCAGLink)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/issues/abc").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/issues/404").Code)
}

func TestResolve(t *testing.T) {
	r, s := newRouter(t)

	rr := do(r, http.MethodPost, "/issues/4/resolve")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"risolto"`)

	it, ok := s.Issue(4)
	require.True(t, ok)
	assert.Equal(t, models.IssueStatusResolved, models.Str(it.Status))

	// the resolved issue now drops out of an unresolved-only filter
	rr = do(r, http.MethodGet, "/touchpoints/ricerca-prodotti/issues?status=non+risolto")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), `"id":4,`)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/issues/999/resolve").Code)
}

func TestWCAGLinkRoute(t *testing.T) {
	r, _ := newRouter(t)

	rr := do(r, http.MethodGet, "/wcag/link?criterion=1.4.11+Non-text+Contrast")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"code":"1.4.11","url":"https://www.w3.org/WAI/WCAG22/Understanding/1-4.11.html"}`, rr.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/wcag/link").Code)
}
