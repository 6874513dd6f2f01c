package overview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ydash/internal/aggregate"
	"a11ydash/internal/feed"
	"a11ydash/internal/store"
)

func setup(t *testing.T, s *store.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s)
	h.RegisterHealth(r)
	h.RegisterRoutes(r.Group("/overview"))
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestOverview(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Reload(context.Background(), feed.NewBundled(), nil))
	r := setup(t, s)

	rr := get(r, "/overview")
	require.Equal(t, http.StatusOK, rr.Code)

	var o aggregate.Overview
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &o))
	assert.Equal(t, 8, o.KPI.Total)
	assert.Equal(t, 2, o.KPI.Recheck)
	require.Len(t, o.Items, 4)
	assert.Equal(t, "In recheck", o.Items[2].Label)
	assert.Equal(t, 2, o.Items[2].Value)
	assert.LessOrEqual(t, len(o.ByWCAG), aggregate.MaxWCAGEntries)
	assert.NotEmpty(t, o.BySection)
}

func TestHealthAndReady(t *testing.T) {
	s := store.New()
	r := setup(t, s)

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/overview").Code)

	require.NoError(t, s.Reload(context.Background(), feed.NewBundled(), nil))
	rr := get(r, "/ready")
	require.Equal(t, http.StatusOK, rr.Code)

	var st store.Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.Equal(t, 14, st.Issues)
	require.Len(t, st.Report.OrphanIssues, 1)
	assert.Equal(t, 14, st.Report.OrphanIssues[0].ID)
}
