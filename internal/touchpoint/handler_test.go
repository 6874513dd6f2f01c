package touchpoint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ydash/internal/feed"
	"a11ydash/internal/store"
	"a11ydash/pkg/models"
)

func router(t *testing.T, s *store.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(s).RegisterRoutes(r.Group("/touchpoints"))
	return r
}

func e2eStore() *store.Store {
	s := store.New()
	s.Replace(store.Build(feed.Documents{
		Touchpoints: []byte(`[
			{"Sezione":"Home","Stato test":"completato","# Problemi":2},
			{"Sezione":"Checkout","Stato test":"non testato","# Problemi":0}
		]`),
		Issues: []byte(`[{"id":1,"Sezione":"Home"},{"id":2,"Sezione":"Home"}]`),
	}, "test"))
	return s
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

type listResponse struct {
	Total   int              `json:"total"`
	Items   []map[string]any `json:"items"`
	Sort    Sort             `json:"sort"`
	Message string           `json:"message"`
}

func TestList(t *testing.T) {
	r := router(t, e2eStore())

	rr := get(r, "/touchpoints?sort=issueCount&dir=desc")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, Sort{Field: SortIssueCount, Direction: Desc}, resp.Sort)
	assert.Equal(t, "Home", resp.Items[0]["Sezione"])
	assert.Equal(t, "Home", resp.Items[0]["section"])
	assert.Empty(t, resp.Message)
}

func TestList_EmptyResultMessage(t *testing.T) {
	rr := get(router(t, e2eStore()), "/touchpoints?q=nothing&status=all")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Items)
	assert.Equal(t, models.NoResults, resp.Message)
}

func TestList_BadSort(t *testing.T) {
	rr := get(router(t, e2eStore()), "/touchpoints?sort=colour")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "error")
}

func TestList_NotLoaded(t *testing.T) {
	rr := get(router(t, store.New()), "/touchpoints")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestExportCSV(t *testing.T) {
	rr := get(router(t, e2eStore()), "/touchpoints/export.csv")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "touchpoints.csv")
	assert.Equal(t, strings.Join([]string{
		"Sezione,URL/Link,Stato test,Numero Problemi,Link Frame Figma",
		`"Checkout","","non testato",0,""`,
		`"Home","","completato",2,""`,
	}, "\n"), rr.Body.String())
}

func TestExportCSV_FollowsFilters(t *testing.T) {
	rr := get(router(t, e2eStore()), "/touchpoints/export.csv?status=completato")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Sezione,URL/Link,Stato test,Numero Problemi,Link Frame Figma\n"+
		`"Home","","completato",2,""`, rr.Body.String())
}

func TestGetByID(t *testing.T) {
	r := router(t, e2eStore())

	rr := get(r, "/touchpoints/home")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Touchpoint map[string]any `json:"touchpoint"`
		Issues     int            `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "home", resp.Touchpoint["id"])
	assert.Equal(t, 2, resp.Issues)

	assert.Equal(t, http.StatusNotFound, get(r, "/touchpoints/nope").Code)
}
