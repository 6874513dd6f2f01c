package touchpoint

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"a11ydash/internal/export"
	"a11ydash/internal/store"
	"a11ydash/pkg/models"
)

type Handler struct {
	Store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{Store: s}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)                 // GET /touchpoints
	rg.GET("/export.csv", h.exportCSV) // GET /touchpoints/export.csv
	rg.GET("/:id", h.getByID)          // GET /touchpoints/:id
}

type listQuery struct {
	Q      string `form:"q"`
	Status string `form:"status"`
	Sort   string `form:"sort"`
	Dir    string `form:"dir"`
}

// filtered applies the list query string to the store contents. It writes
// the error response itself and reports whether the caller should go on.
func (h *Handler) filtered(c *gin.Context) ([]models.Touchpoint, Sort, bool) {
	if !h.Store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data not loaded"})
		return nil, Sort{}, false
	}

	var lq listQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, Sort{}, false
	}
	s, err := ParseSort(lq.Sort, lq.Dir)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, Sort{}, false
	}

	q := Query{Search: lq.Q, Status: lq.Status}
	return FilterAndSort(h.Store.Touchpoints(), q, s), s, true
}

func (h *Handler) list(c *gin.Context) {
	items, s, ok := h.filtered(c)
	if !ok {
		return
	}

	resp := gin.H{
		"total":         len(items),
		"items":         items,
		"sort":          s,
		"statusOptions": StatusOptions(),
	}
	if len(items) == 0 {
		resp["message"] = models.NoResults
	}
	c.JSON(http.StatusOK, resp)
}

// exportCSV downloads the list exactly as the same query would show it.
func (h *Handler) exportCSV(c *gin.Context) {
	items, _, ok := h.filtered(c)
	if !ok {
		return
	}

	body := export.Touchpoints(items)
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(body)))
	c.Data(http.StatusOK, export.ContentType, []byte(body))
}

func (h *Handler) getByID(c *gin.Context) {
	if !h.Store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data not loaded"})
		return
	}
	tp, ok := h.Store.Touchpoint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"touchpoint": tp,
		"issues":     len(h.Store.IssuesFor(tp.Section)),
	})
}
