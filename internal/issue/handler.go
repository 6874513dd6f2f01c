package issue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"a11ydash/internal/store"
	"a11ydash/pkg/models"
)

type Handler struct {
	Store *store.Store
	Log   *zap.Logger
}

func NewHandler(s *store.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: s, Log: logger}
}

// RegisterRoutes mounts the issue routes under /issues.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", h.getByID)          // GET /issues/:id
	rg.POST("/:id/resolve", h.resolve) // POST /issues/:id/resolve
}

// RegisterTouchpointRoutes mounts the per-touchpoint list under /touchpoints.
func (h *Handler) RegisterTouchpointRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/issues", h.listForTouchpoint) // GET /touchpoints/:id/issues
}

// RegisterWCAGRoutes mounts the link helper under /wcag.
func (h *Handler) RegisterWCAGRoutes(rg *gin.RouterGroup) {
	rg.GET("/link", h.wcagLink) // GET /wcag/link?criterion=
}

type listQuery struct {
	Q      string `form:"q"`
	Status string `form:"status"`
	Type   string `form:"type"`
	WCAG   string `form:"wcag"`
}

func (h *Handler) listForTouchpoint(c *gin.Context) {
	if !h.Store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data not loaded"})
		return
	}
	tp, ok := h.Store.Touchpoint(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "touchpoint not found"})
		return
	}

	var lq listQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scoped := h.Store.IssuesFor(tp.Section)
	items := Filter(scoped, Query{Search: lq.Q, Status: lq.Status, Type: lq.Type, WCAG: lq.WCAG})

	resp := gin.H{
		"touchpoint": tp,
		"total":      len(items),
		"items":      items,
		// options span every issue so the dropdowns don't change per touchpoint
		"options": BuildOptions(h.Store.Issues()),
	}
	if len(items) == 0 {
		resp["message"] = models.NoResults
	}
	c.JSON(http.StatusOK, resp)
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.Store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data not loaded"})
		return
	}
	it, found := h.Store.Issue(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"issue":    it,
		"wcagLink": Link(models.Str(it.WCAGCriterion)),
	})
}

// resolve marks the issue resolved for the lifetime of this process only.
func (h *Handler) resolve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	it, err := h.Store.Resolve(id)
	switch {
	case errors.Is(err, store.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data not loaded"})
		return
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve failed"})
		return
	}

	h.Log.Info("issue marked resolved", zap.Int("issue_id", id))
	c.JSON(http.StatusOK, gin.H{
		"issue":   it,
		"message": "Segnalazione \"" + strconv.Itoa(id) + "\" contrassegnata come risolta",
	})
}

type linkQuery struct {
	Criterion string `form:"criterion" binding:"required"`
}

func (h *Handler) wcagLink(c *gin.Context) {
	var lq linkQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "criterion is required"})
		return
	}
	url := Link(lq.Criterion)
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "criterion is empty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code": models.WCAGCode(lq.Criterion),
		"url":  url,
	})
}
