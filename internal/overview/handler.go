// Package overview serves the dashboard landing data: KPI cards and the
// three issue charts.
package overview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"a11ydash/internal/store"
)

type Handler struct {
	Store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{Store: s}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.get) // GET /overview
}

// RegisterHealth mounts /health and /ready on r.
func (h *Handler) RegisterHealth(r gin.IRoutes) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", h.ready)
}

func (h *Handler) get(c *gin.Context) {
	if !h.Store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data not loaded"})
		return
	}
	c.JSON(http.StatusOK, h.Store.Overview())
}

func (h *Handler) ready(c *gin.Context) {
	st := h.Store.Status()
	code := http.StatusOK
	if !st.Loaded {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, st)
}
