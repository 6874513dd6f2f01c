package feed

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DocumentsFunc returns the documents to serve under /data/.
type DocumentsFunc func(ctx context.Context) (Documents, error)

// RegisterRoutes serves each document at GET {group}/:name, so one dashboard
// can act as the HTTP feed of another.
func RegisterRoutes(rg *gin.RouterGroup, docs DocumentsFunc) {
	rg.GET("/:name", func(c *gin.Context) {
		name := c.Param("name")
		if !IsKnown(name) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown document"})
			return
		}

		all, err := docs(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		b, _ := all.Get(name)

		// validate JSON so a bad file doesn't silently break consumers
		if !json.Valid(b) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": name + " invalid JSON"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", b)
	})
}
