package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"a11ydash/internal/feed"
	"a11ydash/internal/issue"
	"a11ydash/internal/overview"
	"a11ydash/internal/touchpoint"
)

// Router builds the HTTP API over the app's store.
func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(a.Log), gin.Recovery())

	// avoid "trusted all proxies" warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	ov := overview.NewHandler(a.Store)
	ov.RegisterHealth(router)
	ov.RegisterRoutes(router.Group("/overview"))

	tps := router.Group("/touchpoints")
	touchpoint.NewHandler(a.Store).RegisterRoutes(tps)

	issues := issue.NewHandler(a.Store, a.Log)
	issues.RegisterTouchpointRoutes(tps)
	issues.RegisterRoutes(router.Group("/issues"))
	issues.RegisterWCAGRoutes(router.Group("/wcag"))

	// lets this server act as the HTTP feed of another instance
	feed.RegisterRoutes(router.Group("/data"), func(context.Context) (feed.Documents, error) {
		return a.Store.Documents()
	})

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
