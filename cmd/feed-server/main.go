package main

import (
	"context"
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"a11ydash/internal/feed"
	"a11ydash/pkg/utils"
)

// feed-server serves a directory of audit documents at GET /data/:name, the
// layout the http feed kind expects. Files are re-read on every request so
// edits show up without a restart.
func main() {
	var (
		addr = flag.String("addr", ":9000", "listen address")
		dir  = flag.String("dir", "data", "directory holding the four JSON documents; empty serves the bundled sample")
		dev  = flag.Bool("dev", false, "development logging")
	)
	flag.Parse()

	logger, err := utils.NewLogger(utils.LogConfig{Level: "info", Development: *dev})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	var src feed.Source = feed.NewBundled()
	if *dir != "" {
		src = feed.NewDir(*dir)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	feed.RegisterRoutes(router.Group("/data"), func(ctx context.Context) (feed.Documents, error) {
		return src.Load(ctx)
	})

	logger.Info("feed-server listening", zap.String("addr", *addr), zap.String("source", src.Name()))
	if err := router.Run(*addr); err != nil {
		logger.Fatal("feed-server stopped", zap.Error(err))
	}
}
