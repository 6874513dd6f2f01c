package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"a11ydash/internal/feed"
	"a11ydash/internal/store"
	"a11ydash/pkg/database"
	"a11ydash/pkg/utils"
)

// import-feed copies the four audit documents from a source into the SQLite
// snapshot read by the sqlite feed kind.
func main() {
	var (
		from    = flag.String("from", utils.FeedBundled, "source kind: bundled, dir or http")
		dir     = flag.String("dir", "data", "input directory for -from dir")
		baseURL = flag.String("url", "http://localhost:9000", "base URL for -from http")
		dbPath  = flag.String("db", database.DefaultConfig().Path, "SQLite snapshot path")
		timeout = flag.Duration("timeout", 30*time.Second, "overall timeout")
	)
	flag.Parse()

	logger, err := utils.NewLogger(utils.LogConfig{Level: "info", Development: true})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if *from == utils.FeedSQLite {
		logger.Fatal("cannot import from the snapshot into itself")
	}
	src, closeSrc, err := feed.Open(utils.FeedConfig{Kind: *from, Dir: *dir, BaseURL: *baseURL, Timeout: *timeout})
	if err != nil {
		logger.Fatal("open source failed", zap.Error(err))
	}
	defer closeSrc()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Load normalizes too, so problems in the feed are reported before saving
	ds, err := store.Load(ctx, src, logger)
	if err != nil {
		logger.Fatal("load failed", zap.Error(err))
	}

	db, err := database.Open(database.Config{Path: *dbPath})
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	if err := feed.SaveDocuments(ctx, db, ds.Raw); err != nil {
		logger.Fatal("save failed", zap.Error(err))
	}

	logger.Info("snapshot written",
		zap.String("db", *dbPath),
		zap.Int("touchpoints", len(ds.Touchpoints)),
		zap.Int("issues", len(ds.Issues)),
	)
}
