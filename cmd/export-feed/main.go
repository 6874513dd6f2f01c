package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"a11ydash/internal/feed"
	"a11ydash/pkg/database"
	"a11ydash/pkg/utils"
)

// export-feed writes the SQLite snapshot back out as a directory that
// feed-server can serve.
func main() {
	var (
		outDir = flag.String("out", "data", "output directory")
		dbPath = flag.String("db", database.DefaultConfig().Path, "SQLite snapshot path")
	)
	flag.Parse()

	logger, err := utils.NewLogger(utils.LogConfig{Level: "info", Development: true})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(database.Config{Path: *dbPath})
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	docs, err := feed.NewSQLite(db, *dbPath).Load(ctx)
	if err != nil {
		logger.Fatal("read snapshot failed", zap.Error(err))
	}
	if err := feed.WriteDir(*outDir, docs); err != nil {
		logger.Fatal("write failed", zap.Error(err))
	}

	logger.Info("snapshot exported", zap.String("dir", *outDir))
}
