package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"a11ydash/internal/app"
	"a11ydash/internal/export"
	"a11ydash/internal/touchpoint"
	"a11ydash/pkg/models"
)

// export-csv writes the touchpoint list from the configured feed without a
// running server. Filters and sort match GET /touchpoints.
func main() {
	var (
		configPath = flag.String("config", os.Getenv("A11YDASH_CONFIG"), "YAML config file")
		out        = flag.String("out", export.Filename, `output path, "-" for stdout`)
		search     = flag.String("q", "", "search section or URL")
		status     = flag.String("status", touchpoint.All, "test status filter")
		sortField  = flag.String("sort", string(touchpoint.SortSection), "section or issueCount")
		sortDir    = flag.String("dir", string(touchpoint.Asc), "asc or desc")
	)
	flag.Parse()

	a, err := app.New(*configPath)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	s, err := touchpoint.ParseSort(*sortField, *sortDir)
	if err != nil {
		a.Log.Fatal("bad sort", zap.Error(err))
	}
	if err := a.Load(context.Background()); err != nil {
		a.Log.Fatal("load failed", zap.Error(err))
	}

	items := touchpoint.FilterAndSort(a.Store.Touchpoints(), touchpoint.Query{Search: *search, Status: *status}, s)

	if err := write(*out, items); err != nil {
		a.Log.Fatal("export failed", zap.Error(err))
	}
	if *out != "-" {
		a.Log.Info("exported touchpoints", zap.String("path", *out), zap.Int("rows", len(items)))
	}
}

func write(path string, items []models.Touchpoint) (err error) {
	if path == "-" {
		return export.WriteTouchpoints(os.Stdout, items)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	// a failed close can mean the last buffered write never reached disk
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return export.WriteTouchpoints(f, items)
}
