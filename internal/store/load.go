package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"a11ydash/internal/feed"
	"a11ydash/internal/normalize"
	"a11ydash/pkg/models"
)

// Report lists integrity problems found while building a dataset. They are
// reported, not rejected.
type Report struct {
	DuplicateIDs []string      `json:"duplicateIds,omitempty"`
	OrphanIssues []OrphanIssue `json:"orphanIssues,omitempty"`
}

// OrphanIssue is an issue whose section matches no touchpoint.
type OrphanIssue struct {
	ID      int    `json:"id"`
	Section string `json:"section"`
}

// Build normalizes the raw documents into a Dataset.
func Build(docs feed.Documents, source string) Dataset {
	tps, dups := normalize.Touchpoints(normalize.Records(docs.Touchpoints))
	issues := normalize.Issues(normalize.Records(docs.Issues))

	sections := make(map[string]bool, len(tps))
	for _, tp := range tps {
		sections[tp.Section] = true
	}
	var orphans []OrphanIssue
	for _, it := range issues {
		sec := models.Str(it.Section)
		if !sections[sec] {
			orphans = append(orphans, OrphanIssue{ID: it.ID, Section: sec})
		}
	}

	return Dataset{
		Source:      source,
		LoadedAt:    time.Now().UTC(),
		Raw:         docs,
		Touchpoints: tps,
		Issues:      issues,
		Metrics:     normalize.Metrics(docs.Metrics),
		Charts:      normalize.Charts(docs.Charts),
		Report:      Report{DuplicateIDs: dups, OrphanIssues: orphans},
	}
}

// Load fetches the feed from src and builds a Dataset, logging anything the
// report flagged.
func Load(ctx context.Context, src feed.Source, logger *zap.Logger) (Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	docs, err := src.Load(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	ds := Build(docs, src.Name())
	for _, id := range ds.Report.DuplicateIDs {
		logger.Warn("duplicate touchpoint id", zap.String("id", id))
	}
	for _, o := range ds.Report.OrphanIssues {
		logger.Warn("issue matches no touchpoint", zap.Int("issue_id", o.ID), zap.String("section", o.Section))
	}
	logger.Info("feed loaded",
		zap.String("source", ds.Source),
		zap.Int("touchpoints", len(ds.Touchpoints)),
		zap.Int("issues", len(ds.Issues)),
	)
	return ds, nil
}

// Reload loads src and replaces the store contents on success. On failure
// the store keeps whatever it held.
func (s *Store) Reload(ctx context.Context, src feed.Source, logger *zap.Logger) error {
	ds, err := Load(ctx, src, logger)
	if err != nil {
		return err
	}
	s.Replace(ds)
	return nil
}
