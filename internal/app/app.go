// Package app wires configuration, logging, the feed source and the store
// for the binaries under cmd/.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"a11ydash/internal/feed"
	"a11ydash/internal/store"
	"a11ydash/pkg/utils"
)

type App struct {
	Config utils.Config
	Log    *zap.Logger
	Source feed.Source
	Store  *store.Store

	closeSource func() error
}

// New loads the config at path ("" for defaults plus environment), builds
// the logger and opens the configured feed source. The store starts empty.
func New(path string) (*App, error) {
	cfg, err := utils.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

func NewFromConfig(cfg utils.Config) (*App, error) {
	logger, err := utils.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	src, closeFn, err := feed.Open(cfg.Feed)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open feed: %w", err)
	}

	return &App{
		Config:      cfg,
		Log:         logger,
		Source:      src,
		Store:       store.New(),
		closeSource: closeFn,
	}, nil
}

// Load fetches the feed into the store, bounded by the configured timeout.
func (a *App) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Feed.Timeout)
	defer cancel()
	return a.Store.Reload(ctx, a.Source, a.Log)
}

func (a *App) Close() error {
	err := a.closeSource()
	// Sync fails on stderr for some terminals; the error is not actionable
	_ = a.Log.Sync()
	return err
}
