package feed

import (
	"fmt"

	"a11ydash/pkg/database"
	"a11ydash/pkg/utils"
)

// Open builds the Source selected by cfg. The returned close function
// releases whatever the source holds and is never nil.
func Open(cfg utils.FeedConfig) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case utils.FeedBundled, "":
		return NewBundled(), noop, nil
	case utils.FeedDir:
		return NewDir(cfg.Dir), noop, nil
	case utils.FeedHTTP:
		return NewHTTP(cfg.BaseURL, cfg.Timeout), noop, nil
	case utils.FeedSQLite:
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return NewSQLite(db, cfg.DBPath), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown feed kind %q", cfg.Kind)
	}
}
