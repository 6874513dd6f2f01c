// Package store holds the canonical collections for the running process.
// Nothing here is written back to the feed: resolving an issue only changes
// the in-memory copy until the next load.
package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"a11ydash/internal/aggregate"
	"a11ydash/internal/feed"
	"a11ydash/pkg/models"
)

var (
	ErrNotLoaded = errors.New("dataset not loaded")
	ErrNotFound  = errors.New("not found")
)

// Dataset is one normalized load of the feed.
type Dataset struct {
	Source      string
	LoadedAt    time.Time
	Raw         feed.Documents
	Touchpoints []models.Touchpoint
	Issues      []models.Issue
	Metrics     *models.Metrics
	Charts      *models.Charts
	Report      Report
}

type Store struct {
	mu     sync.RWMutex
	ds     Dataset
	loaded bool
}

func New() *Store {
	return &Store{}
}

// Replace swaps in a freshly built dataset, discarding session-local edits.
func (s *Store) Replace(ds Dataset) {
	s.mu.Lock()
	s.ds = ds
	s.loaded = true
	s.mu.Unlock()
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store) Touchpoints() []models.Touchpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ds.Touchpoints)
}

func (s *Store) Touchpoint(id string) (models.Touchpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tp := range s.ds.Touchpoints {
		if tp.ID == id {
			return tp, true
		}
	}
	return models.Touchpoint{}, false
}

func (s *Store) Issues() []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ds.Issues)
}

// IssuesFor returns the issues recorded against section, in feed order.
func (s *Store) IssuesFor(section string) []models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Issue
	for _, it := range s.ds.Issues {
		if models.Str(it.Section) == section {
			out = append(out, it)
		}
	}
	return out
}

// Issue returns the first issue with the given id.
func (s *Store) Issue(id int) (models.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.ds.Issues[i], true
	}
	return models.Issue{}, false
}

// Resolve marks the first issue with the given id as resolved.
func (s *Store) Resolve(id int) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return models.Issue{}, ErrNotLoaded
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.Issue{}, ErrNotFound
	}
	s.ds.Issues[i].Status = models.Ptr(models.IssueStatusResolved)
	return s.ds.Issues[i], nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.ds.Issues, func(it models.Issue) bool { return it.ID == id })
}

// Overview computes the overview numbers from the current dataset.
func (s *Store) Overview() aggregate.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate.Build(s.ds.Touchpoints, s.ds.Issues, s.ds.Metrics, s.ds.Charts)
}

// Documents returns the raw feed the dataset was built from.
func (s *Store) Documents() (feed.Documents, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return feed.Documents{}, ErrNotLoaded
	}
	return s.ds.Raw, nil
}

// Status summarizes the loaded dataset for readiness checks.
type Status struct {
	Loaded      bool      `json:"loaded"`
	Source      string    `json:"source,omitempty"`
	LoadedAt    time.Time `json:"loadedAt,omitempty"`
	Touchpoints int       `json:"touchpoints"`
	Issues      int       `json:"issues"`
	Report      Report    `json:"report"`
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Loaded:      s.loaded,
		Source:      s.ds.Source,
		LoadedAt:    s.ds.LoadedAt,
		Touchpoints: len(s.ds.Touchpoints),
		Issues:      len(s.ds.Issues),
		Report:      s.ds.Report,
	}
}
