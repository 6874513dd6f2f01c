// Package feed loads the four audit documents the dashboard is built from.
//
// A Source returns all four documents or fails as a whole: there is no
// partial load and no retry.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Document names, also the paths under /data/ when served over HTTP.
const (
	TouchpointsDoc = "touchpoints.json"
	IssuesDoc      = "issues.json"
	MetricsDoc     = "metrics.json"
	ChartsDoc      = "charts.json"
)

// DocumentNames lists the documents in load order.
var DocumentNames = []string{TouchpointsDoc, IssuesDoc, MetricsDoc, ChartsDoc}

// ErrLoad is returned, wrapped, when any document cannot be loaded.
var ErrLoad = errors.New("errore nel caricamento dei dati JSON")

// Documents holds the raw bytes of the four feed documents.
type Documents struct {
	Touchpoints []byte
	Issues      []byte
	Metrics     []byte
	Charts      []byte
}

// Get returns the document stored under name.
func (d Documents) Get(name string) ([]byte, bool) {
	switch name {
	case TouchpointsDoc:
		return d.Touchpoints, true
	case IssuesDoc:
		return d.Issues, true
	case MetricsDoc:
		return d.Metrics, true
	case ChartsDoc:
		return d.Charts, true
	default:
		return nil, false
	}
}

func (d *Documents) set(name string, b []byte) {
	switch name {
	case TouchpointsDoc:
		d.Touchpoints = b
	case IssuesDoc:
		d.Issues = b
	case MetricsDoc:
		d.Metrics = b
	case ChartsDoc:
		d.Charts = b
	}
}

// IsKnown reports whether name is one of DocumentNames.
func IsKnown(name string) bool {
	_, ok := Documents{}.Get(name)
	return ok
}

// Source is implemented by each place the feed can come from.
type Source interface {
	Name() string
	Load(ctx context.Context) (Documents, error)
}

func loadError(doc string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrLoad, doc, err)
}

// checkJSON rejects a document body that does not parse as JSON.
func checkJSON(doc string, b []byte) error {
	if !json.Valid(b) {
		return loadError(doc, errors.New("invalid JSON"))
	}
	return nil
}
