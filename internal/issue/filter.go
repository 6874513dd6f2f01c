// Package issue filters a touchpoint's segnalazioni and serves the issue
// detail and resolve routes.
package issue

import (
	"strings"

	"a11ydash/pkg/models"
)

// All disables a categorical filter. The Italian "tutti" is accepted too.
const All = "all"

// Query narrows the issues of one touchpoint.
type Query struct {
	Search string // case-insensitive, matches description, resolution or criterion
	Status string // exact, or All / ""
	Type   string // exact, or All / ""
	WCAG   string // criterion prefix, or All / ""
}

func isAll(v string) bool {
	return v == "" || v == All || v == "tutti"
}

// Filter returns the issues matching q in input order.
func Filter(issues []models.Issue, q Query) []models.Issue {
	needle := strings.ToLower(q.Search)

	out := make([]models.Issue, 0, len(issues))
	for _, it := range issues {
		if needle != "" &&
			!strings.Contains(strings.ToLower(models.Str(it.Description)), needle) &&
			!strings.Contains(strings.ToLower(models.Str(it.Resolution)), needle) &&
			!strings.Contains(strings.ToLower(models.Str(it.WCAGCriterion)), needle) {
			continue
		}
		if !isAll(q.Status) && models.Str(it.Status) != q.Status {
			continue
		}
		if !isAll(q.Type) && models.Str(it.Type) != q.Type {
			continue
		}
		if !isAll(q.WCAG) && !strings.HasPrefix(models.Str(it.WCAGCriterion), q.WCAG) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Options are the values offered by the issue filter dropdowns.
type Options struct {
	Status []string `json:"status"`
	Type   []string `json:"type"`
	WCAG   []string `json:"wcag"`
}

// BuildOptions collects distinct types and WCAG codes across issues, in
// first-seen order. Each list starts with All.
func BuildOptions(issues []models.Issue) Options {
	o := Options{
		Status: []string{All, models.IssueStatusUnresolved, models.IssueStatusResolved, models.IssueStatusCommunity},
		Type:   []string{All},
		WCAG:   []string{All},
	}
	seenType := map[string]bool{}
	seenCode := map[string]bool{}
	for _, it := range issues {
		if t := models.Str(it.Type); t != "" && !seenType[t] {
			seenType[t] = true
			o.Type = append(o.Type, t)
		}
		if code := it.WCAGCode(); code != "" && !seenCode[code] {
			seenCode[code] = true
			o.WCAG = append(o.WCAG, code)
		}
	}
	return o
}
