// Package aggregate derives the overview numbers: KPI counts and the three
// issue groupings. Precomputed documents win when supplied; otherwise the
// numbers are folded from the canonical records.
package aggregate

import (
	"cmp"
	"slices"
	"strings"

	"a11ydash/pkg/models"
)

// MaxWCAGEntries caps the "most violated criteria" grouping.
const MaxWCAGEntries = 20

// KeyFunc extracts a grouping key from an issue. Empty keys are skipped.
type KeyFunc func(models.Issue) string

func SectionKey(i models.Issue) string { return strings.TrimSpace(models.Str(i.Section)) }

func TypeKey(i models.Issue) string { return strings.TrimSpace(models.Str(i.Type)) }

// WCAGKey groups by criterion code, so "1.4.3 Contrast" and "1.4.3  Contrasto"
// land in the same bucket.
func WCAGKey(i models.Issue) string { return i.WCAGCode() }

// Scan counts touchpoints by test status.
func Scan(tps []models.Touchpoint) models.KPISummary {
	k := models.KPISummary{Total: len(tps)}
	for _, tp := range tps {
		switch models.CanonicalTestStatus(models.Str(tp.TestStatus)) {
		case models.TestStatusUntested:
			k.Untested++
		case models.TestStatusTested:
			k.Tested++
		case models.TestStatusRecheck:
			k.Recheck++
		case models.TestStatusCompleted:
			k.Completed++
		}
	}
	return k
}

// KPI builds the summary. Fields present in m are used as-is; missing ones
// are backfilled from a scan of tps.
func KPI(tps []models.Touchpoint, m *models.Metrics) models.KPISummary {
	scanned := Scan(tps)
	if m == nil {
		return scanned
	}
	return models.KPISummary{
		Total:     prefer(m.Total, scanned.Total),
		Untested:  prefer(m.Untested, scanned.Untested),
		Tested:    prefer(m.Tested, scanned.Tested),
		Recheck:   prefer(m.Recheck, scanned.Recheck),
		Completed: prefer(m.Completed, scanned.Completed),
	}
}

func prefer(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

// Fold counts issues per key in first-seen order.
func Fold(issues []models.Issue, key KeyFunc) models.GroupTally {
	out := models.GroupTally{}
	index := make(map[string]int)
	for _, it := range issues {
		k := key(it)
		if k == "" {
			continue
		}
		if i, ok := index[k]; ok {
			out[i].Value++
			continue
		}
		index[k] = len(out)
		out = append(out, models.TallyEntry{Label: k, Value: 1})
	}
	return out
}

// PreferOrFold returns a copy of precomputed when it was supplied, otherwise
// folds issues by key.
func PreferOrFold(precomputed models.GroupTally, issues []models.Issue, key KeyFunc) models.GroupTally {
	if precomputed != nil {
		return slices.Clone(precomputed)
	}
	return Fold(issues, key)
}

// Top sorts t by descending count, keeping first-seen order among ties, and
// keeps at most n entries.
func Top(t models.GroupTally, n int) models.GroupTally {
	out := slices.Clone(t)
	slices.SortStableFunc(out, func(a, b models.TallyEntry) int {
		return cmp.Compare(b.Value, a.Value)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func BySection(issues []models.Issue, charts *models.Charts) models.GroupTally {
	return PreferOrFold(precomputed(charts, func(c *models.Charts) models.GroupTally { return c.BySection }), issues, SectionKey)
}

func ByType(issues []models.Issue, charts *models.Charts) models.GroupTally {
	return PreferOrFold(precomputed(charts, func(c *models.Charts) models.GroupTally { return c.ByType }), issues, TypeKey)
}

// ByWCAG is the "most violated criteria" grouping: sorted and capped at
// MaxWCAGEntries whichever source it comes from.
func ByWCAG(issues []models.Issue, charts *models.Charts) models.GroupTally {
	t := PreferOrFold(precomputed(charts, func(c *models.Charts) models.GroupTally { return c.ByWCAG }), issues, WCAGKey)
	return Top(t, MaxWCAGEntries)
}

func precomputed(c *models.Charts, pick func(*models.Charts) models.GroupTally) models.GroupTally {
	if c == nil {
		return nil
	}
	return pick(c)
}

// Overview is everything the overview page shows.
type Overview struct {
	KPI       models.KPISummary `json:"kpi"`
	Items     []models.KPIItem  `json:"items"`
	BySection models.GroupTally `json:"bySection"`
	ByType    models.GroupTally `json:"byType"`
	ByWCAG    models.GroupTally `json:"byWcag"`
}

func Build(tps []models.Touchpoint, issues []models.Issue, m *models.Metrics, c *models.Charts) Overview {
	kpi := KPI(tps, m)
	return Overview{
		KPI:       kpi,
		Items:     kpi.Items(),
		BySection: BySection(issues, c),
		ByType:    ByType(issues, c),
		ByWCAG:    ByWCAG(issues, c),
	}
}
