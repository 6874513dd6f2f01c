// Package normalize maps the loosely keyed audit sheet exports into the
// canonical models. Every function here is total: malformed input degrades
// to defaults and never produces an error.
package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"

	"a11ydash/pkg/models"
)

// Touchpoint maps one raw record into a canonical Touchpoint.
func Touchpoint(raw map[string]any) models.Touchpoint {
	section := models.Str(String(raw, TouchpointSection))

	count := Int(raw, TouchpointCount)
	if count < 0 {
		count = 0
	}

	id := models.Str(String(raw, TouchpointID))
	if id == "" {
		id = Slug(section)
	}
	if id == "" {
		id = fallbackID(raw)
	}

	return models.Touchpoint{
		ID:         id,
		Section:    section,
		URL:        String(raw, TouchpointURL),
		TestStatus: String(raw, TouchpointStatus),
		IssueCount: count,
		FigmaLink:  String(raw, TouchpointFigma),
	}
}

// Touchpoints maps a collection and makes ids unique: later records whose id
// is already taken get a "-2", "-3", ... suffix. The returned slice lists the
// ids that collided.
func Touchpoints(raws []map[string]any) ([]models.Touchpoint, []string) {
	out := make([]models.Touchpoint, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	var dups []string

	for _, raw := range raws {
		tp := Touchpoint(raw)
		if seen[tp.ID] {
			dups = append(dups, tp.ID)
			base := tp.ID
			for n := 2; seen[tp.ID]; n++ {
				tp.ID = base + "-" + strconv.Itoa(n)
			}
		}
		seen[tp.ID] = true
		out = append(out, tp)
	}
	return out, dups
}

// Issue maps one raw record into a canonical Issue.
func Issue(raw map[string]any) models.Issue {
	id := ToInt(raw[IssueID[0]])
	if id == 0 {
		id = ToInt(raw[IssueID[1]])
	}

	return models.Issue{
		ID:            id,
		Status:        String(raw, IssueStatus),
		Section:       String(raw, IssueSection),
		Type:          String(raw, IssueType),
		Description:   String(raw, IssueDescription),
		Resolution:    String(raw, IssueResolution),
		WCAGCriterion: String(raw, IssueWCAG),
		Notes:         String(raw, IssueNotes),
		SourceSheet:   models.Str(String(raw, IssueSheet)),
	}
}

func Issues(raws []map[string]any) []models.Issue {
	out := make([]models.Issue, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Issue(raw))
	}
	return out
}

// Records decodes a JSON array of records. A document that is not an array
// yields no records; elements that are not objects become empty records.
func Records(doc []byte) []map[string]any {
	var items []any
	if err := decode(doc, &items); err != nil {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			m = map[string]any{}
		}
		out = append(out, m)
	}
	return out
}

// Metrics decodes the precomputed KPI document. It returns nil unless the
// document is a JSON object.
func Metrics(doc []byte) *models.Metrics {
	var raw map[string]any
	if err := decode(doc, &raw); err != nil || raw == nil {
		return nil
	}
	field := func(key string) *int {
		f, ok := Number(raw[key])
		if !ok {
			return nil
		}
		n := int(f)
		return &n
	}
	return &models.Metrics{
		Total:     field(MetricsTotal),
		Untested:  field(MetricsUntested),
		Tested:    field(MetricsTested),
		Recheck:   field(MetricsRecheck),
		Completed: field(MetricsCompleted),
	}
}

// Charts decodes the precomputed grouping document, keeping each grouping in
// document key order. It returns nil unless the document is a JSON object;
// a grouping is nil unless its value is an object.
func Charts(doc []byte) *models.Charts {
	var raw map[string]json.RawMessage
	if err := decode(doc, &raw); err != nil || raw == nil {
		return nil
	}
	return &models.Charts{
		BySection: orderedCounts(raw[ChartsBySection]),
		ByType:    orderedCounts(raw[ChartsByType]),
		ByWCAG:    orderedCounts(raw[ChartsByWCAG]),
	}
}

func orderedCounts(doc json.RawMessage) models.GroupTally {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil
	}

	out := models.GroupTally{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		label, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return out
		}
		out = append(out, models.TallyEntry{Label: label, Value: ToInt(v)})
	}
	return out
}

func decode(doc []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	return dec.Decode(v)
}
