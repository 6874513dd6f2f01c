package models

import (
	"encoding/json"
	"strings"
)

// Test statuses as written in the audit sheets.
const (
	TestStatusUntested  = "non testato"
	TestStatusTested    = "testato"
	TestStatusRecheck   = "recheck"
	TestStatusCompleted = "completato"
)

var testStatusAliases = map[string]string{
	"untested":    TestStatusUntested,
	"non-testato": TestStatusUntested,
	"tested":      TestStatusTested,
	"completed":   TestStatusCompleted,
}

// CanonicalTestStatus lowercases s and maps the english and dashed spellings
// onto the sheet literals. Unknown values are returned lowercased.
func CanonicalTestStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := testStatusAliases[s]; ok {
		return v
	}
	return s
}

// Touchpoint is the canonical form of one audited page or site section.
// Every source record is mapped into this structure at load time.
type Touchpoint struct {
	ID         string
	Section    string
	URL        *string
	TestStatus *string
	IssueCount int
	FigmaLink  *string
}

// touchpointJSON carries both spellings of every field so consumers written
// against either the sheet headers or the camelCase aliases keep working.
type touchpointJSON struct {
	ID            string  `json:"id"`
	Sezione       string  `json:"Sezione"`
	URLSheet      *string `json:"URL"`
	StatoTest     *string `json:"Stato test"`
	Problemi      int     `json:"# Problemi"`
	LinkFigma     *string `json:"Link Frame Figma"`
	Section       string  `json:"section"`
	URL           *string `json:"url"`
	StatoTestCode *string `json:"statoTest"`
	Status        *string `json:"status"`
	ProblemsCount int     `json:"problemsCount"`
	FigmaFrameURL *string `json:"figmaFrameUrl"`
}

func (t Touchpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(touchpointJSON{
		ID:            t.ID,
		Sezione:       t.Section,
		URLSheet:      t.URL,
		StatoTest:     t.TestStatus,
		Problemi:      t.IssueCount,
		LinkFigma:     t.FigmaLink,
		Section:       t.Section,
		URL:           t.URL,
		StatoTestCode: t.TestStatus,
		Status:        t.TestStatus,
		ProblemsCount: t.IssueCount,
		FigmaFrameURL: t.FigmaLink,
	})
}

// Str dereferences p, returning "" for nil.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
