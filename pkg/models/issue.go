package models

import (
	"encoding/json"
	"strings"
)

// Issue statuses used by the audit team.
const (
	IssueStatusUnresolved = "non risolto"
	IssueStatusResolved   = "risolto"
	IssueStatusCommunity  = "community"
)

// Issue (segnalazione) is one accessibility finding. It is tied to a
// Touchpoint by section name, not by id.
type Issue struct {
	ID            int
	Status        *string
	Section       *string
	Type          *string
	Description   *string
	Resolution    *string
	WCAGCriterion *string
	Notes         *string
	SourceSheet   string
}

// WCAGCode returns the criterion code, e.g. "1.4.3" for "1.4.3 Contrast (Minimum)".
func (i Issue) WCAGCode() string {
	return WCAGCode(Str(i.WCAGCriterion))
}

// WCAGCode returns the first whitespace-delimited token of criterion.
func WCAGCode(criterion string) string {
	fields := strings.Fields(criterion)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

type issueJSON struct {
	ID          int     `json:"id"`
	Stato       *string `json:"Stato"`
	Sezione     *string `json:"Sezione"`
	Tipologia   *string `json:"Tipologia"`
	Descrizione *string `json:"Descrizione problema rilevato"`
	Risoluzione *string `json:"Risoluzione"`
	WCAG22      *string `json:"WCAG 2.2"`
	Note        *string `json:"Note"`
	Sheet       string  `json:"_sheet,omitempty"`
	Status      *string `json:"status"`
	Section     *string `json:"section"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Solution    *string `json:"solution"`
	WCAG        *string `json:"wcag"`
	Notes       *string `json:"notes"`
}

func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(issueJSON{
		ID:          i.ID,
		Stato:       i.Status,
		Sezione:     i.Section,
		Tipologia:   i.Type,
		Descrizione: i.Description,
		Risoluzione: i.Resolution,
		WCAG22:      i.WCAGCriterion,
		Note:        i.Notes,
		Sheet:       i.SourceSheet,
		Status:      i.Status,
		Section:     i.Section,
		Type:        i.Type,
		Description: i.Description,
		Solution:    i.Resolution,
		WCAG:        i.WCAGCriterion,
		Notes:       i.Notes,
	})
}
