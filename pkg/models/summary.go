package models

// KPISummary holds the headline counts of the overview page.
type KPISummary struct {
	Total     int `json:"total"`
	Untested  int `json:"untested"`
	Tested    int `json:"tested"`
	Recheck   int `json:"recheck"`
	Completed int `json:"completed"`
}

type KPIItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Items returns the four labeled counts shown as cards, in display order.
func (k KPISummary) Items() []KPIItem {
	return []KPIItem{
		{Label: "Touchpoint totali", Value: k.Total},
		{Label: "Non testati", Value: k.Untested},
		{Label: "In recheck", Value: k.Recheck},
		{Label: "Completati", Value: k.Completed},
	}
}

type TallyEntry struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// GroupTally is an ordered list of (label, count) pairs. A nil tally means
// "not supplied"; an empty non-nil tally is a supplied, empty grouping.
type GroupTally []TallyEntry

// Metrics is the precomputed KPI document. Nil fields were absent or not numeric.
type Metrics struct {
	Total     *int `json:"touchpoint_totali,omitempty"`
	Untested  *int `json:"non_testato,omitempty"`
	Tested    *int `json:"testato,omitempty"`
	Recheck   *int `json:"recheck,omitempty"`
	Completed *int `json:"completato,omitempty"`
}

// Charts is the precomputed grouping document, in document key order.
type Charts struct {
	BySection GroupTally `json:"segnalazioni_per_sezione,omitempty"`
	ByType    GroupTally `json:"segnalazioni_per_tipologia,omitempty"`
	ByWCAG    GroupTally `json:"wcag_piu_violati,omitempty"`
}

// NoResults is shown when filters leave a list empty.
const NoResults = "Nessun risultato per i filtri selezionati"
