package normalize

// Keys lists the spellings a field may appear under in a raw record: the
// sheet header first, then the camelCase aliases in order of preference.
type Keys []string

// Touchpoint field table.
var (
	TouchpointID      = Keys{"id"}
	TouchpointSection = Keys{"Sezione", "section"}
	TouchpointURL     = Keys{"URL", "url"}
	TouchpointStatus  = Keys{"Stato test", "statoTest", "status"}
	TouchpointCount   = Keys{"# Problemi", "problemsCount"}
	TouchpointFigma   = Keys{"Link Frame Figma", "figmaFrameUrl"}
)

// Issue field table.
var (
	IssueID          = Keys{"id", "_id"}
	IssueStatus      = Keys{"Stato", "status"}
	IssueSection     = Keys{"Sezione", "section"}
	IssueType        = Keys{"Tipologia", "type"}
	IssueDescription = Keys{"Descrizione problema rilevato", "description"}
	IssueResolution  = Keys{"Risoluzione", "solution"}
	IssueWCAG        = Keys{"WCAG 2.2", "wcag"}
	IssueNotes       = Keys{"Note", "notes"}
	IssueSheet       = Keys{"_sheet"}
)

// Precomputed document keys.
const (
	MetricsTotal     = "touchpoint_totali"
	MetricsUntested  = "non_testato"
	MetricsTested    = "testato"
	MetricsRecheck   = "recheck"
	MetricsCompleted = "completato"

	ChartsBySection = "segnalazioni_per_sezione"
	ChartsByType    = "segnalazioni_per_tipologia"
	ChartsByWCAG    = "wcag_piu_violati"
)
