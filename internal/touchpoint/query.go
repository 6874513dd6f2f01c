package touchpoint

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"a11ydash/pkg/models"
)

// All disables a categorical filter.
const All = "all"

type SortField string

const (
	SortSection    SortField = "section"
	SortIssueCount SortField = "issueCount"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active ordering of the touchpoint list.
type Sort struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

func DefaultSort() Sort {
	return Sort{Field: SortSection, Direction: Asc}
}

// Toggle applies a click on a column header: the active column flips
// direction, any other column becomes active in ascending order.
func (s Sort) Toggle(field SortField) Sort {
	if s.Field == field {
		if s.Direction == Asc {
			return Sort{Field: field, Direction: Desc}
		}
		return Sort{Field: field, Direction: Asc}
	}
	return Sort{Field: field, Direction: Asc}
}

// ParseSort reads the sort and dir query values. Empty values keep the
// defaults; the sheet-era names "sezione" and "problemiCount" are accepted.
func ParseSort(field, dir string) (Sort, error) {
	s := DefaultSort()

	switch strings.TrimSpace(field) {
	case "":
	case "section", "sezione":
		s.Field = SortSection
	case "issueCount", "problemiCount", "problemsCount":
		s.Field = SortIssueCount
	default:
		return s, fmt.Errorf("unknown sort field %q", field)
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		s.Direction = Asc
	case "desc":
		s.Direction = Desc
	default:
		return s, fmt.Errorf("unknown sort direction %q", dir)
	}
	return s, nil
}

// Query filters the touchpoint list.
type Query struct {
	Search string // case-insensitive, matches section or URL
	Status string // exact test status, or All / ""
}

func (q Query) matches(tp models.Touchpoint, needle string) bool {
	matchesSearch := needle == "" ||
		strings.Contains(strings.ToLower(tp.Section), needle) ||
		strings.Contains(strings.ToLower(models.Str(tp.URL)), needle)
	matchesStatus := q.Status == "" || q.Status == All || q.Status == "tutti" ||
		models.Str(tp.TestStatus) == q.Status
	return matchesSearch && matchesStatus
}

// FilterAndSort returns the touchpoints matching q, ordered by s. The input
// slice is not modified.
func FilterAndSort(tps []models.Touchpoint, q Query, s Sort) []models.Touchpoint {
	needle := strings.ToLower(q.Search)

	out := make([]models.Touchpoint, 0, len(tps))
	for _, tp := range tps {
		if q.matches(tp, needle) {
			out = append(out, tp)
		}
	}

	// a Collator keeps internal buffers, one per call
	col := collate.New(language.Italian)
	slices.SortStableFunc(out, func(a, b models.Touchpoint) int {
		var c int
		switch s.Field {
		case SortIssueCount:
			c = cmp.Compare(a.IssueCount, b.IssueCount)
		default:
			c = col.CompareString(a.Section, b.Section)
		}
		if s.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// StatusOptions lists the values offered by the status filter.
func StatusOptions() []string {
	return []string{
		All,
		models.TestStatusUntested,
		models.TestStatusTested,
		models.TestStatusRecheck,
		models.TestStatusCompleted,
	}
}
