package touchpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ydash/pkg/models"
)

func tp(section, url, status string, count int) models.Touchpoint {
	t := models.Touchpoint{ID: section, Section: section, IssueCount: count}
	if url != "" {
		t.URL = models.Ptr(url)
	}
	if status != "" {
		t.TestStatus = models.Ptr(status)
	}
	return t
}

func sample() []models.Touchpoint {
	return []models.Touchpoint{
		tp("Scheda prodotto", "https://shop.it/p/1", "testato", 2),
		tp("Home", "https://shop.it/", "completato", 5),
		tp("Área clienti", "https://shop.it/area", "recheck", 1),
		tp("Checkout", "https://shop.it/checkout", "non testato", 0),
		tp("carrello", "", "", 3),
	}
}

func sections(tps []models.Touchpoint) []string {
	out := make([]string, len(tps))
	for i, t := range tps {
		out[i] = t.Section
	}
	return out
}

func TestFilterAndSort_NoFilterSortsAll(t *testing.T) {
	for _, status := range []string{"", All} {
		got := FilterAndSort(sample(), Query{Status: status}, DefaultSort())
		// collation ignores case and accents
		assert.Equal(t, []string{"Área clienti", "carrello", "Checkout", "Home", "Scheda prodotto"}, sections(got))
	}
}

func TestFilterAndSort_DoesNotModifyInput(t *testing.T) {
	in := sample()
	FilterAndSort(in, Query{}, Sort{Field: SortIssueCount, Direction: Desc})
	assert.Equal(t, sample(), in)
}

func TestFilterAndSort_Search(t *testing.T) {
	got := FilterAndSort(sample(), Query{Search: "CHECK"}, DefaultSort())
	assert.Equal(t, []string{"Checkout"}, sections(got))

	// URL matches too
	got = FilterAndSort(sample(), Query{Search: "/p/"}, DefaultSort())
	assert.Equal(t, []string{"Scheda prodotto"}, sections(got))

	got = FilterAndSort(sample(), Query{Search: "zzz"}, DefaultSort())
	assert.Empty(t, got)
}

func TestFilterAndSort_StatusIsExact(t *testing.T) {
	got := FilterAndSort(sample(), Query{Status: "testato"}, DefaultSort())
	assert.Equal(t, []string{"Scheda prodotto"}, sections(got))

	got = FilterAndSort(sample(), Query{Status: "Testato"}, DefaultSort())
	assert.Empty(t, got)
}

func TestFilterAndSort_IssueCountReversed(t *testing.T) {
	asc := FilterAndSort(sample(), Query{}, Sort{Field: SortIssueCount, Direction: Asc})
	desc := FilterAndSort(sample(), Query{}, Sort{Field: SortIssueCount, Direction: Desc})
	require.Len(t, desc, len(asc))

	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
	assert.Equal(t, 0, asc[0].IssueCount)
	assert.Equal(t, 5, desc[0].IssueCount)
}

func TestFilterAndSort_StableTies(t *testing.T) {
	in := []models.Touchpoint{tp("B", "", "", 1), tp("A", "", "", 1), tp("C", "", "", 0)}
	got := FilterAndSort(in, Query{}, Sort{Field: SortIssueCount, Direction: Asc})
	assert.Equal(t, []string{"C", "B", "A"}, sections(got))
}

func TestSortToggle(t *testing.T) {
	s := DefaultSort()

	s = s.Toggle(SortSection)
	assert.Equal(t, Sort{Field: SortSection, Direction: Desc}, s)

	s = s.Toggle(SortSection)
	assert.Equal(t, Sort{Field: SortSection, Direction: Asc}, s)

	s = s.Toggle(SortSection).Toggle(SortIssueCount)
	assert.Equal(t, Sort{Field: SortIssueCount, Direction: Asc}, s)
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort(), s)

	s, err = ParseSort("problemiCount", "DESC")
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: SortIssueCount, Direction: Desc}, s)

	_, err = ParseSort("url", "")
	assert.Error(t, err)

	_, err = ParseSort("section", "sideways")
	assert.Error(t, err)
}

func TestStatusOptions(t *testing.T) {
	assert.Equal(t, []string{All, "non testato", "testato", "recheck", "completato"}, StatusOptions())
}
