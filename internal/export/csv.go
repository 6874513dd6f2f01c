// Package export serializes the touchpoint list for download.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"a11ydash/pkg/models"
)

// Filename is the name offered to the browser for the download.
const Filename = "touchpoints.csv"

// ContentType of the CSV download.
const ContentType = "text/csv; charset=utf-8"

// Header is the first row of the export.
var Header = []string{"Sezione", "URL/Link", "Stato test", "Numero Problemi", "Link Frame Figma"}

// WriteTouchpoints writes the header and one row per touchpoint. Text fields
// are always double-quoted (embedded quotes doubled), the issue count is a
// bare integer, and rows are separated by "\n" with no trailing newline.
//
// encoding/csv only quotes fields that need it, which would change the
// format downstream spreadsheets were built against.
func WriteTouchpoints(w io.Writer, tps []models.Touchpoint) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Header, ",")); err != nil {
		return err
	}
	for _, tp := range tps {
		row := []string{
			quote(tp.Section),
			quote(models.Str(tp.URL)),
			quote(models.Str(tp.TestStatus)),
			strconv.Itoa(tp.IssueCount),
			quote(models.Str(tp.FigmaLink)),
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		if _, err := bw.WriteString(strings.Join(row, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Touchpoints returns the export as a string.
func Touchpoints(tps []models.Touchpoint) string {
	var b strings.Builder
	_ = WriteTouchpoints(&b, tps)
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
