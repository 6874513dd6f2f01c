package issue

import (
	"strings"

	"a11ydash/pkg/models"
)

const understandingBase = "https://www.w3.org/WAI/WCAG22/Understanding/"

// Link returns the Understanding page for a criterion code or full criterion
// text. Only the first "." of the code becomes "-". Empty input gives "".
func Link(criterion string) string {
	code := models.WCAGCode(criterion)
	if code == "" {
		return ""
	}
	return understandingBase + strings.Replace(code, ".", "-", 1) + ".html"
}
