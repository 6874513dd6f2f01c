package normalize

import (
	"encoding/binary"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var touchpointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("a11ydash:touchpoint"))

// Slug converts a section name into an identifier: accents are decomposed
// and dropped, anything outside [A-Za-z0-9_-] and whitespace is removed,
// and runs of whitespace, underscores and hyphens become a single hyphen.
func Slug(s string) string {
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	lastDash := false
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
			lastDash = false
		}
	}
	return strings.Trim(b.String(), "-")
}

// fallbackID derives a base-36 token from the record contents, so records
// that slug to nothing still get a usable id and re-normalizing the same
// record yields the same id.
func fallbackID(raw map[string]any) string {
	// map keys are marshaled sorted, so this is canonical
	data, err := json.Marshal(raw)
	if err != nil {
		data = []byte{}
	}
	u := uuid.NewSHA1(touchpointNamespace, data)
	return strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
}
