package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a display name into its comparison key: diacritics are
// stripped, case is ignored and runs of whitespace collapse to a single
// space. "José  ÁLVAREZ " and "jose alvarez" share the same key.
func Normalize(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
