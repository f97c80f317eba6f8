package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes accented characters and drops the combining marks,
// so "ç" becomes "c" and "ã" becomes "a".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a free-form value into its space-joined matching form:
// BOM artifacts and surrounding whitespace stripped, accents removed,
// lowercased, with tabs/hyphens/underscores and whitespace runs collapsed
// into single spaces. Idempotent.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\ufeff", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	s = strings.ToLower(s)
	s = strings.NewReplacer("\t", " ", "-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey is Normalize in canonical token form, joined by underscores:
// NormalizeKey("Período Letivo") == "periodo_letivo".
func NormalizeKey(s string) string {
	n := Normalize(s)
	if n == "" {
		return n
	}
	return strings.Join(strings.Fields(n), "_")
}

// matchKey strips separators entirely, for containment matching of subject
// keys against column names ("Matemática 2" -> "matematica2").
func matchKey(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "")
}
