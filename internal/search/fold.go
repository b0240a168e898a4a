// Package search provides the name matching primitives used by the selector
// endpoints: accent-insensitive folding of person names and deterministic
// relevance ranking of lightweight search results.
//
// The package is dependency-light and holds no state; everything here is safe
// for concurrent use.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips combining marks ("Pérez" → "perez", "Ñañez" →
// "nanez") and collapses runs of whitespace to a single space. The same
// folding is applied to stored names and to queries so substring matching in
// the backing store is accent-insensitive.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// IsBlank reports whether q carries no searchable characters.
func IsBlank(q string) bool {
	return len(tokenize(Fold(q))) == 0
}

// LikePattern builds a "%term%" pattern for SQL LIKE from a raw query. The
// query is folded first; '%', '_' and the escape character '\' are escaped so
// user input can never widen the match. Use with ESCAPE '\'.
func LikePattern(q string) string {
	return "%" + likeEscape(q) + "%"
}

// PrefixPattern matches names that start with the folded query.
func PrefixPattern(q string) string {
	return likeEscape(q) + "%"
}

// WordPrefixPattern matches names with a later word starting with the folded
// query.
func WordPrefixPattern(q string) string {
	return "% " + likeEscape(q) + "%"
}

func likeEscape(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(Fold(q))
}
