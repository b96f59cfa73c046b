package finder

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalSuffixes lists entity suffix tokens, already lowercased with periods
// removed, that are stripped from the end of company names.
var legalSuffixes = map[string]bool{
	"inc": true, "incorporated": true,
	"llc": true, "pllc": true,
	"corp": true, "corporation": true,
	"co": true, "company": true,
	"ltd": true, "limited": true,
	"lp": true, "llp": true,
	"pc": true, "pa": true,
	"plc": true, "gmbh": true, "ag": true,
	"sa": true, "bv": true, "nv": true, "pty": true,
}

// foldDiacritics maps "José Müller" to "Jose Muller".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// tokenize lowercases s, folds diacritics, drops periods and apostrophes
// ("L.L.C." -> "llc", "O'Brien" -> "obrien") and splits on everything that
// is not a letter or digit. "&" becomes "and".
func tokenize(s string) []string {
	s = strings.ToLower(foldDiacritics(s))
	s = strings.NewReplacer(".", "", "'", "", "’", "", "&", " and ").Replace(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizeCompany returns the comparison form of a company name: lowercase,
// punctuation stripped, trailing legal suffixes removed, whitespace collapsed.
func NormalizeCompany(name string) string {
	tokens := tokenize(name)
	for len(tokens) > 1 && legalSuffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// hasLegalSuffix reports whether name ends in an entity suffix.
func hasLegalSuffix(name string) bool {
	tokens := tokenize(name)
	return len(tokens) > 1 && legalSuffixes[tokens[len(tokens)-1]]
}

// CompanySimilarity scores two company names in [0,1] as the larger of the
// Levenshtein ratio and the token Jaccard index of their normalized forms.
// Empty input on either side scores 0.
func CompanySimilarity(a, b string) float64 {
	na, nb := NormalizeCompany(a), NormalizeCompany(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	return max(levenshteinRatio(na, nb), jaccard(strings.Fields(na), strings.Fields(nb)))
}

func levenshteinRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// jaccard is |A∩B| / |A∪B| over token sets.
func jaccard(a, b []string) float64 {
	set := make(map[string]int, len(a)+len(b))
	for _, t := range a {
		set[t] |= 1
	}
	for _, t := range b {
		set[t] |= 2
	}
	if len(set) == 0 {
		return 0
	}
	shared := 0
	for _, m := range set {
		if m == 3 {
			shared++
		}
	}
	return float64(shared) / float64(len(set))
}
