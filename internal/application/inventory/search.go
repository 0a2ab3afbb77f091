package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText normaliza para búsqueda: sin acentos y sin distinguir mayúsculas ("Ozémpic" == "ozempic").
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// matchesSearch indica si algún campo contiene el término ya normalizado.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(foldText(f), term) {
			return true
		}
	}
	return false
}
