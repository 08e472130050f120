// Package phonetic produces normalized and phonetically encoded renderings
// of queries and catalog text so badly misspelled input still lands on the
// right documents.
package phonetic

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"github.com/mozillazg/go-unidecode"
)

// digraphHarmonizer folds Latin digraphs into their Cyrillic phonetic
// counterparts so "bosch", "bosh" and "бош" encode identically. The "sch"
// pair must come first so it wins over "sh" and "ch".
var digraphHarmonizer = strings.NewReplacer(
	"sch", "ш",
	"sh", "ш",
	"zh", "ж",
	"ch", "ч",
)

// NormalizeQuery cleans free-form input ahead of phonetic encoding and
// analyzer matching: lowercase, collapse repeated letters, keep only
// letters, digits and spaces, then map known brand aliases per token.
func NormalizeQuery(text string) string {
	lowered := strings.ToLower(text)
	collapsed := collapseRepeatedLetters(lowered)

	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || unicode.IsDigit(r) || isQueryLetter(r) {
			return r
		}
		return ' '
	}, collapsed)

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	for i, token := range fields {
		if alias, ok := brandAliases[token]; ok {
			fields[i] = alias
		}
	}
	return strings.Join(fields, " ")
}

// Key derives the phonetic key for already normalized text: harmonize
// digraphs, fold to ASCII, then emit the deduplicated double metaphone
// codes of every token. Empty input yields an empty key.
func Key(normalized string) string {
	if normalized == "" {
		return ""
	}
	harmonized := digraphHarmonizer.Replace(normalized)
	ascii := strings.Map(func(r rune) rune {
		if r == ' ' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r
		}
		return ' '
	}, unidecode.Unidecode(harmonized))

	var codes []string
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(ascii) {
		primary, secondary := matchr.DoubleMetaphone(token)
		for _, code := range []string{primary, secondary} {
			if code == "" {
				continue
			}
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	return strings.Join(codes, " ")
}

func collapseRepeatedLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	for _, r := range s {
		if r == prev && isQueryLetter(r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isQueryLetter(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return true
	}
	return r >= 'а' && r <= 'я' || r >= 'А' && r <= 'Я' || r == 'ё' || r == 'Ё' || r == 'й' || r == 'Й'
}
