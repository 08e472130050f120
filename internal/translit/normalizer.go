// Package translit normalizes catalog and query tokens from the mixed
// Cyrillic/Latin text common in automotive parts data into a single
// comparable Latin form.
package translit

import (
	"strings"
	"unicode"
)

var equivalentFolder = strings.NewReplacer("ё", "е", "й", "и")

// NormalizeToken reduces a raw token to its canonical lowercase Latin form.
// It returns "" when nothing survives normalization. The result is stable:
// normalizing an already normalized token yields the same string.
func NormalizeToken(raw string) string {
	token := strings.Trim(raw, "-_.,")
	token = strings.ToLower(token)
	if token == "" {
		return ""
	}

	// Misspelling overrides fire before any folding so that forms
	// distinguishable only in the original script still match.
	if canonical, ok := preOverrides[token]; ok {
		return canonical
	}

	token = equivalentFolder.Replace(token)
	token = stripPunctuation(token)
	token = collapseSpaces(token)
	token = strings.Trim(token, "-_ ")
	if token == "" {
		return ""
	}

	// Stripping punctuation may have exposed an override key.
	if canonical, ok := preOverrides[token]; ok {
		return canonical
	}

	token = toLatin(token)

	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	token = b.String()

	if canonical, ok := postOverrides[token]; ok {
		return canonical
	}
	return token
}

// HasCyrillic reports whether s contains at least one Cyrillic letter.
func HasCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

// TransliterateText converts free text between scripts for fallback search
// clauses. Cyrillic input is converted character by character to Latin;
// Latin input is converted to Cyrillic with greedy longest-prefix matching,
// so "sch" becomes "щ" rather than "сч".
func TransliterateText(text string) string {
	lower := strings.ToLower(text)
	if HasCyrillic(lower) {
		var b strings.Builder
		b.Grow(len(lower))
		for _, r := range lower {
			if latin, ok := ruToLatin[r]; ok {
				b.WriteString(latin)
			} else {
				b.WriteRune(r)
			}
		}
		return b.String()
	}

	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); {
		matched := false
		for _, m := range latinToRu {
			if strings.HasPrefix(lower[i:], m.seq) {
				b.WriteRune(m.ru)
				i += len(m.seq)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(lower[i])
			i++
		}
	}
	return b.String()
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedPunctuation, r) {
			return ' '
		}
		return r
	}, s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func toLatin(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := ruToLatin[r]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
