// Package classify assigns incoming search queries to one of six kinds and
// splits their tokens into brand and generic terms, feeding the query
// builder.
package classify

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/partsearch/parts-search/internal/brand"
	"github.com/partsearch/parts-search/internal/translit"
)

// Kind is the terminal classification of one query.
type Kind string

const (
	KindURL              Kind = "url"
	KindArticle          Kind = "article"
	KindBrandOnly        Kind = "brand_only"
	KindBrandWithGeneric Kind = "brand_with_generic"
	KindGenericOnly      Kind = "generic_only"
	KindUnknown          Kind = "unknown"
)

// Classification is the record produced for one query. Only the fields
// relevant to Kind are populated.
type Classification struct {
	Kind  Kind
	Query string

	// url
	URLTokens []string

	// article
	NormalizedCode string

	// brand_only, brand_with_generic, generic_only
	Brands         []string
	BrandOriginals map[string]string
	GenericTokens  []string
}

// BrandResolver resolves a raw token to a canonical brand id.
type BrandResolver interface {
	Resolve(raw string) (string, bool)
}

// Classifier classifies queries against a brand resolver.
type Classifier struct {
	resolver BrandResolver
}

func New(resolver BrandResolver) *Classifier {
	return &Classifier{resolver: resolver}
}

// stopwords are dropped from queries entirely. Keys are stored in
// normalized form so both scripts match after normalization.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "и", "в", "на", "для", "с", "без", "под", "из",
		"до", "по", "от", "to", "for", "with", "and", "как", "к", "фильтр",
	} {
		if n := translit.NormalizeToken(w); n != "" {
			stopwords[n] = struct{}{}
		}
	}
}

const codeCharset = "-_/\\"

// Classify maps a raw query to its classification. It never fails; the
// worst case is KindUnknown with empty fields.
func (c *Classifier) Classify(raw string) Classification {
	query := strings.TrimSpace(raw)
	if query == "" {
		return Classification{Kind: KindUnknown, Query: query}
	}

	lower := strings.ToLower(query)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return Classification{
			Kind:      KindURL,
			Query:     query,
			URLTokens: urlTokens(query),
		}
	}

	if looksLikeArticleQuery(query) {
		return Classification{
			Kind:           KindArticle,
			Query:          query,
			NormalizedCode: NormalizeCode(query),
		}
	}

	return c.classifyTokens(query)
}

// urlTokens pulls the last path segment and every query parameter value out
// of a product URL, alphanumeric characters only. The path token always
// comes first; parameter values keep their order in the URL.
func urlTokens(raw string) []string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil
	}

	var tokens []string
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if last := segments[len(segments)-1]; last != "" {
		if token := stripNonAlnum(last); token != "" {
			tokens = append(tokens, token)
		}
	}
	for _, pair := range strings.Split(parsed.RawQuery, "&") {
		if pair == "" {
			continue
		}
		value := pair
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			value = pair[idx+1:]
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		if token := stripNonAlnum(value); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// looksLikeArticleQuery applies two tests: the query must be probable (no
// space, or short enough, with digits and code separators making up more
// than half of it) and every character must belong to the code charset.
func looksLikeArticleQuery(query string) bool {
	total, codeChars := 0, 0
	hasSpace := false
	for _, r := range query {
		total++
		switch {
		case r == ' ':
			hasSpace = true
		case unicode.IsDigit(r):
			codeChars++
		case strings.ContainsRune(codeCharset, r):
			codeChars++
		}
	}
	if hasSpace && total > 20 {
		return false
	}
	if codeChars*2 <= total {
		return false
	}
	for _, r := range query {
		if r == ' ' || unicode.IsDigit(r) || strings.ContainsRune(codeCharset, r) {
			continue
		}
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			continue
		}
		return false
	}
	return true
}

// NormalizeCode renders an article code as uppercase alphanumerics only.
func NormalizeCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		} else if r >= 'a' && r <= 'z' {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func (c *Classifier) classifyTokens(query string) Classification {
	cls := Classification{Query: query}

	seen := make(map[string]struct{})
	for _, token := range splitQuery(query) {
		normalized := translit.NormalizeToken(token)
		if normalized == "" {
			continue
		}
		if isAllDigits(normalized) && len(normalized) > 3 {
			cls.GenericTokens = append(cls.GenericTokens, normalized)
			continue
		}
		if brand.IsGenericLike(normalized) {
			cls.GenericTokens = append(cls.GenericTokens, normalized)
			continue
		}

		if id, ok := c.resolveToken(token); ok {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				cls.Brands = append(cls.Brands, id)
				if cls.BrandOriginals == nil {
					cls.BrandOriginals = make(map[string]string)
				}
				cls.BrandOriginals[id] = token
			}
			continue
		}

		if len(normalized) < 2 {
			continue
		}
		if _, stop := stopwords[normalized]; stop {
			continue
		}
		cls.GenericTokens = append(cls.GenericTokens, normalized)
	}

	switch {
	case len(cls.Brands) > 0 && len(cls.GenericTokens) > 0:
		cls.Kind = KindBrandWithGeneric
	case len(cls.Brands) > 0:
		cls.Kind = KindBrandOnly
	case len(cls.GenericTokens) > 0:
		cls.Kind = KindGenericOnly
	default:
		cls.Kind = KindUnknown
	}
	return cls
}

// resolveToken tries the surface token first, then its cross-script
// transliteration. The resolver normalizes internally, so the surface pass
// already covers the normalized form.
func (c *Classifier) resolveToken(token string) (string, bool) {
	if id, ok := c.resolver.Resolve(token); ok {
		return id, true
	}
	if tr := translit.TransliterateText(token); tr != "" && tr != token {
		if id, ok := c.resolver.Resolve(tr); ok {
			return id, true
		}
	}
	return "", false
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitQuery(query string) []string {
	return strings.FieldsFunc(query, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;|/\\", r)
	})
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
