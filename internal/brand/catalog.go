// Package brand builds a brand catalog from the manufacturer reference file
// and resolves query tokens to canonical brand identifiers.
package brand

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/partsearch/parts-search/internal/translit"
)

var (
	tokenPattern       = regexp.MustCompile(`[0-9A-Za-zА-Яа-яЁё]+`)
	segmentSplitter    = regexp.MustCompile(`[,/|()]+`)
	hyphenRunSplitter  = regexp.MustCompile(`-+`)
	letterCodePattern  = regexp.MustCompile(`(?i)^[a-z]{2}[0-9]{3,}$`)
	numericCodePattern = regexp.MustCompile(`^[0-9]{3,}[-/][0-9]+$`)
	alnumDashPattern   = regexp.MustCompile(`(?i)^[a-z0-9-]{6,}$`)
)

// Brand is one canonical manufacturer with the labels it appeared under and
// the trusted tokens that map to it.
type Brand struct {
	ID     string
	Labels map[string]struct{}
	Tokens map[string]struct{}
}

// Catalog holds the canonical brands plus a token to brand-id lookup. The
// token registration order is kept so fuzzy matching stays deterministic.
type Catalog struct {
	brands map[string]*Brand
	tokens map[string]string
	order  []string
}

type labelCandidate struct {
	text       string
	tokens     []string
	isUpper    bool
	hasLatin   bool
	hyphenated bool
}

type tokenStats struct {
	occurrences int
	solo        int
	uppercase   int
	latin       int
	hyphen      int
}

func (s tokenStats) score() float64 {
	return float64(s.solo)*2 + float64(s.uppercase) + float64(s.hyphen) + float64(s.latin)*0.5
}

// BuildCatalog derives brands from manufacturer file lines. Noise lines are
// skipped, the rest are segmented into label candidates, and only tokens that
// pass the trust heuristics may identify a brand.
func BuildCatalog(lines []string) *Catalog {
	candidates, stats := collectCandidates(lines)
	trusted := selectTrustedTokens(stats)

	c := &Catalog{
		brands: make(map[string]*Brand),
		tokens: make(map[string]string),
	}
	for _, candidate := range candidates {
		c.register(candidate, trusted)
	}
	return c
}

// register files a candidate under its first trusted token. Token mappings
// are first writer wins, so earlier lines take precedence.
func (c *Catalog) register(candidate labelCandidate, trusted map[string]struct{}) {
	canonical := ""
	for _, token := range candidate.tokens {
		if _, ok := trusted[token]; ok {
			canonical = token
			break
		}
	}
	if canonical == "" {
		return
	}

	b, ok := c.brands[canonical]
	if !ok {
		b = &Brand{
			ID:     canonical,
			Labels: make(map[string]struct{}),
			Tokens: make(map[string]struct{}),
		}
		c.brands[canonical] = b
	}
	b.Labels[candidate.text] = struct{}{}
	for _, token := range candidate.tokens {
		if _, ok := trusted[token]; !ok {
			continue
		}
		b.Tokens[token] = struct{}{}
		c.addToken(token, canonical)
	}
	b.Tokens[canonical] = struct{}{}
	c.addToken(canonical, canonical)
}

func (c *Catalog) addToken(token, brandID string) {
	if _, exists := c.tokens[token]; exists {
		return
	}
	c.tokens[token] = brandID
	c.order = append(c.order, token)
}

func collectCandidates(lines []string) ([]labelCandidate, map[string]*tokenStats) {
	var candidates []labelCandidate
	stats := make(map[string]*tokenStats)

	for _, line := range lines {
		if isNoiseLine(line) {
			continue
		}
		for _, segment := range splitSegments(line) {
			tokens := tokensFromLabel(segment)
			if len(tokens) == 0 {
				continue
			}
			candidate := labelCandidate{
				text:       strings.TrimSpace(segment),
				tokens:     tokens,
				isUpper:    looksAllCaps(segment),
				hasLatin:   containsLatin(segment),
				hyphenated: strings.Contains(segment, "-"),
			}
			candidates = append(candidates, candidate)
			for _, token := range tokens {
				stat := stats[token]
				if stat == nil {
					stat = &tokenStats{}
					stats[token] = stat
				}
				stat.occurrences++
				if len(candidate.tokens) == 1 {
					stat.solo++
				}
				if candidate.isUpper {
					stat.uppercase++
				}
				if candidate.hasLatin || containsLatin(token) {
					stat.latin++
				}
				if candidate.hyphenated {
					stat.hyphen++
				}
			}
		}
	}
	return candidates, stats
}

func selectTrustedTokens(stats map[string]*tokenStats) map[string]struct{} {
	trusted := make(map[string]struct{})
	for token, stat := range stats {
		if token == "" || IsGenericLike(token) {
			continue
		}
		switch {
		case stat.solo > 0:
			trusted[token] = struct{}{}
		case stat.occurrences <= 2 && (stat.uppercase > 0 || stat.latin > 0):
			trusted[token] = struct{}{}
		case stat.score() >= 2.5:
			trusted[token] = struct{}{}
		}
	}
	return trusted
}

// isNoiseLine rejects manufacturer lines that describe products rather than
// name brands: article codes with trailing text, lines led by a part noun,
// or strings dominated by digits.
func isNoiseLine(line string) bool {
	stripped := strings.TrimSpace(line)
	if stripped == "" {
		return true
	}
	tokens := tokenPattern.FindAllString(stripped, -1)
	if len(tokens) == 0 {
		return true
	}
	if looksLikeArticleCode(tokens[0]) && len(tokens) > 1 {
		return true
	}
	if _, ok := noiseStarters[strings.ToLower(tokens[0])]; ok {
		return true
	}
	digits, letters := 0, 0
	for _, r := range stripped {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	return digits > 0 && digits >= letters*2
}

func splitSegments(line string) []string {
	var segments []string
	for _, segment := range segmentSplitter.Split(line, -1) {
		part := strings.TrimSpace(segment)
		if part == "" {
			continue
		}
		if shouldSplitHyphen(part) {
			for _, sub := range hyphenRunSplitter.Split(part, -1) {
				if sub = strings.TrimSpace(sub); sub != "" {
					segments = append(segments, sub)
				}
			}
		} else {
			segments = append(segments, part)
		}
	}
	return segments
}

// shouldSplitHyphen decides whether a hyphenated label is really two brand
// names joined together. All-caps labels always split; otherwise both sides
// must normalize into alphabetic tokens of three or more characters.
func shouldSplitHyphen(value string) bool {
	if !strings.Contains(value, "-") {
		return false
	}
	if looksAllCaps(value) {
		return true
	}
	var parts []string
	for _, segment := range strings.Split(value, "-") {
		if segment = strings.TrimSpace(segment); segment != "" {
			parts = append(parts, segment)
		}
	}
	if len(parts) < 2 {
		return false
	}
	normalized := 0
	for _, part := range parts {
		p := translit.NormalizeToken(part)
		if p == "" {
			continue
		}
		normalized++
		if len(p) < 3 || !isAlpha(p) {
			return false
		}
	}
	return normalized >= 2
}

func tokensFromLabel(label string) []string {
	var tokens []string
	for _, raw := range tokenPattern.FindAllString(label, -1) {
		if looksLikeArticleCode(raw) {
			continue
		}
		normalized := translit.NormalizeToken(raw)
		if normalized == "" || len(normalized) < 3 {
			continue
		}
		if IsGenericLike(normalized) {
			continue
		}
		tokens = append(tokens, normalized)
	}
	return tokens
}

// looksLikeArticleCode recognizes part number shapes: a letter prefix with a
// digit run, digit groups joined by - or /, or a long alphanumeric string
// containing at least one digit. Falls back to a digit dominance check.
func looksLikeArticleCode(token string) bool {
	if token == "" {
		return false
	}
	if letterCodePattern.MatchString(token) || numericCodePattern.MatchString(token) {
		return true
	}
	if alnumDashPattern.MatchString(token) && strings.ContainsAny(token, "0123456789") {
		return true
	}
	digits, letters := 0, 0
	for _, r := range token {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	return digits >= 3 && digits >= letters
}

func looksAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

func containsLatin(text string) bool {
	for _, r := range text {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

func isAlpha(text string) bool {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return text != ""
}

// Len returns the number of canonical brands.
func (c *Catalog) Len() int {
	return len(c.brands)
}

// TokenCount returns the number of registered brand tokens.
func (c *Catalog) TokenCount() int {
	return len(c.tokens)
}

// Brand returns the catalog entry for a canonical id.
func (c *Catalog) Brand(id string) (*Brand, bool) {
	b, ok := c.brands[id]
	return b, ok
}

// BrandIDs returns the canonical brand identifiers in sorted order.
func (c *Catalog) BrandIDs() []string {
	ids := make([]string, 0, len(c.brands))
	for id := range c.brands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Synonyms returns a copy of the token to brand-id mapping.
func (c *Catalog) Synonyms() map[string]string {
	out := make(map[string]string, len(c.tokens))
	for token, id := range c.tokens {
		out[token] = id
	}
	return out
}
