package brand

import (
	"github.com/antzucaro/matchr"

	"github.com/partsearch/parts-search/internal/translit"
)

// Resolve maps a raw token to a canonical brand id. The token is normalized
// first; an exact lookup is tried before the guarded fuzzy scan.
func (c *Catalog) Resolve(raw string) (string, bool) {
	token := translit.NormalizeToken(raw)
	if token == "" {
		return "", false
	}
	if id, ok := c.tokens[token]; ok {
		return id, true
	}
	return c.fuzzyResolve(token)
}

// ResolveNormalized is Resolve for tokens that are already in canonical
// lowercase Latin form.
func (c *Catalog) ResolveNormalized(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	if id, ok := c.tokens[token]; ok {
		return id, true
	}
	return c.fuzzyResolve(token)
}

// fuzzyResolve scans registered tokens in registration order so ties always
// break the same way. A candidate only qualifies when it shares the first
// character, differs in length by at most two, and sits within the edit
// distance budget. The best similarity wins; equal scores keep the earlier
// candidate.
func (c *Catalog) fuzzyResolve(token string) (string, bool) {
	if len(token) < 4 {
		return "", false
	}
	bestBrand := ""
	bestScore := 0.0
	for _, candidate := range c.order {
		if candidate == token {
			return c.tokens[candidate], true
		}
		if len(candidate) < 4 {
			continue
		}
		if candidate[0] != token[0] {
			continue
		}
		diff := len(candidate) - len(token)
		if diff < -2 || diff > 2 {
			continue
		}
		distance := matchr.DamerauLevenshtein(token, candidate)
		maxLen := len(candidate)
		if len(token) > maxLen {
			maxLen = len(token)
		}
		budget := maxLen / 3
		if budget < 1 {
			budget = 1
		}
		if distance > 3 || distance > budget {
			continue
		}
		score := 1 - float64(distance)/float64(maxLen)
		if score >= 0.6 && score > bestScore {
			bestScore = score
			bestBrand = c.tokens[candidate]
		}
	}
	if bestBrand == "" {
		return "", false
	}
	return bestBrand, true
}

// ExtractBrands returns the distinct brand ids detected in free text, in
// first encounter order. Used when normalizing catalog documents.
func (c *Catalog) ExtractBrands(text string) []string {
	var detected []string
	seen := make(map[string]struct{})
	for _, raw := range tokenPattern.FindAllString(text, -1) {
		normalized := translit.NormalizeToken(raw)
		if normalized == "" || IsGenericLike(normalized) {
			continue
		}
		id, ok := c.ResolveNormalized(normalized)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		detected = append(detected, id)
	}
	return detected
}
