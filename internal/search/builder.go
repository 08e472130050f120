// Package search builds weighted Elasticsearch queries from query
// classifications and runs them against the product index.
package search

import (
	"strings"

	"github.com/partsearch/parts-search/internal/classify"
	"github.com/partsearch/parts-search/internal/phonetic"
	"github.com/partsearch/parts-search/internal/translit"
)

// BuildQuery assembles the bool/should request body for one classified
// query. Each kind weights its clauses differently; at least one clause
// must match.
func BuildQuery(raw string, cls classify.Classification, size int) map[string]any {
	should := make([]map[string]any, 0, 8)
	add := func(clause map[string]any) {
		should = append(should, clause)
	}

	queryText := cls.Query
	if queryText == "" {
		queryText = raw
	}

	switch cls.Kind {
	case classify.KindArticle:
		code := cls.NormalizedCode
		if code == "" {
			code = classify.NormalizeCode(queryText)
		}
		if code != "" {
			add(term("product_code_normalized", code, 5))
		}
		add(fuzzyMatch("product_code", queryText, 3))
		add(fuzzyMatch("search_text", queryText, 2))
		return body(should, size)

	case classify.KindURL:
		if len(cls.URLTokens) > 0 {
			add(map[string]any{
				"multi_match": map[string]any{
					"query":     strings.Join(cls.URLTokens, " "),
					"fields":    []string{"search_text", "search_text_tr"},
					"fuzziness": "AUTO",
				},
			})
		} else {
			add(fuzzyMatch("search_text", queryText, 1))
		}
		return body(should, size)
	}

	genericText := strings.Join(cls.GenericTokens, " ")
	brandFocus := brandFocusText(cls, queryText)

	addBrandTerms := func(boost float64) {
		for _, b := range cls.Brands {
			add(term("manufacturer_normalized", b, boost))
		}
	}
	addBrandPhonetic := func(boost float64) {
		add(map[string]any{
			"multi_match": map[string]any{
				"query":     brandFocus,
				"fields":    []string{"manufacturer^3", "manufacturer.phonetic^2"},
				"type":      "most_fields",
				"fuzziness": "AUTO",
				"boost":     boost,
			},
		})
	}
	addTextClauses := func(text string, boost float64) {
		if text == "" {
			return
		}
		add(map[string]any{
			"multi_match": map[string]any{
				"query":     text,
				"fields":    []string{"title^3", "search_text", "manufacturer"},
				"fuzziness": "AUTO",
				"boost":     boost,
			},
		})
		add(map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"fields": []string{"manufacturer.phonetic^2", "title.phonetic"},
				"type":   "most_fields",
				"boost":  0.7 * boost,
			},
		})
		if key := phonetic.Key(phonetic.NormalizeQuery(text)); key != "" {
			add(map[string]any{
				"match": map[string]any{
					"phonetic": map[string]any{
						"query": key,
						"boost": 0.5 * boost,
					},
				},
			})
		}
	}

	switch cls.Kind {
	case classify.KindBrandOnly:
		addBrandTerms(5)
		addBrandPhonetic(2)
		addTextClauses(queryText, 0.8)
	case classify.KindBrandWithGeneric:
		addBrandTerms(4)
		addBrandPhonetic(1.5)
		addTextClauses(queryText, 1.2)
		if genericText != "" && genericText != queryText {
			addTextClauses(genericText, 1)
		}
	default:
		addTextClauses(queryText, 1)
	}

	if tr := translit.TransliterateText(queryText); tr != "" && tr != strings.ToLower(queryText) {
		add(map[string]any{
			"multi_match": map[string]any{
				"query":     tr,
				"fields":    []string{"search_text_tr", "search_text"},
				"fuzziness": "AUTO",
				"boost":     0.8,
			},
		})
	}
	return body(should, size)
}

func brandFocusText(cls classify.Classification, fallback string) string {
	if len(cls.BrandOriginals) == 0 {
		return fallback
	}
	parts := make([]string, 0, len(cls.BrandOriginals))
	for _, id := range cls.Brands {
		if original, ok := cls.BrandOriginals[id]; ok {
			parts = append(parts, original)
		}
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, " ")
}

func body(should []map[string]any, size int) map[string]any {
	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
	}
}

func term(field, value string, boost float64) map[string]any {
	return map[string]any{
		"term": map[string]any{
			field: map[string]any{
				"value": value,
				"boost": boost,
			},
		},
	}
}

func fuzzyMatch(field, query string, boost float64) map[string]any {
	return map[string]any{
		"match": map[string]any{
			field: map[string]any{
				"query":     query,
				"fuzziness": "AUTO",
				"boost":     boost,
			},
		},
	}
}
