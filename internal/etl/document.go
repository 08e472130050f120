// Package etl loads the offers file and indexes prepared product documents
// into Elasticsearch.
package etl

import (
	"fmt"
	"strings"

	"github.com/partsearch/parts-search/internal/classify"
	"github.com/partsearch/parts-search/internal/phonetic"
	"github.com/partsearch/parts-search/internal/translit"
)

// Offer is one raw record from the offers file. Feeds come from several
// upstream systems, so most fields have aliases.
type Offer map[string]any

func (o Offer) stringField(keys ...string) string {
	for _, key := range keys {
		switch v := o[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
			}
		}
	}
	return ""
}

func (o Offer) Title() string {
	return o.stringField("title", "name")
}

func (o Offer) Manufacturer() string {
	return o.stringField("manufacturer", "brand")
}

func (o Offer) ProductCode() string {
	return o.stringField("productCode", "product_code", "article")
}

func (o Offer) ExternalID() string {
	if id := o.stringField("externalId", "external_id", "id"); id != "" {
		return id
	}
	if code := o.ProductCode(); code != "" {
		return code
	}
	return o.Title()
}

// BrandResolver narrows the brand catalog down to what document
// preparation needs.
type BrandResolver interface {
	Resolve(raw string) (string, bool)
	ExtractBrands(text string) []string
}

// Document is the indexed shape of one product.
type Document struct {
	ID                    string  `json:"id"`
	Manufacturer          string  `json:"manufacturer"`
	ManufacturerNormalized string `json:"manufacturer_normalized,omitempty"`
	ProductCode           string  `json:"product_code"`
	ProductCodeNormalized string  `json:"product_code_normalized"`
	Title                 string  `json:"title"`
	SearchText            string  `json:"search_text"`
	SearchTextTr          string  `json:"search_text_tr"`
	Phonetic              string  `json:"phonetic,omitempty"`
	Price                 any     `json:"price,omitempty"`
	Category              any     `json:"category,omitempty"`
	Currency              any     `json:"currency,omitempty"`
}

// PrepareDocument derives the search fields for one offer: the combined
// search text, its cross-script transliteration, the normalized article
// code and manufacturer, and the phonetic key.
func PrepareDocument(offer Offer, resolver BrandResolver) Document {
	title := offer.Title()
	manufacturer := offer.Manufacturer()
	productCode := offer.ProductCode()

	parts := make([]string, 0, 3)
	for _, part := range []string{manufacturer, productCode, title} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	searchText := strings.Join(parts, " ")

	doc := Document{
		ID:                    offer.ExternalID(),
		Manufacturer:          manufacturer,
		ProductCode:           productCode,
		ProductCodeNormalized: classify.NormalizeCode(productCode),
		Title:                 title,
		SearchText:            searchText,
		SearchTextTr:          translit.TransliterateText(searchText),
		Price:                 offer["price"],
		Category:              offer["category"],
		Currency:              offer["currency"],
	}

	if manufacturer != "" && resolver != nil {
		if brands := resolver.ExtractBrands(manufacturer); len(brands) > 0 {
			doc.ManufacturerNormalized = brands[0]
		} else if id, ok := resolver.Resolve(manufacturer); ok {
			doc.ManufacturerNormalized = id
		}
	}

	phoneticParts := make([]string, 0, 2)
	for _, part := range []string{title, manufacturer} {
		if part != "" {
			phoneticParts = append(phoneticParts, part)
		}
	}
	if source := phonetic.NormalizeQuery(strings.Join(phoneticParts, " ")); source != "" {
		doc.Phonetic = phonetic.Key(source)
	}
	return doc
}
