package classify

import (
	"reflect"
	"testing"

	"github.com/partsearch/parts-search/internal/brand"
)

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	catalog := brand.BuildCatalog([]string{
		"BOSCH",
		"Тойота / Toyota",
		"LUKOIL",
	})
	return New(catalog)
}

func TestClassifyEmpty(t *testing.T) {
	c := testClassifier(t)
	for _, q := range []string{"", "   ", "\t\n"} {
		cls := c.Classify(q)
		if cls.Kind != KindUnknown {
			t.Errorf("Classify(%q).Kind = %q, want unknown", q, cls.Kind)
		}
		if len(cls.Brands) != 0 || len(cls.GenericTokens) != 0 {
			t.Errorf("Classify(%q) populated fields: %+v", q, cls)
		}
	}
}

func TestClassifyURL(t *testing.T) {
	c := testClassifier(t)
	cls := c.Classify("https://shop.example.com/parts/0044-TY-998?code=AB12")
	if cls.Kind != KindURL {
		t.Fatalf("Kind = %q, want url", cls.Kind)
	}
	want := []string{"0044TY998", "AB12"}
	if !reflect.DeepEqual(cls.URLTokens, want) {
		t.Errorf("URLTokens = %v, want %v", cls.URLTokens, want)
	}
}

func TestClassifyURLWithoutTokens(t *testing.T) {
	c := testClassifier(t)
	cls := c.Classify("https://shop.example.com/")
	if cls.Kind != KindURL {
		t.Fatalf("Kind = %q, want url", cls.Kind)
	}
	if len(cls.URLTokens) != 0 {
		t.Errorf("URLTokens = %v, want empty", cls.URLTokens)
	}
}

func TestClassifyArticle(t *testing.T) {
	c := testClassifier(t)
	tests := []struct {
		query string
		code  string
	}{
		{"04152-YZZA1", "04152YZZA1"},
		{"0445120123", "0445120123"},
		{"W914/2", "W9142"},
		{"90915_10001", "9091510001"},
	}
	for _, tt := range tests {
		cls := c.Classify(tt.query)
		if cls.Kind != KindArticle {
			t.Errorf("Classify(%q).Kind = %q, want article", tt.query, cls.Kind)
			continue
		}
		if cls.NormalizedCode != tt.code {
			t.Errorf("Classify(%q).NormalizedCode = %q, want %q", tt.query, cls.NormalizedCode, tt.code)
		}
	}
}

func TestClassifyBrandOnly(t *testing.T) {
	c := testClassifier(t)
	cls := c.Classify("тойота")
	if cls.Kind != KindBrandOnly {
		t.Fatalf("Kind = %q, want brand_only", cls.Kind)
	}
	if !reflect.DeepEqual(cls.Brands, []string{"toyota"}) {
		t.Errorf("Brands = %v, want [toyota]", cls.Brands)
	}
	if len(cls.GenericTokens) != 0 {
		t.Errorf("GenericTokens = %v, want empty", cls.GenericTokens)
	}
	if got := cls.BrandOriginals["toyota"]; got != "тойота" {
		t.Errorf("BrandOriginals[toyota] = %q, want original surface token", got)
	}
}

func TestClassifyBrandWithGeneric(t *testing.T) {
	c := testClassifier(t)
	cls := c.Classify("фильтр масляный тойота")
	if cls.Kind != KindBrandWithGeneric {
		t.Fatalf("Kind = %q, want brand_with_generic", cls.Kind)
	}
	if !reflect.DeepEqual(cls.Brands, []string{"toyota"}) {
		t.Errorf("Brands = %v, want [toyota]", cls.Brands)
	}
	want := []string{"filtr", "maslyanyi"}
	if !reflect.DeepEqual(cls.GenericTokens, want) {
		t.Errorf("GenericTokens = %v, want %v", cls.GenericTokens, want)
	}
}

func TestClassifyGenericOnly(t *testing.T) {
	c := testClassifier(t)
	cls := c.Classify("прокладка клапанной крышки")
	if cls.Kind != KindGenericOnly {
		t.Fatalf("Kind = %q, want generic_only", cls.Kind)
	}
	if len(cls.Brands) != 0 {
		t.Errorf("Brands = %v, want empty", cls.Brands)
	}
}

func TestClassifyStopwordsDropped(t *testing.T) {
	c := testClassifier(t)
	cls := c.Classify("и для")
	if cls.Kind != KindUnknown {
		t.Fatalf("Kind = %q, want unknown", cls.Kind)
	}
	if len(cls.Brands) != 0 || len(cls.GenericTokens) != 0 {
		t.Errorf("expected all tokens dropped, got %+v", cls)
	}
}

func TestClassifyDigitRunIsGeneric(t *testing.T) {
	c := testClassifier(t)
	cls := c.Classify("тойота 90915 крышка")
	if cls.Kind != KindBrandWithGeneric {
		t.Fatalf("Kind = %q, want brand_with_generic", cls.Kind)
	}
	found := false
	for _, g := range cls.GenericTokens {
		if g == "90915" {
			found = true
		}
	}
	if !found {
		t.Errorf("GenericTokens = %v, want digit run kept as generic", cls.GenericTokens)
	}
}

func TestClassifyBrandMisspelling(t *testing.T) {
	c := testClassifier(t)
	for _, q := range []string{"тайота", "toyta", "бош"} {
		cls := c.Classify(q)
		if cls.Kind != KindBrandOnly {
			t.Errorf("Classify(%q).Kind = %q, want brand_only", q, cls.Kind)
		}
	}
}

func TestClassifyCompleteness(t *testing.T) {
	c := testClassifier(t)
	known := map[Kind]struct{}{
		KindURL: {}, KindArticle: {}, KindBrandOnly: {},
		KindBrandWithGeneric: {}, KindGenericOnly: {}, KindUnknown: {},
	}
	inputs := []string{
		"", "...", "https://x", "12-34", "bosch фильтр", "???", "ё", "a b c d",
	}
	for _, q := range inputs {
		cls := c.Classify(q)
		if _, ok := known[cls.Kind]; !ok {
			t.Errorf("Classify(%q) returned unexpected kind %q", q, cls.Kind)
		}
	}
}
