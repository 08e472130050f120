package brand

import (
	"errors"
	"reflect"
	"testing"

	"github.com/partsearch/parts-search/internal/pkg/logger"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	return BuildCatalog([]string{
		"BOSCH",
		"Тойота / Toyota",
		"LUKOIL",
		"MANN-FILTER",
		"Febi Bilstein",
	})
}

func TestResolveExact(t *testing.T) {
	c := testCatalog(t)
	tests := []struct {
		in   string
		want string
	}{
		{"bosch", "bosch"},
		{"BOSCH", "bosch"},
		{"Тойота", "toyota"},
		{"тайота", "toyota"},
		{"лукойл", "lukoil"},
	}
	for _, tt := range tests {
		got, ok := c.Resolve(tt.in)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v, want %q, true", tt.in, got, ok, tt.want)
		}
	}
}

func TestResolveFuzzy(t *testing.T) {
	c := testCatalog(t)
	tests := []struct {
		in   string
		want string
	}{
		{"бош", "bosch"},
		{"boshc", "bosch"},
		{"toyta", "toyota"},
		{"lukoiil", "lukoil"},
	}
	for _, tt := range tests {
		got, ok := c.Resolve(tt.in)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v, want %q, true", tt.in, got, ok, tt.want)
		}
	}
}

func TestResolveMiss(t *testing.T) {
	c := testCatalog(t)
	for _, in := range []string{"", "zf", "unknownmaker", "фильтр", "12345"} {
		if got, ok := c.Resolve(in); ok {
			t.Errorf("Resolve(%q) = %q, want miss", in, got)
		}
	}
}

func TestFuzzyGuards(t *testing.T) {
	c := testCatalog(t)

	// Shared first character is required.
	if got, ok := c.ResolveNormalized("osch"); ok {
		t.Errorf("ResolveNormalized(%q) = %q, want miss without first char match", "osch", got)
	}
	// Length difference above two disqualifies.
	if got, ok := c.ResolveNormalized("boschhhhh"); ok {
		t.Errorf("ResolveNormalized(%q) = %q, want miss on length gap", "boschhhhh", got)
	}
	// Tokens shorter than four characters never fuzzy match.
	if got, ok := c.ResolveNormalized("bos"); ok {
		t.Errorf("ResolveNormalized(%q) = %q, want miss on short token", "bos", got)
	}
}

func TestExtractBrands(t *testing.T) {
	c := testCatalog(t)
	tests := []struct {
		text string
		want []string
	}{
		{"Фильтр масляный Bosch", []string{"bosch"}},
		{"тойота bosch тойота", []string{"toyota", "bosch"}},
		{"прокладка клапанной крышки", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := c.ExtractBrands(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractBrands(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestProviderBuildsOnce(t *testing.T) {
	calls := 0
	p := NewProvider(func() ([]string, error) {
		calls++
		return []string{"BOSCH", "Тойота"}, nil
	}, logger.Default())

	if err := p.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if _, err := p.Catalog(); err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if id, ok := p.Resolve("bosch"); !ok || id != "bosch" {
		t.Errorf("Resolve(bosch) = %q, %v", id, ok)
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
}

func TestProviderFetchFailure(t *testing.T) {
	p := NewProvider(func() ([]string, error) {
		return nil, errors.New("file missing")
	}, logger.Default())

	if err := p.Init(); err == nil {
		t.Fatal("Init() expected error")
	}
	if id, ok := p.Resolve("bosch"); ok {
		t.Errorf("Resolve on failed catalog = %q, want miss", id)
	}
	if ids := p.BrandIDs(); len(ids) != 0 {
		t.Errorf("BrandIDs on failed catalog = %v, want empty", ids)
	}
}
