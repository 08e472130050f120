package brand

import (
	"sync"

	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
	"github.com/partsearch/parts-search/internal/pkg/logger"
)

// Provider builds the brand catalog exactly once from a line source and
// serves it to concurrent callers. Accessors trigger the build lazily; a
// failed build leaves an empty catalog in place so lookups stay total.
type Provider struct {
	fetch func() ([]string, error)
	log   *logger.Logger

	once    sync.Once
	catalog *Catalog
	err     error
}

// NewProvider creates a provider over a manufacturer line source.
func NewProvider(fetch func() ([]string, error), log *logger.Logger) *Provider {
	return &Provider{
		fetch: fetch,
		log:   log.WithComponent("brand-catalog"),
	}
}

func (p *Provider) build() {
	lines, err := p.fetch()
	if err != nil {
		p.catalog = BuildCatalog(nil)
		p.err = apperrors.CatalogError("loading manufacturer lines", err)
		p.log.WithError(err).Error("brand catalog build failed")
		return
	}
	p.catalog = BuildCatalog(lines)
	p.log.Info("brand catalog built",
		"brands", p.catalog.Len(),
		"tokens", p.catalog.TokenCount(),
	)
}

// Init forces the build and reports its outcome. Safe to call more than
// once; only the first call does work.
func (p *Provider) Init() error {
	p.once.Do(p.build)
	return p.err
}

// Catalog returns the built catalog, building it on first use.
func (p *Provider) Catalog() (*Catalog, error) {
	p.once.Do(p.build)
	return p.catalog, p.err
}

// Resolve maps a raw token to a canonical brand id. Returns a miss when the
// catalog failed to build.
func (p *Provider) Resolve(raw string) (string, bool) {
	p.once.Do(p.build)
	return p.catalog.Resolve(raw)
}

// ExtractBrands returns the distinct brand ids detected in free text.
func (p *Provider) ExtractBrands(text string) []string {
	p.once.Do(p.build)
	return p.catalog.ExtractBrands(text)
}

// BrandIDs returns the sorted canonical brand identifiers.
func (p *Provider) BrandIDs() []string {
	p.once.Do(p.build)
	return p.catalog.BrandIDs()
}

// Synonyms returns the token to brand-id mapping.
func (p *Provider) Synonyms() map[string]string {
	p.once.Do(p.build)
	return p.catalog.Synonyms()
}
