package etl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"golang.org/x/sync/errgroup"

	"github.com/partsearch/parts-search/internal/bus"
	"github.com/partsearch/parts-search/internal/config"
	"github.com/partsearch/parts-search/internal/datafile"
	"github.com/partsearch/parts-search/internal/elastic"
	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
	"github.com/partsearch/parts-search/internal/pkg/hash"
	"github.com/partsearch/parts-search/internal/pkg/logger"
)

const lfsPointerPrefix = "version https://git-lfs.github.com/spec/v1"

// Importer loads offers and bulk indexes prepared documents.
type Importer struct {
	es        *elasticsearch.Client
	index     string
	mapping   string
	offers    string
	offersURL string
	resolver  BrandResolver
	publisher bus.Publisher
	log       *logger.Logger
}

func NewImporter(es *elasticsearch.Client, cfg config.ElasticConfig, data config.DataConfig, resolver BrandResolver, publisher bus.Publisher, log *logger.Logger) *Importer {
	return &Importer{
		es:        es,
		index:     cfg.Index,
		mapping:   cfg.MappingPath,
		offers:    data.OffersPath,
		offersURL: data.OffersURL,
		resolver:  resolver,
		publisher: publisher,
		log:       log.WithComponent("importer"),
	}
}

// LoadOffers reads the offers file. A missing file or a Git LFS pointer
// left in place of the real data yields an empty set, not an error, so the
// service can still come up.
func (i *Importer) LoadOffers() ([]Offer, error) {
	path, err := datafile.Ensure(i.offers, i.offersURL)
	if err != nil {
		i.log.WithError(err).Warn("offers file unavailable")
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ImportError("reading offers file", err)
	}
	if strings.HasPrefix(string(data), lfsPointerPrefix) {
		i.log.Warn("offers file is a git-lfs pointer, real data not downloaded", "path", path)
		return nil, nil
	}

	var offers []Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, apperrors.ImportError("parsing offers file", err)
	}
	return offers, nil
}

// Import indexes every offer. Document preparation runs in parallel, then
// everything goes through one bulk indexer.
func (i *Importer) Import(ctx context.Context) (int, error) {
	offers, err := i.LoadOffers()
	if err != nil {
		return 0, err
	}
	if len(offers) == 0 {
		return 0, nil
	}

	i.publish(ctx, bus.TopicImportStarted, map[string]any{"offers": len(offers)})

	docs := make([]Document, len(offers))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for idx, offer := range offers {
		idx, offer := idx, offer
		g.Go(func() error {
			docs[idx] = PrepareDocument(offer, i.resolver)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, apperrors.ImportError("preparing documents", err)
	}

	indexed, err := i.bulkIndex(ctx, docs)
	if err != nil {
		return 0, err
	}

	i.publish(ctx, bus.TopicImportCompleted, map[string]any{"indexed": indexed})
	i.log.Info("import finished", "indexed", indexed)
	return indexed, nil
}

func (i *Importer) bulkIndex(ctx context.Context, docs []Document) (int, error) {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     i.es,
		Index:      i.index,
		NumWorkers: runtime.NumCPU(),
	})
	if err != nil {
		return 0, apperrors.ImportError("creating bulk indexer", err)
	}

	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return 0, apperrors.ImportError("encoding document", err)
		}
		item := esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(payload),
			OnFailure: func(_ context.Context, _ esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					i.log.WithError(err).Warn("document index failed")
				} else {
					i.log.Warn("document index rejected", "reason", res.Error.Reason)
				}
			},
		}
		if err := bi.Add(ctx, item); err != nil {
			_ = bi.Close(ctx)
			return 0, apperrors.ImportError("queueing document", err)
		}
	}
	if err := bi.Close(ctx); err != nil {
		return 0, apperrors.ImportError("flushing bulk indexer", err)
	}

	stats := bi.Stats()
	if stats.NumFailed > 0 {
		i.log.Warn("some documents failed to index", "failed", stats.NumFailed)
	}
	return int(stats.NumFlushed), nil
}

// ImportIfEmpty runs the import only when the index holds no documents.
func (i *Importer) ImportIfEmpty(ctx context.Context) (int, error) {
	empty, err := elastic.IndexEmpty(ctx, i.es, i.index)
	if err != nil {
		return 0, err
	}
	if !empty {
		return 0, nil
	}
	return i.Import(ctx)
}

// Reindex drops the index, recreates it from the mapping, and imports the
// offers from scratch.
func (i *Importer) Reindex(ctx context.Context) (int, error) {
	if err := elastic.DropIndex(ctx, i.es, i.index); err != nil {
		return 0, err
	}
	if err := elastic.EnsureIndex(ctx, i.es, i.index, i.mapping); err != nil {
		return 0, err
	}
	return i.Import(ctx)
}

func (i *Importer) publish(ctx context.Context, topic string, payload map[string]any) {
	if i.publisher == nil {
		return
	}
	event := bus.Event{
		ID:        hash.SHA256Short([]byte(fmt.Sprintf("%s:%d", topic, time.Now().UnixNano())), 16),
		Type:      topic,
		Source:    "importer",
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := i.publisher.Publish(ctx, topic, event); err != nil {
		i.log.WithError(err).Warn("import event publish failed", "topic", topic)
	}
}
