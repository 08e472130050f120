package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/partsearch/parts-search/internal/bus"
	"github.com/partsearch/parts-search/internal/cache"
	"github.com/partsearch/parts-search/internal/classify"
	"github.com/partsearch/parts-search/internal/elastic"
	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
	"github.com/partsearch/parts-search/internal/pkg/hash"
	"github.com/partsearch/parts-search/internal/pkg/logger"
)

// Engine executes a prepared query body against the product index.
type Engine interface {
	Search(ctx context.Context, body map[string]any) (*elastic.SearchResult, error)
}

// ElasticEngine runs queries against a live cluster.
type ElasticEngine struct {
	es    *elasticsearch.Client
	index string
}

func NewElasticEngine(es *elasticsearch.Client, index string) *ElasticEngine {
	return &ElasticEngine{es: es, index: index}
}

func (e *ElasticEngine) Search(ctx context.Context, body map[string]any) (*elastic.SearchResult, error) {
	return elastic.Search(ctx, e.es, e.index, body)
}

// Result is one product in a search response.
type Result struct {
	ID           string  `json:"id"`
	Manufacturer string  `json:"manufacturer"`
	ProductCode  string  `json:"product_code"`
	Title        string  `json:"title"`
	Score        float64 `json:"score"`
}

// Response is the shaped search response served to clients.
type Response struct {
	Query          string   `json:"query"`
	Classification string   `json:"classification"`
	Results        []Result `json:"results"`
	TookMs         float64  `json:"took_ms"`
}

// Service classifies queries, runs them through the engine, and caches the
// shaped responses.
type Service struct {
	engine     Engine
	classifier *classify.Classifier
	cache      cache.Cache
	publisher  bus.Publisher
	log        *logger.Logger
	size       int
	ttl        time.Duration
}

func NewService(engine Engine, classifier *classify.Classifier, c cache.Cache, publisher bus.Publisher, log *logger.Logger, resultSize, cacheTTLSeconds int) *Service {
	return &Service{
		engine:     engine,
		classifier: classifier,
		cache:      c,
		publisher:  publisher,
		log:        log.WithComponent("search"),
		size:       resultSize,
		ttl:        time.Duration(cacheTTLSeconds) * time.Second,
	}
}

// Search serves one query. Cached responses are returned as-is; otherwise
// the query is classified, built, executed and the response cached.
func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	cacheKey := hash.QueryKey("search", query)
	if data, ok := s.cache.Get(ctx, cacheKey); ok {
		var cached Response
		if err := json.Unmarshal(data, &cached); err == nil {
			s.log.WithQuery(query).Debug("cache hit")
			return &cached, nil
		}
	}

	cls := s.classifier.Classify(query)
	body := BuildQuery(query, cls, s.size)

	start := time.Now()
	result, err := s.engine.Search(ctx, body)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	response := &Response{
		Query:          query,
		Classification: string(cls.Kind),
		Results:        shapeResults(result.Hits),
		TookMs:         float64(elapsed.Microseconds()) / 1000,
	}

	if data, err := json.Marshal(response); err == nil {
		s.cache.Set(ctx, cacheKey, data, s.ttl)
	}
	s.publishSearchEvent(ctx, query, cls, len(response.Results))

	s.log.WithQuery(query).Info("search served",
		"kind", cls.Kind,
		"hits", len(response.Results),
		"took_ms", response.TookMs,
	)
	return response, nil
}

func shapeResults(hits []elastic.Hit) []Result {
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		r := Result{Score: hit.Score}
		if id, ok := hit.Source["id"].(string); ok && id != "" {
			r.ID = id
		} else {
			r.ID = hit.ID
		}
		r.Manufacturer, _ = hit.Source["manufacturer"].(string)
		r.ProductCode, _ = hit.Source["product_code"].(string)
		r.Title, _ = hit.Source["title"].(string)
		results = append(results, r)
	}
	return results
}

func (s *Service) publishSearchEvent(ctx context.Context, query string, cls classify.Classification, hits int) {
	if s.publisher == nil {
		return
	}
	event := bus.Event{
		ID:        hash.SHA256Short([]byte(fmt.Sprintf("%s:%d", query, time.Now().UnixNano())), 16),
		Type:      bus.TopicSearchPerformed,
		Source:    "search-service",
		Timestamp: time.Now().UTC(),
		Payload: map[string]any{
			"query": query,
			"kind":  string(cls.Kind),
			"hits":  hits,
		},
	}
	if err := s.publisher.Publish(ctx, bus.TopicSearchPerformed, event); err != nil {
		s.log.WithError(err).Warn("search event publish failed")
	}
}

// Validate rejects queries the service will not run.
func Validate(query string) error {
	if len(query) == 0 {
		return apperrors.ValidationError("query must not be empty")
	}
	if len(query) > 512 {
		return apperrors.ValidationError("query too long")
	}
	return nil
}
