package elastic

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
)

// Hit is one matched document.
type Hit struct {
	ID     string         `json:"_id"`
	Score  float64        `json:"_score"`
	Source map[string]any `json:"_source"`
}

// SearchResult is the decoded subset of an Elasticsearch search response.
type SearchResult struct {
	Took int
	Hits []Hit
}

// Search executes a raw query body against the index.
func Search(ctx context.Context, es *elasticsearch.Client, index string, body map[string]any) (*SearchResult, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.ElasticError("encoding search request", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(bytes.NewReader(encoded)),
	)
	if err != nil {
		return nil, apperrors.ElasticError("executing search", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("executing search", res.Status(), res.Body)
	}

	var parsed struct {
		Took int `json:"took"`
		Hits struct {
			Hits []Hit `json:"hits"`
		} `json:"hits"`
	}
	if err := decodeBody(res.Body, &parsed); err != nil {
		return nil, apperrors.ElasticError("decoding search response", err)
	}
	return &SearchResult{Took: parsed.Took, Hits: parsed.Hits.Hits}, nil
}
