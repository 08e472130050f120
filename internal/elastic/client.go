// Package elastic wraps the Elasticsearch client with the index and search
// operations this service needs.
package elastic

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/partsearch/parts-search/internal/config"
	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
)

// NewClient builds a client for the configured cluster.
func NewClient(cfg config.ElasticConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
	})
	if err != nil {
		return nil, apperrors.ElasticError("creating elasticsearch client", err)
	}
	return client, nil
}

// decodeBody reads and unmarshals a response body into v.
func decodeBody(body io.Reader, v any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// responseError turns a non-2xx Elasticsearch response into an error with
// the reason extracted when present.
func responseError(operation, status string, body io.Reader) error {
	var parsed struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	_ = decodeBody(body, &parsed)
	if parsed.Error.Reason != "" {
		return apperrors.ElasticError(
			fmt.Sprintf("%s: %s (%s)", operation, parsed.Error.Reason, status), nil)
	}
	return apperrors.ElasticError(fmt.Sprintf("%s: %s", operation, status), nil)
}
