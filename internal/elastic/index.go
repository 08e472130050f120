package elastic

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
)

// EnsureIndex creates the index from the mapping file when it does not
// exist yet. A concurrent create racing us is tolerated.
func EnsureIndex(ctx context.Context, es *elasticsearch.Client, index, mappingPath string) error {
	exists, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return apperrors.ElasticError("checking index existence", err)
	}
	defer exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	mapping, err := os.ReadFile(mappingPath)
	if err != nil {
		return apperrors.DataFileError("reading index mapping", err)
	}

	res, err := es.Indices.Create(index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(bytes.NewReader(mapping)),
	)
	if err != nil {
		return apperrors.ElasticError("creating index", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body := new(bytes.Buffer)
		body.ReadFrom(res.Body)
		if strings.Contains(body.String(), "resource_already_exists_exception") {
			return nil
		}
		return responseError("creating index", res.Status(), body)
	}
	return nil
}

// DropIndex deletes the index, ignoring a missing one.
func DropIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	res, err := es.Indices.Delete([]string{index},
		es.Indices.Delete.WithContext(ctx),
		es.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return apperrors.ElasticError("deleting index", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("deleting index", res.Status(), res.Body)
	}
	return nil
}

// Count returns the document count of the index. A missing index counts as
// zero.
func Count(ctx context.Context, es *elasticsearch.Client, index string) (int, error) {
	res, err := es.Count(
		es.Count.WithContext(ctx),
		es.Count.WithIndex(index),
	)
	if err != nil {
		return 0, apperrors.ElasticError("counting documents", err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return 0, nil
	}
	if res.IsError() {
		return 0, responseError("counting documents", res.Status(), res.Body)
	}

	var parsed struct {
		Count int `json:"count"`
	}
	if err := decodeBody(res.Body, &parsed); err != nil {
		return 0, apperrors.ElasticError("decoding count response", err)
	}
	return parsed.Count, nil
}

// IndexEmpty reports whether the index holds no documents.
func IndexEmpty(ctx context.Context, es *elasticsearch.Client, index string) (bool, error) {
	count, err := Count(ctx, es, index)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
