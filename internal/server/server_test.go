package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/partsearch/parts-search/internal/config"
	"github.com/partsearch/parts-search/internal/pkg/logger"
	"github.com/partsearch/parts-search/internal/search"
)

type stubSearcher struct {
	resp *search.Response
	err  error
}

func (s *stubSearcher) Search(_ context.Context, query string) (*search.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.resp
	resp.Query = query
	return &resp, nil
}

type stubReindexer struct {
	indexed int
	err     error
	calls   int
}

func (s *stubReindexer) Reindex(context.Context) (int, error) {
	s.calls++
	return s.indexed, s.err
}

type stubBrands struct{ ids []string }

func (s *stubBrands) BrandIDs() []string { return s.ids }

func fakeElastic(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return es
}

func testServer(t *testing.T, searcher Searcher, importer Reindexer, es *elasticsearch.Client) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Elastic.Index = "products"
	if searcher == nil {
		searcher = &stubSearcher{resp: &search.Response{Classification: "unknown"}}
	}
	if importer == nil {
		importer = &stubReindexer{}
	}
	brands := &stubBrands{ids: []string{"bosch", "toyota"}}
	return New(cfg, searcher, importer, brands, es, logger.Default())
}

func TestHandleSearch(t *testing.T) {
	searcher := &stubSearcher{resp: &search.Response{
		Classification: "brand_only",
		Results: []search.Result{
			{ID: "1", Manufacturer: "BOSCH", ProductCode: "W914/2", Title: "Фильтр", Score: 9.1},
		},
	}}
	srv := testServer(t, searcher, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=bosch", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp search.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Query != "bosch" {
		t.Errorf("Query = %q, want bosch", resp.Query)
	}
	if resp.Classification != "brand_only" {
		t.Errorf("Classification = %q", resp.Classification)
	}
	if len(resp.Results) != 1 || resp.Results[0].ProductCode != "W914/2" {
		t.Errorf("Results = %+v", resp.Results)
	}
}

func TestHandleSearchEmptyQuery(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSearchMethodNotAllowed(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search?q=bosch", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleSearchEngineError(t *testing.T) {
	srv := testServer(t, &stubSearcher{err: errors.New("cluster down")}, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=bosch", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	es := fakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/_count" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"count": 7}`))
	})
	srv := testServer(t, nil, nil, es)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["documents"] != float64(7) {
		t.Errorf("documents = %v, want 7", body["documents"])
	}
	if body["empty"] != false {
		t.Errorf("empty = %v, want false", body["empty"])
	}
}

func TestHandleHealthDegraded(t *testing.T) {
	es := fakeElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"internal","reason":"boom"}}`))
	})
	srv := testServer(t, nil, nil, es)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}
}

func TestHandleReindex(t *testing.T) {
	importer := &stubReindexer{indexed: 1500}
	srv := testServer(t, nil, importer, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reindex", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if importer.calls != 1 {
		t.Errorf("Reindex calls = %d, want 1", importer.calls)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["indexed"] != float64(1500) {
		t.Errorf("indexed = %v, want 1500", body["indexed"])
	}
}

func TestHandleReindexGetRejected(t *testing.T) {
	importer := &stubReindexer{}
	srv := testServer(t, nil, importer, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reindex", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if importer.calls != 0 {
		t.Errorf("Reindex calls = %d, want 0", importer.calls)
	}
}

func TestHandleBrands(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brands", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Brands []string `json:"brands"`
		Count  int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 || len(body.Brands) != 2 {
		t.Errorf("body = %+v", body)
	}
}

func TestHandleIndexPage(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHandleUnknownPath(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t, nil, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/search", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Allow-Origin = %q", origin)
	}
}

func TestRateLimitRejects(t *testing.T) {
	cfg := &config.Config{}
	cfg.Elastic.Index = "products"
	cfg.Security.RateLimit = 1
	srv := New(cfg,
		&stubSearcher{resp: &search.Response{}},
		&stubReindexer{}, &stubBrands{}, nil, logger.Default())
	handler := srv.Handler()

	var rejected bool
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/brands", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			rejected = true
			break
		}
	}
	if !rejected {
		t.Error("expected at least one rate limited response")
	}
}
