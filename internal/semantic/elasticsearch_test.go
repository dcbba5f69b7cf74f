package semantic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	standerr "rfq-matcher/internal/common/errors"
	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/models"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc, timeout time.Duration) (*ElasticsearchSearcher, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{srv.URL},
	})
	require.NoError(t, err)

	return NewElasticsearchSearcher(client, "products", 10, timeout, logger.NewTestLogger(t)), srv
}

func searchSpec() *models.RequirementSpec {
	return &models.RequirementSpec{
		Title:       "Office laptops",
		Description: "mid-range business laptops",
		Categories:  []string{"Laptops"},
	}
}

func TestSimilaritiesNormalizedByTopHit(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": {
				"max_score": 4.0,
				"hits": [
					{"_id": "prod-1", "_score": 4.0},
					{"_id": "prod-2", "_score": 2.0}
				]
			}
		}`))
	}, time.Second)

	scores, err := searcher.Similarities(context.Background(), searchSpec(), "Laptops", []string{"prod-1", "prod-2"})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, scores["prod-1"], 1e-9)
	assert.InDelta(t, 0.5, scores["prod-2"], 1e-9)
}

func TestSimilaritiesEmptyInputsSkipSearch(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, time.Second)

	scores, err := searcher.Similarities(context.Background(), searchSpec(), "Laptops", nil)
	require.NoError(t, err)
	assert.Nil(t, scores)

	scores, err = searcher.Similarities(context.Background(), &models.RequirementSpec{}, "Laptops", []string{"prod-1"})
	require.NoError(t, err)
	assert.Nil(t, scores)
}

func TestSimilaritiesErrorStatusReportedAsUnavailable(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "boom"}`))
	}, time.Second)

	_, err := searcher.Similarities(context.Background(), searchSpec(), "Laptops", []string{"prod-1"})
	require.Error(t, err)
	assert.True(t, standerr.IsCode(err, standerr.ErrCodeSimilarityUnavailable))
}

func TestSimilaritiesTimeout(t *testing.T) {
	searcher, _ := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Write([]byte(`{"hits": {"max_score": 0, "hits": []}}`))
	}, 20*time.Millisecond)

	_, err := searcher.Similarities(context.Background(), searchSpec(), "Laptops", []string{"prod-1"})
	require.Error(t, err)
	assert.True(t, standerr.IsCode(err, standerr.ErrCodeSimilarityTimeout))
}
