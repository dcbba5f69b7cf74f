package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	standerr "rfq-matcher/internal/common/errors"
	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/models"
)

// ElasticsearchSearcher scores requirement text against indexed product
// documents with a bounded query timeout.
type ElasticsearchSearcher struct {
	client  *elasticsearch.Client
	index   string
	limit   int
	timeout time.Duration
	logger  logger.Logger
}

func NewElasticsearchSearcher(client *elasticsearch.Client, index string, limit int, timeout time.Duration, log logger.Logger) *ElasticsearchSearcher {
	return &ElasticsearchSearcher{
		client:  client,
		index:   index,
		limit:   limit,
		timeout: timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "semantic-searcher"}),
	}
}

func (s *ElasticsearchSearcher) Similarities(ctx context.Context, spec *models.RequirementSpec, category string, productIDs []string) (map[string]float64, error) {
	queryText := strings.TrimSpace(spec.Title + " " + spec.Description)
	if queryText == "" || len(productIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(buildSimilarityQuery(queryText, category, productIDs))
	if err != nil {
		return nil, fmt.Errorf("marshal similarity query: %w", err)
	}

	size := s.limit
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, standerr.NewSimilarityTimeoutError(s.timeout.String())
		}
		return nil, standerr.NewSimilarityUnavailableError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, standerr.NewSimilarityUnavailableError(fmt.Errorf("search status %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, standerr.NewSimilarityUnavailableError(fmt.Errorf("decode search response: %w", err))
	}

	scores := make(map[string]float64, len(parsed.Hits.Hits))
	maxScore := parsed.Hits.MaxScore
	for _, hit := range parsed.Hits.Hits {
		if maxScore > 0 {
			scores[hit.ID] = hit.Score / maxScore
		}
	}

	s.logger.Debug("similarity search complete", map[string]interface{}{
		"category": category,
		"hits":     len(scores),
	})
	return scores, nil
}

func buildSimilarityQuery(queryText, category string, productIDs []string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  queryText,
							"fields": []string{"name^3", "description^2", "category"},
							"type":   "best_fields",
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"ids": map[string]interface{}{"values": productIDs},
					},
					map[string]interface{}{
						"term": map[string]interface{}{"category": models.NormalizeCategory(category)},
					},
				},
			},
		},
	}
}

type searchResponse struct {
	Hits struct {
		MaxScore float64 `json:"max_score"`
		Hits     []struct {
			ID    string  `json:"_id"`
			Score float64 `json:"_score"`
		} `json:"hits"`
	} `json:"hits"`
}
