package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"travelapp/internal/config"
	"travelapp/internal/models"
)

// ElasticsearchClient представляет клиент для полнотекстового поиска поездок.
// Индекс хранит только поля для фильтрации; источником данных остаётся
// PostgreSQL, поиск возвращает ID для дальнейшей гидрации из базы.
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config config.SearchConfig
}

// NewElasticsearchClient создает новый клиент Elasticsearch
func NewElasticsearchClient(cfg config.SearchConfig) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     cfg.Addresses,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{
		client: es,
		config: cfg,
	}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

// ensureIndex создает индекс если он не существует
func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":          map[string]interface{}{"type": "long"},
				"travel_id":   map[string]interface{}{"type": "keyword"},
				"travel_type": map[string]interface{}{"type": "keyword"},
				"operator_name": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256},
					},
				},
				"source": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256},
					},
				},
				"destination": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256},
					},
				},
				"source_code":      map[string]interface{}{"type": "keyword"},
				"destination_code": map[string]interface{}{"type": "keyword"},
				"departure_datetime": map[string]interface{}{
					"type":   "date",
					"format": "strict_date_optional_time||epoch_millis",
				},
				"base_price":      map[string]interface{}{"type": "long"},
				"available_seats": map[string]interface{}{"type": "integer"},
				"status":          map[string]interface{}{"type": "keyword"},
			},
		},
	}

	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  strings.NewReader(string(mappingJSON)),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

// IndexTravelOption индексирует вариант поездки
func (c *ElasticsearchClient) IndexTravelOption(ctx context.Context, opt *models.TravelOption) error {
	doc := map[string]interface{}{
		"id":                 opt.ID,
		"travel_id":          opt.TravelID,
		"travel_type":        opt.TravelType,
		"operator_name":      opt.OperatorName,
		"source":             opt.Source,
		"destination":        opt.Destination,
		"source_code":        opt.SourceCode,
		"destination_code":   opt.DestinationCode,
		"departure_datetime": opt.DepartureAt,
		"base_price":         opt.BasePrice,
		"available_seats":    opt.AvailableSeats,
		"status":             opt.Status,
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: strconv.FormatInt(opt.ID, 10),
		Body:       strings.NewReader(string(docJSON)),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index document: %s", res.String())
	}

	return nil
}

// DeleteTravelOption удаляет вариант поездки из индекса
func (c *ElasticsearchClient) DeleteTravelOption(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: strconv.FormatInt(id, 10),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("failed to delete document: %s", res.String())
	}

	return nil
}

// SearchIDs выполняет поиск и возвращает ID найденных вариантов поездок
func (c *ElasticsearchClient) SearchIDs(ctx context.Context, req *models.SearchTravelRequest) ([]int64, error) {
	from := 0
	if req.Page > 0 && req.PageSize > 0 {
		from = (req.Page - 1) * req.PageSize
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	searchRequest := map[string]interface{}{
		"query":   c.buildSearchQuery(req),
		"sort":    c.buildSortQuery(req.SortBy),
		"from":    from,
		"size":    pageSize,
		"_source": []string{"id"},
	}

	searchJSON, err := json.Marshal(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	esReq := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  strings.NewReader(string(searchJSON)),
	}

	res, err := esReq.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]int64, len(response.Hits.Hits))
	for i, hit := range response.Hits.Hits {
		ids[i] = hit.Source.ID
	}

	return ids, nil
}

// buildSearchQuery строит поисковый запрос
func (c *ElasticsearchClient) buildSearchQuery(req *models.SearchTravelRequest) map[string]interface{} {
	mustQueries := []map[string]interface{}{
		{"term": map[string]interface{}{"status": models.TravelStatusActive}},
	}

	if req.Source != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     req.Source,
				"fields":    []string{"source^2", "source_code"},
				"fuzziness": "AUTO",
			},
		})
	}

	if req.Destination != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     req.Destination,
				"fields":    []string{"destination^2", "destination_code"},
				"fuzziness": "AUTO",
			},
		})
	}

	if req.DepartureDate != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"range": map[string]interface{}{
				"departure_datetime": map[string]interface{}{
					"gte": req.DepartureDate + "T00:00:00",
					"lte": req.DepartureDate + "T23:59:59",
				},
			},
		})
	}

	if req.TravelType != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"term": map[string]interface{}{"travel_type": req.TravelType},
		})
	}

	if req.MinPrice > 0 || req.MaxPrice > 0 {
		priceRange := map[string]interface{}{}
		if req.MinPrice > 0 {
			priceRange["gte"] = req.MinPrice
		}
		if req.MaxPrice > 0 {
			priceRange["lte"] = req.MaxPrice
		}
		mustQueries = append(mustQueries, map[string]interface{}{
			"range": map[string]interface{}{"base_price": priceRange},
		})
	}

	if req.MinSeats > 0 {
		mustQueries = append(mustQueries, map[string]interface{}{
			"range": map[string]interface{}{
				"available_seats": map[string]interface{}{"gte": req.MinSeats},
			},
		})
	}

	return map[string]interface{}{
		"bool": map[string]interface{}{
			"must": mustQueries,
		},
	}
}

// buildSortQuery строит сортировку
func (c *ElasticsearchClient) buildSortQuery(sortBy string) []map[string]interface{} {
	switch sortBy {
	case "price":
		return []map[string]interface{}{
			{"base_price": map[string]interface{}{"order": "asc"}},
		}
	case "-price":
		return []map[string]interface{}{
			{"base_price": map[string]interface{}{"order": "desc"}},
		}
	case "-seats":
		return []map[string]interface{}{
			{"available_seats": map[string]interface{}{"order": "desc"}},
		}
	default:
		return []map[string]interface{}{
			{"departure_datetime": map[string]interface{}{"order": "asc"}},
		}
	}
}
