package search

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapp/internal/config"
	"travelapp/internal/models"
)

type stubTransport struct {
	fn func(*http.Request) (*http.Response, error)
}

func (t *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.fn(req)
}

func esResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header: http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Elastic-Product": []string{"Elasticsearch"},
		},
	}
}

func newStubClient(t *testing.T, fn func(*http.Request) (*http.Response, error)) *ElasticsearchClient {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: &stubTransport{fn: fn},
	})
	require.NoError(t, err)
	return &ElasticsearchClient{
		client: es,
		config: config.SearchConfig{Index: "travel_options"},
	}
}

func TestDeleteTravelOption(t *testing.T) {
	t.Run("deletes document by option id", func(t *testing.T) {
		var gotMethod, gotPath string
		client := newStubClient(t, func(req *http.Request) (*http.Response, error) {
			gotMethod = req.Method
			gotPath = req.URL.Path
			return esResponse(http.StatusOK, `{"result":"deleted"}`), nil
		})

		err := client.DeleteTravelOption(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/travel_options/_doc/42", gotPath)
	})

	t.Run("missing document is not an error", func(t *testing.T) {
		client := newStubClient(t, func(*http.Request) (*http.Response, error) {
			return esResponse(http.StatusNotFound, `{"result":"not_found"}`), nil
		})

		assert.NoError(t, client.DeleteTravelOption(context.Background(), 42))
	})

	t.Run("server error is reported", func(t *testing.T) {
		client := newStubClient(t, func(*http.Request) (*http.Response, error) {
			return esResponse(http.StatusInternalServerError, `{"error":"boom"}`), nil
		})

		assert.Error(t, client.DeleteTravelOption(context.Background(), 42))
	})
}

func TestSearchIDs(t *testing.T) {
	var gotBody string
	client := newStubClient(t, func(req *http.Request) (*http.Response, error) {
		raw, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		gotBody = string(raw)
		return esResponse(http.StatusOK,
			`{"hits":{"hits":[{"_source":{"id":5}},{"_source":{"id":2}}]}}`), nil
	})

	ids, err := client.SearchIDs(context.Background(), &models.SearchTravelRequest{
		Source:      "Almaty",
		Destination: "Astana",
		SortBy:      "price",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 2}, ids)
	assert.Contains(t, gotBody, `"status":"ACTIVE"`)
	assert.Contains(t, gotBody, "Almaty")
	assert.Contains(t, gotBody, `"base_price":{"order":"asc"}`)
}
