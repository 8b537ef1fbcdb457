package firecrawl_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/firecrawl"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

func TestSearch(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Bearer fc-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"url":"https://a.com","title":"A","description":"loja"}]}`))
	}))
	defer srv.Close()

	c := firecrawl.NewClient("fc-key", srv.URL, nil)
	resp, err := c.Search(context.Background(), "lojas em Fortaleza telefone contato", usecase.SearchOptions{Limit: 15, Lang: "pt", Country: "br"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "https://a.com", resp.Data[0].URL)
	assert.Equal(t, "lojas em Fortaleza telefone contato", body["query"])
	assert.EqualValues(t, 15, body["limit"])
	assert.Equal(t, "br", body["country"])
}

func TestSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"success":false,"error":"Insufficient credits"}`))
	}))
	defer srv.Close()

	_, err := firecrawl.NewClient("fc-key", srv.URL, nil).Search(context.Background(), "q", usecase.SearchOptions{Limit: 15})

	var se *usecase.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusPaymentRequired, se.StatusCode)
	assert.Equal(t, "Insufficient credits", se.Message)
}

func TestSearchWithoutAPIKey(t *testing.T) {
	_, err := firecrawl.NewClient("", "http://unused", nil).Search(context.Background(), "q", usecase.SearchOptions{})
	assert.True(t, usecase.IsServiceError(err))
}
