package whatsapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/whatsapp"
	"github.com/xavierca1/vital-sales-pro/internal/phone"
)

func TestSendText(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/123/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	c := whatsapp.NewClient("token", "123", srv.URL, nil)
	require.NoError(t, c.SendText(context.Background(), "(85) 99999-1234", "Bom dia!"))

	assert.Equal(t, "5585999991234", got["to"])
	assert.Equal(t, "text", got["type"])
	assert.Equal(t, "Bom dia!", got["text"].(map[string]any)["body"])
}

func TestSendTextErrors(t *testing.T) {
	assert.ErrorIs(t, whatsapp.NewClient("", "", "", nil).SendText(context.Background(), "85 99999-1234", "oi"), whatsapp.ErrNotConfigured)

	c := whatsapp.NewClient("token", "123", "http://unused", nil)
	assert.ErrorIs(t, c.SendText(context.Background(), "Não informado", "oi"), phone.ErrInvalidPhone)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad","code":100}}`))
	}))
	defer srv.Close()
	assert.Error(t, whatsapp.NewClient("token", "123", srv.URL, nil).SendText(context.Background(), "85 99999-1234", "oi"))
}
