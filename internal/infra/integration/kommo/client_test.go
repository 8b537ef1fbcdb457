package kommo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/infra/integration/kommo"
)

func TestInputFromLeadNormalizesPhone(t *testing.T) {
	in := kommo.InputFromLead(entity.Lead{
		Name: "João Silva", Phone: "85 99999-1234", Interest: "Kits",
		Status: entity.StatusHot, Source: entity.SourceManual, Score: 85,
	})
	assert.Equal(t, "+5585999991234", in.Phone)
	assert.Equal(t, "hot", in.Status)

	in = kommo.InputFromLead(entity.Lead{Name: "Loja", Phone: "Não informado"})
	assert.Equal(t, "Não informado", in.Phone)
}

func TestCreateLeadReusesExistingContact(t *testing.T) {
	var leadPayload []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/contacts":
			assert.Equal(t, "+5585999991234", r.URL.Query().Get("query"))
			_, _ = w.Write([]byte(`{"_embedded":{"contacts":[{"id":77}]}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/leads":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&leadPayload))
			_, _ = w.Write([]byte(`{"_embedded":{"leads":[{"id":501}]}}`))
		default:
			t.Errorf("chamada inesperada: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := kommo.NewClient("tok", srv.URL, 42, nil)
	id, err := c.CreateLead(context.Background(), kommo.CreateLeadInput{
		Name: "João Silva", Phone: "+5585999991234", Interest: "Kits", Status: "hot", Source: "manual",
	})
	require.NoError(t, err)
	assert.Equal(t, 501, id)

	require.Len(t, leadPayload, 1)
	assert.Equal(t, "João Silva - Kits", leadPayload[0]["name"])
	assert.EqualValues(t, 42, leadPayload[0]["status_id"])
}

func TestCreateLeadCreatesContactWhenMissing(t *testing.T) {
	created := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/contacts":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/contacts":
			created = true
			_, _ = w.Write([]byte(`{"_embedded":{"contacts":[{"id":9}]}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/leads":
			_, _ = w.Write([]byte(`{"_embedded":{"leads":[{"id":10}]}}`))
		}
	}))
	defer srv.Close()

	id, err := kommo.NewClient("tok", srv.URL, 0, nil).CreateLead(context.Background(), kommo.CreateLeadInput{Name: "Loja", Phone: "+5585999991234"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 10, id)
}

func TestCreateLeadNotConfigured(t *testing.T) {
	_, err := kommo.NewClient("", "", 0, nil).CreateLead(context.Background(), kommo.CreateLeadInput{})
	assert.ErrorIs(t, err, kommo.ErrNotConfigured)
}

func TestSyncLeadPostsLead(t *testing.T) {
	posted := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/contacts":
			_, _ = w.Write([]byte(`{"_embedded":{"contacts":[{"id":9}]}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/leads":
			posted++
			_, _ = w.Write([]byte(`{"_embedded":{"leads":[{"id":10}]}}`))
		}
	}))
	defer srv.Close()

	c := kommo.NewClient("tok", srv.URL, 0, nil)
	err := c.SyncLead(context.Background(), entity.Lead{Name: "Ana", Phone: "85 99999-1234", Status: entity.StatusWarm, Source: entity.SourceManual})
	require.NoError(t, err)
	assert.Equal(t, 1, posted)
}
