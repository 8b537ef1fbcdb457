package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/vital-sales-pro/internal/infra/metrics"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

const searchKeyPrefix = "search:"

// SearchCache serves repeated prospecting searches from Redis. Only
// successful responses are stored, and a Redis failure falls through to the
// search service.
type SearchCache struct {
	Next   usecase.SearchClient
	Cache  *Client
	TTL    time.Duration
	Logger *slog.Logger
}

func NewSearchCache(next usecase.SearchClient, cache *Client, ttl time.Duration, logger *slog.Logger) *SearchCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchCache{Next: next, Cache: cache, TTL: ttl, Logger: logger}
}

func (c *SearchCache) Search(ctx context.Context, query string, opts usecase.SearchOptions) (*usecase.SearchResponse, error) {
	key := SearchKey(query, opts)

	raw, err := c.Cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached usecase.SearchResponse
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			metrics.RecordSearchCache("hit")
			c.Logger.Debug("busca servida do cache", "query", query)
			return &cached, nil
		}
		c.Logger.Warn("entrada de cache corrompida, ignorando", "key", key)
	case errors.Is(err, redis.Nil):
		metrics.RecordSearchCache("miss")
	default:
		metrics.RecordSearchCache("error")
		c.Logger.Warn("falha ao ler cache de busca", "error", err)
	}

	resp, err := c.Next.Search(ctx, query, opts)
	if err != nil || resp == nil || !resp.Success {
		return resp, err
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return resp, nil
	}
	if err := c.Cache.Set(ctx, key, payload, c.TTL); err != nil {
		metrics.RecordSearchCache("error")
		c.Logger.Warn("falha ao gravar cache de busca", "error", err)
	}
	return resp, nil
}

// SearchKey is the cache key of one query with its options. The query is
// normalized so casing and extra spaces hit the same entry.
func SearchKey(query string, opts usecase.SearchOptions) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s|%s", normalized, opts.Limit, opts.Lang, opts.Country)))
	return searchKeyPrefix + hex.EncodeToString(sum[:])
}
