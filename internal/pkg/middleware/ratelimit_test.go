package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sweetshop/internal/pkg/cache"
	"sweetshop/internal/pkg/logger"
	"sweetshop/internal/pkg/middleware"
)

// memCache é um cache.Client em memória para os testes (sem TTL real).
type memCache struct {
	mu      sync.Mutex
	values  map[string]int
	failGet bool
}

func newMemCache() *memCache { return &memCache{values: map[string]int{}} }

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	n, err := m.GetInt(ctx, key)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

func (m *memCache) GetInt(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return 0, errors.New("redis fora do ar")
	}
	v, ok := m.values[key]
	if !ok {
		return 0, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(int)
	return nil
}

func (m *memCache) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
	return int64(m.values[key]), nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	mc := newMemCache()
	h := middleware.RateLimiter(mc, 3, time.Minute, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)
}

func TestRateLimiter_PerIP(t *testing.T) {
	mc := newMemCache()
	h := middleware.RateLimiter(mc, 1, time.Minute, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, addr)
	}
}

func TestRateLimiter_FailOpenWhenCacheDown(t *testing.T) {
	mc := newMemCache()
	mc.failGet = true
	h := middleware.RateLimiter(mc, 1, time.Minute, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
