package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady flips the global readiness gate. Shutdown hooks set it to false
// so load balancers drain the instance before connections are closed.
func SetReady(v bool) {
	ready.Store(v)
}

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingCache(ctx context.Context, timeout time.Duration) error
	PingCatalog(ctx context.Context) error
}

// ErrCacheDisabled marks a deployment running without Redis. The cache is an
// optional dependency, so readiness treats it as healthy.
var ErrCacheDisabled = errors.New("cache disabled")

// RedisChecker probes the Redis cache and an in-process catalog source.
type RedisChecker struct {
	Redis   *redis.Client
	Catalog interface {
		SKUs() []string
	}
}

// PingCache implements Checker.
func (c RedisChecker) PingCache(ctx context.Context, timeout time.Duration) error {
	if c.Redis == nil {
		return ErrCacheDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Redis.Ping(ctx).Err()
}

// PingCatalog implements Checker. The catalog is in-process, so the only
// failure mode is an empty table set.
func (c RedisChecker) PingCatalog(context.Context) error {
	if c.Catalog == nil {
		return errors.New("catalog not configured")
	}
	if len(c.Catalog.SKUs()) == 0 {
		return errors.New("catalog has no pricing tables")
	}
	return nil
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker      Checker
	CacheTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes. A disabled cache does
// not fail readiness; quotes are served from the static catalog regardless.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !ready.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()
	catalogStatus := "ok"
	if err := h.Checker.PingCatalog(ctx); err != nil {
		catalogStatus = err.Error()
	}
	cacheStatus := "ok"
	if err := h.Checker.PingCache(ctx, h.cacheTimeout()); err != nil {
		if errors.Is(err, ErrCacheDisabled) {
			cacheStatus = "disabled"
		} else {
			cacheStatus = err.Error()
		}
	}
	status := map[string]string{
		"catalog": catalogStatus,
		"cache":   cacheStatus,
	}
	w.Header().Set("Content-Type", "application/json")
	if catalogStatus != "ok" || (cacheStatus != "ok" && cacheStatus != "disabled") {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) cacheTimeout() time.Duration {
	if h.CacheTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.CacheTimeout
}
