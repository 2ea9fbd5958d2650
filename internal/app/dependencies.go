package app

import (
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Dependencies enumerates core services shared across modules to make wiring explicit.
type Dependencies struct {
	Redis           *redis.Client
	Validator       *validator.Validate
	Limiter         *limiter.Limiter
	LimiterStore    limiter.Store
	MetricsRegistry *prometheus.Registry
	TracerProvider  trace.TracerProvider
}

// NewValidator builds the request validator shared by all handlers.
func NewValidator() *validator.Validate {
	return validator.New()
}

// NewLimiter wires a rate limiter. It uses Redis when a client is available
// so limits hold across replicas, and falls back to an in-memory store for
// single-instance and test deployments.
func NewLimiter(rdb *redis.Client, rate limiter.Rate) (*limiter.Limiter, limiter.Store, error) {
	if rdb == nil {
		store := limitermem.NewStore()
		return limiter.New(store, rate), store, nil
	}
	store, err := limiterredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix: "pricing:ratelimit",
	})
	if err != nil {
		return nil, nil, err
	}
	return limiter.New(store, rate), store, nil
}

// Tracer returns the default OpenTelemetry tracer for instrumentation hooks.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
