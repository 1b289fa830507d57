// Package watcher keeps the gRPC health status in line with store reachability.
package watcher

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/passworld/internal/logger"
)

// ServiceName is the health service name reported for the credential API.
const ServiceName = "passworld.Credentials"

const maxPingTimeout = 5 * time.Second

// Pinger reports store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher pings the store periodically and publishes the result.
type Watcher struct {
	pinger   Pinger
	health   *health.Server
	interval time.Duration
	logger   *logger.Logger
	last     healthpb.HealthCheckResponse_ServingStatus
}

func New(pinger Pinger, health *health.Server, interval time.Duration, logger *logger.Logger) *Watcher {
	return &Watcher{
		pinger:   pinger,
		health:   health,
		interval: interval,
		logger:   logger,
		last:     healthpb.HealthCheckResponse_UNKNOWN,
	}
}

// Run checks once immediately and then every interval until ctx is done.
// On return every service is reported NOT_SERVING.
func (w *Watcher) Run(ctx context.Context) {
	defer w.health.Shutdown()

	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	timeout := w.interval
	if timeout <= 0 || timeout > maxPingTimeout {
		timeout = maxPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	next := healthpb.HealthCheckResponse_SERVING
	if err := w.pinger.Ping(pingCtx); err != nil {
		next = healthpb.HealthCheckResponse_NOT_SERVING
		if w.last != next {
			w.logger.Warn("Health watcher: store unreachable", "error", err)
		}
	} else if w.last != next {
		w.logger.Info("Health watcher: store reachable")
	}

	w.health.SetServingStatus("", next)
	w.health.SetServingStatus(ServiceName, next)
	w.last = next
}
