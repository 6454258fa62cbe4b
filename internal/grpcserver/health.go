package grpcserver

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type servingStatus = grpc_health_v1.HealthCheckResponse_ServingStatus

// HealthServer implements grpc.health.v1. The empty service name reports the
// process as a whole; named services are tracked individually and pushed to
// open Watch streams whenever they change.
type HealthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	mu       sync.RWMutex
	shutdown bool
	statuses map[string]servingStatus
	watchers map[string]map[chan servingStatus]struct{}
}

func NewHealthServer() *HealthServer {
	return &HealthServer{
		statuses: make(map[string]servingStatus),
		watchers: make(map[string]map[chan servingStatus]struct{}),
	}
}

func (h *HealthServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	st, ok := h.lookup(req.GetService())
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
	return &grpc_health_v1.HealthCheckResponse{Status: st}, nil
}

// Watch streams the status of one service: first its current value, then
// every change until the client goes away. Unknown services report
// SERVICE_UNKNOWN rather than failing the stream.
func (h *HealthServer) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	name := req.GetService()
	updates := make(chan servingStatus, 1)

	h.mu.Lock()
	if h.watchers[name] == nil {
		h.watchers[name] = make(map[chan servingStatus]struct{})
	}
	h.watchers[name][updates] = struct{}{}
	current, ok := h.lookup(name)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.watchers[name], updates)
		h.mu.Unlock()
	}()

	if !ok {
		current = grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN
	}
	last := current
	if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: current}); err != nil {
		return err
	}

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case st := <-updates:
			if st == last {
				continue
			}
			last = st
			if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: st}); err != nil {
				return err
			}
		}
	}
}

// SetServingStatus marks service as able to take requests.
func (h *HealthServer) SetServingStatus(service string) {
	h.setStatus(service, grpc_health_v1.HealthCheckResponse_SERVING)
}

// SetNotServingStatus marks service as unable to take requests, typically
// because a backend it depends on is down.
func (h *HealthServer) SetNotServingStatus(service string) {
	h.setStatus(service, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}

// Shutdown flips every service, including the overall one, to NOT_SERVING.
// Later Set calls are ignored.
func (h *HealthServer) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.shutdown = true
	for name := range h.statuses {
		h.statuses[name] = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	for name := range h.watchers {
		h.broadcast(name, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}
}

// Monitor runs check every interval and mirrors its outcome into the status
// of service until ctx is done.
func (h *HealthServer) Monitor(ctx context.Context, service string, interval time.Duration, check func(context.Context) error) {
	apply := func() {
		if err := check(ctx); err != nil {
			h.SetNotServingStatus(service)
			return
		}
		h.SetServingStatus(service)
	}

	apply()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			apply()
		}
	}
}

func (h *HealthServer) setStatus(service string, st servingStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.shutdown {
		return
	}
	h.statuses[service] = st
	h.broadcast(service, st)
}

// lookup must be called with h.mu held.
func (h *HealthServer) lookup(service string) (servingStatus, bool) {
	if service == "" {
		if h.shutdown {
			return grpc_health_v1.HealthCheckResponse_NOT_SERVING, true
		}
		return grpc_health_v1.HealthCheckResponse_SERVING, true
	}
	st, ok := h.statuses[service]
	return st, ok
}

// broadcast must be called with h.mu held. A watcher that has not read its
// previous update gets the newer value instead.
func (h *HealthServer) broadcast(service string, st servingStatus) {
	for ch := range h.watchers[service] {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}
