package realtime

import (
	"log/slog"
	"sync"

	"taskboard/internal/metrics"
)

// Registry tracks the live-update channels open against this process. The
// active set is shared by every request handler, so all access goes through
// the mutex; the raw set is never exposed.
//
// The registry is process-local by design: in a multi-instance deployment
// each instance fans out only to its own clients.
type Registry struct {
	mu     sync.Mutex
	active map[Channel]struct{}
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		active: make(map[Channel]struct{}),
		logger: log.With(slog.String("component", "realtime_registry")),
	}
}

// Register adds ch to the active set. Registering an already-present channel
// is a no-op (set semantics).
func (r *Registry) Register(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[ch]; ok {
		return
	}
	r.active[ch] = struct{}{}
	metrics.ActiveConnections.Set(float64(len(r.active)))
	r.logger.Debug("channel registered", slog.Int("active", len(r.active)))
}

// Unregister removes ch from the active set if present. Removing an absent
// channel is a no-op: disconnect handling may race with delivery-failure
// cleanup, and both paths call here.
func (r *Registry) Unregister(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[ch]; !ok {
		return
	}
	delete(r.active, ch)
	metrics.ActiveConnections.Set(float64(len(r.active)))
	r.logger.Debug("channel unregistered", slog.Int("active", len(r.active)))
}

// Len returns the current size of the active set.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Broadcast delivers data to every channel in a snapshot of the active set
// taken at call time. Channels registered mid-broadcast do not receive this
// event. A channel whose delivery fails is treated as dead: it is removed
// from the active set and closed, and delivery continues to the rest.
//
// Channel.Send never blocks, so Broadcast never stalls the calling mutation
// handler on a slow subscriber.
func (r *Registry) Broadcast(data []byte) {
	r.mu.Lock()
	snapshot := make([]Channel, 0, len(r.active))
	for ch := range r.active {
		snapshot = append(snapshot, ch)
	}
	r.mu.Unlock()

	metrics.BroadcastsTotal.Inc()

	for _, ch := range snapshot {
		if err := ch.Send(data); err != nil {
			metrics.DeliveryFailures.Inc()
			r.logger.Debug("dropping dead channel", slog.String("error", err.Error()))
			r.Unregister(ch)
			_ = ch.Close()
		}
	}
}

// CloseAll unregisters and closes every channel, for server shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	snapshot := make([]Channel, 0, len(r.active))
	for ch := range r.active {
		snapshot = append(snapshot, ch)
	}
	r.active = make(map[Channel]struct{})
	metrics.ActiveConnections.Set(0)
	r.mu.Unlock()

	for _, ch := range snapshot {
		_ = ch.Close()
	}
}
