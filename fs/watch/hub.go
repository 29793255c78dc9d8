package watch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/jmgilman/vfs/errors"
	"github.com/jmgilman/vfs/fs/core"
	"github.com/jmgilman/vfs/fs/vpath"
	"github.com/jmgilman/vfs/internal/logging"
)

// Config configures a Hub.
type Config struct {
	// Logger receives attach/detach records. Defaults to discarding them.
	Logger *slog.Logger
}

type streamKey struct {
	path    vpath.Path
	shallow bool
}

func keyFor(p vpath.Path, opts core.WatchOptions) streamKey {
	return streamKey{path: vpath.Normalize(string(p)), shallow: opts.Shallow}
}

// entry is one backend attachment. ready is closed once Attach returned;
// detacher and err are only read after that.
type entry struct {
	ready    chan struct{}
	detacher Detacher
	err      error
	subs     map[string]*subscription
}

// Hub shares backend watchers between subscribers, keyed by watched path.
type Hub struct {
	backend Backend
	logger  *logging.Logger

	mu      sync.Mutex
	entries map[streamKey]*entry
	closed  bool
}

// NewHub creates a hub that attaches watchers through backend.
func NewHub(backend Backend, cfg Config) *Hub {
	return &Hub{
		backend: backend,
		logger:  logging.New(cfg.Logger),
		entries: make(map[streamKey]*entry),
	}
}

// Stream returns the shared stream for p. Nothing is attached until the
// first Subscribe.
func (h *Hub) Stream(p vpath.Path, opts core.WatchOptions) core.WatchStream {
	return &stream{hub: h, key: keyFor(p, opts)}
}

// ActiveWatches returns the number of attached backend watchers, counting
// those still attaching.
func (h *Hub) ActiveWatches() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Subscribers returns the number of live subscriptions to p.
func (h *Hub) Subscribers(p vpath.Path, opts core.WatchOptions) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.entries[keyFor(p, opts)]
	if !ok {
		return 0
	}
	return len(e.subs)
}

// Close ends every subscription and detaches every backend watcher.
// Detach errors are collected rather than stopping the shutdown.
func (h *Hub) Close() error {
	h.mu.Lock()
	entries := h.entries
	h.entries = make(map[streamKey]*entry)
	h.closed = true
	subs := make(map[streamKey][]*subscription, len(entries))
	for key, e := range entries {
		for _, sub := range e.subs {
			subs[key] = append(subs[key], sub)
		}
	}
	h.mu.Unlock()

	var result *multierror.Error
	for key, e := range entries {
		for _, sub := range subs[key] {
			sub.stop()
		}
		<-e.ready
		if e.err != nil {
			continue
		}
		if err := e.detacher.Detach(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, errors.CodeIO, "detach watcher for %s", key.path))
		}
		h.logger.Debug(context.Background(), "watcher detached", "path", key.path.String(), "reason", "hub closed")
	}
	h.logger.Info(context.Background(), "watch hub closed", "watchers", len(entries))
	return result.ErrorOrNil()
}

// subscribe registers a subscription and, for the first subscriber of key,
// attaches the backend. Attach runs outside h.mu so a slow attach only
// holds up subscribers of the same key.
func (h *Hub) subscribe(ctx context.Context, key streamKey) (*subscription, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, errors.New(errors.CodeInternal, "watch hub is closed")
	}

	e, ok := h.entries[key]
	attach := !ok
	if attach {
		e = &entry{ready: make(chan struct{}), subs: make(map[string]*subscription)}
		h.entries[key] = e
	}
	sub := newSubscription(uuid.NewString(), h, key)
	e.subs[sub.id] = sub
	h.mu.Unlock()

	if attach {
		h.attach(ctx, key, e)
	}
	<-e.ready

	if e.err != nil {
		h.mu.Lock()
		delete(e.subs, sub.id)
		if len(e.subs) == 0 && h.entries[key] == e {
			delete(h.entries, key)
		}
		h.mu.Unlock()
		return nil, errors.WithContext(errors.Wrap(e.err, errors.CodeIO, "attach watcher"), "path", key.path.String())
	}

	h.logger.Debug(ctx, "watch subscribed", "path", key.path.String())
	go sub.run()
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				sub.Unsubscribe()
			case <-sub.done:
			}
		}()
	}
	return sub, nil
}

func (h *Hub) attach(ctx context.Context, key streamKey, e *entry) {
	defer close(e.ready)

	detacher, err := h.backend.Attach(key.path, core.WatchOptions{Shallow: key.shallow}, func(ev core.WatchEvent) {
		h.broadcast(key, e, ev)
	})
	e.detacher, e.err = detacher, err
	if err != nil {
		h.logger.Warn(ctx, "failed to attach watcher", "path", key.path.String(), "error", err.Error())
		return
	}
	h.logger.Debug(ctx, "watcher attached", "path", key.path.String(), "shallow", key.shallow)
}

func (h *Hub) release(key streamKey, id string) {
	h.mu.Lock()
	e, ok := h.entries[key]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(e.subs, id)
	remaining := len(e.subs)
	if remaining > 0 {
		h.mu.Unlock()
		h.logger.Debug(context.Background(), "watch unsubscribed", "path", key.path.String(), "subscribers", remaining)
		return
	}
	delete(h.entries, key)
	h.mu.Unlock()

	if err := e.detacher.Detach(); err != nil {
		h.logger.Warn(context.Background(), "failed to detach watcher", "path", key.path.String(), "error", err.Error())
		return
	}
	h.logger.Debug(context.Background(), "watcher detached", "path", key.path.String())
}

// broadcast delivers ev to the subscribers of e. Events from a replaced
// attachment of the same key are dropped.
func (h *Hub) broadcast(key streamKey, e *entry, ev core.WatchEvent) {
	h.mu.Lock()
	if h.entries[key] != e {
		h.mu.Unlock()
		return
	}
	subs := make([]*subscription, 0, len(e.subs))
	for _, sub := range e.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.push(ev)
	}
}

type stream struct {
	hub *Hub
	key streamKey
}

func (s *stream) Subscribe(ctx context.Context) (core.Subscription, error) {
	sub, err := s.hub.subscribe(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return sub, nil
}
