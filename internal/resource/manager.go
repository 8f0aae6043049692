// Package resource keeps a local copy of one remote collection and the
// loading and error flags a screen renders from it.
//
// A Manager belongs to one screen. Its operations are serialized: a second
// call waits until the first has finished, so Loading and Err always describe
// the operation that ran last.
//
// Listeners are called after the operation has released the manager, so a
// listener may call back into it. States reach listeners in the order they
// were produced.
package resource

import (
	"context"
	"fmt"
	"slices"
	"sync"

	applog "spese-client/internal/log"
)

// ErrorMessage turns an error into the text stored in State.Err. An empty
// result selects the operation fallback from Messages.
type ErrorMessage func(error) string

// ErrorClassifier maps an error to a log ErrorType category, or "".
type ErrorClassifier func(error) string

// Config configures a Manager. Zero values select defaults.
type Config struct {
	Filter   string
	Messages Messages
	Message  ErrorMessage
	Classify ErrorClassifier
	Notifier Notifier
	Logger   *applog.Logger
}

// Manager owns the cached items of one collection.
type Manager[T Resource, C any] struct {
	svc      Service[T, C]
	messages Messages
	message  ErrorMessage
	classify ErrorClassifier
	notifier Notifier
	logger   *applog.Logger

	op sync.Mutex // held for the whole of an operation

	mu        sync.RWMutex
	state     State[T]
	listeners []func(State[T])
	pending   []State[T] // produced but not yet delivered
	flushing  bool
}

// NewManager creates a manager with an empty collection. Call Refetch to
// load it.
func NewManager[T Resource, C any](svc Service[T, C], cfg Config) *Manager[T, C] {
	m := &Manager[T, C]{
		svc:      svc,
		messages: cfg.Messages,
		message:  cfg.Message,
		classify: cfg.Classify,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		state:    State[T]{Items: []T{}, Filter: cfg.Filter},
	}
	if m.messages == (Messages{}) {
		m.messages = DefaultMessages("item", "items")
	}
	if m.message == nil {
		m.message = func(err error) string { return err.Error() }
	}
	if m.classify == nil {
		m.classify = func(error) string { return "" }
	}
	if m.notifier == nil {
		m.notifier = discardNotifier{}
	}
	if m.logger == nil {
		m.logger = applog.FromContext(context.Background())
	}
	m.logger = m.logger.WithComponent(applog.ComponentResource)
	return m
}

// Snapshot returns a copy of the current state.
func (m *Manager[T, C]) Snapshot() State[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// Subscribe registers fn to receive a copy of the state after every
// transition. Calls happen once the operation that produced the state has
// released the manager. The returned function removes fn.
func (m *Manager[T, C]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.listeners) {
			m.listeners[idx] = nil
		}
	}
}

// Refetch replaces the items with the server's list for the current filter.
// On failure the items are left as they were and Err is set.
func (m *Manager[T, C]) Refetch(ctx context.Context) error {
	defer m.flush()
	m.op.Lock()
	defer m.op.Unlock()
	return m.refetch(ctx)
}

// SetFilter changes the search filter and refetches.
func (m *Manager[T, C]) SetFilter(ctx context.Context, filter string) error {
	defer m.flush()
	m.op.Lock()
	defer m.op.Unlock()
	m.update(func(s *State[T]) { s.Filter = filter })
	return m.refetch(ctx)
}

func (m *Manager[T, C]) refetch(ctx context.Context) error {
	filter := m.begin()
	items, err := m.svc.List(ctx, filter)
	if err != nil {
		m.fail(ctx, applog.OpRefetch, "", err, m.messages.Fetch)
		return fmt.Errorf("list: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	m.update(func(s *State[T]) {
		s.Items = append([]T(nil), items...)
		s.Loading = false
	})
	m.logger.DebugContext(ctx, "collection refreshed",
		applog.NewFields().
			WithOperation(applog.OpRefetch).
			WithFilter(filter, len(items)).
			ToSlice()...)
	return nil
}

// Create asks the service to create a resource and appends the result. No
// item is added unless the service succeeds.
func (m *Manager[T, C]) Create(ctx context.Context, data C) (T, error) {
	defer m.flush()
	m.op.Lock()
	defer m.op.Unlock()

	m.begin()
	created, err := m.svc.Create(ctx, data)
	if err != nil {
		m.fail(ctx, applog.OpCreate, "", err, m.messages.Create)
		var zero T
		return zero, fmt.Errorf("create: %w", err)
	}
	m.update(func(s *State[T]) {
		s.Items = append(s.Items, created)
		s.Loading = false
	})
	m.logger.InfoContext(ctx, "resource created",
		applog.NewFields().WithOperation(applog.OpCreate).WithResource(created.ResourceID()).ToSlice()...)
	return created, nil
}

// Delete asks the service to delete id and then drops it locally. Nothing is
// removed unless the service succeeds.
func (m *Manager[T, C]) Delete(ctx context.Context, id string) error {
	defer m.flush()
	m.op.Lock()
	defer m.op.Unlock()

	m.begin()
	if err := m.svc.Delete(ctx, id); err != nil {
		m.fail(ctx, applog.OpDelete, id, err, m.messages.Delete)
		return fmt.Errorf("delete %s: %w", id, err)
	}
	m.update(func(s *State[T]) {
		kept := s.Items[:0:0]
		for _, it := range s.Items {
			if it.ResourceID() != id {
				kept = append(kept, it)
			}
		}
		s.Items = kept
		s.Loading = false
	})
	m.logger.InfoContext(ctx, "resource deleted",
		applog.NewFields().WithOperation(applog.OpDelete).WithResource(id).ToSlice()...)
	return nil
}

// GetOne fetches one resource and, if it is already cached, replaces the
// cached copy. A failure is reported through the Notifier and returned; Err
// is left empty.
func (m *Manager[T, C]) GetOne(ctx context.Context, id string) (T, error) {
	defer m.flush()
	m.op.Lock()
	defer m.op.Unlock()

	m.begin()
	got, err := m.svc.Get(ctx, id)
	if err != nil {
		m.update(func(s *State[T]) { s.Loading = false })
		text := m.message(err)
		m.notifier.Notify(Notice{Level: LevelError, Title: m.messages.FetchDetail, Text: text})
		m.logger.WarnContext(ctx, "resource fetch failed",
			applog.NewFields().
				WithOperation(applog.OpRead).
				WithResource(id).
				WithError(err).
				WithErrorType(m.classify(err)).
				ToSlice()...)
		var zero T
		return zero, fmt.Errorf("get %s: %w", id, err)
	}
	m.update(func(s *State[T]) {
		for i, it := range s.Items {
			if it.ResourceID() == id {
				s.Items[i] = got
			}
		}
		s.Loading = false
	})
	return got, nil
}

// begin clears Err, raises Loading and returns the active filter.
func (m *Manager[T, C]) begin() string {
	var filter string
	m.update(func(s *State[T]) {
		s.Loading = true
		s.Err = ""
		filter = s.Filter
	})
	return filter
}

func (m *Manager[T, C]) fail(ctx context.Context, op, id string, err error, fallback string) {
	text := m.message(err)
	if text == "" {
		text = fallback
	}
	m.update(func(s *State[T]) {
		s.Err = text
		s.Loading = false
	})
	m.logger.WarnContext(ctx, "resource operation failed",
		applog.NewFields().
			WithOperation(op).
			WithResource(id).
			WithError(err).
			WithErrorType(m.classify(err)).
			ToSlice()...)
}

// update applies fn under the state lock and queues a copy for the
// listeners. Items are copied on write so snapshots never alias.
func (m *Manager[T, C]) update(fn func(*State[T])) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.state.clone()
	fn(&next)
	m.state = next
	if len(m.listeners) > 0 {
		m.pending = append(m.pending, next)
	}
}

// flush delivers queued states. It runs after op is released. A flush that
// finds another one in progress returns at once; the running one keeps
// draining until the queue is empty, which keeps delivery in order and lets
// a listener call back into the manager.
func (m *Manager[T, C]) flush() {
	m.mu.Lock()
	if m.flushing {
		m.mu.Unlock()
		return
	}
	m.flushing = true

	for len(m.pending) > 0 {
		batch := m.pending
		m.pending = nil
		listeners := slices.Clone(m.listeners)
		m.mu.Unlock()

		for _, s := range batch {
			for _, l := range listeners {
				if l != nil {
					l(s.clone())
				}
			}
		}
		m.mu.Lock()
	}
	m.flushing = false
	m.mu.Unlock()
}
