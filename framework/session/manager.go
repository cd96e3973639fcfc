// Package session keeps per-visitor values in memory, keyed by a random id
// carried in a cookie. Nothing is persisted: a value lives until it has been
// idle for longer than the configured timeout or is deleted.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an id has no live session.
var ErrNotFound = errors.New("session: not found")

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Manager maps session ids to values of type T.
type Manager[T any] struct {
	mu       sync.RWMutex
	sessions map[string]*entry[T]

	newValue    func() T
	idleTimeout time.Duration
	now         func() time.Time
	logger      *slog.Logger

	onEvict func(id string, value T)
	onCount func(n int)
}

// Option configures a Manager.
type Option[T any] func(*Manager[T])

// WithClock replaces time.Now, for tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(m *Manager[T]) { m.now = now }
}

// WithLogger sets the logger used for sweep reports.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(m *Manager[T]) { m.logger = logger }
}

// OnEvict registers a callback run for every session removed by Sweep or
// Delete, outside the manager's lock.
func OnEvict[T any](fn func(id string, value T)) Option[T] {
	return func(m *Manager[T]) { m.onEvict = fn }
}

// OnCount registers a callback run with the session count after it changes.
func OnCount[T any](fn func(n int)) Option[T] {
	return func(m *Manager[T]) { m.onCount = fn }
}

// NewManager creates a Manager that builds new values with newValue.
func NewManager[T any](newValue func() T, idleTimeout time.Duration, opts ...Option[T]) *Manager[T] {
	m := &Manager[T]{
		sessions:    make(map[string]*entry[T]),
		newValue:    newValue,
		idleTimeout: idleTimeout,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the value for id and refreshes its idle timer.
func (m *Manager[T]) Get(id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.value, nil
}

// GetOrCreate returns the value for id, creating a new session under a
// fresh id when id is empty or unknown. The returned id is the one to hand
// back to the client.
func (m *Manager[T]) GetOrCreate(id string) (string, T, bool) {
	if id != "" {
		if v, err := m.Get(id); err == nil {
			return id, v, false
		}
	}

	id = uuid.NewString()
	v := m.newValue()

	m.mu.Lock()
	m.sessions[id] = &entry[T]{value: v, lastSeen: m.now()}
	n := len(m.sessions)
	m.mu.Unlock()

	m.count(n)
	return id, v, true
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (m *Manager[T]) Delete(id string) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return
	}
	if m.onEvict != nil {
		m.onEvict(id, e.value)
	}
	m.count(n)
}

// Len returns the number of live sessions.
func (m *Manager[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the timeout and returns how
// many were removed.
func (m *Manager[T]) Sweep() int {
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	evicted := make(map[string]T)
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			evicted[id] = e.value
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if len(evicted) == 0 {
		return 0
	}
	if m.onEvict != nil {
		for id, v := range evicted {
			m.onEvict(id, v)
		}
	}
	m.count(n)
	m.logger.Debug("swept idle sessions", "evicted", len(evicted), "remaining", n)
	return len(evicted)
}

// Run sweeps every interval until ctx is done.
func (m *Manager[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager[T]) count(n int) {
	if m.onCount != nil {
		m.onCount(n)
	}
}
