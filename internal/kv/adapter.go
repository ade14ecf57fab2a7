// ABOUTME: Best-effort key-value adapter with namespaced keys and async writes.
// ABOUTME: Reads never fail (absent on error); queued writes are logged and swallowed.
package kv

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/harperreed/betterself/internal/logger"
)

// Namespace is the stable prefix applied to every key the app writes.
const Namespace = "bs@"

const queueSize = 256

type write struct {
	key    string
	value  []byte
	delete bool
	flush  chan struct{}
}

// Adapter is the persistence adapter shared by every component.
// Asynchronous writes go through one FIFO goroutine, so for a given key the
// last write issued is the last write applied.
type Adapter struct {
	backend   Backend
	namespace string

	mu     sync.Mutex
	closed bool
	writes chan write
	done   chan struct{}
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithNamespace overrides the key namespace.
func WithNamespace(ns string) Option {
	return func(a *Adapter) { a.namespace = ns }
}

// New wraps backend and starts the writer goroutine. Call Close when done.
func New(backend Backend, opts ...Option) *Adapter {
	a := &Adapter{
		backend:   backend,
		namespace: Namespace,
		writes:    make(chan write, queueSize),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	go a.run()
	return a
}

// Backend returns the wrapped backend.
func (a *Adapter) Backend() Backend {
	return a.backend
}

func (a *Adapter) key(k string) string {
	return a.namespace + k
}

func (a *Adapter) run() {
	defer close(a.done)
	for w := range a.writes {
		switch {
		case w.flush != nil:
			close(w.flush)
		case w.delete:
			if err := a.backend.Delete(w.key); err != nil {
				logger.Warn("kv delete failed", "key", w.key, "error", err)
			}
		default:
			if err := a.backend.Set(w.key, w.value); err != nil {
				logger.Warn("kv write failed", "key", w.key, "error", err)
			}
		}
	}
}

func (a *Adapter) enqueue(w write) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		if w.flush == nil {
			logger.Warn("kv write after close dropped", "key", w.key)
		}
		return false
	}
	a.writes <- w
	return true
}

// Flush blocks until every write queued before the call has been attempted.
func (a *Adapter) Flush() {
	ch := make(chan struct{})
	if !a.enqueue(write{flush: ch}) {
		return
	}
	<-ch
}

// Get returns the stored value for key. Any failure, including a missing
// key, reports absent. Pending writes are flushed first so reads observe them.
func (a *Adapter) Get(key string) ([]byte, bool) {
	a.Flush()
	val, err := a.backend.Get(a.key(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("kv read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

// Set writes synchronously and reports the backend error.
func (a *Adapter) Set(key string, value []byte) error {
	a.Flush()
	return a.backend.Set(a.key(key), value)
}

// Delete removes key synchronously.
func (a *Adapter) Delete(key string) error {
	a.Flush()
	err := a.backend.Delete(a.key(key))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// MultiSet writes every entry independently. The returned map holds the
// keys that failed; a failure on one key does not stop the others.
func (a *Adapter) MultiSet(entries map[string][]byte) map[string]error {
	a.Flush()
	failed := make(map[string]error)
	for k, v := range entries {
		if err := a.backend.Set(a.key(k), v); err != nil {
			logger.Warn("kv write failed", "key", k, "error", err)
			failed[k] = err
		}
	}
	return failed
}

// SetAsync queues a write and returns immediately.
func (a *Adapter) SetAsync(key string, value []byte) {
	a.enqueue(write{key: a.key(key), value: value})
}

// DeleteAsync queues a delete and returns immediately.
func (a *Adapter) DeleteAsync(key string) {
	a.enqueue(write{key: a.key(key), delete: true})
}

// SetJSONAsync marshals v and queues the write. Marshal failures are logged.
func (a *Adapter) SetJSONAsync(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("kv marshal failed", "key", key, "error", err)
		return
	}
	a.SetAsync(key, data)
}

// Keys lists the un-namespaced keys starting with prefix, sorted.
func (a *Adapter) Keys(prefix string) []string {
	a.Flush()
	all, err := a.backend.Keys()
	if err != nil {
		logger.Warn("kv list failed", "prefix", prefix, "error", err)
		return nil
	}
	full := a.key(prefix)
	var keys []string
	for _, k := range all {
		if strings.HasPrefix(k, full) {
			keys = append(keys, strings.TrimPrefix(k, a.namespace))
		}
	}
	sort.Strings(keys)
	return keys
}

// Close flushes queued writes, stops the writer, and closes the backend.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.writes)
	a.mu.Unlock()

	<-a.done
	return a.backend.Close()
}

// GetJSON decodes the value at key into T. Absent or malformed records
// report false so callers fall back to their defaults.
func GetJSON[T any](a *Adapter, key string) (T, bool) {
	var result T
	data, ok := a.Get(key)
	if !ok {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		logger.Warn("kv malformed record", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return result, true
}
