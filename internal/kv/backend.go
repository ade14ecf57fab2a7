// ABOUTME: Storage backend contract for the key-value persistence adapter.
// ABOUTME: Backends store raw bytes; the Adapter layers namespacing and JSON on top.
package kv

import "errors"

// ErrNotFound is returned by Backend.Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// Backend is a durable string-keyed byte store.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Syncer is implemented by backends that can reconcile with a remote copy.
type Syncer interface {
	Sync() error
}
