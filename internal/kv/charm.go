// ABOUTME: Charm KV backend with optional E2E-encrypted cloud sync.
// ABOUTME: Sync only happens on demand unless auto-sync is enabled in config.
package kv

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	charmkv "github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// CharmDatabase is the default Charm KV database name.
const CharmDatabase = "betterself"

var errReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// CharmConfig holds configuration for the Charm backend.
type CharmConfig struct {
	// Name is the Charm KV database name.
	Name string

	// Host overrides CHARM_HOST when set.
	Host string

	// AutoSync pushes to Charm Cloud after every write.
	AutoSync bool
}

// CharmBackend stores records in a Charm KV database.
type CharmBackend struct {
	kv       *charmkv.KV
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens the named Charm KV database. Falls back to read-only when
// another process holds the lock.
func OpenCharm(cfg CharmConfig) (*CharmBackend, error) {
	if cfg.Host != "" {
		if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
			return nil, err
		}
	}

	name := cfg.Name
	if name == "" {
		name = CharmDatabase
	}

	db, err := charmkv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	return &CharmBackend{kv: db, autoSync: cfg.AutoSync}, nil
}

// IsReadOnly returns true if the database is open in read-only mode.
func (c *CharmBackend) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *CharmBackend) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// ID returns the Charm user ID for the current account.
func (c *CharmBackend) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *CharmBackend) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

func (c *CharmBackend) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

func (c *CharmBackend) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (c *CharmBackend) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv.IsReadOnly() {
		return errReadOnly
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

func (c *CharmBackend) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv.IsReadOnly() {
		return errReadOnly
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

func (c *CharmBackend) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, string(k))
	}
	return keys, nil
}

func (c *CharmBackend) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}
