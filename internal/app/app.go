// ABOUTME: Composition root: one App per process owning the adapter and every component.
// ABOUTME: Load runs the daily store first so rollover finishes before anything else reads.
package app

import (
	"errors"
	"fmt"

	"github.com/harperreed/betterself/internal/challenges"
	"github.com/harperreed/betterself/internal/config"
	"github.com/harperreed/betterself/internal/daily"
	"github.com/harperreed/betterself/internal/daykey"
	"github.com/harperreed/betterself/internal/journal"
	"github.com/harperreed/betterself/internal/kv"
	"github.com/harperreed/betterself/internal/stats"
	"github.com/harperreed/betterself/internal/streaks"
)

// ErrSyncUnsupported is returned by Sync when the backend has no remote.
var ErrSyncUnsupported = errors.New("backend does not support sync")

// App wires the components to one adapter.
type App struct {
	KV         *kv.Adapter
	Daily      *daily.Store
	Streaks    *streaks.Tracker
	Challenges *challenges.Tracker
	Stats      *stats.Aggregator
	Journal    *journal.Journal

	clock daykey.Clock
}

// New builds an App over backend. A nil clock means the system clock.
func New(backend kv.Backend, clock daykey.Clock) *App {
	if clock == nil {
		clock = daykey.System
	}
	adapter := kv.New(backend)
	return &App{
		KV:         adapter,
		Daily:      daily.New(adapter, clock),
		Streaks:    streaks.New(adapter, clock),
		Challenges: challenges.New(adapter, clock),
		Stats:      stats.New(adapter, clock),
		Journal:    journal.New(adapter),
		clock:      clock,
	}
}

// Open builds an App from configuration.
func Open(cfg *config.Config) (*App, error) {
	backend, err := cfg.OpenBackend()
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.GetBackend(), err)
	}
	return New(backend, nil), nil
}

// Load reads every component's persisted state.
func (a *App) Load() error {
	if err := a.Daily.Load(); err != nil {
		return err
	}
	a.Streaks.Load()
	a.Challenges.Load()
	a.Stats.Load()
	return nil
}

// Close flushes pending writes and closes the backend.
func (a *App) Close() error {
	return a.KV.Close()
}

// Today returns the current day key.
func (a *App) Today() string {
	return a.clock.Today()
}

// CheckRollover resets the day if the date has changed since the last reset.
func (a *App) CheckRollover() bool {
	return a.Daily.CheckRollover()
}

// SnapshotStats records today's habit completion in the history.
func (a *App) SnapshotStats() bool {
	return a.Stats.SnapshotToday(stats.HabitPercent(a.Daily.Progress()))
}

// Summary computes the statistics cards.
func (a *App) Summary() stats.Summary {
	return stats.Summarize(stats.Inputs{
		Today:      a.Today(),
		Progress:   a.Daily.Progress(),
		Habits:     len(a.Daily.Habits()),
		Challenges: a.Challenges.List(),
		Streaks:    a.Streaks.List(),
	})
}

// Sync pushes and pulls with the remote when the backend supports it.
func (a *App) Sync() error {
	a.KV.Flush()
	s, ok := a.KV.Backend().(kv.Syncer)
	if !ok {
		return ErrSyncUnsupported
	}
	return s.Sync()
}
