// ABOUTME: Cron-driven watcher that rolls the day over inside long-running processes.
// ABOUTME: Each tick runs the rollover check and, after a reset, snapshots stats.
package rollover

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/harperreed/betterself/internal/logger"
)

// Target is what the watcher drives. *app.App satisfies it.
type Target interface {
	CheckRollover() bool
	SnapshotStats() bool
}

// Watcher periodically checks whether the calendar day has changed.
type Watcher struct {
	target   Target
	cron     *cron.Cron
	schedule string
}

// NewWatcher creates a watcher running on a robfig/cron schedule such as "@every 1m".
func NewWatcher(target Target, schedule string) *Watcher {
	return &Watcher{
		target:   target,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start registers the job and starts the scheduler.
func (w *Watcher) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.Tick); err != nil {
		return fmt.Errorf("schedule rollover check %q: %w", w.schedule, err)
	}
	w.cron.Start()
	logger.Debug("rollover watcher started", "schedule", w.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Debug("rollover watcher stopped")
}

// Tick runs one check.
func (w *Watcher) Tick() {
	if !w.target.CheckRollover() {
		return
	}
	w.target.SnapshotStats()
	logger.Info("rolled over to a new day")
}
