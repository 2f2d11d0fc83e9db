package app

import (
	"context"
	"log"
	"time"

	"stackwatch/internal/dockerd"
	"stackwatch/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	// pollTimeout boxes each daemon round-trip so a hung daemon can never
	// block shutdown past a poll cycle.
	pollTimeout = 10 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. Failures do not stretch the interval; the UI is meant to
// reflect wall-clock state promptly, so retries stay constant-period.
// Returns immediately.
func StartPoller(ctx context.Context, store *state.Store, daemon dockerd.Daemon, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refresh(ctx, store, daemon)
		}
	}()
}

// refresh runs one poll cycle: list containers, build a snapshot, publish.
// Daemon errors become store state, never a crash.
func refresh(ctx context.Context, store *state.Store, daemon dockerd.Daemon) {
	pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	records, err := daemon.ListContainers(pollCtx)
	if err != nil {
		store.Fail(err)
		log.Printf("container poll failed: %v", err)
		return
	}
	store.Publish(state.New(time.Now(), records))
}
