// Package app is the composition root for stackwatch.
//
// Run wires configuration, the Docker daemon client, the shared state
// store, the background poller, and the TUI:
//
//  1. Load ~/.config/stackwatch/config.toml (flags override the interval)
//  2. Build the daemon client from the environment or config override
//  3. Ping the daemon; an unreachable daemon at startup is fatal
//  4. Poll once synchronously so the first frame has data
//  5. Start the constant-interval background poller
//  6. Run the UI until quit or signal
//
// Startup failures (bad config, unreachable daemon) return errors and the
// process exits non-zero. Once the UI is running, poll failures are
// recorded in the store and rendered as a stale banner over the last good
// table; they never terminate the loop.
package app
