package app

import (
	"context"
	"fmt"
	"time"

	"stackwatch/internal/config"
	"stackwatch/internal/dockerd"
	"stackwatch/internal/prefs"
	"stackwatch/internal/state"
	"stackwatch/internal/ui"
)

const startupPingTimeout = 3 * time.Second

// Options configure the stackwatch application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/stackwatch/prefs.toml
	RefreshEvery int    // seconds; zero uses the config value
	Debug        bool
	Version      string
}

// Run boots the stackwatch TUI until the context is cancelled or the user
// quits. Errors returned here are startup failures; once the UI is up,
// daemon trouble is rendered, not returned.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.RefreshEvery != 0 {
		// Validate catches non-positive overrides below.
		cfg.RefreshSeconds = opts.RefreshEvery
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	daemon, err := dockerd.New(cfg.DockerHost)
	if err != nil {
		return err
	}
	defer daemon.Close()

	if err := ensureDaemonAvailable(ctx, daemon); err != nil {
		return err
	}

	store := &state.Store{}

	// Populate the table before the UI draws its first frame, then keep
	// refreshing in the background.
	refresh(ctx, store, daemon)
	StartPoller(ctx, store, daemon, cfg.RefreshInterval())

	return ui.Run(ui.Options{
		Context:   ctx,
		Daemon:    daemon,
		Store:     store,
		Config:    cfg,
		PollTick:  cfg.RefreshInterval(),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Debug:     opts.Debug,
		Version:   opts.Version,
		RefreshNow: func() {
			refresh(ctx, store, daemon)
		},
	})
}

// ensureDaemonAvailable fails fast when the daemon cannot be reached at
// startup. After this point unreachability is a degraded state, not an
// error.
func ensureDaemonAvailable(ctx context.Context, daemon dockerd.Daemon) error {
	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()

	if err := daemon.Ping(pingCtx); err != nil {
		return fmt.Errorf("docker daemon unavailable: %w", err)
	}
	return nil
}
