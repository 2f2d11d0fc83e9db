package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load missing file: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.RefreshInterval() != 2*time.Second {
		t.Fatalf("RefreshInterval = %v, want 2s", cfg.RefreshInterval())
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
docker_host = "tcp://10.0.0.5:2375"
refresh_seconds = 5
log_tail = 250
log_buffer = 1000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DockerHost != "tcp://10.0.0.5:2375" {
		t.Fatalf("DockerHost = %q", cfg.DockerHost)
	}
	if cfg.RefreshSeconds != 5 || cfg.LogTail != 250 || cfg.LogBuffer != 1000 {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `refresh_seconds = 10`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RefreshSeconds != 10 {
		t.Fatalf("RefreshSeconds = %d, want 10", cfg.RefreshSeconds)
	}
	if cfg.LogTail != defaultLogTail || cfg.LogBuffer != defaultLogBuffer {
		t.Fatalf("cfg = %+v, want default tail/buffer", cfg)
	}
}

func TestLoadRejectsInvalidRefresh(t *testing.T) {
	path := writeConfig(t, `refresh_seconds = -1`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted negative refresh interval")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `refresh_seconds = [`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed toml")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", Default(), true},
		{"zero refresh", Config{RefreshSeconds: 0, LogBuffer: 1}, false},
		{"negative tail", Config{RefreshSeconds: 1, LogTail: -1, LogBuffer: 1}, false},
		{"zero buffer", Config{RefreshSeconds: 1, LogBuffer: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err == nil) != tc.ok {
				t.Fatalf("Validate(%+v) = %v, want ok=%v", tc.cfg, err, tc.ok)
			}
		})
	}
}
