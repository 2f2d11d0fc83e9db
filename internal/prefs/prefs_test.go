package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want default %q", p.Theme, defaultTheme)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	if err := Save(path, Prefs{Theme: "Ink"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	p := Load(path)
	if p.Theme != "Ink" {
		t.Fatalf("Theme = %q, want Ink", p.Theme)
	}
}

func TestLoadMalformedFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if p := Load(path); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want default on malformed file", p.Theme)
	}
}

func TestLoadBlankThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(`theme = "  "`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if p := Load(path); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want default on blank theme", p.Theme)
	}
}
