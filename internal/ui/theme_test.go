package ui

import "testing"

func TestGetThemeFallback(t *testing.T) {
	if got := GetTheme("NoSuchTheme"); got.Name != "Harbor" {
		t.Errorf("unknown theme resolved to %q, want Harbor", got.Name)
	}
	if got := GetTheme("Ink"); got.Name != "Ink" {
		t.Errorf("GetTheme(Ink) = %q", got.Name)
	}
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	name := themeOrder[0]
	for range themeOrder {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themeOrder[0] {
		t.Errorf("cycle did not wrap: ended at %q", name)
	}
	for _, want := range ThemeNames() {
		if !seen[want] {
			t.Errorf("theme %q never visited", want)
		}
	}
	if NextTheme("bogus") != themeOrder[0] {
		t.Error("unknown theme should restart the cycle")
	}
}

func TestStatusStyleFallsBackToMuted(t *testing.T) {
	styles := harborTheme().Styles()
	// Should not panic and should produce a usable style for unknown keys.
	_ = styles.StatusStyle("no-such-status").Render("x")
}
