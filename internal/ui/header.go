package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"stackwatch/internal/dockerd"
	"stackwatch/internal/state"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string
	parts = append(parts, bg.Render("stackwatch", styles.Logo))

	if !m.view.HasSnapshot {
		if m.view.LastError != nil {
			parts = append(parts, bg.Render("● "+dockerd.Describe(m.view.LastError, m.debug), styles.DangerText))
		} else {
			parts = append(parts, bg.Render("Connecting to Docker...", styles.WarningText))
		}
		return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
	}

	switch {
	case m.view.Offline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case m.view.Degraded():
		parts = append(parts, bg.Render("● STALE", styles.WarningText))
	default:
		parts = append(parts, bg.Render("● OK", styles.SuccessText))
	}

	total, running := m.countContainers()
	parts = append(parts,
		bg.Render("Containers:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", total), styles.Text)+bg.Space()+
			bg.Render(fmt.Sprintf("(%d running)", running), styles.MutedText),
	)
	parts = append(parts,
		bg.Render("Projects:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.countProjects()), styles.Text),
	)

	if !m.view.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.view.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	if m.notice != "" {
		max := 60
		if m.width < 100 {
			max = 30
		}
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.notice, max), styles.WarningText),
		)
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderStaleBanner renders the degraded-state line under the command bar.
// Empty when the last poll succeeded.
func (m Model) renderStaleBanner() string {
	if !m.view.Degraded() {
		return ""
	}

	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	reason := dockerd.Describe(m.view.LastError, m.debug)
	age := ""
	if !m.view.LastSuccess.IsZero() {
		age = fmt.Sprintf("showing data from %s (%s)",
			m.view.LastSuccess.Format("15:04:05"),
			humanize.Time(m.view.LastSuccess))
	}
	retry := fmt.Sprintf("retrying every %ds", int(m.pollTick/time.Second))

	parts := []string{bg.Render("⚠ "+reason, styles.DangerText.Bold(true))}
	if age != "" {
		parts = append(parts, bg.Render(age, styles.WarningText))
	}
	parts = append(parts, bg.Render(retry, styles.MutedText))

	sep := bg.Space() + bg.Render("·", styles.FaintText) + bg.Space()
	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders the key hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogs:
		followLabel := "Follow"
		if m.logFollow {
			followLabel = "Pause"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"/", "Search"},
			{"n/N", "Next/Prev"},
			{"g/G", "Top/Bottom"},
			{"Esc", "Back"},
			{"?", "Help"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"Enter", "Logs"},
			{"r", "Restart"},
			{"x", "Stop"},
			{"?", "Help"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.currentView == ViewLogs && m.search.query != "" {
		segments = append(segments, bg.Render("/"+truncate(m.search.query, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

func (m Model) countContainers() (total, running int) {
	for _, c := range m.rows {
		total++
		if c.Status == dockerd.StatusRunning {
			running++
		}
	}
	return
}

func (m Model) countProjects() int {
	if !m.view.HasSnapshot {
		return 0
	}
	n := 0
	for _, g := range m.view.Snapshot.Groups {
		if g.Project != state.UngroupedProject {
			n++
		}
	}
	return n
}

// truncate truncates a string to max runes with ellipsis. Rune-based so
// multibyte names and emoji cells are never cut mid-character.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
