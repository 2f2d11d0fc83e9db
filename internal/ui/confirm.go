package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stackwatch/internal/dockerd"
)

const actionTimeout = 30 * time.Second

type actionVerb string

const (
	actionRestart actionVerb = "restart"
	actionStop    actionVerb = "stop"
)

// pendingAction is a restart or stop waiting for y/n confirmation.
type pendingAction struct {
	verb   actionVerb
	target dockerd.Container
}

type actionDoneMsg struct {
	verb actionVerb
	name string
	err  error
}

func (a actionDoneMsg) describe() string {
	if a.err != nil {
		return fmt.Sprintf("%s %s: %v", a.verb, a.name, a.err)
	}
	switch a.verb {
	case actionStop:
		return "stopped " + a.name
	default:
		return "restarted " + a.name
	}
}

// handleConfirmKey processes input while the confirmation modal is open.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := *m.confirm
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirm = nil
		progress := "restarting"
		if pending.verb == actionStop {
			progress = "stopping"
		}
		m.setNotice(progress + " " + pending.target.Name + "...")
		return m, actionCmd(m.ctx, m.daemon, pending)
	case "n", "N", "esc", "q":
		m.confirm = nil
		return m, nil
	}
	return m, nil
}

// actionCmd runs the confirmed restart or stop against the daemon.
func actionCmd(ctx context.Context, daemon dockerd.Daemon, pending pendingAction) tea.Cmd {
	return func() tea.Msg {
		actx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()

		var err error
		switch pending.verb {
		case actionStop:
			err = daemon.StopContainer(actx, pending.target.ID)
		default:
			err = daemon.RestartContainer(actx, pending.target.ID)
		}
		return actionDoneMsg{verb: pending.verb, name: pending.target.Name, err: err}
	}
}

// renderConfirm renders the confirmation modal.
func (m Model) renderConfirm() string {
	styles := m.theme.Styles()
	pending := *m.confirm

	verb := "Restart"
	if pending.verb == actionStop {
		verb = "Stop"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("%s %s?", verb, pending.target.Name)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(truncate(pending.target.Image, 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.FaintText.Render(": confirm  ·  ") +
		styles.AccentText.Render("n") + styles.FaintText.Render(": cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
