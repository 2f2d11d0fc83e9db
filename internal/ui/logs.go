package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// searchState holds log search state.
type searchState struct {
	active   bool // the search input is focused
	query    string
	regex    *regexp.Regexp
	input    textinput.Model
	matches  []int // ring indices of matching lines
	matchIdx int
}

func (m *Model) initSearchInput() {
	ti := textinput.New()
	ti.Placeholder = "Search logs..."
	ti.CharLimit = 100
	m.search.input = ti
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(m.width, m.logViewportHeight())
}

func (m *Model) resizeLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	m.logViewport.Width = m.width
	m.logViewport.Height = m.logViewportHeight()
}

// logViewportHeight leaves room for the title line above and the status line
// below the scrollback.
func (m Model) logViewportHeight() int {
	h := m.contentHeight() - 2
	if h < 1 {
		h = 1
	}
	return h
}

// openLogs starts a log session for the selected container and switches to
// the log view. Any previous session is torn down first.
func (m Model) openLogs() (tea.Model, tea.Cmd) {
	c := m.selectedContainer()
	if c == nil {
		return m, nil
	}

	m.closeSession()
	m.currentView = ViewLogs
	m.logFollow = true
	m.clearSearch()
	m.pendingLogID = c.ID
	m.attachSeq++
	m.resizeLogViewport()
	m.logViewport.SetContent(m.theme.Styles().MutedText.Render("Attaching to " + c.Name + "..."))

	return m, startLogCmd(m.ctx, m.daemon, *c, m.cfg.LogTail, m.cfg.LogBuffer, m.attachSeq)
}

// exitLogs tears the session down and returns to the table.
func (m *Model) exitLogs() {
	m.closeSession()
	m.clearSearch()
	m.currentView = ViewTable
}

func (m Model) handleLogStarted(msg logStartedMsg) (tea.Model, tea.Cmd) {
	// The user may have escaped or re-entered before the attach finished.
	// Only the most recent attach may install; anything older gets its
	// stream cancelled so it cannot leak a connection or pump goroutine.
	if m.currentView != ViewLogs || msg.seq != m.attachSeq {
		msg.session.stop()
		return m, nil
	}
	if m.session != nil {
		m.session.stop()
	}
	m.session = msg.session
	m.refreshLogContent()
	return m, waitForLogCmd(m.session)
}

func (m Model) handleLogStartFailed(msg logStartFailedMsg) (tea.Model, tea.Cmd) {
	if m.currentView != ViewLogs || msg.seq != m.attachSeq {
		return m, nil
	}
	m.pendingLogID = ""
	m.currentView = ViewTable
	m.setNotice("logs: " + msg.err.Error())
	return m, nil
}

func (m Model) handleLogLines(msg logLinesMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || msg.id != m.session.id {
		return m, nil
	}
	m.refreshLogContent()
	return m, waitForLogCmd(m.session)
}

// handleLogEnded fires when the stream closes on its own, e.g. the daemon
// dropped the connection or the container was removed.
func (m Model) handleLogEnded(msg logEndedMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || msg.id != m.session.id {
		return m, nil
	}
	name := m.session.name
	m.exitLogs()
	if msg.err != nil {
		m.setNotice(fmt.Sprintf("log stream for %s ended: %v", name, msg.err))
	} else {
		m.setNotice("log stream for " + name + " ended")
	}
	return m, nil
}

// handleLogsKey processes keyboard input for the log view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.search.regex != nil {
			m.clearSearch()
			m.refreshLogContent()
			return m, nil
		}
		m.exitLogs()
		return m, nil

	case " ":
		m.logFollow = !m.logFollow
		if m.logFollow {
			m.logViewport.GotoBottom()
		}
		return m, nil

	case "/":
		m.search.active = true
		m.search.input.Focus()
		m.search.input.SetValue("")
		return m, nil

	case "n":
		m.nextMatch(1)
		return m, nil

	case "N":
		m.nextMatch(-1)
		return m, nil

	case "g", "home":
		m.logViewport.GotoTop()
		m.logFollow = false
		return m, nil

	case "G", "end":
		m.logViewport.GotoBottom()
		m.logFollow = true
		return m, nil

	case "j", "down":
		m.logViewport.ScrollDown(1)
		m.logFollow = false
		return m, nil

	case "k", "up":
		m.logViewport.ScrollUp(1)
		m.logFollow = false
		return m, nil

	case "ctrl+d":
		m.logViewport.HalfPageDown()
		m.logFollow = false
		return m, nil

	case "ctrl+u":
		m.logViewport.HalfPageUp()
		m.logFollow = false
		return m, nil

	case "pgdown":
		m.logViewport.PageDown()
		m.logFollow = false
		return m, nil

	case "pgup":
		m.logViewport.PageUp()
		m.logFollow = false
		return m, nil
	}

	return m, nil
}

// handleSearchInput handles keyboard input while the search prompt is open.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := m.search.input.Value()
		if query == "" {
			m.search.active = false
			m.search.input.Blur()
			return m, nil
		}
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			// Invalid pattern: stay in the prompt
			return m, nil
		}
		m.search.regex = re
		m.search.query = query
		m.search.active = false
		m.search.input.Blur()
		m.findMatches()
		if len(m.search.matches) > 0 {
			m.search.matchIdx = 0
			m.scrollToMatch()
		}
		m.refreshLogContent()
		return m, nil

	case "esc":
		m.search.active = false
		m.search.input.Blur()
		m.search.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}

func (m *Model) clearSearch() {
	m.search.regex = nil
	m.search.query = ""
	m.search.matches = nil
	m.search.matchIdx = 0
}

func (m *Model) findMatches() {
	m.search.matches = nil
	if m.search.regex == nil || m.session == nil {
		return
	}
	for i, line := range m.session.ring.Snapshot() {
		if m.search.regex.MatchString(line.Text) {
			m.search.matches = append(m.search.matches, i)
		}
	}
}

func (m *Model) nextMatch(dir int) {
	n := len(m.search.matches)
	if n == 0 {
		return
	}
	m.search.matchIdx = (m.search.matchIdx + dir + n) % n
	m.scrollToMatch()
	m.refreshLogContent()
}

// scrollToMatch centers the active match in the viewport where possible.
func (m *Model) scrollToMatch() {
	if len(m.search.matches) == 0 || m.search.matchIdx >= len(m.search.matches) {
		return
	}
	target := m.search.matches[m.search.matchIdx]
	m.logFollow = false
	offset := target - m.logViewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.logViewport.SetYOffset(offset)
}

// refreshLogContent rebuilds the viewport content from the ring buffer.
func (m *Model) refreshLogContent() {
	if m.session == nil {
		return
	}

	styles := m.theme.Styles()
	lines := m.session.ring.Snapshot()

	// New lines shift ring indices; recompute matches each rebuild.
	if m.search.regex != nil {
		m.findMatches()
		if m.search.matchIdx >= len(m.search.matches) {
			m.search.matchIdx = 0
		}
	}
	matchSet := make(map[int]bool, len(m.search.matches))
	for _, idx := range m.search.matches {
		matchSet[idx] = true
	}
	activeMatch := -1
	if len(m.search.matches) > 0 {
		activeMatch = m.search.matches[m.search.matchIdx]
	}

	var b strings.Builder
	for i, line := range lines {
		text := line.Text
		ts := ""
		if !line.When.IsZero() {
			ts = line.When.Local().Format("15:04:05") + " "
		}

		switch {
		case i == activeMatch:
			b.WriteString(styles.Selected.Render(ts + text))
		case matchSet[i]:
			b.WriteString(styles.FaintText.Render(ts))
			b.WriteString(styles.AccentText.Render(text))
		default:
			b.WriteString(styles.FaintText.Render(ts))
			b.WriteString(styles.Text.Render(text))
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	if len(lines) == 0 {
		b.WriteString(styles.MutedText.Render("No log output yet"))
	}

	m.logViewport.SetContent(b.String())
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

// renderLogs renders the log view: title, scrollback, status line.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	name := m.pendingLogID
	if m.session != nil {
		name = m.session.name
	} else if c := m.selectedContainer(); c != nil && c.ID == m.pendingLogID {
		name = c.Name
	}
	title := styles.AccentText.Bold(true).Render("Logs") +
		styles.FaintText.Render(" · ") +
		styles.Text.Render(name)

	return title + "\n" + m.logViewport.View() + "\n" + m.renderLogStatus()
}

// renderLogStatus renders the line under the scrollback.
func (m Model) renderLogStatus() string {
	styles := m.theme.Styles()

	if m.search.active {
		return styles.AccentText.Render("/") + m.search.input.View()
	}

	if m.search.regex != nil {
		if len(m.search.matches) == 0 {
			return styles.DangerText.Render("Pattern not found: " + m.search.query)
		}
		return styles.AccentText.Render("/"+m.search.query) +
			styles.FaintText.Render(" · ") +
			styles.WarningText.Render(fmt.Sprintf("%d/%d", m.search.matchIdx+1, len(m.search.matches))) +
			styles.FaintText.Render(" · n next · N prev · esc clear")
	}

	lineCount := 0
	total := uint64(0)
	if m.session != nil {
		lineCount = m.session.ring.Len()
		total = m.session.ring.Total()
	}
	follow := "off"
	if m.logFollow {
		follow = "on"
	}
	status := fmt.Sprintf("%d lines buffered", lineCount)
	if total > uint64(lineCount) {
		status = fmt.Sprintf("%d lines buffered (%d seen)", lineCount, total)
	}
	return styles.FaintText.Render(status) +
		styles.FaintText.Render(" · follow ") +
		styles.MutedText.Render(follow) +
		styles.FaintText.Render(" · esc back")
}
